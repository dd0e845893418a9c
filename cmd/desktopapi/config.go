package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/config"
	"github.com/zoeyai/desktopapi/pkg/permissions"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "查看和修改配置文件",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示生效的配置（含命令行覆盖）",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printYAML(cmd.OutOrStdout(), app.cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "显示配置文件路径",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.manager.GetConfigFile())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "写入默认配置",
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "修改一个配置项，例如 set clicker.cps 20",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "检查窗口枚举、截图和输入合成所需的系统能力",
	RunE:  runPermissions,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "覆盖已存在的配置文件")
	permissionsCmd.Flags().Bool("request", false, "请求辅助功能权限并打开系统设置")

	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd, configSetCmd)
	rootCmd.AddCommand(configCmd, permissionsCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if app.manager.Exists() && !force {
		return fmt.Errorf("配置文件已存在: %s (使用 --force 覆盖)", app.manager.GetConfigFile())
	}
	if err := app.manager.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已写入 %s\n", app.manager.GetConfigFile())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	// 只修改文件中的配置，不带入本次命令行覆盖
	cfg, err := app.manager.Load()
	if err != nil {
		return err
	}
	if err := setConfigValue(cfg, args[0], args[1]); err != nil {
		return err
	}
	if err := app.manager.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}

// setConfigValue 按 YAML 键路径修改配置，值按 YAML 标量解析
func setConfigValue(cfg *config.Config, key, value string) error {
	var doc map[string]any
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}

	section, field, nested := strings.Cut(key, ".")
	target := doc
	if nested {
		sub, ok := doc[section].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: 未知配置项 %q", auto.ErrInvalidArgument, key)
		}
		target = sub
	} else {
		field = section
	}
	if _, ok := target[field]; !ok && !optionalKey(key) {
		return fmt.Errorf("%w: 未知配置项 %q", auto.ErrInvalidArgument, key)
	}
	target[field] = scalar(value)

	raw, err = yaml.Marshal(doc)
	if err != nil {
		return err
	}
	updated := config.DefaultConfig()
	if err := yaml.Unmarshal(raw, updated); err != nil {
		return fmt.Errorf("%w: %s 的值无效: %v", auto.ErrInvalidArgument, key, err)
	}
	*cfg = *updated
	return nil
}

// optionalKey omitempty 字段在为空时不会出现在序列化结果中
func optionalKey(key string) bool {
	return key == "log_file" || key == "clicker.toggle_hotkey"
}

func scalar(v string) any {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func runPermissions(cmd *cobra.Command, args []string) error {
	status := permissions.CheckPermissions()
	if err := printYAML(cmd.OutOrStdout(), status); err != nil {
		return err
	}
	if status.AllGranted {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), permissions.GetPermissionInstructions(status))
	if request, _ := cmd.Flags().GetBool("request"); request {
		permissions.RequestAccessibilityPermission()
		permissions.OpenSettings(status)
	}
	return permissions.Require()
}
