// desktopapi 命令行：窗口查询、截图、输入合成以及连点、点击记录等流程
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/config"
	"github.com/zoeyai/desktopapi/pkg/desktop"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "desktopapi",
	Short: "桌面自动化：按标题定位窗口、截图、在窗口内点击和输入",
	Long: `desktopapi 按标题定位原生应用窗口，截取窗口/区域/显示器截图，
并在窗口相对坐标上回放鼠标和键盘操作。

所有依赖窗口位置的操作在执行前都会重新获取窗口几何信息。`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "配置文件路径 (默认 ~/.desktop-api/config.yaml)")
	flags.String("log-level", "", "日志级别: debug, info, warn, error")
	flags.String("log-file", "", "追加写入的日志文件")
	flags.String("window-backend", "", "窗口来源: auto, robotgo, memory")
	flags.String("capture-backend", "", "截图来源: screenshot, robotgo")
	flags.Bool("fail-safe", true, "鼠标位于左上角 (0,0) 时中止合成操作")
	flags.Int("pause-ms", 0, "每次合成操作后的等待毫秒数")
}

// app 当前命令使用的配置和（按需创建的）控制器
var app struct {
	manager *config.Manager
	cfg     *config.Config
	desk    *desktop.Controller
}

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		app.manager = config.NewManagerWithFile(path)
	} else {
		app.manager = config.NewManager()
	}

	cfg, err := app.manager.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	app.cfg = cfg

	return logger.Configure(cfg.LogLevel, cfg.LogFile)
}

// applyFlags 命令行参数优先级高于配置文件
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetString("window-backend"); v != "" {
		cfg.WindowBackend = v
	}
	if v, _ := flags.GetString("capture-backend"); v != "" {
		cfg.CaptureBackend = v
	}
	if flags.Changed("fail-safe") {
		cfg.FailSafe, _ = flags.GetBool("fail-safe")
	}
	if flags.Changed("pause-ms") {
		cfg.PauseMs, _ = flags.GetInt("pause-ms")
	}
	return cfg.Validate()
}

// desk 按需创建控制器，进程内只创建一次
func desk() (*desktop.Controller, error) {
	if app.desk != nil {
		return app.desk, nil
	}
	d, err := desktop.NewSystem(app.cfg)
	if err != nil {
		return nil, err
	}
	app.desk = d
	return d, nil
}

// signalContext 在收到 Ctrl+C / SIGTERM 时结束
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func main() {
	err := rootCmd.Execute()
	if app.desk != nil {
		app.desk.Close()
	}
	logger.Default().Close()
	if err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "desktopapi v%s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Build Time: %s\n", BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
