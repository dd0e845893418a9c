package main

import (
	"github.com/spf13/cobra"

	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/process"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "列出可见且未最小化的窗口",
	RunE:  runWindows,
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "按标题查找窗口（默认不区分大小写的包含匹配）",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

var activateCmd = &cobra.Command{
	Use:   "activate <query>",
	Short: "将窗口置于前台",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivate,
}

func init() {
	windowsCmd.Flags().Int("min-title-length", 0, "标题最短长度 (默认取配置 min_title_length)")
	windowsCmd.Flags().String("owner", "", "只列出进程名包含该字符串的程序的窗口")

	findCmd.Flags().Bool("exact", false, "标题完全相等")
	findCmd.Flags().Bool("case-sensitive", false, "区分大小写")
	findCmd.Flags().Int("min-title-length", 0, "标题最短长度 (默认取配置 min_title_length)")

	rootCmd.AddCommand(windowsCmd, findCmd, activateCmd)
}

func minTitleLength(cmd *cobra.Command) int {
	if n, _ := cmd.Flags().GetInt("min-title-length"); n > 0 {
		return n
	}
	return app.cfg.MinTitleLength
}

func runWindows(cmd *cobra.Command, args []string) error {
	d, err := desk()
	if err != nil {
		return err
	}
	windows, err := d.ListWindows(minTitleLength(cmd))
	if err != nil {
		return err
	}

	if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
		procs, err := process.FindProcess(owner)
		if err != nil {
			return err
		}
		windows = ownedBy(windows, process.PIDs(procs))
	}
	return printYAML(cmd.OutOrStdout(), windows)
}

// ownedBy 保留所属进程在 pids 中的窗口，没有 PID 的窗口被丢弃
func ownedBy(windows []window.Handle, pids map[int]bool) []window.Handle {
	out := make([]window.Handle, 0, len(windows))
	for _, h := range windows {
		if h.PID > 0 && pids[h.PID] {
			out = append(out, h)
		}
	}
	return out
}

func runFind(cmd *cobra.Command, args []string) error {
	d, err := desk()
	if err != nil {
		return err
	}

	opts := []window.Option{window.MinTitleLength(minTitleLength(cmd))}
	if exact, _ := cmd.Flags().GetBool("exact"); exact {
		opts = append(opts, window.Exact())
	}
	if cs, _ := cmd.Flags().GetBool("case-sensitive"); cs {
		opts = append(opts, window.CaseSensitive())
	}

	h, err := d.FindWindow(args[0], opts...)
	if err != nil {
		return err
	}
	return printYAML(cmd.OutOrStdout(), h)
}

func runActivate(cmd *cobra.Command, args []string) error {
	d, err := desk()
	if err != nil {
		return err
	}
	h, err := d.ActivateWindow(window.Title(args[0]))
	if err != nil {
		return err
	}
	return printYAML(cmd.OutOrStdout(), h)
}
