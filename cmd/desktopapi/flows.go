package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/hook"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/config"
	"github.com/zoeyai/desktopapi/pkg/flow"
)

var autoclickCmd = &cobra.Command{
	Use:   "autoclick",
	Short: "热键连点器：按住热键时在当前鼠标位置连续点击",
	Long: `按住 --hold 键期间按 --cps 频率在当前鼠标位置点击；
指定 --toggle 时每次按下该键切换连点开关。Ctrl+C 退出。`,
	RunE: runAutoclick,
}

var clicklogCmd = &cobra.Command{
	Use:   "clicklog <query>",
	Short: "记录窗口内的左键点击：截图并将相对坐标追加到 CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runClicklog,
}

var loopCmd = &cobra.Command{
	Use:   "loop <query>",
	Short: "循环截取窗口，可选每次在窗口内点击",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoop,
}

var demoCmd = &cobra.Command{
	Use:   "demo <query>",
	Short: "演示：查找、激活、截图、窗口内点击、输入文字",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemo,
}

func init() {
	autoclickCmd.Flags().Float64("cps", 0, "每秒点击次数 (默认取配置 clicker.cps)")
	autoclickCmd.Flags().String("button", "", "鼠标按键 (默认取配置 clicker.button)")
	autoclickCmd.Flags().String("hold", "", "按住连点的热键 (默认取配置 clicker.hold_hotkey)")
	autoclickCmd.Flags().String("toggle", "", "切换连点的热键")

	clicklogCmd.Flags().String("csv", "", "CSV 文件 (默认取配置 click_log.csv_path)")
	clicklogCmd.Flags().String("dir", "", "截图目录 (默认取配置 click_log.dir)")
	clicklogCmd.Flags().Int("padding", -1, "截图四周扩展像素 (默认取配置 capture.padding)")

	loopCmd.Flags().Int("iterations", 5, "循环次数")
	loopCmd.Flags().Duration("interval", 0, "两次截图之间的等待时间")
	loopCmd.Flags().StringP("output", "o", "loop_output", "截图目录")
	loopCmd.Flags().Int("padding", 0, "截图四周扩展像素")
	loopCmd.Flags().IntSlice("click", nil, "每次截图后点击的窗口相对坐标 x,y")

	demoCmd.Flags().StringP("output", "o", "demo_capture.png", "截图文件")
	demoCmd.Flags().IntSlice("click", []int{100, 100}, "点击的窗口相对坐标 x,y")
	demoCmd.Flags().String("text", flow.DemoText, "输入的文字")

	rootCmd.AddCommand(autoclickCmd, clicklogCmd, loopCmd, demoCmd)
}

func runAutoclick(cmd *cobra.Command, args []string) error {
	cfg := app.cfg.Clicker
	flags := cmd.Flags()
	if v, _ := flags.GetFloat64("cps"); v != 0 {
		cfg.CPS = v
	}
	if v, _ := flags.GetString("button"); v != "" {
		cfg.Button = v
	}
	if v, _ := flags.GetString("hold"); v != "" {
		cfg.HoldHotkey = v
	}
	if v, _ := flags.GetString("toggle"); v != "" {
		cfg.ToggleHotkey = v
	}

	clickerCfg, err := clickerConfig(cfg.CPS, cfg.Button, cfg.HoldHotkey, cfg.ToggleHotkey)
	if err != nil {
		return err
	}

	app.cfg.FailSafe = autoclickFailSafe(cmd, cfg)
	d, err := desk()
	if err != nil {
		return err
	}
	clicker, err := flow.NewHotkeyClicker(clickerCfg, d)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	fmt.Fprintln(cmd.OutOrStdout(), clicker.Usage())
	err = clicker.Run(ctx, hook.NewGohookListener())
	fmt.Fprintf(cmd.OutOrStdout(), "共点击 %d 次\n", clicker.Clicks())
	return err
}

// autoclickFailSafe 连点器默认不启用左上角保护，只有显式的 --fail-safe 或 clicker.fail_safe 才开启
func autoclickFailSafe(cmd *cobra.Command, cfg config.ClickerConfig) bool {
	if cmd.Flags().Changed("fail-safe") {
		on, _ := cmd.Flags().GetBool("fail-safe")
		return on
	}
	return cfg.FailSafe
}

// clickerConfig 解析热键和按键，空的 toggle 表示不使用切换模式
func clickerConfig(cps float64, button, hold, toggle string) (flow.ClickerConfig, error) {
	b, err := auto.ParseButton(button)
	if err != nil {
		return flow.ClickerConfig{}, err
	}
	cfg := flow.ClickerConfig{CPS: cps, Button: b}
	if hold != "" {
		if cfg.Hold, err = hook.ParseKey(hold); err != nil {
			return flow.ClickerConfig{}, err
		}
	}
	if toggle != "" {
		if cfg.Toggle, err = hook.ParseKey(toggle); err != nil {
			return flow.ClickerConfig{}, err
		}
	}
	return cfg, nil
}

func runClicklog(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	csvPath, _ := flags.GetString("csv")
	if csvPath == "" {
		csvPath = app.cfg.ClickLog.CSVPath
	}
	dir, _ := flags.GetString("dir")
	if dir == "" {
		dir = app.cfg.ClickLog.Dir
	}
	padding, _ := flags.GetInt("padding")
	if !flags.Changed("padding") {
		padding = app.cfg.Capture.Padding
	}

	d, err := desk()
	if err != nil {
		return err
	}
	store, err := flow.NewSnapshotStore(dir, app.cfg.Capture.Format, app.cfg.Capture.Stamp)
	if err != nil {
		return err
	}
	log, err := flow.OpenCSVLog(csvPath)
	if err != nil {
		return err
	}

	recorder, err := flow.NewClickLogger(d, store, log, padding)
	if err != nil {
		return err
	}
	h, err := recorder.Start(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "正在记录 %s 内的左键点击，截图保存到 %s，Ctrl+C 退出\n", h, store.Dir())
	return recorder.Run(ctx, hook.NewGohookListener())
}

func runLoop(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	iterations, _ := flags.GetInt("iterations")
	interval, _ := flags.GetDuration("interval")
	output, _ := flags.GetString("output")
	padding, _ := flags.GetInt("padding")
	click, _ := flags.GetIntSlice("click")

	d, err := desk()
	if err != nil {
		return err
	}

	loop := &flow.CaptureLoop{
		Target:     window.Title(args[0]),
		Iterations: iterations,
		Interval:   interval,
		OutputDir:  output,
		Padding:    padding,
	}
	if len(click) > 0 {
		p, err := pointArg(click)
		if err != nil {
			return err
		}
		loop.Step = func(ctx context.Context, i int, shot *screen.Shot) error {
			_, err := d.ClickIn(shot.Window, p.X, p.Y, auto.ButtonLeft)
			return err
		}
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	paths, err := loop.Run(ctx, d)
	if errors.Is(err, context.Canceled) {
		logger.Warn("循环已中断")
		err = nil
	}
	if perr := printYAML(cmd.OutOrStdout(), map[string]any{"saved": paths}); perr != nil && err == nil {
		err = perr
	}
	return err
}

func runDemo(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	output, _ := flags.GetString("output")
	text, _ := flags.GetString("text")
	click, _ := flags.GetIntSlice("click")
	p, err := pointArg(click)
	if err != nil {
		return err
	}

	d, err := desk()
	if err != nil {
		return err
	}
	path, err := flow.Demo{Query: args[0], Output: output, Click: p, Text: text}.Run(d)
	if err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "演示完成，截图: %s\n", abs)
	return nil
}

func pointArg(v []int) (auto.Point, error) {
	if len(v) != 2 {
		return auto.Point{}, fmt.Errorf("%w: 坐标需要 2 个值 x,y", auto.ErrInvalidArgument)
	}
	return auto.Point{X: v[0], Y: v[1]}, nil
}
