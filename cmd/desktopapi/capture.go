package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/flow"
)

var captureCmd = &cobra.Command{
	Use:   "capture [query]",
	Short: "截取窗口或显式区域",
	Long: `截取与 query 匹配的窗口（基于调用时的窗口位置），
或通过 --region x,y,w,h 截取显式区域。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapture,
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "截取显示器 (0 = 所有显示器组成的虚拟桌面)",
	RunE:  runScreen,
}

func init() {
	captureCmd.Flags().StringP("output", "o", "", "输出文件 (默认按时间命名保存到 capture.dir)")
	captureCmd.Flags().Int("padding", -1, "四周扩展像素 (默认取配置 capture.padding)")
	captureCmd.Flags().Bool("activate", false, "截图前激活窗口")
	captureCmd.Flags().IntSlice("region", nil, "显式区域 x,y,w,h")
	captureCmd.Flags().Bool("stamp", false, "在截图上标注截图时间")

	screenCmd.Flags().Int("monitor", 0, "显示器编号，超出范围时钳制")
	screenCmd.Flags().StringP("output", "o", "", "输出文件 (默认按时间命名保存到 capture.dir)")
	screenCmd.Flags().Bool("stamp", false, "在截图上标注截图时间")

	rootCmd.AddCommand(captureCmd, screenCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	d, err := desk()
	if err != nil {
		return err
	}

	region, _ := cmd.Flags().GetIntSlice("region")
	var shot *screen.Shot

	switch {
	case len(region) > 0:
		if len(region) != 4 {
			return fmt.Errorf("%w: --region 需要 4 个值 x,y,w,h", auto.ErrInvalidArgument)
		}
		r := auto.Region{X: region[0], Y: region[1], Width: region[2], Height: region[3]}
		img, err := d.CaptureRegion(r)
		if err != nil {
			return err
		}
		shot = &screen.Shot{Image: img, Region: r.Clamp(), TakenAt: nowFunc()}
	case len(args) == 1:
		padding, _ := cmd.Flags().GetInt("padding")
		if !cmd.Flags().Changed("padding") {
			padding = app.cfg.Capture.Padding
		}
		opts := []screen.CaptureOption{screen.Padding(padding)}
		if activate, _ := cmd.Flags().GetBool("activate"); activate {
			opts = append(opts, screen.Activate())
		}
		shot, err = d.CaptureWindow(window.Title(args[0]), opts...)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: 需要窗口 query 或 --region", auto.ErrInvalidArgument)
	}

	return saveShot(cmd, shot)
}

func runScreen(cmd *cobra.Command, args []string) error {
	d, err := desk()
	if err != nil {
		return err
	}
	monitor, _ := cmd.Flags().GetInt("monitor")
	shot, err := d.CaptureScreen(monitor)
	if err != nil {
		return err
	}
	return saveShot(cmd, shot)
}

// saveShot 保存到 --output，或按时间命名保存到截图目录
func saveShot(cmd *cobra.Command, shot *screen.Shot) error {
	stamp, _ := cmd.Flags().GetBool("stamp")
	stamp = stamp || app.cfg.Capture.Stamp
	output, _ := cmd.Flags().GetString("output")

	var path string
	if output == "" {
		store, err := flow.NewSnapshotStore(app.cfg.Capture.Dir, app.cfg.Capture.Format, stamp)
		if err != nil {
			return err
		}
		if path, err = store.Save(shot); err != nil {
			return err
		}
	} else {
		img := shot.Image
		if stamp {
			stamped, err := screen.Stamp(img, shot.TakenAt.Format("2006-01-02 15:04:05.000"))
			if err != nil {
				return err
			}
			img = stamped
		}
		if err := screen.Save(img, output); err != nil {
			return err
		}
		path = output
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return printYAML(cmd.OutOrStdout(), map[string]any{
		"path":   abs,
		"region": shot.Region,
		"window": shot.Window,
	})
}
