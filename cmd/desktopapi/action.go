package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
)

var nowFunc = time.Now

var clickCmd = &cobra.Command{
	Use:   "click <x> <y>",
	Short: "在屏幕坐标点击；指定 --window 时坐标相对于窗口左上角",
	Args:  cobra.ExactArgs(2),
	RunE:  runClick,
}

var typeCmd = &cobra.Command{
	Use:   "type <text>",
	Short: "在焦点窗口输入文字；指定 --window 时先激活窗口",
	Args:  cobra.ExactArgs(1),
	RunE:  runType,
}

func init() {
	clickCmd.Flags().String("window", "", "相对于该窗口（标题匹配）")
	clickCmd.Flags().String("button", "left", "鼠标按键: left, right, middle")

	typeCmd.Flags().String("window", "", "输入前激活该窗口（标题匹配）")

	rootCmd.AddCommand(clickCmd, typeCmd)
}

func runClick(cmd *cobra.Command, args []string) error {
	var x, y int
	if _, err := fmt.Sscan(args[0], &x); err != nil {
		return fmt.Errorf("%w: 无效的 x %q", auto.ErrInvalidArgument, args[0])
	}
	if _, err := fmt.Sscan(args[1], &y); err != nil {
		return fmt.Errorf("%w: 无效的 y %q", auto.ErrInvalidArgument, args[1])
	}

	name, _ := cmd.Flags().GetString("button")
	button, err := auto.ParseButton(name)
	if err != nil {
		return err
	}

	d, err := desk()
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("window")
	p := auto.Point{X: x, Y: y}
	if query != "" {
		if p, err = d.ClickIn(window.Title(query), x, y, button); err != nil {
			return err
		}
	} else if err := d.Click(x, y, button); err != nil {
		return err
	}

	return printYAML(cmd.OutOrStdout(), map[string]any{"clicked": p, "button": button})
}

func runType(cmd *cobra.Command, args []string) error {
	d, err := desk()
	if err != nil {
		return err
	}

	if query, _ := cmd.Flags().GetString("window"); query != "" {
		if _, err := d.ActivateWindow(window.Title(query)); err != nil {
			return err
		}
	}
	return d.TypeText(args[0])
}
