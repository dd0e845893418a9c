package flow

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/desktop"
)

// StepFunc 每次截图后执行的动作，i 从 0 开始
type StepFunc func(ctx context.Context, i int, shot *screen.Shot) error

// CaptureLoop 循环执行 刷新 → 截图 → 动作 → 等待
type CaptureLoop struct {
	Target     window.Target
	Iterations int
	Interval   time.Duration
	OutputDir  string
	Padding    int
	Step       StepFunc
}

// IterationName 第 i 次截图的文件名
func IterationName(i int) string {
	return fmt.Sprintf("iteration_%03d.png", i)
}

// Run 激活目标窗口后执行循环，返回已保存的截图路径
//
// 两次迭代之间等待 Interval（最后一次之后不等待）；ctx 结束时立即返回 ctx 的错误。
func (l *CaptureLoop) Run(ctx context.Context, desk *desktop.Controller) ([]string, error) {
	if l.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations 必须为正数: %d", auto.ErrInvalidArgument, l.Iterations)
	}
	if l.Interval < 0 {
		return nil, fmt.Errorf("%w: interval 不能为负数: %v", auto.ErrInvalidArgument, l.Interval)
	}
	if l.Padding < 0 {
		return nil, fmt.Errorf("%w: padding 不能为负数: %d", auto.ErrInvalidArgument, l.Padding)
	}

	h, err := desk.ActivateWindow(l.Target)
	if err != nil {
		return nil, err
	}

	var paths []string
	for i := 0; i < l.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		logger.Info("=== 第 %d/%d 次 ===", i+1, l.Iterations)

		shot, err := desk.CaptureWindow(h, screen.Padding(l.Padding))
		if err != nil {
			return paths, err
		}
		h = shot.Window

		path := filepath.Join(l.OutputDir, IterationName(i))
		if err := screen.Save(shot.Image, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		logger.Info("截图已保存到 %s", path)

		if l.Step != nil {
			if err := l.Step(ctx, i, shot); err != nil {
				return paths, fmt.Errorf("第 %d 次动作失败: %w", i+1, err)
			}
		}

		if i < l.Iterations-1 && l.Interval > 0 {
			select {
			case <-ctx.Done():
				return paths, ctx.Err()
			case <-time.After(l.Interval):
			}
		}
	}
	return paths, nil
}
