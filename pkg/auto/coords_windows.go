//go:build windows

package auto

import (
	"math"
	"sync"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// Windows 上存在两个坐标空间：
//   - 屏幕像素：窗口枚举 (GetWindowRect) 和截图都在此空间
//   - robotgo 输入坐标：robotgo.Move 期望的坐标，可能是逻辑像素
//
// coordScale = 主显示器截图宽度 / robotgo.GetScreenSize 宽度
//   NormalizePointForInput:  屏幕坐标 → robotgo 坐标 = x / coordScale
//   NormalizePointForScreen: robotgo 坐标 → 屏幕坐标 = x * coordScale

var (
	coordinateScaleMu sync.Mutex
	cachedScaleX      float64
	cachedScaleY      float64
	coordsDetected    bool
)

func getCoordinateScale() (float64, float64) {
	coordinateScaleMu.Lock()
	defer coordinateScaleMu.Unlock()

	if coordsDetected {
		return cachedScaleX, cachedScaleY
	}

	cachedScaleX, cachedScaleY = detectCoordinateScale()
	coordsDetected = true
	return cachedScaleX, cachedScaleY
}

func detectCoordinateScale() (float64, float64) {
	reportedW, reportedH := robotgo.GetScreenSize()
	if reportedW <= 0 || reportedH <= 0 {
		return 1.0, 1.0
	}
	if screenshot.NumActiveDisplays() == 0 {
		return 1.0, 1.0
	}

	bounds := screenshot.GetDisplayBounds(0)
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 1.0, 1.0
	}

	scaleX := normalizeScale(float64(bounds.Dx()) / float64(reportedW))
	scaleY := normalizeScale(float64(bounds.Dy()) / float64(reportedH))
	return scaleX, scaleY
}

func normalizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}

// ResetCoordinateScaleCache 重置坐标缩放缓存（显示器配置变化后调用）
func ResetCoordinateScaleCache() {
	coordinateScaleMu.Lock()
	defer coordinateScaleMu.Unlock()
	cachedScaleX = 0
	cachedScaleY = 0
	coordsDetected = false
}

// NormalizePointForInput 将屏幕坐标转换为 robotgo 输入坐标
func NormalizePointForInput(x, y int) (int, int) {
	scaleX, scaleY := getCoordinateScale()
	return ScaleInt(x, 1.0/scaleX), ScaleInt(y, 1.0/scaleY)
}

// NormalizePointForScreen 将 robotgo 坐标转换为屏幕坐标
func NormalizePointForScreen(x, y int) (int, int) {
	scaleX, scaleY := getCoordinateScale()
	return ScaleInt(x, scaleX), ScaleInt(y, scaleY)
}

// NormalizeRegionForInput 将屏幕区域转换为 robotgo 输入区域
func NormalizeRegionForInput(r Region) Region {
	scaleX, scaleY := getCoordinateScale()
	out := Region{
		X:      ScaleInt(r.X, 1.0/scaleX),
		Y:      ScaleInt(r.Y, 1.0/scaleY),
		Width:  ScaleInt(r.Width, 1.0/scaleX),
		Height: ScaleInt(r.Height, 1.0/scaleY),
	}
	if r.Width > 0 && out.Width < 1 {
		out.Width = 1
	}
	if r.Height > 0 && out.Height < 1 {
		out.Height = 1
	}
	return out
}
