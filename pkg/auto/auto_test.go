package auto

import (
	"errors"
	"image"
	"testing"
)

func TestRegionEdges(t *testing.T) {
	r := Region{X: 100, Y: 50, Width: 800, Height: 600}

	if r.Right() != 900 {
		t.Errorf("Right 应为 900, 实际为 %d", r.Right())
	}
	if r.Bottom() != 650 {
		t.Errorf("Bottom 应为 650, 实际为 %d", r.Bottom())
	}
	if got := r.Rect(); got != image.Rect(100, 50, 900, 650) {
		t.Errorf("Rect 不匹配: %v", got)
	}
	if back := RegionFromRect(r.Rect()); back != r {
		t.Errorf("RegionFromRect 不匹配: %v", back)
	}
}

func TestRegionContainsIsInclusive(t *testing.T) {
	r := Region{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9, 20, false},
		{111, 70, false},
		{60, 71, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, 期望 %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRegionPad(t *testing.T) {
	r := Region{X: 100, Y: 50, Width: 800, Height: 600}
	for _, p := range []int{0, 1, 5, 32} {
		got := r.Pad(p)
		want := Region{X: 100 - p, Y: 50 - p, Width: 800 + 2*p, Height: 600 + 2*p}
		if got != want {
			t.Errorf("Pad(%d) = %v, 期望 %v", p, got, want)
		}
	}
}

func TestRegionClamp(t *testing.T) {
	tests := []struct {
		in, want Region
	}{
		{Region{X: 1, Y: 2, Width: 0, Height: 0}, Region{X: 1, Y: 2, Width: 1, Height: 1}},
		{Region{X: 1, Y: 2, Width: -5, Height: 7}, Region{X: 1, Y: 2, Width: 1, Height: 7}},
		{Region{X: 1, Y: 2, Width: 3, Height: -1}, Region{X: 1, Y: 2, Width: 3, Height: 1}},
		{Region{X: 1, Y: 2, Width: 3, Height: 4}, Region{X: 1, Y: 2, Width: 3, Height: 4}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(); got != tt.want {
			t.Errorf("Clamp(%v) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestParseButton(t *testing.T) {
	tests := map[string]Button{
		"":       ButtonLeft,
		"left":   ButtonLeft,
		"R":      ButtonRight,
		"middle": ButtonMiddle,
		"center": ButtonMiddle,
	}
	for in, want := range tests {
		got, err := ParseButton(in)
		if err != nil {
			t.Fatalf("ParseButton(%q) 失败: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseButton(%q) = %s, 期望 %s", in, got, want)
		}
	}

	if _, err := ParseButton("thumb"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("未知按键应返回 ErrInvalidArgument, 实际 %v", err)
	}
	if ButtonMiddle.RobotgoName() != "center" {
		t.Errorf("中键的 robotgo 名称应为 center")
	}
}

func TestScaleInt(t *testing.T) {
	if ScaleInt(100, 1.5) != 150 {
		t.Error("ScaleInt(100, 1.5) 应为 150")
	}
	if ScaleInt(100, 0) != 100 {
		t.Error("非正缩放系数应返回原值")
	}
}
