package screen

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 100, A: 255})
		}
	}
	return img
}

func TestNormalizeFormat(t *testing.T) {
	tests := map[string]string{
		"":     FormatPNG,
		"PNG":  FormatPNG,
		".jpg": FormatJPEG,
		"jpeg": FormatJPEG,
		"bmp":  FormatBMP,
	}
	for in, want := range tests {
		got, err := NormalizeFormat(in)
		if err != nil || got != want {
			t.Errorf("NormalizeFormat(%q) = %q, %v; 期望 %q", in, got, err, want)
		}
	}
	if _, err := NormalizeFormat("gif"); err == nil {
		t.Error("gif 应不被支持")
	}
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	for _, name := range []string{"a.png", "b.jpg", "c.bmp", "nested/d.png"} {
		path := filepath.Join(dir, name)
		if err := Save(img, path); err != nil {
			t.Fatalf("Save(%s) 失败: %v", name, err)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("打开 %s 失败: %v", name, err)
		}
		decoded, format, err := image.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("解码 %s 失败: %v", name, err)
		}
		want, _ := FormatFromPath(path)
		if format != want {
			t.Errorf("%s 格式 = %s, 期望 %s", name, format, want)
		}
		if decoded.Bounds().Size() != img.Bounds().Size() {
			t.Errorf("%s 尺寸不一致: %v", name, decoded.Bounds())
		}
	}

	if err := Save(img, filepath.Join(dir, "x.gif")); err == nil {
		t.Error("不支持的扩展名应返回错误")
	}
}

func TestEncodeBMPRoundTrip(t *testing.T) {
	img := testImage()
	var buf bytes.Buffer
	if err := Encode(&buf, img, "bmp"); err != nil {
		t.Fatalf("Encode 失败: %v", err)
	}
	decoded, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp 解码失败: %v", err)
	}
	r1, g1, b1, _ := img.At(10, 10).RGBA()
	r2, g2, b2, _ := decoded.At(10, 10).RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("BMP 无损编码后像素应一致")
	}
}

func TestImageToBase64(t *testing.T) {
	img := testImage()

	s, err := ImageToBase64(img, "", 0)
	if err != nil {
		t.Fatalf("ImageToBase64 失败: %v", err)
	}
	if !strings.HasPrefix(s, "data:image/jpeg;base64,") {
		t.Errorf("默认应为 JPEG: %.40s", s)
	}

	s, err = ImageToBase64(img, "png", 0)
	if err != nil {
		t.Fatalf("ImageToBase64 失败: %v", err)
	}
	if !strings.HasPrefix(s, "data:image/png;base64,") {
		t.Errorf("应为 PNG: %.40s", s)
	}

	if _, err := ImageToBase64(nil, "png", 0); err == nil {
		t.Error("空图像应返回错误")
	}
}
