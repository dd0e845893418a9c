package screen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// 支持的图像格式
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
)

// DefaultJPEGQuality JPEG 默认质量
const DefaultJPEGQuality = 90

// NormalizeFormat 规范化格式名称（jpg → jpeg），不支持的格式返回错误
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("不支持的图像格式: %s", format)
	}
}

// FormatFromPath 根据文件扩展名推断格式，无扩展名时为 png
func FormatFromPath(path string) (string, error) {
	return NormalizeFormat(filepath.Ext(path))
}

// Encode 按格式编码图像
func Encode(w io.Writer, img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("图像为空")
	}

	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("%s 编码失败: %w", strings.ToUpper(f), err)
	}
	return nil
}

// Save 将图像保存到 path，格式由扩展名决定；写入失败时不留下残缺文件
func Save(img image.Image, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		os.Remove(path)
		return fmt.Errorf("保存图像失败: %w", err)
	}
	return nil
}

// ImageToBase64 将图像转换为 Base64 data URL
// format: "png"、"jpeg" 或 "bmp"，默认 "jpeg"（更小的体积）
// quality: JPEG 质量 1-100，默认 80
func ImageToBase64(img image.Image, format string, quality int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("图像为空")
	}

	if format == "" {
		format = FormatJPEG
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	f, err := NormalizeFormat(format)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if f == FormatJPEG {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", fmt.Errorf("JPEG 编码失败: %w", err)
		}
	} else if err := Encode(&buf, img, f); err != nil {
		return "", err
	}

	base64Str := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/%s;base64,%s", f, base64Str), nil
}
