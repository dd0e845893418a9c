package screen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// StampFontSize 标注文字字号
const StampFontSize = 12

var (
	stampFontOnce sync.Once
	stampFont     *truetype.Font
	stampFontErr  error
)

func loadStampFont() (*truetype.Font, error) {
	stampFontOnce.Do(func() {
		stampFont, stampFontErr = truetype.Parse(goregular.TTF)
	})
	return stampFont, stampFontErr
}

// Stamp 在图像左上角绘制一行文字（深色底条 + 白字），返回新图像，原图不变
func Stamp(img image.Image, text string) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("图像为空")
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	if text == "" {
		return out, nil
	}

	f, err := loadStampFont()
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	const pad = 4
	barHeight := StampFontSize + 2*pad
	bar := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, min(bounds.Min.Y+barHeight, bounds.Max.Y))
	draw.Draw(out, bar, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(StampFontSize)
	c.SetClip(bar)
	c.SetDst(out)
	c.SetSrc(image.White)
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(bounds.Min.X+pad, bounds.Min.Y+pad+int(c.PointToFixed(StampFontSize)>>6))
	if _, err := c.DrawString(text, pt); err != nil {
		return nil, fmt.Errorf("绘制文字失败: %w", err)
	}
	return out, nil
}
