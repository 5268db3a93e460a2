package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultSourceOnce sync.Once
	defaultSource     *text.GoTextFaceSource
	defaultSourceErr  error

	faceCacheMu sync.Mutex
	faceCache   = make(map[float64]*text.GoTextFace)
)

// DefaultFace 返回内置 Go Regular 字体指定字号的字体
// 同一字号的字体会被缓存
func DefaultFace(size float64) (*text.GoTextFace, error) {
	defaultSourceOnce.Do(func() {
		defaultSource, defaultSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if defaultSourceErr != nil {
		return nil, fmt.Errorf("failed to create default font source: %w", defaultSourceErr)
	}

	faceCacheMu.Lock()
	defer faceCacheMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face, nil
	}
	face := &text.GoTextFace{
		Source:    defaultSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	faceCache[size] = face
	return face, nil
}

// MeasureTextWidth 文本在指定字体下的宽度（像素）
func MeasureTextWidth(s string, face text.Face) float64 {
	if face == nil {
		return 0
	}
	return text.Advance(s, face)
}

// WrapText 按单词把文本折成不超过 maxWidth 的多行
// 单个单词超宽时独占一行
func WrapText(s string, face text.Face, maxWidth float64) []string {
	if s == "" || face == nil || maxWidth <= 0 {
		return []string{s}
	}
	if MeasureTextWidth(s, face) <= maxWidth {
		return []string{s}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(s) {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if MeasureTextWidth(candidate, face) > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// DrawTextCentered 以 (cx, cy) 为中心绘制文本，多行文本整体居中
func DrawTextCentered(dst *ebiten.Image, s string, face text.Face, cx, cy float64, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = face.Metrics().HAscent + face.Metrics().HDescent
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

// DrawTextAt 以 (x, y) 为左上角绘制文本
func DrawTextAt(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
