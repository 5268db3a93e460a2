package utils

import (
	"image/color"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDefaultFace_Cached(t *testing.T) {
	a, err := DefaultFace(18)
	if err != nil {
		t.Fatalf("DefaultFace() error: %v", err)
	}
	b, _ := DefaultFace(18)
	c, _ := DefaultFace(24)
	if a != b {
		t.Error("Same size should return the cached face")
	}
	if a == c {
		t.Error("Different sizes should not share a face")
	}
}

// TestWrapText 折行后每行不超过最大宽度，且不丢失单词
func TestWrapText(t *testing.T) {
	face, err := DefaultFace(20)
	if err != nil {
		t.Fatalf("DefaultFace() error: %v", err)
	}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		minLines int
	}{
		{"fits on one line", "Step 1 done", 1000, 1},
		{"wraps long sentence", "The room is a mess. Will you help fix it up before the guests arrive?", 200, 2},
		{"long single word", "Supercalifragilisticexpialidocious", 50, 1},
		{"empty", "", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.text, face, tt.maxWidth)
			if len(lines) < tt.minLines {
				t.Fatalf("Got %d lines, want at least %d", len(lines), tt.minLines)
			}
			for _, line := range lines {
				if strings.Contains(line, " ") && MeasureTextWidth(line, face) > tt.maxWidth {
					t.Errorf("Line %q is wider than %v", line, tt.maxWidth)
				}
			}
			if got := strings.Join(lines, " "); got != tt.text {
				t.Errorf("Rejoined text = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestMeasureTextWidth_NilFace(t *testing.T) {
	if w := MeasureTextWidth("abc", nil); w != 0 {
		t.Errorf("MeasureTextWidth(nil) = %v, want 0", w)
	}
	if lines := WrapText("a b", nil, 10); len(lines) != 1 {
		t.Errorf("WrapText(nil face) = %v, want input unchanged", lines)
	}
}

// TestDrawText 绘制不会 panic
func TestDrawText(t *testing.T) {
	face, err := DefaultFace(16)
	if err != nil {
		t.Fatalf("DefaultFace() error: %v", err)
	}
	dst := ebiten.NewImage(200, 100)
	DrawTextCentered(dst, "line one\nline two", face, 100, 50, color.White)
	DrawTextAt(dst, "hello", face, 0, 0, color.White)
	DrawTextAt(dst, "ignored", nil, 0, 0, color.White)
}
