package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// loadFont parses the embedded Go Mono font
func loadFont() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	return src, nil
}

// getUIFontSize returns the font size for UI text, scaled to the current tile size
func (e *EbitenRenderer) getUIFontSize() float64 {
	size := baseFontSize * float64(e.tileSize) / defaultTileSize
	if size < 10 {
		size = 10
	}
	return size
}

// getFontFace returns a cached font face for UI text
func (e *EbitenRenderer) getFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedFace == nil || e.cachedFontSize != size {
		e.cachedFontSize = size
		e.cachedFace = &text.GoTextFace{
			Source: e.fontSource,
			Size:   size,
		}
	}
	return e.cachedFace
}

// invalidateFontCache forces the face to be rebuilt on next use
func (e *EbitenRenderer) invalidateFontCache() {
	e.cachedFace = nil
}
