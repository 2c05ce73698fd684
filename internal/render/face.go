package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// NewFace builds a font face for the style. A FontFamily path loads that
// TTF/OTF file; otherwise the embedded Go fonts serve the bold/italic
// variants, so rendering needs no font files on disk.
func NewFace(style Style) (font.Face, error) {
	data, err := fontData(style)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    style.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}

func fontData(style Style) ([]byte, error) {
	if style.FontFamily != "" {
		// A font file carries one face; bold/italic flags only select
		// among the embedded variants.
		data, err := os.ReadFile(style.FontFamily)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", style.FontFamily, err)
		}
		return data, nil
	}
	switch {
	case style.Bold && style.Italic:
		return gobolditalic.TTF, nil
	case style.Bold:
		return gobold.TTF, nil
	case style.Italic:
		return goitalic.TTF, nil
	default:
		return goregular.TTF, nil
	}
}
