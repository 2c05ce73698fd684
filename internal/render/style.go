package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"subburn/internal/config"
)

// Position anchors the caption block vertically within the frame.
type Position int

const (
	PositionBottom Position = iota
	PositionTop
)

// ParsePosition converts a config position string.
func ParsePosition(value string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "bottom", "":
		return PositionBottom, nil
	case "top":
		return PositionTop, nil
	default:
		return PositionBottom, fmt.Errorf("unknown caption position %q", value)
	}
}

// Style describes caption appearance for one render pass. It is treated as
// immutable: the compositor copies what it needs and never writes back.
type Style struct {
	FontFamily        string // path to a TTF/OTF file; empty selects the embedded Go fonts
	FontSize          float64
	Bold              bool
	Italic            bool
	TextColor         color.NRGBA
	OutlineColor      color.NRGBA
	BackgroundColor   color.NRGBA
	BackgroundOpacity float64
	Position          Position
}

// DefaultStyle returns the stock caption appearance: white text with a
// black outline over a 60% black box at the bottom of the frame.
func DefaultStyle() Style {
	return Style{
		FontSize:          28,
		TextColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		OutlineColor:      color.NRGBA{A: 255},
		BackgroundColor:   color.NRGBA{A: 255},
		BackgroundOpacity: 0.6,
		Position:          PositionBottom,
	}
}

// StyleFromConfig builds a render style from configuration values.
func StyleFromConfig(cfg config.Style) (Style, error) {
	style := DefaultStyle()
	style.FontFamily = strings.TrimSpace(cfg.FontFamily)
	if cfg.FontSize > 0 {
		style.FontSize = cfg.FontSize
	}
	style.Bold = cfg.Bold
	style.Italic = cfg.Italic
	style.BackgroundOpacity = cfg.BackgroundOpacity

	var err error
	if style.TextColor, err = ParseColor(cfg.TextColor); err != nil {
		return Style{}, fmt.Errorf("style.text_color: %w", err)
	}
	if style.OutlineColor, err = ParseColor(cfg.OutlineColor); err != nil {
		return Style{}, fmt.Errorf("style.outline_color: %w", err)
	}
	if style.BackgroundColor, err = ParseColor(cfg.BackgroundColor); err != nil {
		return Style{}, fmt.Errorf("style.background_color: %w", err)
	}
	if style.Position, err = ParsePosition(cfg.Position); err != nil {
		return Style{}, err
	}
	return style, nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" hex notation.
func ParseColor(value string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", value)
	}
	parsed, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", value)
	}
	c := color.NRGBA{A: 255}
	if len(hex) == 8 {
		c.A = uint8(parsed & 0xFF)
		parsed >>= 8
	}
	c.B = uint8(parsed & 0xFF)
	c.G = uint8((parsed >> 8) & 0xFF)
	c.R = uint8((parsed >> 16) & 0xFF)
	return c, nil
}
