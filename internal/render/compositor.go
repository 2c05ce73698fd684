package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Fixed layout constants, in pixels.
const (
	backgroundPadding = 10
	verticalMargin    = 50
	horizontalMargin  = 50
	lineSpacing       = 6
)

// Compositor draws wrapped caption lines onto frames. It owns a font face
// derived from the style; the style itself is read-only.
type Compositor struct {
	style Style
	face  font.Face
}

// NewCompositor builds a compositor for the given style using the
// embedded fonts.
func NewCompositor(style Style) (*Compositor, error) {
	face, err := NewFace(style)
	if err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}
	return NewCompositorWithFace(style, face), nil
}

// NewCompositorWithFace builds a compositor around an existing face.
// Mainly for tests that substitute a fixed-metric face.
func NewCompositorWithFace(style Style, face font.Face) *Compositor {
	return &Compositor{style: style, face: face}
}

// Measure reports the rendered pixel width of s with the compositor's face.
func (c *Compositor) Measure(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

// LineHeight returns the vertical distance between caption baselines.
func (c *Compositor) LineHeight() int {
	return c.face.Metrics().Height.Ceil() + lineSpacing
}

// Draw composites the caption lines onto the frame in place. Each line is
// centered horizontally; lines stack downward from an anchor near the top
// or bottom edge per the style. Per line the paint order is fixed:
// background box, then the four diagonal outline passes, then the text
// fill. That ordering produces the layering the captions rely on.
func (c *Compositor) Draw(frame *image.NRGBA, lines []string) {
	if len(lines) == 0 {
		return
	}

	bounds := frame.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	metrics := c.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := c.LineHeight()
	totalHeight := len(lines) * lineHeight

	// y tracks the text baseline of each line.
	var y int
	switch c.style.Position {
	case PositionTop:
		y = verticalMargin + ascent
	default:
		y = height - verticalMargin - totalHeight + ascent
	}

	for _, line := range lines {
		textWidth := c.Measure(line)
		x := (width - textWidth) / 2

		c.drawBackground(frame, x, y, textWidth, ascent)
		c.drawOutline(frame, line, x, y)
		c.drawText(frame, line, x, y, c.style.TextColor)

		y += lineHeight
	}
}

func (c *Compositor) drawBackground(frame *image.NRGBA, x, y, textWidth, ascent int) {
	bg := c.style.BackgroundColor
	// Fold the style opacity into the box color's own alpha.
	alpha := float64(bg.A) * c.style.BackgroundOpacity
	if alpha <= 0 {
		return
	}
	bg.A = uint8(alpha + 0.5)

	rect := image.Rect(
		x-backgroundPadding,
		y-ascent-backgroundPadding,
		x+textWidth+backgroundPadding,
		y+backgroundPadding,
	).Intersect(frame.Bounds())

	draw.Draw(frame, rect, image.NewUniform(bg), image.Point{}, draw.Over)
}

// drawOutline approximates a text stroke by repainting the glyphs offset
// one pixel in each diagonal direction.
func (c *Compositor) drawOutline(frame *image.NRGBA, line string, x, y int) {
	for _, offset := range [...][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		c.drawText(frame, line, x+offset[0], y+offset[1], c.style.OutlineColor)
	}
}

func (c *Compositor) drawText(frame *image.NRGBA, line string, x, y int, fill color.NRGBA) {
	drawer := font.Drawer{
		Dst:  frame,
		Src:  image.NewUniform(fill),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(line)
}
