package render

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func testCompositor(style Style) *Compositor {
	return NewCompositorWithFace(style, basicfont.Face7x13)
}

func newBlackFrame(w, h int) *image.NRGBA {
	frame := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = 255
	}
	return frame
}

func countNonBlack(frame *image.NRGBA) int {
	count := 0
	for i := 0; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 0 || frame.Pix[i+1] != 0 || frame.Pix[i+2] != 0 {
			count++
		}
	}
	return count
}

func TestDrawModifiesFrame(t *testing.T) {
	comp := testCompositor(DefaultStyle())
	frame := newBlackFrame(320, 240)

	comp.Draw(frame, []string{"Hello world."})

	if countNonBlack(frame) == 0 {
		t.Fatal("compositing should paint pixels onto the frame")
	}
}

func TestDrawEmptyLinesIsNoop(t *testing.T) {
	comp := testCompositor(DefaultStyle())
	frame := newBlackFrame(64, 64)
	comp.Draw(frame, nil)
	if countNonBlack(frame) != 0 {
		t.Fatal("no lines should leave the frame untouched")
	}
}

func TestDrawBottomVersusTopAnchor(t *testing.T) {
	bottomStyle := DefaultStyle()
	topStyle := DefaultStyle()
	topStyle.Position = PositionTop

	rowHasInk := func(frame *image.NRGBA, y int) bool {
		for x := 0; x < frame.Bounds().Dx(); x++ {
			c := frame.NRGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				return true
			}
		}
		return false
	}
	inkCenterRow := func(frame *image.NRGBA) int {
		sum, n := 0, 0
		for y := 0; y < frame.Bounds().Dy(); y++ {
			if rowHasInk(frame, y) {
				sum += y
				n++
			}
		}
		if n == 0 {
			return -1
		}
		return sum / n
	}

	bottomFrame := newBlackFrame(320, 240)
	testCompositor(bottomStyle).Draw(bottomFrame, []string{"Anchored."})
	topFrame := newBlackFrame(320, 240)
	testCompositor(topStyle).Draw(topFrame, []string{"Anchored."})

	bottomCenter := inkCenterRow(bottomFrame)
	topCenter := inkCenterRow(topFrame)
	if bottomCenter < 0 || topCenter < 0 {
		t.Fatal("expected ink in both frames")
	}
	if !(topCenter < 120 && bottomCenter > 120) {
		t.Fatalf("anchors wrong: top ink center %d, bottom ink center %d", topCenter, bottomCenter)
	}
}

func TestDrawCentersHorizontally(t *testing.T) {
	comp := testCompositor(DefaultStyle())
	frame := newBlackFrame(400, 100)
	comp.Draw(frame, []string{"Centered."})

	minX, maxX := frame.Bounds().Dx(), 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 400; x++ {
			c := frame.NRGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	leftGap := minX
	rightGap := 400 - 1 - maxX
	diff := leftGap - rightGap
	if diff < -backgroundPadding || diff > backgroundPadding {
		t.Fatalf("ink not centered: left gap %d, right gap %d", leftGap, rightGap)
	}
}

func TestDrawDoesNotMutateStyle(t *testing.T) {
	style := DefaultStyle()
	style.BackgroundColor = color.NRGBA{10, 20, 30, 200}
	before := style

	comp := testCompositor(style)
	comp.Draw(newBlackFrame(100, 100), []string{"Text."})

	if style != before {
		t.Fatalf("style mutated during draw: %+v -> %+v", before, style)
	}
}

func TestDrawBackgroundBlendsOpacity(t *testing.T) {
	style := DefaultStyle()
	style.BackgroundOpacity = 0.5
	// White background box so blended pixels are grey, not black.
	style.BackgroundColor = color.NRGBA{255, 255, 255, 255}
	style.TextColor = color.NRGBA{255, 0, 0, 255}

	comp := testCompositor(style)
	frame := newBlackFrame(320, 240)
	comp.Draw(frame, []string{"Blend."})

	// Expect at least one pixel that is neither source black nor full
	// white: the semi-transparent box over black.
	blended := false
	for i := 0; i < len(frame.Pix); i += 4 {
		r, g, b := frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2]
		if r == g && g == b && r > 30 && r < 225 {
			blended = true
			break
		}
	}
	if !blended {
		t.Fatal("expected alpha-blended background pixels")
	}
}
