package frames

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"
)

func rawFrames(count, width, height int, fill byte) []byte {
	frame := bytes.Repeat([]byte{fill}, width*height*4)
	return bytes.Repeat(frame, count)
}

func TestReaderStreamsFramesInOrder(t *testing.T) {
	const w, h = 4, 3
	data := append(rawFrames(1, w, h, 0x11), rawFrames(1, w, h, 0x22)...)
	reader := NewReaderFromStream(bytes.NewReader(data), w, h)

	first, err := reader.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.Pix[0] != 0x11 {
		t.Errorf("first frame fill = %#x", first.Pix[0])
	}
	if first.Bounds().Dx() != w || first.Bounds().Dy() != h {
		t.Errorf("frame bounds = %v", first.Bounds())
	}

	second, err := reader.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.Pix[0] != 0x22 {
		t.Errorf("second frame fill = %#x", second.Pix[0])
	}

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at stream end, got %v", err)
	}
	// EOF is sticky.
	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on repeat, got %v", err)
	}
}

func TestReaderTruncatedFrameIsError(t *testing.T) {
	const w, h = 4, 4
	data := rawFrames(1, w, h, 0xAA)
	data = append(data, 0x01, 0x02) // partial second frame
	reader := NewReaderFromStream(bytes.NewReader(data), w, h)

	if _, err := reader.Next(); err != nil {
		t.Fatalf("full frame: %v", err)
	}
	_, err := reader.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("truncated frame must not be silent EOF, got %v", err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	const w, h = 3, 2
	var buf bytes.Buffer
	writer := NewWriterToStream(&buf, w, h)

	frame := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range frame.Pix {
		frame.Pix[i] = byte(i)
	}
	if err := writer.Write(frame); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), frame.Pix) {
		t.Fatal("written bytes differ from frame pixels")
	}

	reader := NewReaderFromStream(&buf, w, h)
	back, err := reader.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !bytes.Equal(back.Pix, frame.Pix) {
		t.Fatal("round-tripped frame differs")
	}
}

func TestWriterRejectsMismatchedGeometry(t *testing.T) {
	writer := NewWriterToStream(io.Discard, 10, 10)
	if err := writer.Write(image.NewNRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Fatal("expected geometry mismatch error")
	}
}

func TestCloseWithoutProcessIsNil(t *testing.T) {
	reader := NewReaderFromStream(bytes.NewReader(nil), 1, 1)
	if err := reader.Close(); err != nil {
		t.Fatalf("reader Close: %v", err)
	}
	writer := NewWriterToStream(io.Discard, 1, 1)
	if err := writer.Close(); err != nil {
		t.Fatalf("writer Close: %v", err)
	}
}
