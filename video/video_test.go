package video

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewNilBackendDiscardsFrames(t *testing.T) {
	d := New(Nil)
	var img [FrameWidth * FrameHeight]color.RGBA
	d.Frame(&img)
	if d.Closed() {
		t.Fatalf("expected nil backend to start open")
	}
	d.Close()
	if !d.Closed() {
		t.Fatalf("expected Close to mark the backend closed")
	}
}

func TestNewUnknownBackendPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected New with an unknown backend to panic")
		}
	}()
	New(Backend("not-a-real-backend"))
}

func TestPNGSinkWritesOneFilePerFrame(t *testing.T) {
	dir := t.TempDir()
	d := NewPNGSink(dir)

	var img [FrameWidth * FrameHeight]color.RGBA
	img[0] = color.RGBA{R: 255, A: 255}
	d.Frame(&img)
	d.Frame(&img)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read png sink directory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 PNG files, got %d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".png" {
		t.Fatalf("expected a .png file, got %q", entries[0].Name())
	}
}

func TestPNGSinkStopsWritingAfterClose(t *testing.T) {
	dir := t.TempDir()
	d := NewPNGSink(dir)
	d.Close()

	var img [FrameWidth * FrameHeight]color.RGBA
	d.Frame(&img)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read png sink directory: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no PNG files to be written after Close, got %d", len(entries))
	}
}
