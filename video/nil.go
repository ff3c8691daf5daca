package video

import "image/color"

// nilDisplay discards every frame: used by core tests and headless runs.
type nilDisplay struct {
	closed bool
}

func (d *nilDisplay) Frame(img *[FrameWidth * FrameHeight]color.RGBA) {}
func (d *nilDisplay) Closed() bool                                   { return d.closed }
func (d *nilDisplay) Close()                                         { d.closed = true }
