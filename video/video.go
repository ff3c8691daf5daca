// Package video renders the ppu package's completed-frame RGBA buffer to
// a real window, or captures it headlessly for conformance runs.
//
// Grounded on lib/screen.go/lib/ui/screen.go's pixel+pixelgl window (kept
// as the pixelgl backend below) and JetSetIlly-Gopher2600/gui/sdlwindows's
// go-sdl2+go-gl/gl texture-streaming window (the sdl2gl backend), per
// SPEC_FULL.md §11.
package video

import (
	"image/color"

	"github.com/faiface/pixel/pixelgl"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	FrameWidth  = 256
	FrameHeight = 240
)

// Backend names a Display implementation.
type Backend string

const (
	PixelGL Backend = "pixelgl"
	SDL2GL  Backend = "sdl2gl"
	PNG     Backend = "png"
	Nil     Backend = "nil"
)

// Display is the contract every backend satisfies: it implements
// ppu.FrameSink (a single Frame method) and additionally reports whether
// the user has asked to close the window, so a run loop knows when to
// stop stepping the console.
type Display interface {
	Frame(img *[FrameWidth * FrameHeight]color.RGBA)
	Closed() bool
	Close()
}

// Windowed is implemented by Display backends that own a pixelgl window,
// letting the input package's keys backend poll key state without a
// dependency back on this package's internal types.
type Windowed interface {
	Window() *pixelgl.Window
}

// SDL2Windowed is implemented by the sdl2gl backend, letting an overlay
// (debugoverlay) attach its own rendering to the same SDL2 window and GL
// context the console frame is drawn into.
type SDL2Windowed interface {
	SDLWindow() *sdl.Window
	GLContext() sdl.GLContext
}

// New constructs and initializes the named backend. PNG requires a
// directory, set via NewPNGSink directly; New(PNG) without one panics.
func New(backend Backend) Display {
	switch backend {
	case PixelGL:
		return newPixelGLDisplay()
	case SDL2GL:
		return newSDL2GLDisplay()
	case Nil:
		return &nilDisplay{}
	default:
		panic("video: unknown backend " + string(backend))
	}
}
