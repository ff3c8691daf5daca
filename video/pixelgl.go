package video

import (
	"image/color"
	"runtime"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const windowScale = 3

// pixelGLDisplay is grounded on lib/screen.go / lib/ui/screen.go: a
// pixelgl.Window fed a pixel.PictureData built directly from the PPU's
// RGBA buffer, scaled up and drawn as a single sprite each frame.
//
// pixelgl requires its Run loop to own the OS thread, so construction
// hands the window's lifetime to a goroutine and communicates the ready
// *pixelgl.Window back over a channel.
type pixelGLDisplay struct {
	window *pixelgl.Window
	ready  chan struct{}
}

func newPixelGLDisplay() *pixelGLDisplay {
	d := &pixelGLDisplay{ready: make(chan struct{})}
	go func() {
		runtime.LockOSThread()
		pixelgl.Run(d.runThread)
	}()
	<-d.ready
	return d
}

func (d *pixelGLDisplay) runThread() {
	cfg := pixelgl.WindowConfig{
		Title:  "nesgo",
		Bounds: pixel.R(0, 0, FrameWidth*windowScale, FrameHeight*windowScale),
		VSync:  true,
	}
	window, err := pixelgl.NewWindow(cfg)
	if err != nil {
		panic(err)
	}
	d.window = window
	close(d.ready)
}

func (d *pixelGLDisplay) Frame(img *[FrameWidth * FrameHeight]color.RGBA) {
	if d.window == nil || d.window.Closed() {
		return
	}
	picture := &pixel.PictureData{
		Pix:    img[:],
		Stride: FrameWidth,
		Rect:   pixel.R(0, 0, FrameWidth, FrameHeight),
	}
	d.window.Clear(colornames.Whitesmoke)
	sprite := pixel.NewSprite(picture, picture.Rect)
	sprite.Draw(d.window, pixel.IM.
		Moved(d.window.Bounds().Center()).
		ScaledXY(d.window.Bounds().Center(), pixel.V(windowScale, windowScale)))
	d.window.Update()
}

func (d *pixelGLDisplay) Closed() bool {
	return d.window != nil && d.window.Closed()
}

func (d *pixelGLDisplay) Close() {
	if d.window != nil {
		d.window.Destroy()
	}
}

// Window exposes the underlying pixelgl window so the input package's
// keys backend can poll key state without this package depending on it.
func (d *pixelGLDisplay) Window() *pixelgl.Window { return d.window }
