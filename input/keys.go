package input

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/nesgo/nesgo/video"
)

var keyTable = [8]struct {
	bit uint8
	key pixelgl.Button
}{
	{ButtonA, pixelgl.KeyS},
	{ButtonB, pixelgl.KeyA},
	{ButtonSelect, pixelgl.KeyLeftShift},
	{ButtonStart, pixelgl.KeyEnter},
	{ButtonUp, pixelgl.KeyUp},
	{ButtonDown, pixelgl.KeyDown},
	{ButtonLeft, pixelgl.KeyLeft},
	{ButtonRight, pixelgl.KeyRight},
}

// keySource polls a pixelgl window's key state, grounded on
// nes/screen.go/lib/ui/screen.go's updateControllers. Only port 0 is
// wired to the keyboard; port 1 always reads no buttons pressed.
type keySource struct {
	window *pixelgl.Window
}

// NewKeys builds a Source reading from display's pixelgl window. display
// must be the pixelgl video backend (it must implement video.Windowed);
// panics otherwise, since pairing it with any other backend is a
// programming error.
func NewKeys(display video.Display) Source {
	w, ok := display.(video.Windowed)
	if !ok {
		panic("input: keys backend requires the pixelgl video backend")
	}
	return &keySource{window: w.Window()}
}

func (s *keySource) Poll(port int) uint8 {
	if port != 0 || s.window == nil {
		return 0
	}
	var buttons uint8
	for _, k := range keyTable {
		if s.window.Pressed(k.key) {
			buttons |= k.bit
		}
	}
	return buttons
}

// Close is a no-op: the window outlives this Source and is closed by the
// video package's Display.Close instead.
func (s *keySource) Close() {}
