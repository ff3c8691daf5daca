package input

import (
	"fmt"
	"sync"

	"github.com/splace/joysticks"
)

// joystickSource wraps a single splace/joysticks HID device, grounded on
// hardware/peripherals/sticks/splace.go's axis-deadzone and
// button-open/close event handling, adapted from that file's four-way
// digital-stick event stream into this package's single polled 8-bit
// button state.
type joystickSource struct {
	device *joysticks.HID

	mu      sync.Mutex
	buttons uint8
}

// NewJoystick connects to the index'th system joystick (as assigned by
// the OS, typically incrementing per device added) and starts feeding
// its events into a polled button state. Button 1 maps to A, button 2
// to B, button 7 to Select, button 8 to Start, matching a standard USB
// NES-style gamepad's layout; axis 1 drives the D-pad with the same 0.5
// deadzone the teacher's splace.go stick uses.
func NewJoystick(index int) (Source, error) {
	device := joysticks.Connect(index)
	if device == nil {
		return nil, fmt.Errorf("input: no joystick found at index %d", index)
	}

	s := &joystickSource{device: device}

	move := device.OnMove(1)
	aPress, aRelease := device.OnClose(1), device.OnOpen(1)
	bPress, bRelease := device.OnClose(2), device.OnOpen(2)
	selectPress, selectRelease := device.OnClose(7), device.OnOpen(7)
	startPress, startRelease := device.OnClose(8), device.OnOpen(8)

	go device.ParcelOutEvents()
	go func() {
		const deadzone = 0.5
		for {
			select {
			case ev := <-move:
				coords := ev.(joysticks.CoordsEvent)
				s.setAxis(coords.X, coords.Y, deadzone)
			case <-aPress:
				s.setButton(ButtonA, true)
			case <-aRelease:
				s.setButton(ButtonA, false)
			case <-bPress:
				s.setButton(ButtonB, true)
			case <-bRelease:
				s.setButton(ButtonB, false)
			case <-selectPress:
				s.setButton(ButtonSelect, true)
			case <-selectRelease:
				s.setButton(ButtonSelect, false)
			case <-startPress:
				s.setButton(ButtonStart, true)
			case <-startRelease:
				s.setButton(ButtonStart, false)
			}
		}
	}()

	return s, nil
}

func (s *joystickSource) setAxis(x, y float32, deadzone float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttons &^= ButtonUp | ButtonDown | ButtonLeft | ButtonRight
	if x < -deadzone {
		s.buttons |= ButtonLeft
	} else if x > deadzone {
		s.buttons |= ButtonRight
	}
	if y < -deadzone {
		s.buttons |= ButtonUp
	} else if y > deadzone {
		s.buttons |= ButtonDown
	}
}

func (s *joystickSource) setButton(bit uint8, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pressed {
		s.buttons |= bit
	} else {
		s.buttons &^= bit
	}
}

func (s *joystickSource) Poll(port int) uint8 {
	if port != 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buttons
}

func (s *joystickSource) Close() {}
