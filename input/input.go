// Package input supplies the controller button state the core's §6
// interface expects, polled once per frame by nes.Emulator's optional
// ButtonSource.
//
// Grounded on nes/screen.go's button table (the `keys` backend below),
// JetSetIlly-Gopher2600's own x/term-based terminal input
// (debugger/terminal/plainterm/plainterm.go, the `term` backend), and
// its splace/joysticks wrapper
// (hardware/peripherals/sticks/splace.go, the `joystick` backend).
package input

// Standard NES controller button bits, bit 0 to bit 7, matching the
// order bus.Controllers shifts them out in.
const (
	ButtonA uint8 = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Source is the interface nes.ButtonSource expects: Poll is called once
// per frame and returns the live 8-bit button state for the given
// controller port (0 or 1). Close releases whatever device or terminal
// mode the backend took over.
type Source interface {
	Poll(port int) uint8
	Close()
}
