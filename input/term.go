package input

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// key->button mapping for the headless terminal backend: WASD for the
// D-pad, k/j for A/B and u/i standing in for Select/Start, since a raw
// terminal has no reliable modifier-key or arrow-key byte sequence
// without a full VT100 parser.
var termKeyTable = map[byte]uint8{
	'k': ButtonA,
	'j': ButtonB,
	'u': ButtonSelect,
	'i': ButtonStart,
	'w': ButtonUp,
	's': ButtonDown,
	'a': ButtonLeft,
	'd': ButtonRight,
}

// termSource is a headless ControllerSource for runs with no window:
// raw-mode stdin, one byte per keystroke, each held "pressed" for
// exactly the frame it arrives in. Grounded on
// debugger/terminal/plainterm/plainterm.go's use of golang.org/x/term
// for terminal-mode detection, generalized here to raw-mode reading
// (the teacher's own file only calls term.IsTerminal, never
// term.MakeRaw, since its terminal stays in cooked line-editing mode).
type termSource struct {
	fd       int
	oldState *term.State

	mu    sync.Mutex
	state uint8
}

// NewTerm puts stdin into raw mode and starts reading single-byte key
// events in the background. Call Close to restore the terminal.
func NewTerm() (Source, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	s := &termSource{fd: fd, oldState: oldState}
	go s.readLoop()
	return s, nil
}

func (s *termSource) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		bit, ok := termKeyTable[buf[0]]
		s.mu.Lock()
		if ok {
			s.state = bit
		} else {
			s.state = 0
		}
		s.mu.Unlock()
	}
}

func (s *termSource) Poll(port int) uint8 {
	if port != 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	s.state = 0
	return state
}

func (s *termSource) Close() {
	if s.oldState != nil {
		_ = term.Restore(s.fd, s.oldState)
	}
}
