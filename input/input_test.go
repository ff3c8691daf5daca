package input

import "testing"

func TestTermSourcePollClearsStateAfterRead(t *testing.T) {
	s := &termSource{state: ButtonUp}
	if got := s.Poll(0); got != ButtonUp {
		t.Fatalf("expected ButtonUp, got %08b", got)
	}
	if got := s.Poll(0); got != 0 {
		t.Fatalf("expected state cleared after one read, got %08b", got)
	}
}

func TestTermSourcePollIgnoresPortOne(t *testing.T) {
	s := &termSource{state: ButtonA}
	if got := s.Poll(1); got != 0 {
		t.Fatalf("expected port 1 to read no buttons, got %08b", got)
	}
}

func TestJoystickSourceSetButtonTogglesBit(t *testing.T) {
	s := &joystickSource{}
	s.setButton(ButtonA, true)
	if s.Poll(0)&ButtonA == 0 {
		t.Fatalf("expected ButtonA set")
	}
	s.setButton(ButtonA, false)
	if s.Poll(0)&ButtonA != 0 {
		t.Fatalf("expected ButtonA cleared")
	}
}

func TestJoystickSourceSetAxisMapsDeadzoneToDPad(t *testing.T) {
	s := &joystickSource{}
	s.setAxis(-0.9, 0.9, 0.5)
	got := s.Poll(0)
	if got&ButtonLeft == 0 || got&ButtonDown == 0 {
		t.Fatalf("expected Left+Down for (-0.9, 0.9), got %08b", got)
	}
	if got&ButtonRight != 0 || got&ButtonUp != 0 {
		t.Fatalf("expected no Right/Up for (-0.9, 0.9), got %08b", got)
	}

	s.setAxis(0, 0, 0.5) // back inside the deadzone clears the D-pad
	got = s.Poll(0)
	if got&(ButtonUp|ButtonDown|ButtonLeft|ButtonRight) != 0 {
		t.Fatalf("expected D-pad cleared inside deadzone, got %08b", got)
	}
}

func TestButtonBitsAreDistinctPowersOfTwo(t *testing.T) {
	bits := []uint8{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	seen := uint8(0)
	for _, b := range bits {
		if b&(b-1) != 0 {
			t.Fatalf("expected %08b to be a single bit", b)
		}
		if seen&b != 0 {
			t.Fatalf("expected %08b to be distinct from earlier bits, got overlap in %08b", b, seen)
		}
		seen |= b
	}
}
