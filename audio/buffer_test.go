package audio

import "testing"

func TestRingWriteReadRoundTrips(t *testing.T) {
	r := newRing(4)
	if err := r.write(0.5); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := r.write(-0.25); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n := r.available(); n != 2 {
		t.Fatalf("expected 2 available samples, got %d", n)
	}
	v, err := r.read()
	if err != nil || v != 0.5 {
		t.Fatalf("expected first sample 0.5, got %v err=%v", v, err)
	}
	v, err = r.read()
	if err != nil || v != -0.25 {
		t.Fatalf("expected second sample -0.25, got %v err=%v", v, err)
	}
	if !r.empty() {
		t.Fatalf("expected buffer to be empty after draining")
	}
}

func TestRingWriteFailsWhenFull(t *testing.T) {
	r := newRing(3) // holds 2 usable slots
	if err := r.write(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.write(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.write(3); err == nil {
		t.Fatalf("expected write to a full ring buffer to fail")
	}
}

func TestRingReadFailsWhenEmpty(t *testing.T) {
	r := newRing(4)
	if _, err := r.read(); err == nil {
		t.Fatalf("expected read from an empty ring buffer to fail")
	}
}

func TestRingReadIntoStereoDuplicatesMonoSample(t *testing.T) {
	r := newRing(8)
	_ = r.write(0.1)
	_ = r.write(0.2)
	dst := make([][2]float64, 2)
	n := r.readIntoStereo(dst)
	if n != 2 {
		t.Fatalf("expected 2 samples read, got %d", n)
	}
	if dst[0][0] != 0.1 || dst[0][1] != 0.1 {
		t.Fatalf("expected mono sample duplicated to both channels, got %v", dst[0])
	}
	if dst[1][0] != 0.2 || dst[1][1] != 0.2 {
		t.Fatalf("expected mono sample duplicated to both channels, got %v", dst[1])
	}
}

func TestRingAvailableWrapsAroundCorrectly(t *testing.T) {
	r := newRing(4)
	_ = r.write(1)
	_ = r.write(2)
	_ = r.write(3)
	_, _ = r.read()
	_, _ = r.read()
	_ = r.write(4)
	_ = r.write(5)
	if n := r.available(); n != 3 {
		t.Fatalf("expected 3 available samples after wraparound, got %d", n)
	}
}
