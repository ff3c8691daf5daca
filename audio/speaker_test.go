package audio

import "testing"

func TestNewNilBackendDiscardsSamples(t *testing.T) {
	s := New(Nil)
	if !s.Sample(0.75) {
		t.Fatalf("expected nil backend to always accept samples")
	}
	if !s.BufferReady() {
		t.Fatalf("expected nil backend to always report ready")
	}
	if s.SampleRate() != 44100 {
		t.Fatalf("expected 44100Hz, got %d", s.SampleRate())
	}
	s.Play()
	s.Reset()
	s.Stop()
}

func TestNewUnknownBackendPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected New with an unknown backend to panic")
		}
	}()
	New(Backend("not-a-real-backend"))
}

func TestNewWAVAccumulatesAndClampsSamples(t *testing.T) {
	path := t.TempDir() + "/out.wav"
	s := NewWAV(path)
	if !s.Sample(2.0) { // clamps to +1
		t.Fatalf("expected wav backend to accept samples")
	}
	if !s.Sample(-2.0) { // clamps to -1
		t.Fatalf("expected wav backend to accept samples")
	}
	s.Stop()
}
