package audio

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavSpeaker is new: nothing in the teacher's speaker set writes to a
// file, but go-audio/wav's Encoder is exactly the shape needed for a
// headless capture backend (conformance runs, recording a session's
// audio without a real output device). Samples accumulate in memory and
// flush to disk on Stop.
type wavSpeaker struct {
	path       string
	sampleRate int
	samples    []int

	file    *os.File
	encoder *wav.Encoder
}

// NewWAV constructs a capture backend that writes 16-bit mono PCM to
// path once Stop is called.
func NewWAV(path string) Speaker {
	s := &wavSpeaker{path: path, sampleRate: 44100}
	s.Init()
	return s
}

func (s *wavSpeaker) Init() {
	s.samples = s.samples[:0]
}

func (s *wavSpeaker) Reset() { s.samples = s.samples[:0] }
func (s *wavSpeaker) Play()  {}

func (s *wavSpeaker) Sample(value float64) bool {
	if value < -1 {
		value = -1
	}
	if value > 1 {
		value = 1
	}
	s.samples = append(s.samples, int(value*(1<<15-1)))
	return true
}

func (s *wavSpeaker) SampleRate() int   { return s.sampleRate }
func (s *wavSpeaker) BufferReady() bool { return true }

// Stop flushes every sample collected since Init/Reset to the WAV file.
func (s *wavSpeaker) Stop() {
	f, err := os.Create(s.path)
	if err != nil {
		return
	}
	defer f.Close()

	enc := wav.NewEncoder(f, s.sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{SampleRate: s.sampleRate, NumChannels: 1},
		Data:   s.samples,
	}
	_ = enc.Write(buf)
	_ = enc.Close()
}
