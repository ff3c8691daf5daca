package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// beepSpeaker is grounded on lib/speakers/speaker_beep.go, kept nearly
// verbatim aside from using this package's ring buffer.
type beepSpeaker struct {
	sampleRate beep.SampleRate
	chunkSize  int
	buf        *ring
}

func (s *beepSpeaker) Init() {
	s.sampleRate = beep.SampleRate(44100)
	s.buf = newRing(s.sampleRate.N(time.Second) / 10)
	s.chunkSize = s.sampleRate.N(time.Second / 100)
	speaker.Init(s.sampleRate, s.chunkSize)
}

func (s *beepSpeaker) Play() { speaker.Play(s.stream()) }
func (s *beepSpeaker) Reset() {}
func (s *beepSpeaker) Stop() {
	if s.sampleRate != 0 {
		speaker.Close()
	}
}
func (s *beepSpeaker) BufferReady() bool {
	return s.buf.available() > int(float64(s.chunkSize)*1.5)
}
func (s *beepSpeaker) Sample(value float64) bool {
	if s.buf.write(value) != nil {
		_, _ = s.buf.read()
		return false
	}
	return true
}
func (s *beepSpeaker) SampleRate() int { return int(s.sampleRate) }
func (s *beepSpeaker) stream() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		return s.buf.readIntoStereo(samples), true
	})
}
