package audio

import "github.com/hajimehoshi/oto"

// otoSpeaker is grounded on lib/speakers/speaker_oto.go, kept nearly
// verbatim aside from using this package's ring buffer.
type otoSpeaker struct {
	sampleRate int
	chunkSize  int
	buf        *ring

	samples [][2]float64
	raw     []byte
	context *oto.Context
	player  *oto.Player
}

func (s *otoSpeaker) Init() {
	s.sampleRate = 44100
	s.buf = newRing(s.sampleRate / 10)
	s.chunkSize = s.sampleRate / 100

	numBytes := s.chunkSize * 4
	s.samples = make([][2]float64, s.chunkSize)
	s.raw = make([]byte, numBytes)
	s.context, _ = oto.NewContext(s.sampleRate, 2, 2, numBytes)
}

func (s *otoSpeaker) Play()  { s.player = s.context.NewPlayer() }
func (s *otoSpeaker) Reset() {}
func (s *otoSpeaker) Stop() {
	s.player.Close()
	s.context.Close()
	s.player = nil
}
func (s *otoSpeaker) BufferReady() bool {
	return s.buf.available() > int(float64(s.chunkSize)*1.5)
}
func (s *otoSpeaker) Sample(value float64) bool {
	if s.buf.write(value) != nil {
		_, _ = s.buf.read()
		return false
	}
	if s.buf.available() > 2048 && s.player != nil {
		s.buf.readIntoStereo(s.samples)
		go s.flush()
	}
	return true
}
func (s *otoSpeaker) SampleRate() int { return s.sampleRate }

func (s *otoSpeaker) flush() {
	for i := range s.samples {
		for c := range s.samples[i] {
			v := s.samples[i][c]
			if v < -1 {
				v = -1
			}
			if v > 1 {
				v = 1
			}
			asInt16 := int16(v * (1<<15 - 1))
			s.raw[i*4+c*2+0] = byte(asInt16)
			s.raw[i*4+c*2+1] = byte(asInt16 >> 8)
		}
	}
	s.player.Write(s.raw)
}
