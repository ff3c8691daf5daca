package audio

import "github.com/gordonklaus/portaudio"

// portAudioSpeaker is grounded on lib/speakers/speaker_port.go, kept
// nearly verbatim aside from using this package's ring buffer.
type portAudioSpeaker struct {
	buf     *ring
	playing bool
	stream  *portaudio.Stream
}

func (s *portAudioSpeaker) Init() {
	must(portaudio.Initialize())
	h, err := portaudio.DefaultHostApi()
	must(err)
	p := portaudio.HighLatencyParameters(nil, h.DefaultOutputDevice)
	p.Output.Channels = 1
	s.stream, err = portaudio.OpenStream(p, s.processAudio)
	must(err)
	s.buf = newRing(int(p.SampleRate))
}

func (s *portAudioSpeaker) Reset() {
	if s.playing {
		must(s.stream.Stop())
		must(s.stream.Start())
	}
}
func (s *portAudioSpeaker) Play() {
	must(s.stream.Start())
	s.playing = true
}
func (s *portAudioSpeaker) Stop() {
	_ = s.stream.Close()
	s.playing = false
}
func (s *portAudioSpeaker) BufferReady() bool {
	return s.buf.available() > int(s.stream.Info().SampleRate*0.3)
}
func (s *portAudioSpeaker) Sample(value float64) bool {
	return s.buf.write(value) == nil
}
func (s *portAudioSpeaker) SampleRate() int {
	return int(s.stream.Info().SampleRate)
}
func (s *portAudioSpeaker) processAudio(out []float32) {
	_ = s.buf.readInto(out)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
