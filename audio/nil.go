package audio

// nilSpeaker discards every sample: the default for headless runs and
// conformance test harnesses that don't want a real audio device.
type nilSpeaker struct{}

func (s *nilSpeaker) Init()                {}
func (s *nilSpeaker) Reset()               {}
func (s *nilSpeaker) Stop()                {}
func (s *nilSpeaker) Play()                {}
func (s *nilSpeaker) Sample(float64) bool  { return true }
func (s *nilSpeaker) SampleRate() int      { return 44100 }
func (s *nilSpeaker) BufferReady() bool    { return true }
