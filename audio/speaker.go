// Package audio renders the apu package's mixed sample stream to a real
// output device, or discards/records it for headless use.
//
// Grounded on lib/speakers/speaker.go's AudioSpeaker interface and
// NewSpeaker factory, generalized per SPEC_FULL.md §11 to also cover a
// go-audio/wav file-capture backend alongside the teacher's beep/oto/
// portaudio/nil set.
package audio

// Backend names a Speaker implementation, passed to New or to the
// nes.AudioLibrary-style composition in cmd/nesgo.
type Backend string

const (
	Nil       Backend = "nil"
	Beep      Backend = "beep"
	PortAudio Backend = "portaudio"
	Oto       Backend = "oto"
	WAV       Backend = "wav"
)

// Speaker is the contract every backend satisfies: initialize a device
// (or file) at construction, accept samples as they're produced, and
// report whether enough are buffered to start playback without an
// underrun.
type Speaker interface {
	Init()
	Reset()
	Stop()
	Play()
	Sample(value float64) bool
	SampleRate() int
	BufferReady() bool
}

// New constructs and initializes the named backend. WAV requires a path,
// set via NewWAV directly; New(WAV) without one panics, matching the
// teacher's "Unknown speaker type!" panic-on-misuse convention for a
// constructor-time programming error rather than a runtime condition.
func New(backend Backend) Speaker {
	var s Speaker
	switch backend {
	case Nil:
		s = new(nilSpeaker)
	case Beep:
		s = new(beepSpeaker)
	case PortAudio:
		s = new(portAudioSpeaker)
	case Oto:
		s = new(otoSpeaker)
	default:
		panic("audio: unknown backend " + string(backend))
	}
	s.Init()
	return s
}
