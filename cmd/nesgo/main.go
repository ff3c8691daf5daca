// Command nesgo is the CLI harness around the core: it is explicitly
// outside the emulation core per spec.md §1, wiring a cartridge file and
// a chosen audio/video/input backend set into one running console.
//
// Grounded on the root main.go's flag-based shape (CartPath/Verbose),
// generalized with backend-selection flags the teacher's single-backend
// main.go never needed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/nesgo/nesgo/audio"
	"github.com/nesgo/nesgo/cmd/nesgo/debugoverlay"
	"github.com/nesgo/nesgo/input"
	"github.com/nesgo/nesgo/nes"
	"github.com/nesgo/nesgo/video"
)

func main() {
	romPath := flag.String("rom", "", "path to the iNES ROM file to run")
	verbose := flag.Bool("verbose", false, "enable verbose core tracing")
	spriteLimit := flag.Bool("sprite-limit", true, "enforce the real 8-sprites-per-scanline hardware cap")
	videoBackend := flag.String("video", string(video.PixelGL), "video backend: pixelgl, sdl2gl, png, nil")
	pngDir := flag.String("png-dir", "frames", "output directory for the png video backend")
	audioBackend := flag.String("audio", string(audio.Beep), "audio backend: beep, oto, portaudio, wav, nil")
	wavPath := flag.String("wav-path", "session.wav", "output file for the wav audio backend")
	inputBackend := flag.String("input", "keys", "controller backend: keys, term, joystick, none")
	debug := flag.Bool("debug", false, "overlay a read-only register/VRAM inspector (sdl2gl backend only)")
	flag.Parse()

	if err := validROMPath(*romPath); err != nil {
		fmt.Fprintf(os.Stderr, "nesgo: %v\n", err)
		os.Exit(1)
	}

	display := newDisplay(video.Backend(*videoBackend), *pngDir)
	speaker := newSpeaker(audio.Backend(*audioBackend), *wavPath)
	source := newInputSource(*inputBackend, display)

	emu, err := nes.New(
		nes.CartridgeFile(*romPath),
		nes.Verbose(*verbose),
		nes.SpriteLimit(*spriteLimit),
		nes.FrameSink(display),
		nes.AudioSink(func(sample float64) { speaker.Sample(sample) }),
		withControllerSource(source),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nesgo: failed to start: %v\n", err)
		os.Exit(1)
	}
	addRecentROM(*romPath)

	var overlay *debugoverlay.Overlay
	if *debug {
		var err error
		overlay, err = debugoverlay.New(display)
		if err != nil {
			glog.Warningf("nesgo: debug overlay unavailable: %v", err)
		} else {
			defer overlay.Close()
		}
	}

	speaker.Play()
	defer speaker.Stop()
	defer display.Close()
	if source != nil {
		defer source.Close()
	}

	glog.V(1).Infof("nesgo: running %s", *romPath)
	for !display.Closed() {
		if err := emu.StepFrame(); err != nil {
			glog.Errorf("nesgo: emulation halted: %v", err)
			break
		}
		if overlay != nil {
			overlay.Render(emu)
		}
	}
}

func validROMPath(path string) error {
	if path == "" {
		return fmt.Errorf("no -rom path given")
	}
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("rom path %q does not exist or is not valid: %w", path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("rom path %q points to a directory", path)
	}
	return nil
}

func newDisplay(backend video.Backend, pngDir string) video.Display {
	if backend == video.PNG {
		return video.NewPNGSink(pngDir)
	}
	return video.New(backend)
}

func newSpeaker(backend audio.Backend, wavPath string) audio.Speaker {
	if backend == audio.WAV {
		return audio.NewWAV(wavPath)
	}
	return audio.New(backend)
}

func newInputSource(name string, display video.Display) input.Source {
	var (
		src input.Source
		err error
	)
	switch name {
	case "keys":
		src = input.NewKeys(display)
	case "term":
		src, err = input.NewTerm()
	case "joystick":
		src, err = input.NewJoystick(1)
	case "none":
		return nil
	default:
		fmt.Fprintf(os.Stderr, "nesgo: unknown input backend %q, falling back to keys\n", name)
		src = input.NewKeys(display)
	}
	if err != nil {
		glog.Warningf("nesgo: failed to start %q input backend: %v", name, err)
		return nil
	}
	return src
}

// withControllerSource adapts an input.Source (or nil) into an
// nes.Option; a nil source leaves the emulator without a controller
// source instead of calling nes.ControllerSource.
func withControllerSource(src input.Source) nes.Option {
	return func(e *nes.Emulator) error {
		if src == nil {
			return nil
		}
		return nes.ControllerSource(src)(e)
	}
}
