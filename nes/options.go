package nes

import (
	"fmt"

	"github.com/nesgo/nesgo/ppu"
)

// Grounded on nes_options.go and lib/nesInternal/nes_options.go's
// functional-options pattern (CartPath, Verbose, FreeRun, AudioLibrary,
// SpriteLimit, ...), kept as the same closure-returning shape and pared
// to the fields this Emulator actually has.

// Option configures an Emulator before it loads its cartridge.
type Option func(*Emulator) error

func (n *Emulator) setOptions(options ...Option) error {
	for i, option := range options {
		if err := option(n); err != nil {
			return fmt.Errorf("failed to apply emulator option index %d: %w", i, err)
		}
	}
	return nil
}

// CartridgeFile points the emulator at an iNES ROM on disk.
func CartridgeFile(path string) Option {
	return func(n *Emulator) error {
		n.cartPath = path
		return nil
	}
}

// Verbose turns on the CPU's per-instruction glog tracing (also on
// whenever glog's -v level is 2 or higher).
func Verbose(verbose bool) Option {
	return func(n *Emulator) error {
		n.verbose = verbose
		return nil
	}
}

// SpriteLimit toggles the PPU's real 8-sprites-per-scanline hardware cap.
// Defaults to true; false renders every in-range sprite instead.
func SpriteLimit(limit bool) Option {
	return func(n *Emulator) error {
		n.spriteLimit = limit
		return nil
	}
}

// FrameSink receives a completed video frame once per vblank.
func FrameSink(sink ppu.FrameSink) Option {
	return func(n *Emulator) error {
		n.frameSink = sink
		return nil
	}
}

// AudioSink receives one mixed sample per CPU cycle.
func AudioSink(sink func(sample float64)) Option {
	return func(n *Emulator) error {
		n.audioSink = sink
		return nil
	}
}

// ButtonSource supplies live button state for both controller ports,
// polled once per StepFrame call. The input package's keys/term/joystick
// backends all implement this.
type ButtonSource interface {
	Poll(port int) uint8
}

// ControllerSource wires a host-supplied button source, polled once per
// frame instead of requiring the host to call SetButtonState itself.
func ControllerSource(src ButtonSource) Option {
	return func(n *Emulator) error {
		n.controllerSource = src
		return nil
	}
}
