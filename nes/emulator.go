// Package nes wires the cpu, ppu, apu, bus and cartridge packages into a
// single runnable console: a composition root, not a hardware component
// of its own.
//
// Grounded on lib/nesInternal/nes.go, the most architecturally mature of
// the teacher's three overlapping top-level attempts (nes/nes.go,
// lib/nesInternal/nes.go, and the root main.go/types.go): its Step/
// bus-ID-constant/mapper-wiring shape is kept, generalized across the
// now-separate packages instead of one shared struct's fields. Save/load
// state (gob-based Serialise/DeSerialise in the teacher) is dropped,
// since savestate format is an explicit non-goal.
package nes

import (
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/nesgo/nesgo/apu"
	"github.com/nesgo/nesgo/bus"
	"github.com/nesgo/nesgo/cartridge"
	"github.com/nesgo/nesgo/cpu"
	"github.com/nesgo/nesgo/ppu"
	"github.com/nesgo/nesgo/romerr"
)

// NesBaseFrequency is the NTSC 2A03 clock, in Hz.
const NesBaseFrequency = 1789773

// Emulator owns one complete console: CPU, PPU, APU, bus and cartridge,
// wired together with the 1 CPU-cycle : 3 PPU-dot : 1 APU-cycle clock
// ratio and DMA-stall-aware stepping.
type Emulator struct {
	CPU *cpu.Cpu
	PPU *ppu.Ppu
	APU *apu.Apu
	Bus *bus.Bus
	Cart *cartridge.Cartridge

	cartPath         string
	verbose          bool
	spriteLimit      bool
	frameSink        ppu.FrameSink
	audioSink        func(sample float64)
	controllerSource ButtonSource

	// dmcStall counts CPU cycles still owed to the DMC channel's sample
	// refetch, mirroring OAM DMA's bus-stealing in miniature.
	dmcStall int
}

// New loads a cartridge and wires a complete console, ready for Reset.
func New(options ...Option) (*Emulator, error) {
	n := &Emulator{spriteLimit: true}
	if err := n.setOptions(options...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(n.cartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cartridge file: %w", err)
	}
	cart, err := cartridge.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load cartridge: %w", err)
	}
	n.Cart = cart

	n.Bus = bus.New()
	n.Bus.Cart = cart.Mapper

	n.PPU = ppu.New(mapperCart{cart.Mapper})
	n.PPU.SpriteLimit = n.spriteLimit
	n.PPU.Sink = n.frameSink
	n.Bus.PPU = n.PPU

	n.APU = apu.New()
	n.Bus.APU = n.APU

	n.CPU = cpu.New(n.Bus)
	n.CPU.Verbose = n.verbose

	n.PPU.NMI = func() { n.CPU.RequestNMI() }
	n.APU.IRQLine = func(active bool) { n.updateIRQLine(active) }
	n.APU.DMC.StallCPU = func(cycles int) { n.dmcStall += cycles }
	// Tick the PPU/APU from inside every CPU bus access instead of in a
	// lump sum after the whole instruction runs, so a mid-instruction
	// $2002/$2007 read observes PPU state as of its own exact cycle.
	n.CPU.OnCycle = n.tickPPUAndAPU

	n.Reset()
	glog.V(1).Infof("nes: loaded %v", cart)
	return n, nil
}

// updateIRQLine ORs the APU's level (frame IRQ or DMC IRQ) with the
// cartridge mapper's own IRQ line (MMC3's scanline counter): either can
// assert independently and the CPU only sees one combined level.
func (n *Emulator) updateIRQLine(apuActive bool) {
	n.CPU.SetIRQLine(apuActive || n.Cart.Mapper.IRQPending())
}

// Reset re-initializes every component to power-on/reset state.
func (n *Emulator) Reset() {
	n.Cart.Reset()
	n.PPU.Reset()
	*n.APU = *apu.New()
	n.APU.IRQLine = func(active bool) { n.updateIRQLine(active) }
	n.APU.DMC.StallCPU = func(cycles int) { n.dmcStall += cycles }
	n.Bus.APU = n.APU
	n.dmcStall = 0
	n.CPU.Reset()
}

// SetButtonState latches controller port (0 or 1)'s 8 button bits
// (A B Select Start Up Down Left Right, bit 0 to bit 7).
func (n *Emulator) SetButtonState(port int, buttons uint8) {
	n.Bus.Ctrl.SetButtons(port, buttons)
}

// StepInstruction first runs any pending OAM-DMA and DMC stall cycles to
// completion, then exactly one CPU instruction (or interrupt sequence),
// and returns the CPU cycles of that instruction; the stall cycles are
// not included in the count.
//
// Per the "runtime emulation never throws" contract, this is the single
// recover boundary for the rare InternalInvariant/InvalidAddress panic a
// mapper or the core might raise on a state it believes unreachable; such
// a panic is turned back into a returned *romerr.Error instead of
// crashing the host.
func (n *Emulator) StepInstruction() (cycles uint8, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*romerr.Error); ok {
				err = e
				return
			}
			err = romerr.New(romerr.InternalInvariant, "panic during step: %v", r)
		}
	}()
	cycles = n.stepInstruction()
	return cycles, nil
}

func (n *Emulator) stepInstruction() uint8 {
	var cycles uint8
	for {
		if n.Bus.DMA.Active() {
			n.tickOneCPUCycle()
			continue
		}
		if n.dmcStall > 0 {
			n.dmcStall--
			n.tickOneCPUCycle()
			continue
		}
		cycles = n.CPU.Step()
		break
	}
	return cycles
}

// tickOneCPUCycle advances everything by a single CPU cycle while DMA
// owns the bus: the CPU itself is stalled, but the PPU/APU/mapper still
// run and the DMA state machine advances one step.
func (n *Emulator) tickOneCPUCycle() {
	n.Bus.TickDMA(n.CPU.Cycles())
	n.tickPPUAndAPU()
}

func (n *Emulator) tickPPUAndAPU() {
	n.PPU.Step()
	n.PPU.Step()
	n.PPU.Step()
	n.Cart.Mapper.CPUTick()
	n.APU.Tick()
	if n.audioSink != nil {
		n.audioSink(n.APU.Sample())
	}
}

// mapperCart adapts a cartridge.Mapper to ppu.Cart: the two packages
// define their own Mirroring enum independently (same ordering/meaning),
// so the PPU-facing methods need a thin type conversion.
type mapperCart struct {
	cartridge.Mapper
}

func (m mapperCart) Mirroring() ppu.Mirroring {
	return ppu.Mirroring(m.Mapper.Mirroring())
}

// StepFrame runs CPU instructions until one full PPU frame has completed,
// polling the controller source (if any) once beforehand.
func (n *Emulator) StepFrame() error {
	if n.controllerSource != nil {
		n.SetButtonState(0, n.controllerSource.Poll(0))
		n.SetButtonState(1, n.controllerSource.Poll(1))
	}
	target := n.PPU.Frame() + 1
	for n.PPU.Frame() < target {
		if _, err := n.StepInstruction(); err != nil {
			return err
		}
	}
	return nil
}
