package apu

// Package-level frame-sequencer cycle tables: the quarter/half-frame
// clock points in APU cycles (one APU cycle = two CPU cycles) for the
// 4-step and 5-step $4017 modes.
var frameSeq4Step = [4]uint16{3728, 7456, 11185, 14914}
var frameSeq5Step = [5]uint16{3728, 7456, 11185, 14914, 18640}

// Apu is the top-level 2A03 sound chip: two pulse channels, triangle,
// noise, DMC, the frame sequencer driving their envelope/sweep/length/
// linear counters, and the nonlinear two-group mixer.
//
// Entirely new: the teacher's nes/apu.go only wires Pulse1 end to end and
// never builds a frame sequencer, $4015/$4017 register pair, or mixer.
// Built from scratch against spec.md §4.4's frame-sequencer cycle table
// and two-group nonlinear mixer formula, reusing the channel types above.
type Apu struct {
	Pulse1   Pulse
	Pulse2   Pulse
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	cpuCycle    uint64
	apuStep     uint16 // cycles since last sequencer reset, in CPU cycles
	fiveStep    bool
	irqInhibit  bool
	frameIRQ    bool
	pendingMode int8 // -1 = no pending $4017 reset; else cycles until reset fires
	pendingVal  uint8

	// IRQLine, when set, receives the channel's level-triggered IRQ
	// state every tick so the bus/CPU can OR it into the shared IRQ line.
	IRQLine func(active bool)
}

func New() *Apu {
	a := &Apu{pendingMode: -1}
	a.Pulse1.Init(true)
	a.Pulse2.Init(false)
	a.Triangle.Init()
	a.Noise.Init()
	a.DMC.Init()
	return a
}

// Tick advances the APU by one CPU cycle. The triangle's sequencer is
// clocked every CPU cycle; the pulse/noise/DMC timers are clocked every
// other CPU cycle (one APU cycle), matching the real chip's internal
// clock divider.
func (a *Apu) Tick() {
	a.Triangle.Tick()
	if a.cpuCycle%2 == 0 {
		a.Pulse1.Tick()
		a.Pulse2.Tick()
		a.Noise.Tick()
		a.DMC.Tick()
	}

	a.tickFrameSequencer()
	a.cpuCycle++

	if a.pendingMode >= 0 {
		if a.pendingMode == 0 {
			a.applyFrameCounterWrite(a.pendingVal)
			a.pendingMode = -1
		} else {
			a.pendingMode--
		}
	}

	if a.IRQLine != nil {
		a.IRQLine(a.frameIRQ || a.DMC.irqPending)
	}
}

func (a *Apu) tickFrameSequencer() {
	table := frameSeq4Step[:]
	if a.fiveStep {
		table = frameSeq5Step[:]
	}

	a.apuStep++
	step := a.apuStep / 2
	half := a.apuStep%2 == 0

	for i, point := range table {
		if step != point || !half {
			continue
		}
		// Quarter-frame clock fires on every sequencer step.
		a.quarterFrameClock()
		last := i == len(table)-1
		if !a.fiveStep && (i == 1 || last) {
			a.halfFrameClock()
		}
		if a.fiveStep && (i == 1 || i == 4) {
			a.halfFrameClock()
		}
		if !a.fiveStep && last && !a.irqInhibit {
			a.frameIRQ = true
		}
		if last {
			a.apuStep = 0
		}
		return
	}
}

func (a *Apu) quarterFrameClock() {
	a.Pulse1.QuarterFrameTick()
	a.Pulse2.QuarterFrameTick()
	a.Triangle.QuarterFrameTick()
	a.Noise.QuarterFrameTick()
}

func (a *Apu) halfFrameClock() {
	a.Pulse1.HalfFrameTick()
	a.Pulse2.HalfFrameTick()
	a.Triangle.HalfFrameTick()
	a.Noise.HalfFrameTick()
}

// ReadRegister handles $4015 only; the other APU addresses are write-only
// and the bus supplies open-bus for them.
func (a *Apu) ReadRegister(addr uint16) uint8 {
	if addr != 0x4015 {
		return 0
	}
	var v uint8
	if a.Pulse1.LengthActive() {
		v |= 0x01
	}
	if a.Pulse2.LengthActive() {
		v |= 0x02
	}
	if a.Triangle.LengthActive() {
		v |= 0x04
	}
	if a.Noise.LengthActive() {
		v |= 0x08
	}
	if a.DMC.LengthActive() {
		v |= 0x10
	}
	if a.frameIRQ {
		v |= 0x40
	}
	if a.DMC.irqPending {
		v |= 0x80
	}
	a.frameIRQ = false
	return v
}

func (a *Apu) WriteRegister(addr uint16, val uint8) {
	switch {
	case addr >= 0x4000 && addr <= 0x4003:
		a.Pulse1.Write8(addr, val)
	case addr >= 0x4004 && addr <= 0x4007:
		a.Pulse2.Write8(addr-4, val)
	case addr >= 0x4008 && addr <= 0x400B:
		a.Triangle.Write8(addr, val)
	case addr >= 0x400C && addr <= 0x400F:
		a.Noise.Write8(addr, val)
	case addr >= 0x4010 && addr <= 0x4013:
		a.DMC.Write8(addr, val)
	case addr == 0x4015:
		a.Pulse1.SetEnabled(val&0x01 != 0)
		a.Pulse2.SetEnabled(val&0x02 != 0)
		a.Triangle.SetEnabled(val&0x04 != 0)
		a.Noise.SetEnabled(val&0x08 != 0)
		a.DMC.SetEnabled(val&0x10 != 0)
	case addr == 0x4017:
		// A write takes effect 3 CPU cycles later on an even cycle, 4 on
		// an odd one, per the documented hardware reset-delay behavior.
		if a.cpuCycle%2 == 0 {
			a.pendingMode = 3
		} else {
			a.pendingMode = 4
		}
		a.pendingVal = val
	}
}

func (a *Apu) applyFrameCounterWrite(val uint8) {
	a.fiveStep = val&0x80 != 0
	a.irqInhibit = val&0x40 != 0
	if a.irqInhibit {
		a.frameIRQ = false
	}
	a.apuStep = 0
	if a.fiveStep {
		a.quarterFrameClock()
		a.halfFrameClock()
	}
}

// Sample mixes all five channels via the nonlinear two-group formula:
// pulses sum through one lookup curve, triangle/noise/DMC sum through a
// second, independently-curved one.
func (a *Apu) Sample() float64 {
	p1 := a.Pulse1.Sample()
	p2 := a.Pulse2.Sample()
	t := a.Triangle.Sample()
	n := a.Noise.Sample()
	d := a.DMC.Sample()

	var pulseOut float64
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/(p1+p2) + 100)
	}
	var tndOut float64
	tndSum := t/8227 + n/12241 + d/22638
	if tndSum > 0 {
		tndOut = 159.79 / (1/tndSum + 100)
	}
	return pulseOut + tndOut
}
