// Package apu implements the 2A03's four original sound channels (Pulse
// x2, Triangle, Noise) plus the delta-modulation channel, the frame
// sequencer that clocks their envelope/sweep/length/linear counters, and
// the nonlinear two-group mixer that combines them into one sample.
//
// Grounded almost directly on nes/waves/common.go, the most complete and
// correct file found in the corpus for this concern: its duty/length
// tables and Envelope/Sweep/LinearCounter tick semantics are kept as-is,
// renamed into exported types for the package boundary. Savestate
// plumbing (Serialise/DeSerialise) is dropped per the Non-goal on
// savestate format.
package apu

type timerPeriodInterface interface {
	setPeriod(uint16)
	getPeriod() uint16
}

func durationCounterTable(load uint8) uint8 {
	table := [2][16]uint8{
		{10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14},
		{12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30},
	}
	return table[(load&0x10)>>4][load&0xF]
}

// DurationCounter is the "length counter" shared by every channel but
// the triangle's separate linear counter.
type DurationCounter struct {
	counter uint8
	halt    bool
}

func (d *DurationCounter) tick() {
	if !d.halt && d.counter > 0 {
		d.counter--
	}
}
func (d *DurationCounter) reset()              { d.counter, d.halt = 0, true }
func (d *DurationCounter) set(halt bool)       { d.halt = halt }
func (d *DurationCounter) reload(val uint8)    { d.counter = durationCounterTable(val) }
func (d *DurationCounter) mute() bool          { return d.counter == 0 }

// Timer is the noise/DMC channel's simple down-counting divider.
type Timer struct {
	clock  uint
	timer  uint16
	reload uint16
}

func (t *Timer) reset() { t.clock, t.timer, t.reload = 0, 0, 0 }
func (t *Timer) set(reload uint16) { t.reload = reload }
func (t *Timer) tick() bool {
	t.clock++
	if t.timer > 0 {
		t.timer--
		return false
	}
	t.timer = t.reload
	return true
}

// Sequencer drives the pulse/triangle duty-cycle waveform tables.
type Sequencer struct {
	clock  uint
	timer  uint16
	table  [][]uint8
	width  uint8
	row    uint8
	column uint8
	period timerPeriodInterface
}

func (s *Sequencer) init(table [][]uint8, period timerPeriodInterface) {
	s.table = table
	s.width = uint8(len(table[0]))
	s.column, s.row = 0, 0
	s.period = period
	s.reset()
}
func (s *Sequencer) reset()             { s.clock, s.timer = 0, 0 }
func (s *Sequencer) selectRow(row uint8) { s.row = row }
func (s *Sequencer) resetLow(value uint8) {
	s.period.setPeriod((s.period.getPeriod() & 0x700) | uint16(value))
}
func (s *Sequencer) resetHigh(value uint8) {
	s.period.setPeriod((s.period.getPeriod() & 0xFF) | (uint16(value) << 8))
}
func (s *Sequencer) tick() {
	s.clock++
	if s.timer > 0 {
		s.timer--
	} else {
		s.timer = s.period.getPeriod()
		s.column = (s.column + 1) % s.width
	}
}
func (s *Sequencer) value() uint8 { return s.table[s.row][s.column] }

// Envelope is the volume envelope generator shared by Pulse/Noise.
type Envelope struct {
	start   bool
	loop    bool
	divider uint8
	reload  uint8
	decay   uint8
}

func (e *Envelope) reset() { *e = Envelope{} }
func (e *Envelope) tick() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.reload
		return
	}
	if e.divider == 0 {
		e.divider = e.reload
		if e.decay > 0 {
			e.decay--
		} else if e.loop {
			e.decay = 15
		}
	} else {
		e.divider--
	}
}

// Sweep periodically adjusts a pulse channel's period up or down.
type Sweep struct {
	reload        bool
	enabled       bool
	negate        bool
	shift         uint8
	divider       uint8
	dividerReload uint8
	pulse         timerPeriodInterface

	// onesComplement is true for pulse channel 1 only: the two pulse
	// channels' adders are wired with different carry inputs, so pulse 1
	// computes -change-1 while pulse 2 computes -change.
	onesComplement bool
}

func (s *Sweep) init(pulse timerPeriodInterface, onesComplement bool) {
	s.pulse = pulse
	s.onesComplement = onesComplement
}
func (s *Sweep) tick() {
	if s.divider == 0 && s.enabled && !s.mute() {
		s.pulse.setPeriod(s.targetPeriod())
	}
	if s.divider == 0 || s.reload {
		s.reload = false
		s.divider = s.dividerReload
	} else {
		s.divider--
	}
}

// mute silences the channel when the adder's target period would
// overflow or undershoots the audible range, even with sweep disabled.
func (s *Sweep) mute() bool {
	return s.targetPeriod() > 0x7FF || s.targetPeriod() < 8
}
func (s *Sweep) targetPeriod() uint16 {
	raw := s.pulse.getPeriod()
	change := raw >> s.shift
	if !s.negate {
		return raw + change
	}
	if s.onesComplement {
		return raw - change - 1
	}
	return raw - change
}

// LinearCounter is the triangle channel's separate length mechanism,
// clocked every quarter frame instead of half frame.
type LinearCounter struct {
	counterReload uint8
	counter       uint8
	reload        bool
	control       bool
}

func (l *LinearCounter) reset()  { *l = LinearCounter{} }
func (l *LinearCounter) setup(control bool, reload uint8) {
	l.control, l.counterReload = control, reload
}
func (l *LinearCounter) start() { l.reload = true }
func (l *LinearCounter) tick() {
	if l.reload {
		l.counter = l.counterReload
	} else if l.counter > 0 {
		l.counter--
	}
	if !l.control {
		l.reload = false
	}
}
func (l *LinearCounter) mute() bool { return l.counter == 0 }
