package apu

import "testing"

func TestPulseLengthCounterMutesAtZero(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01) // enable pulse 1
	a.WriteRegister(0x4000, 0x1F) // duty/const volume, halt clear
	a.WriteRegister(0x4002, 0x00)
	a.WriteRegister(0x4003, 0x00) // loads length counter, non-zero

	if !a.Pulse1.LengthActive() {
		t.Fatalf("expected length counter active after $4003 write")
	}

	for i := 0; i < 400; i++ {
		a.Pulse1.HalfFrameTick()
	}
	if a.Pulse1.LengthActive() {
		t.Fatalf("expected length counter to reach zero after many half-frame ticks")
	}
}

func TestStatusReadReflectsChannelEnables(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x0F)
	a.WriteRegister(0x4000, 0x30)
	a.WriteRegister(0x4003, 0x08)
	a.WriteRegister(0x4008, 0x80)
	a.WriteRegister(0x400B, 0x08)

	status := a.ReadRegister(0x4015)
	if status&0x01 == 0 {
		t.Fatalf("expected pulse1 length-active bit set, got %08b", status)
	}
}

func TestFrameCounterWriteDisablesIRQAndClearsFlag(t *testing.T) {
	a := New()
	a.frameIRQ = true
	a.WriteRegister(0x4017, 0x40) // IRQ inhibit, 4-step mode
	for i := 0; i < 6; i++ {
		a.Tick()
	}
	if a.frameIRQ {
		t.Fatalf("expected frame IRQ cleared once the inhibit write takes effect")
	}
}

func TestFiveStepModeClocksImmediately(t *testing.T) {
	a := New()
	a.WriteRegister(0x4008, 0x85) // linear counter reload value 5
	a.WriteRegister(0x400B, 0x08)
	before := a.Triangle.linearCnt.counter

	a.WriteRegister(0x4017, 0x80) // five-step mode
	for i := 0; i < 6; i++ {
		a.Tick()
	}

	if a.Triangle.linearCnt.counter == before {
		t.Fatalf("expected five-step mode write to clock quarter/half frame units immediately")
	}
}

func TestMixerSilentWhenAllChannelsQuiet(t *testing.T) {
	a := New()
	if got := a.Sample(); got != 0 {
		t.Fatalf("expected silent mixer output with no channels configured, got %v", got)
	}
}

func TestDMCSampleFetchInvokesStallHook(t *testing.T) {
	d := &DMC{Bus: constBus(0xAA)}
	d.Init()
	stalled := false
	d.StallCPU = func(cycles int) { stalled = true }
	d.Write8(0x4012, 0)
	d.Write8(0x4013, 0)
	d.Write8(0x4010, 0x00)
	d.SetEnabled(true)

	for i := 0; i < 500 && !stalled; i++ {
		d.Tick()
	}
	if !stalled {
		t.Fatalf("expected DMC to stall the CPU on its first sample refetch")
	}
}

func TestDMCRaisesIRQOnSampleEndWithoutLoop(t *testing.T) {
	d := &DMC{Bus: constBus(0xFF)}
	d.Init()
	d.Write8(0x4010, 0x80) // IRQ enable, no loop, slowest rate
	d.Write8(0x4012, 0)    // sample addr $C000
	d.Write8(0x4013, 0)    // shortest sample length (1 byte)
	d.SetEnabled(true)

	for i := 0; i < 2000 && !d.irqPending; i++ {
		d.Tick()
	}
	if !d.irqPending {
		t.Fatalf("expected DMC to raise its IRQ flag once a non-looping sample completes")
	}

	d.Write8(0x4010, 0x00) // disabling IRQ enable clears the flag
	if d.irqPending {
		t.Fatalf("expected clearing IRQ enable to clear the pending flag")
	}
}

type constBus uint8

func (c constBus) Read8(addr uint16) uint8 { return uint8(c) }
