package cpu

import "testing"

type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read8(addr uint16) uint8        { return b.mem[addr] }
func (b *testBus) Write8(addr uint16, val uint8)  { b.mem[addr] = val }
func (b *testBus) Read16(addr uint16) uint16 {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8
}

func newTestCPU(resetVector uint16) (*Cpu, *testBus) {
	bus := &testBus{}
	bus.mem[0xFFFC] = uint8(resetVector)
	bus.mem[0xFFFD] = uint8(resetVector >> 8)
	return New(bus), bus
}

func TestResetVector(t *testing.T) {
	c, _ := newTestCPU(0x8000)
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#x, want 0xFD", c.SP)
	}
	if !c.getFlag(flagI) {
		t.Fatal("I flag should be set after reset")
	}
}

func TestLDAImmediateSetsZN(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00
	c.Step()
	if c.A != 0 || !c.getFlag(flagZ) {
		t.Fatalf("A=%#x Z=%v, want 0/true", c.A, c.getFlag(flagZ))
	}

	c, bus = newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9
	bus.mem[0x8001] = 0x80
	c.Step()
	if !c.getFlag(flagN) {
		t.Fatal("N flag should be set for 0x80")
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$7F
	bus.mem[0x8001] = 0x7F
	bus.mem[0x8002] = 0x69 // ADC #$01
	bus.mem[0x8003] = 0x01
	c.Step()
	c.Step()
	if c.A != 0x80 {
		t.Fatalf("A = %#x, want 0x80", c.A)
	}
	if !c.getFlag(flagV) {
		t.Fatal("overflow should be set (0x7F+0x01 signed overflow)")
	}
	if c.getFlag(flagC) {
		t.Fatal("carry should be clear")
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xBD // LDA $80FF,X
	bus.mem[0x8001] = 0xFF
	bus.mem[0x8002] = 0x80
	c.X = 0x01 // crosses into $8100
	cycles := c.Step()
	if cycles != 5 {
		t.Fatalf("cycles = %d, want 5 (4 base + 1 page cross)", cycles)
	}
}

func TestBranchTakenAddsCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xF0 // BEQ +2
	bus.mem[0x8001] = 0x02
	c.setFlag(flagZ, true)
	cycles := c.Step()
	if cycles != 3 {
		t.Fatalf("cycles = %d, want 3 (2 base + 1 taken)", cycles)
	}
	if c.PC != 0x8004 {
		t.Fatalf("PC = %#x, want 0x8004", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %#x, want 0x9000", c.PC)
	}
	c.Step()
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#x, want 0x8003", c.PC)
	}
}

func TestPHPSetsBreakBitPLPDiscardsIt(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x08 // PHP
	bus.mem[0x8001] = 0x28 // PLP
	c.Step()
	pushed := bus.mem[0x0100+uint16(0xFD)]
	if pushed&flagB == 0 {
		t.Fatal("PHP should push with B set")
	}
	c.Step()
	if c.P&flagB != 0 {
		t.Fatal("P should never carry B as live state")
	}
}

func TestIndirectXWrapsWithinZeroPage(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.X = 0x01
	bus.mem[0x8000] = 0xA1 // LDA ($FF,X)
	bus.mem[0x8001] = 0xFF
	// pointer is ($FF+1)=$00 -> wraps, reads lo from $00, hi from $01
	bus.mem[0x0000] = 0x34
	bus.mem[0x0001] = 0x12
	bus.mem[0x1234] = 0x99
	c.Step()
	if c.A != 0x99 {
		t.Fatalf("A = %#x, want 0x99", c.A)
	}
}

func TestNMIHijacksIRQ(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x90
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0xA0
	c.setFlag(flagI, false)
	c.SetIRQLine(true)
	c.RequestNMI()
	c.Step()
	if c.PC != 0xA000 {
		t.Fatalf("PC = %#x, want 0xA000 (NMI vector)", c.PC)
	}
}
