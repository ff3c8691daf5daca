package bus

import "testing"

type fakePPU struct {
	reg     [8]uint8
	oam     [256]uint8
	oamAddr uint8
}

func (p *fakePPU) ReadRegister(addr uint16) uint8        { return p.reg[addr%8] }
func (p *fakePPU) WriteRegister(addr uint16, val uint8)  { p.reg[addr%8] = val }
func (p *fakePPU) OAMWrite(index uint8, val uint8)       { p.oam[index] = val }
func (p *fakePPU) OAMAddr() uint8                        { return p.oamAddr }

type fakeAPU struct{ last uint8 }

func (a *fakeAPU) ReadRegister(addr uint16) uint8       { return a.last }
func (a *fakeAPU) WriteRegister(addr uint16, val uint8) { a.last = val }

type fakeCart struct{ rom [0x4000]uint8 }

func (c *fakeCart) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	return c.rom[addr%0x4000], true
}
func (c *fakeCart) CPUWrite(addr uint16, val uint8) {}

func newTestBus() (*Bus, *fakePPU) {
	b := New()
	ppu := &fakePPU{}
	b.PPU = ppu
	b.APU = &fakeAPU{}
	b.Cart = &fakeCart{}
	return b, ppu
}

func TestRAMMirroring(t *testing.T) {
	b, _ := newTestBus()
	b.Write8(0x0000, 0x42)
	if got := b.Read8(0x0800); got != 0x42 {
		t.Fatalf("mirrored RAM read = %#x, want 0x42", got)
	}
	if got := b.Read8(0x1800); got != 0x42 {
		t.Fatalf("mirrored RAM read = %#x, want 0x42", got)
	}
}

func TestOpenBus(t *testing.T) {
	b, _ := newTestBus()
	b.Write8(0x4000, 0x99) // APU register, write-only in our fake
	if got := b.Read8(0x4001); got != 0x99 {
		t.Fatalf("open bus read = %#x, want 0x99", got)
	}
}

func TestControllerStrobeAndShift(t *testing.T) {
	b, _ := newTestBus()
	b.Ctrl.SetButtons(0, 0x55) // 01010101
	b.Write8(0x4016, 1)
	b.Write8(0x4016, 0) // falling edge latches
	var bits []uint8
	for i := 0; i < 8; i++ {
		bits = append(bits, b.Read8(0x4016)&1)
	}
	want := [8]uint8{1, 0, 1, 0, 1, 0, 1, 0}
	for i, bit := range bits {
		if bit != want[i] {
			t.Fatalf("bit %d = %d, want %d", i, bit, want[i])
		}
	}
	if got := b.Read8(0x4016) & 1; got != 1 {
		t.Fatalf("9th read = %d, want all-ones (1)", got)
	}
}

func TestOAMDMA(t *testing.T) {
	b, ppu := newTestBus()
	for i := 0; i < 256; i++ {
		b.RAM[i] = uint8(i)
	}
	b.Write8(0x4014, 0x00) // page 0, RAM mirrors into $0000-$07FF
	cycle := uint64(0)
	for b.TickDMA(cycle) {
		cycle++
	}
	if ppu.oam[10] != 10 {
		t.Fatalf("oam[10] = %d, want 10", ppu.oam[10])
	}
}
