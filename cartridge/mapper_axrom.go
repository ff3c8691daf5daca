package cartridge

// axrom is mapper 7: 32 KiB PRG bank switching with single-screen
// mirroring, the selectable bank coming from the same register write.
//
// New: no teacher file covers AxROM. Grounded on spec.md §4.5's policy
// description and nametable.go's mirroring-mode enum, extended to
// SingleScreenA/B as noted in SPEC_FULL.md §12.
type axrom struct {
	cart *Cartridge
	bank int
	screen Mirroring
}

func newAxROM(c *Cartridge) *axrom { return &axrom{cart: c, screen: SingleScreenA} }

func (m *axrom) Reset()           { m.bank = 0; m.screen = SingleScreenA }
func (m *axrom) CPUTick()         {}
func (m *axrom) OnPPUA12Rise()    {}
func (m *axrom) IRQPending() bool { return false }
func (m *axrom) Mirroring() Mirroring { return m.screen }

func (m *axrom) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	off := m.bank*0x8000 + int(addr-0x8000)
	return m.cart.PRGROM[off%len(m.cart.PRGROM)], true
}

func (m *axrom) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		return
	}
	m.bank = int(val&0x07) % (len(m.cart.PRGROM) / 0x8000)
	if val&0x10 != 0 {
		m.screen = SingleScreenB
	} else {
		m.screen = SingleScreenA
	}
}

func (m *axrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(m.cart.CHRROM) {
		return m.cart.CHRROM[addr]
	}
	return 0
}

func (m *axrom) PPUWrite(addr uint16, val uint8) {
	if m.cart.Info.HasCHRRAM && int(addr) < len(m.cart.CHRROM) {
		m.cart.CHRROM[addr] = val
	}
}
