package cartridge

// mmc3 is mapper 4. The register layout (bank select/data, mirroring,
// PRG-RAM protect, IRQ latch/reload/disable/enable) is adapted almost
// directly from lib/mappers/mapper_MMC3.go. That file's Tick() was an
// empty stub; the A12-rise-edge scanline IRQ counter with reload/latch
// semantics is new, built from spec.md §4.5 and driven by OnPPUA12Rise
// rather than a CPU tick, since the real hardware counts PPU address-line
// edges, not CPU cycles. Edge detection itself lives in the PPU, which is
// the only side that sees the full per-dot fetch address sequence.
type mmc3 struct {
	cart *Cartridge

	bankSelect    uint8
	prgRAMProtect uint8
	registers     [8]uint8

	prgBanks [4]uint32
	chrBanks [8]uint32

	mirror uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

func newMMC3(c *Cartridge) *mmc3 {
	m := &mmc3{cart: c}
	m.updateAllBanks()
	return m
}

func (m *mmc3) Reset() {
	*m = mmc3{cart: m.cart}
	m.updateAllBanks()
}

func (m *mmc3) CPUTick() {}

func (m *mmc3) IRQPending() bool { return m.irqPending }

func (m *mmc3) Mirroring() Mirroring {
	if m.mirror == 0 {
		return Vertical
	}
	return Horizontal
}

// OnPPUA12Rise clocks the scanline counter. The PPU calls this once per
// detected 0->1 transition of address bit 12, which happens roughly once
// per scanline while background/sprite fetches alternate pattern-table
// halves.
func (m *mmc3) OnPPUA12Rise() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.writeInner(addr, val)
	}
}

func (m *mmc3) writeInner(addr uint16, val uint8) {
	even := addr&1 == 0
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF && even:
		m.bankSelect = val
	case addr >= 0x8000 && addr <= 0x9FFF && !even:
		m.registers[m.bankSelect&7] = val
	case addr >= 0xA000 && addr <= 0xBFFF && even:
		m.mirror = val & 1
	case addr >= 0xA000 && addr <= 0xBFFF && !even:
		m.prgRAMProtect = val
	case addr >= 0xC000 && addr <= 0xDFFF && even:
		m.irqLatch = val
	case addr >= 0xC000 && addr <= 0xDFFF && !even:
		m.irqReload = true
	case addr >= 0xE000 && even:
		m.irqEnabled = false
		m.irqPending = false
	case addr >= 0xE000 && !even:
		m.irqEnabled = true
	}
	m.updateAllBanks()
}

func (m *mmc3) updateAllBanks() {
	m.updateCHRBanks()
	m.updatePRGBanks()
}

func (m *mmc3) bank(r int) uint32 { return uint32(m.registers[r]) }

func (m *mmc3) updateCHRBanks() {
	inverted := m.bankSelect&0x80 != 0
	lo, hi := 0, 4
	if inverted {
		lo, hi = 4, 0
	}
	m.chrBanks[lo+0] = (m.bank(0) &^ 1) * 0x400
	m.chrBanks[lo+1] = (m.bank(0) &^ 1) * 0x400 + 0x400
	m.chrBanks[lo+2] = (m.bank(1) &^ 1) * 0x400
	m.chrBanks[lo+3] = (m.bank(1) &^ 1) * 0x400 + 0x400
	m.chrBanks[hi+0] = m.bank(2) * 0x400
	m.chrBanks[hi+1] = m.bank(3) * 0x400
	m.chrBanks[hi+2] = m.bank(4) * 0x400
	m.chrBanks[hi+3] = m.bank(5) * 0x400
}

func (m *mmc3) updatePRGBanks() {
	total := uint32(len(m.cart.PRGROM))
	secondLast := total - 0x2000*2
	last := total - 0x2000
	swappable := m.bank(6) * 0x2000
	fixed := secondLast
	if m.bankSelect&0x40 != 0 {
		m.prgBanks[0] = fixed
		m.prgBanks[1] = m.bank(7) * 0x2000
		m.prgBanks[2] = swappable
		m.prgBanks[3] = last
	} else {
		m.prgBanks[0] = swappable
		m.prgBanks[1] = m.bank(7) * 0x2000
		m.prgBanks[2] = fixed
		m.prgBanks[3] = last
	}
}

func (m *mmc3) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000], true
	case addr >= 0x8000:
		bank := (addr - 0x8000) / 0x2000
		off := (m.prgBanks[bank] + uint32((addr-0x8000)%0x2000)) % uint32(len(m.cart.PRGROM))
		return m.cart.PRGROM[off], true
	default:
		return 0, false
	}
}

// PPURead also serves as the read side of every pattern-table fetch; the
// PPU calls OnPPUA12Rise separately once it has detected the A12 edge,
// since only the caller knows the full per-dot fetch address sequence.
func (m *mmc3) PPURead(addr uint16) uint8 {
	if len(m.cart.CHRROM) == 0 {
		return 0
	}
	bank := addr / 0x400
	off := (m.chrBanks[bank] + uint32(addr%0x400)) % uint32(len(m.cart.CHRROM))
	return m.cart.CHRROM[off]
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	if m.cart.Info.HasCHRRAM && len(m.cart.CHRROM) > 0 {
		bank := addr / 0x400
		off := (m.chrBanks[bank] + uint32(addr%0x400)) % uint32(len(m.cart.CHRROM))
		m.cart.CHRROM[off] = val
	}
}
