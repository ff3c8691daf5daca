package cartridge

// mmc1 is mapper 1. Adapted nearly directly from lib/mappers/mapper_MMC1.go:
// a 5-bit serial shift register loaded one bit per write (reset whenever
// bit 7 of the written value is set), feeding four internal registers
// (control, CHR bank 0, CHR bank 1, PRG bank) once the fifth bit arrives.
type mmc1 struct {
	cart *Cartridge

	shift   uint8
	counter uint8

	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	mirror      uint8
	prgBankMode uint8
	chrBankMode uint8

	prgBanks [2]uint32
	chrBanks [2]uint32

	singleScreenBank uint8
}

func newMMC1(c *Cartridge) *mmc1 {
	m := &mmc1{cart: c}
	m.writeInner(0x8000, 0x0C)
	return m
}

func (m *mmc1) Reset() {
	m.shift = 0
	m.counter = 0
	m.writeInner(0x8000, 0x0C)
}
func (m *mmc1) CPUTick()      {}
func (m *mmc1) OnPPUA12Rise() {}
func (m *mmc1) IRQPending() bool { return false }

func (m *mmc1) Mirroring() Mirroring {
	switch m.mirror {
	case 0:
		return SingleScreenA
	case 1:
		return SingleScreenB
	case 2:
		return Vertical
	default:
		return Horizontal
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.writeLoad(addr, val)
	}
}

func (m *mmc1) writeLoad(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift = 0
		m.counter = 0
		m.control |= 0x0C
		m.updateAllBanks()
		return
	}
	m.shift |= (val & 1) << m.counter
	m.counter++
	if m.counter == 5 {
		m.writeInner(addr, m.shift)
		m.shift = 0
		m.counter = 0
	}
}

func (m *mmc1) writeInner(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		m.writeControl(val)
	case addr >= 0xA000 && addr <= 0xBFFF:
		m.chrBank0 = val & 0x1F
	case addr >= 0xC000 && addr <= 0xDFFF:
		m.chrBank1 = val & 0x1F
	case addr >= 0xE000:
		m.prgBank = val & 0x1F
	}
	m.updateAllBanks()
}

func (m *mmc1) writeControl(val uint8) {
	m.control = val
	m.mirror = val & 0x3
	m.prgBankMode = (val >> 2) & 0x3
	m.chrBankMode = val >> 4
}

func (m *mmc1) updateAllBanks() {
	m.updateCHRBanks()
	m.updatePRGBanks()
}

func (m *mmc1) updateCHRBanks() {
	if m.chrBankMode == 0 {
		bank := (uint32(m.chrBank0) >> 1) * 0x2000
		m.chrBanks[0] = bank
		m.chrBanks[1] = bank + 0x1000
	} else {
		m.chrBanks[0] = uint32(m.chrBank0) * 0x1000
		m.chrBanks[1] = uint32(m.chrBank1) * 0x1000
	}
}

func (m *mmc1) updatePRGBanks() {
	last := uint32(len(m.cart.PRGROM)) - 0x4000
	switch m.prgBankMode {
	case 0, 1:
		bank := 0x8000 * (uint32(m.prgBank) >> 1)
		m.prgBanks[0] = bank
		m.prgBanks[1] = bank + 0x4000
	case 2:
		m.prgBanks[0] = 0
		m.prgBanks[1] = 0x4000 * uint32(m.prgBank)
	case 3:
		m.prgBanks[0] = 0x4000 * uint32(m.prgBank)
		m.prgBanks[1] = last
	}
}

func (m *mmc1) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000], true
	case addr >= 0x8000 && addr < 0xC000:
		off := (m.prgBanks[0] + uint32(addr-0x8000)) % uint32(len(m.cart.PRGROM))
		return m.cart.PRGROM[off], true
	case addr >= 0xC000:
		off := (m.prgBanks[1] + uint32(addr-0xC000)) % uint32(len(m.cart.PRGROM))
		return m.cart.PRGROM[off], true
	default:
		return 0, false
	}
}

func (m *mmc1) chrAddr(addr uint16) uint32 {
	if addr < 0x1000 {
		return (m.chrBanks[0] + uint32(addr)) % uint32(len(m.cart.CHRROM))
	}
	return (m.chrBanks[1] + uint32(addr-0x1000)) % uint32(len(m.cart.CHRROM))
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	if len(m.cart.CHRROM) == 0 {
		return 0
	}
	return m.cart.CHRROM[m.chrAddr(addr)]
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if m.cart.Info.HasCHRRAM && len(m.cart.CHRROM) > 0 {
		m.cart.CHRROM[m.chrAddr(addr)] = val
	}
}
