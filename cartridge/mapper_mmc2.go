package cartridge

// mmc2 implements mappers 9 (MMC2) and 10 (MMC4): dual CHR latches
// ($FD/$FE) toggled by specific tile fetches, used by Punch-Out!! (MMC2)
// and Fire Emblem (MMC4).
//
// Adapted from nes/mappers/mapper_MMC2.go, the one teacher file that
// covers the $FD/$FE latch mechanism; generalized with an mmc4 flag since
// MMC4 differs only in PRG bank granularity (16 KiB switchable + 16 KiB
// fixed, vs MMC2's 8 KiB switchable + three fixed banks).
type mmc2 struct {
	cart *Cartridge
	mmc4 bool

	prgBank            uint8
	chrBankD0, chrBankE0 uint8
	chrBankD1, chrBankE1 uint8
	mirror             uint8

	prgBanks [1]uint32
	chrBanks [4]uint32
	latch    [2]uint8
}

func newMMC2(c *Cartridge, mmc4 bool) *mmc2 {
	m := &mmc2{cart: c, mmc4: mmc4}
	m.latch[0], m.latch[1] = 0xFD, 0xFD
	return m
}

func (m *mmc2) Reset() {
	*m = mmc2{cart: m.cart, mmc4: m.mmc4}
	m.latch[0], m.latch[1] = 0xFD, 0xFD
}
func (m *mmc2) CPUTick()      {}
func (m *mmc2) OnPPUA12Rise() {}
func (m *mmc2) IRQPending() bool { return false }

func (m *mmc2) Mirroring() Mirroring {
	if m.mirror == 0 {
		return Vertical
	}
	return Horizontal
}

func (m *mmc2) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0xA000 && addr <= 0xAFFF:
		m.prgBank = val & 0xF
		m.updatePRGBank()
	case addr >= 0xB000 && addr <= 0xBFFF:
		m.chrBankD0 = val & 0x1F
	case addr >= 0xC000 && addr <= 0xCFFF:
		m.chrBankE0 = val & 0x1F
	case addr >= 0xD000 && addr <= 0xDFFF:
		m.chrBankD1 = val & 0x1F
	case addr >= 0xE000 && addr <= 0xEFFF:
		m.chrBankE1 = val & 0x1F
	case addr >= 0xF000:
		m.mirror = val & 1
	}
	m.updateCHRBanks()
}

func (m *mmc2) updateCHRBanks() {
	m.chrBanks[0] = 0x1000 * uint32(m.chrBankD0)
	m.chrBanks[1] = 0x1000 * uint32(m.chrBankE0)
	m.chrBanks[2] = 0x1000 * uint32(m.chrBankD1)
	m.chrBanks[3] = 0x1000 * uint32(m.chrBankE1)
}

func (m *mmc2) updatePRGBank() {
	if m.mmc4 {
		m.prgBanks[0] = 0x4000 * uint32(m.prgBank)
	} else {
		m.prgBanks[0] = 0x2000 * uint32(m.prgBank)
	}
}

func (m *mmc2) CPURead(addr uint16) (uint8, bool) {
	total := uint32(len(m.cart.PRGROM))
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000], true
	case m.mmc4 && addr >= 0x8000 && addr < 0xC000:
		return m.cart.PRGROM[(m.prgBanks[0]+uint32(addr-0x8000))%total], true
	case m.mmc4 && addr >= 0xC000:
		return m.cart.PRGROM[total-0x4000+uint32(addr-0xC000)], true
	case !m.mmc4 && addr >= 0x8000 && addr < 0xA000:
		return m.cart.PRGROM[(m.prgBanks[0]+uint32(addr-0x8000))%total], true
	case !m.mmc4 && addr >= 0xA000:
		return m.cart.PRGROM[total-0x2000*3+uint32(addr-0xA000)], true
	default:
		return 0, false
	}
}

func (m *mmc2) latchTrigger(addr uint16) {
	switch {
	case addr == 0x0FD8:
		m.latch[0] = 0xFD
	case addr == 0x0FE8:
		m.latch[0] = 0xFE
	case addr >= 0x1FD8 && addr <= 0x1FDF:
		m.latch[1] = 0xFD
	case addr >= 0x1FE8 && addr <= 0x1FEF:
		m.latch[1] = 0xFE
	}
}

func (m *mmc2) PPURead(addr uint16) uint8 {
	if len(m.cart.CHRROM) == 0 {
		return 0
	}
	var v uint8
	total := uint32(len(m.cart.CHRROM))
	if addr < 0x1000 {
		if m.latch[0] == 0xFD {
			v = m.cart.CHRROM[(uint32(addr)+m.chrBanks[0])%total]
		} else {
			v = m.cart.CHRROM[(uint32(addr)+m.chrBanks[1])%total]
		}
	} else {
		off := uint32(addr - 0x1000)
		if m.latch[1] == 0xFD {
			v = m.cart.CHRROM[(off+m.chrBanks[2])%total]
		} else {
			v = m.cart.CHRROM[(off+m.chrBanks[3])%total]
		}
	}
	m.latchTrigger(addr)
	return v
}

func (m *mmc2) PPUWrite(addr uint16, val uint8) {
	if !m.cart.Info.HasCHRRAM || len(m.cart.CHRROM) == 0 {
		return
	}
	total := uint32(len(m.cart.CHRROM))
	if addr < 0x1000 {
		if m.latch[0] == 0xFD {
			m.cart.CHRROM[(uint32(addr)+m.chrBanks[0])%total] = val
		} else {
			m.cart.CHRROM[(uint32(addr)+m.chrBanks[1])%total] = val
		}
	} else {
		off := uint32(addr - 0x1000)
		if m.latch[1] == 0xFD {
			m.cart.CHRROM[(off+m.chrBanks[2])%total] = val
		} else {
			m.cart.CHRROM[(off+m.chrBanks[3])%total] = val
		}
	}
}
