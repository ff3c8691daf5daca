package cartridge

// cnrom is mapper 3: fixed PRG (16 or 32 KiB, mirrored as needed), an 8 KiB
// switchable CHR ROM bank selected by any write in $8000-$FFFF.
//
// New: the teacher never implemented this mapper; grounded on spec.md
// §4.5's one-line "switchable 8 KiB CHR" policy, same register shape as
// the uxrom/gxrom siblings in this package.
type cnrom struct {
	cart     *Cartridge
	chrBank  int
	chrBanks int
}

func newCNROM(c *Cartridge) *cnrom {
	banks := len(c.CHRROM) / chrBankSize
	if banks == 0 {
		banks = 1
	}
	return &cnrom{cart: c, chrBanks: banks}
}

func (m *cnrom) Reset()           { m.chrBank = 0 }
func (m *cnrom) CPUTick()         {}
func (m *cnrom) OnPPUA12Rise()    {}
func (m *cnrom) IRQPending() bool { return false }
func (m *cnrom) Mirroring() Mirroring { return m.cart.Info.Mirroring }

func (m *cnrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000], true
	case addr >= 0x8000:
		off := int(addr-0x8000) % len(m.cart.PRGROM)
		return m.cart.PRGROM[off], true
	default:
		return 0, false
	}
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.chrBank = int(val) % m.chrBanks
	}
}

func (m *cnrom) PPURead(addr uint16) uint8 {
	off := m.chrBank*chrBankSize + int(addr)
	if off < len(m.cart.CHRROM) {
		return m.cart.CHRROM[off]
	}
	return 0
}

func (m *cnrom) PPUWrite(addr uint16, val uint8) {
	if m.cart.Info.HasCHRRAM {
		off := m.chrBank*chrBankSize + int(addr)
		if off < len(m.cart.CHRROM) {
			m.cart.CHRROM[off] = val
		}
	}
}
