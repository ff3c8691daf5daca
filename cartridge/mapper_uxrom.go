package cartridge

// uxrom is mapper 2: a 16 KiB PRG bank switchable at $8000-$BFFF, with the
// last 16 KiB bank fixed at $C000-$FFFF. CHR is always 8 KiB of RAM.
//
// New: the teacher never implemented this mapper. Grounded on the general
// "write anywhere in ROM space selects a bank" shape spec.md §4.5
// describes, in the same style as alphanes' mapper/unrom.go.
type uxrom struct {
	cart   *Cartridge
	bank   int
	banks  int
}

func newUxROM(c *Cartridge) *uxrom {
	return &uxrom{cart: c, banks: len(c.PRGROM) / prgBankSize}
}

func (m *uxrom) Reset()           { m.bank = 0 }
func (m *uxrom) CPUTick()         {}
func (m *uxrom) OnPPUA12Rise()    {}
func (m *uxrom) IRQPending() bool { return false }
func (m *uxrom) Mirroring() Mirroring { return m.cart.Info.Mirroring }

func (m *uxrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000], true
	case addr >= 0x8000 && addr < 0xC000:
		off := m.bank*prgBankSize + int(addr-0x8000)
		return m.cart.PRGROM[off], true
	case addr >= 0xC000:
		off := (m.banks-1)*prgBankSize + int(addr-0xC000)
		return m.cart.PRGROM[off], true
	default:
		return 0, false
	}
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.bank = int(val) % m.banks
	}
}

func (m *uxrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(m.cart.CHRROM) {
		return m.cart.CHRROM[addr]
	}
	return 0
}

func (m *uxrom) PPUWrite(addr uint16, val uint8) {
	if int(addr) < len(m.cart.CHRROM) {
		m.cart.CHRROM[addr] = val
	}
}
