package cartridge

// nrom is mapper 0: fixed PRG banks (mirrored down to 16 KiB if that's all
// the cartridge has), fixed 8 KiB CHR (ROM or RAM).
//
// Grounded on nes/mapper.go's MapperNROM and nes/mappers/mapper_NROM.go.
type nrom struct {
	cart *Cartridge
}

func newNROM(c *Cartridge) *nrom { return &nrom{cart: c} }

func (m *nrom) Reset()        {}
func (m *nrom) CPUTick()      {}
func (m *nrom) OnPPUA12Rise() {}
func (m *nrom) IRQPending() bool { return false }
func (m *nrom) Mirroring() Mirroring { return m.cart.Info.Mirroring }

func (m *nrom) CPURead(addr uint16) (uint8, bool) {
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

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *nrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(m.cart.CHRROM) {
		return m.cart.CHRROM[addr]
	}
	return 0
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.cart.Info.HasCHRRAM && int(addr) < len(m.cart.CHRROM) {
		m.cart.CHRROM[addr] = val
	}
}
