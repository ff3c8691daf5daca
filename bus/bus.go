// Package bus routes the CPU's view of memory to internal RAM, the PPU and
// APU register windows, the controller shift registers, and the cartridge
// mapper, and models open-bus behavior for reads with no defined source.
//
// Grounded on nes/bus.go's busInt/busExtInt interfaces and BusMapInt
// map-ID routing, generalized to an explicit open-bus byte per spec.md
// §9's design note (the teacher's version returns 0 for unmapped reads
// instead of the last value placed on the bus).
package bus

// PPUPort is the subset of the PPU the bus needs to route $2000-$3FFF and
// $4014 traffic to.
type PPUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, val uint8)
	OAMWrite(index uint8, val uint8)
	OAMAddr() uint8
}

// APUPort is the subset of the APU the bus needs to route $4000-$4013,
// $4015 and $4017 traffic to.
type APUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, val uint8)
}

// CartridgePort is the subset of the cartridge the bus needs for
// $4020-$FFFF.
type CartridgePort interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, val uint8)
}

const ramSize = 0x0800

// Bus is the CPU's memory map.
type Bus struct {
	RAM [ramSize]byte

	PPU  PPUPort
	APU  APUPort
	Cart CartridgePort
	Ctrl *Controllers
	DMA  DMA

	// lastBus is the open-bus byte: every read that has no defined
	// source returns it, and every read or write updates it.
	lastBus uint8
}

func New() *Bus {
	b := &Bus{}
	b.Ctrl = &Controllers{}
	return b
}

// Read8 performs a CPU-side read, applying the open-bus byte when nothing
// claims the address.
func (b *Bus) Read8(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = b.RAM[addr%ramSize]
	case addr < 0x4000:
		v = b.PPU.ReadRegister(0x2000 + addr%8)
	case addr == 0x4015:
		v = b.APU.ReadRegister(addr)
	case addr == 0x4016:
		v = b.Ctrl.Read(0)
	case addr == 0x4017:
		v = b.Ctrl.Read(1)
	case addr < 0x4018:
		// Write-only APU registers read back as open bus.
		v = b.lastBus
	case addr >= 0x4020:
		if val, ok := b.Cart.CPURead(addr); ok {
			v = val
		} else {
			v = b.lastBus
		}
	default:
		v = b.lastBus
	}
	b.lastBus = v
	return v
}

// Write8 performs a CPU-side write.
func (b *Bus) Write8(addr uint16, val uint8) {
	b.lastBus = val
	switch {
	case addr < 0x2000:
		b.RAM[addr%ramSize] = val
	case addr < 0x4000:
		b.PPU.WriteRegister(0x2000+addr%8, val)
	case addr == 0x4014:
		b.DMA.Start(val)
	case addr == 0x4016:
		b.Ctrl.Write(val)
	case addr == 0x4017:
		b.APU.WriteRegister(addr, val)
	case addr < 0x4018:
		b.APU.WriteRegister(addr, val)
	case addr >= 0x4020:
		b.Cart.CPUWrite(addr, val)
	}
}

// Read16 reads a little-endian word, used by interrupt vector fetches.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read8(addr))
	hi := uint16(b.Read8(addr + 1))
	return lo | hi<<8
}

// TickDMA advances the OAM-DMA state machine by one CPU cycle, copying one
// byte every other cycle once alignment/dummy cycles are past. Returns
// true while DMA still owns the bus (the CPU must not execute an
// instruction this cycle).
func (b *Bus) TickDMA(cpuCycle uint64) bool {
	return b.DMA.Tick(b, cpuCycle)
}
