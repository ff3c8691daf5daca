package bus

// DMA models OAM DMA triggered by a write to $4014: 256 bytes copied from
// `page<<8` into PPU OAM starting at the PPU's current OAMADDR, stalling
// the CPU for 513 cycles (514 if DMA started on an odd CPU cycle).
//
// Grounded on nes/dma.go's alternating read/write tick pattern; corrected
// to the exact 513/514-cycle stall contract of spec.md §3 rather than the
// teacher's "256 OAMDATA-equivalent writes" framing, which doesn't account
// for the one-cycle alignment wait.
type DMA struct {
	active   bool
	page     uint8
	index    uint16 // 0..255, byte currently being transferred
	readPhase bool   // true: next tick reads, false: next tick writes
	started  bool
	oddAlign bool // true until the initial alignment cycle has passed
	buffer   uint8
}

// Start is called by the bus on a $4014 write.
func (d *DMA) Start(page uint8) {
	d.active = true
	d.page = page
	d.index = 0
	d.readPhase = true
	d.started = false
}

func (d *DMA) Active() bool { return d.active }

// Tick advances the DMA state machine by one CPU cycle. cpuCycle is the
// CPU's total cycle counter, used to decide whether the initial alignment
// adds one extra stall cycle (odd start) or not (even start).
func (d *DMA) Tick(b *Bus, cpuCycle uint64) bool {
	if !d.active {
		return false
	}
	if !d.started {
		d.started = true
		d.oddAlign = cpuCycle%2 == 1
		return true // the mandatory "get" cycle before any transfer
	}
	if d.oddAlign {
		d.oddAlign = false
		return true // one extra alignment cycle on an odd-cycle start
	}
	if d.readPhase {
		addr := uint16(d.page)<<8 | d.index
		d.buffer = b.Read8(addr)
		d.readPhase = false
		return true
	}
	b.PPU.OAMWrite(b.PPU.OAMAddr()+uint8(d.index), d.buffer)
	d.index++
	d.readPhase = true
	if d.index == 256 {
		d.active = false
	}
	return true
}
