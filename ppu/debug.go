package ppu

// The methods in this file exist only so an external, read-only inspector
// can observe PPU state without the PPU exposing its internals to the
// bus/cpu packages it actually cooperates with. Grounded on the
// lazyvalues package's snapshot-getter pattern for a debugger GUI, cut
// down to a direct call since nesgo's core runs on a single goroutine and
// has no emulation/GUI thread split to guard against.

// Registers returns the live values of PPUCTRL, PPUMASK and PPUSTATUS.
func (p *Ppu) Registers() (ctrl, mask, status uint8) {
	return p.ctrl, p.mask, p.status
}

// ScanlineDot returns the current scanline (0..261, 261 being the
// pre-render line) and dot (0..340).
func (p *Ppu) ScanlineDot() (scanline, dot int) {
	return p.scanline, p.dot
}

// VRAMAddr returns the current and temporary VRAM address (the "v" and
// "t" loopy registers).
func (p *Ppu) VRAMAddr() (v, t uint16) {
	return p.vRAM.val, p.tRAM.val
}

// OAM returns a copy of primary OAM (256 bytes, 64 sprites * 4 bytes).
func (p *Ppu) OAM() [256]uint8 {
	return p.oam
}

// PaletteRAM returns a copy of the 32 raw palette indices at $3F00-$3F1F.
func (p *Ppu) PaletteRAM() [32]uint8 {
	return p.palette.ram
}

// Nametables returns a copy of the 2KiB of internal nametable VRAM.
func (p *Ppu) Nametables() [0x800]uint8 {
	return p.vram
}
