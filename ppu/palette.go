package ppu

import "image/color"

// masterPalette is the 64-entry NES master color table, kept verbatim
// (same hex values) from nes/palette.go's ppuPalette.init.
var masterPalette = buildMasterPalette()

func buildMasterPalette() [64]color.RGBA {
	raw := [64]uint32{
		0x7C7C7C, 0x0000FC, 0x0000BC, 0x4428BC, 0x940084, 0xA80020, 0xA81000, 0x881400,
		0x503000, 0x007800, 0x006800, 0x005800, 0x004058, 0x000000, 0x000000, 0x000000,
		0xBCBCBC, 0x0078F8, 0x0058F8, 0x6844FC, 0xD800CC, 0xE40058, 0xF83800, 0xE45C10,
		0xAC7C00, 0x00B800, 0x00A800, 0x00A844, 0x008888, 0x000000, 0x000000, 0x000000,
		0xF8F8F8, 0x3CBCFC, 0x6888FC, 0x9878F8, 0xF878F8, 0xF85898, 0xF87858, 0xFCA044,
		0xF8B800, 0xB8F818, 0x58D854, 0x58F898, 0x00E8D8, 0x787878, 0x000000, 0x000000,
		0xFCFCFC, 0xA4E4FC, 0xB8B8F8, 0xD8B8F8, 0xF8B8F8, 0xF8A4C0, 0xF0D0B0, 0xFCE0A8,
		0xF8D878, 0xD8F878, 0xB8F8B8, 0xB8F8D8, 0x00FCFC, 0xF8D8F8, 0x000000, 0x000000,
	}
	var out [64]color.RGBA
	for i, c := range raw {
		out[i] = color.RGBA{R: byte(c >> 16), G: byte(c >> 8), B: byte(c), A: 0xFF}
	}
	return out
}

// paletteRAM holds the 32 raw 6-bit color indices at $3F00-$3F1F, unlike
// the teacher's ppuPalette which stores 8 pre-expanded color.RGBA values;
// spec.md §3 wants raw bytes so $3F10/$3F14/$3F18/$3F1C can mirror their
// $3F00/$3F04/$3F08/$3F0C counterparts exactly as hardware does, and so
// palette writes observed by a debugger show the real byte, not a derived
// color.
type paletteRAM struct {
	ram [32]uint8
}

func mirrorPaletteAddr(addr uint16) uint16 {
	addr &= 0x1F
	if addr >= 0x10 && addr%4 == 0 {
		addr -= 0x10
	}
	return addr
}

func (p *paletteRAM) read(addr uint16) uint8 {
	return p.ram[mirrorPaletteAddr(addr)]
}

func (p *paletteRAM) write(addr uint16, val uint8) {
	p.ram[mirrorPaletteAddr(addr)] = val & 0x3F
}

// color resolves a palette address to its final display color, applying
// PPUMASK's greyscale bit (AND $30, dropping hue) and its emphasis bits.
// Real hardware's emphasis is an analog dimming of the two non-emphasized
// signal channels; this approximates it digitally the same way, rather
// than a full per-emphasis-combination color table.
func (p *paletteRAM) color(addr uint16, mask uint8) color.RGBA {
	idx := p.read(addr) & 0x3F
	if mask&maskGreyscale != 0 {
		idx &= 0x30
	}
	c := masterPalette[idx]
	if mask&(maskEmphasizeRed|maskEmphasizeGreen|maskEmphasizeBlue) == 0 {
		return c
	}
	const dim = 0.75
	if mask&maskEmphasizeRed == 0 {
		c.R = uint8(float64(c.R) * dim)
	}
	if mask&maskEmphasizeGreen == 0 {
		c.G = uint8(float64(c.G) * dim)
	}
	if mask&maskEmphasizeBlue == 0 {
		c.B = uint8(float64(c.B) * dim)
	}
	return c
}
