// Package ppu implements the 2C02 picture processing unit: the 341x262
// dot/scanline timing grid, the background tile-fetch pipeline, sprite
// evaluation with the real overflow-flag bug, sprite-0 hit, and the
// vblank/NMI and odd-frame skip timing.
//
// Grounded on nes/ppu_registers.go's register and loopy-scroll model
// (kept almost verbatim, see loopy.go/registers.go); the dot-by-dot
// timing grid itself is new, built from spec.md §4.3, since the
// teacher's ppu.go tick()/loadSprites/evalSprites never modeled a real
// per-dot fetch pipeline or the sprite overflow bug.
package ppu

import "image/color"

const (
	screenWidth  = 256
	screenHeight = 240
	dotsPerLine  = 341
	linesPerFrame = 262
)

type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleA
	MirrorSingleB
	MirrorFourScreen
)

// Cart is the subset of the cartridge the PPU needs: pattern-table
// access and the A12-rise signal mappers like MMC3 use for scanline IRQs.
type Cart interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() Mirroring
	OnPPUA12Rise()
}

// FrameSink receives a completed frame as an RGBA buffer; the `video`
// package's backends implement it.
type FrameSink interface {
	Frame(img *[screenWidth * screenHeight]color.RGBA)
}

type sprite struct {
	y, tile, attr, x uint8
	index            int
	patternLo, patternHi uint8
}

// Ppu is the 2C02 core.
type Ppu struct {
	cart Cart

	ctrl, mask, status uint8
	oamAddr            uint8
	lastRegWrite       uint8

	vRAM, tRAM loopy
	fineX      uint8
	writeToggle bool
	readBuffer  uint8

	vram    [0x800]uint8 // internal nametable VRAM
	palette paletteRAM
	oam     [256]uint8
	secOAM  [256]uint8 // up to 64 sprites * 4 bytes when SpriteLimit is off

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	a12Level bool // current level of PPU address bit 12, for edge detection

	// background shift registers
	bgShiftLo, bgShiftHi       uint16
	bgAttrShiftLo, bgAttrShiftHi uint16
	nextTileID, nextTileAttr, nextTileLo, nextTileHi uint8

	sprites      [64]sprite
	spriteCount  int
	sprite0OnLine bool

	// SpriteLimit enforces the real hardware's 8-sprites-per-scanline cap
	// (and the overflow flag/flicker that comes with it) when true. False
	// renders every in-range sprite instead, the common "no flicker" cheat
	// emulators expose as an option. Defaults to true in New.
	SpriteLimit bool

	NMI func() // called once per vblank-start edge

	frameBuf [screenWidth * screenHeight]color.RGBA
	Sink     FrameSink
}

func New(cart Cart) *Ppu {
	p := &Ppu{cart: cart, SpriteLimit: true}
	p.Reset()
	return p
}

func (p *Ppu) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.scanline, p.dot = 0, 0
	p.oddFrame = false
	p.writeToggle = false
	p.a12Level = false
}

// busRead/busWrite service the PPU's own 14-bit address space:
// $0000-$1FFF pattern tables (cartridge CHR), $2000-$3EFF nametables
// (internal VRAM through the cartridge's mirroring mode), $3F00-$3FFF
// palette RAM.
func (p *Ppu) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.signalA12(addr)
		return p.cart.PPURead(addr)
	case addr < 0x3F00:
		return p.vram[p.mapNametable(addr)]
	default:
		return p.palette.read(addr)
	}
}

func (p *Ppu) busWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.signalA12(addr)
		p.cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.vram[p.mapNametable(addr)] = val
	default:
		p.palette.write(addr, val)
	}
}

// signalA12 notifies the cartridge of every 0->1 transition of PPU address
// bit 12, the line MMC3's scanline IRQ counter watches. Pattern-table
// fetches flip it roughly once per tile fetch as background/sprite data
// alternate halves, and once per scanline when sprite fetches move to the
// $1000 half; a PPUADDR write that lands above $1000 also counts.
func (p *Ppu) signalA12(addr uint16) {
	level := addr&0x1000 != 0
	if level && !p.a12Level {
		p.cart.OnPPUA12Rise()
	}
	p.a12Level = level
}

// mapNametable folds a $2000-$3EFF address into the 2KiB internal VRAM
// per the cartridge's mirroring mode. Horizontal/vertical table math
// matches nes/nametable.go's decode exactly; single-screen and
// four-screen are new per SPEC_FULL.md §12.
func (p *Ppu) mapNametable(addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	table := addr / 0x400
	offset := addr % 0x400
	switch p.cart.Mirroring() {
	case MirrorVertical:
		return (table%2)*0x400 + offset
	case MirrorSingleA:
		return offset
	case MirrorSingleB:
		return 0x400 + offset
	case MirrorFourScreen:
		return table*0x400 + offset // no extra cart VRAM modeled; degrades like four independent 1K tables within the 2K window
	default: // MirrorHorizontal
		return (table/2)*0x400 + offset
	}
}

func (p *Ppu) renderingEnabled() bool {
	return p.mask&(maskShowBackground|maskShowSprites) != 0
}

// Step advances the PPU by one dot (one PPU cycle, 1/3 of a CPU cycle).
func (p *Ppu) Step() {
	p.renderDot()
	p.advanceDot()
}

func (p *Ppu) advanceDot() {
	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frame++
			// Odd-frame dot skip: when rendering is enabled and the frame
			// whose pre-render scanline just ended was odd, dot 0 of the
			// next frame is skipped, taking one dot off every other frame.
			skip := p.oddFrame && p.renderingEnabled()
			p.oddFrame = !p.oddFrame
			if skip {
				p.dot = 1
			}
		}
	}
}

func (p *Ppu) renderDot() {
	visible := p.scanline < 240
	preRender := p.scanline == 261

	if preRender && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
	}

	if (visible || preRender) && p.renderingEnabled() {
		p.backgroundPipeline(preRender)
	}

	if visible && p.dot >= 1 && p.dot <= 256 && p.renderingEnabled() {
		p.evaluateSpritesAt(p.dot)
	}
	if visible && p.dot == 257 && p.renderingEnabled() {
		p.loadSpritesForNextLine()
	}

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 && p.NMI != nil {
			p.NMI()
		}
		if p.Sink != nil {
			p.Sink.Frame(&p.frameBuf)
		}
	}
}

// backgroundPipeline fetches the tile/attribute/pattern bytes for the
// upcoming 8 pixels every 8 dots and shifts the fetched data into the
// background shift registers, matching the 2C02's fixed fetch cadence.
func (p *Ppu) backgroundPipeline(preRender bool) {
	fetchPhase := p.dot >= 1 && p.dot <= 256 || p.dot >= 321 && p.dot <= 336
	if fetchPhase {
		switch p.dot % 8 {
		case 1:
			p.reloadShiftRegisters()
		case 2:
			ntAddr := 0x2000 | (p.vRAM.val & 0x0FFF)
			p.nextTileID = p.busRead(ntAddr)
		case 4:
			attrAddr := 0x23C0 | (p.vRAM.val & 0x0C00) | ((p.vRAM.val >> 4) & 0x38) | ((p.vRAM.val >> 2) & 0x07)
			attr := p.busRead(attrAddr)
			shift := ((p.vRAM.coarseY() & 0x02) << 1) | (p.vRAM.coarseX() & 0x02)
			p.nextTileAttr = (attr >> shift) & 0x03
		case 6:
			base := p.bgPatternTable() + uint16(p.nextTileID)*16 + p.vRAM.fineY()
			p.nextTileLo = p.busRead(base)
		case 0:
			base := p.bgPatternTable() + uint16(p.nextTileID)*16 + p.vRAM.fineY() + 8
			p.nextTileHi = p.busRead(base)
			p.vRAM.incCoarseX()
		}
	}
	if p.dot == 256 {
		p.vRAM.incFineY()
	}
	if p.dot == 257 {
		p.vRAM.copyHori(p.tRAM)
	}
	if preRender && p.dot >= 280 && p.dot <= 304 {
		p.vRAM.copyVert(p.tRAM)
	}
	if (p.dot >= 2 && p.dot <= 257) || (p.dot >= 322 && p.dot <= 337) {
		p.bgShiftLo <<= 1
		p.bgShiftHi <<= 1
		p.bgAttrShiftLo = p.bgAttrShiftLo<<1 | uint16(p.nextTileAttr&0x01)
		p.bgAttrShiftHi = p.bgAttrShiftHi<<1 | uint16((p.nextTileAttr>>1)&0x01)
	}
}

func (p *Ppu) reloadShiftRegisters() {
	p.bgShiftLo = p.bgShiftLo&0xFF00 | uint16(p.nextTileLo)
	p.bgShiftHi = p.bgShiftHi&0xFF00 | uint16(p.nextTileHi)
}

func (p *Ppu) renderPixel() {
	x := p.dot - 1
	bgPixel, bgPal := p.backgroundPixel()
	sprPixel, sprPal, sprPriority, isSprite0 := p.spritePixelAt(x)

	if x < 8 {
		if p.mask&maskShowBGLeft == 0 {
			bgPixel = 0
		}
		if p.mask&maskShowSpritesLeft == 0 {
			sprPixel = 0
		}
	}
	leftClipped := x < 8 && (p.mask&maskShowBGLeft == 0 || p.mask&maskShowSpritesLeft == 0)

	var finalPixel, finalPal uint8
	switch {
	case bgPixel == 0 && sprPixel == 0:
		finalPixel, finalPal = 0, 0
	case bgPixel == 0:
		finalPixel, finalPal = sprPixel, sprPal|0x10
	case sprPixel == 0:
		finalPixel, finalPal = bgPixel, bgPal
	default:
		if isSprite0 && x != 255 && !leftClipped {
			p.status |= statusSprite0Hit
		}
		if sprPriority {
			finalPixel, finalPal = bgPixel, bgPal
		} else {
			finalPixel, finalPal = sprPixel, sprPal|0x10
		}
	}

	addr := uint16(0x3F00) | uint16(finalPal)<<2 | uint16(finalPixel)
	if finalPixel == 0 {
		addr = 0x3F00
	}
	p.frameBuf[p.scanline*screenWidth+x] = p.palette.color(addr, p.mask)
}

func (p *Ppu) backgroundPixel() (uint8, uint8) {
	if p.mask&maskShowBackground == 0 {
		return 0, 0
	}
	mux := uint16(0x8000) >> p.fineX
	lo := uint8(0)
	if p.bgShiftLo&mux != 0 {
		lo = 1
	}
	hi := uint8(0)
	if p.bgShiftHi&mux != 0 {
		hi = 1
	}
	pal := uint8(0)
	if p.bgAttrShiftLo&mux != 0 {
		pal |= 1
	}
	if p.bgAttrShiftHi&mux != 0 {
		pal |= 2
	}
	return hi<<1 | lo, pal
}

// Run advances the PPU the given number of dots, calling Step per dot.
func (p *Ppu) Run(dots int) {
	for i := 0; i < dots; i++ {
		p.Step()
	}
}

// Frame returns the number of frames fully rendered so far.
func (p *Ppu) Frame() uint64 { return p.frame }
