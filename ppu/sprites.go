package ppu

// Sprite evaluation runs once per visible scanline, scanning primary OAM
// for up to 8 sprites whose Y range covers the *next* scanline and
// copying them into secondary OAM; a 9th in-range sprite sets the sprite
// overflow flag via the real hardware bug, where evaluation continues
// scanning with a diagonally-incrementing (not sprite-aligned) OAM
// pointer instead of stopping cleanly at slot 8.
//
// New: nes/ppu.go's evalSprites/loadSprites never modeled the overflow
// bug or secondary-OAM byte layout; this is built from spec.md §4.3's
// sprite-evaluation contract.

// evaluateSpritesAt runs the whole per-scanline sprite scan at dot 1,
// a simplification of the hardware's dot-by-dot evaluation that produces
// the same visible result (this PPU re-derives secondary OAM once per
// line rather than one comparison per dot).
func (p *Ppu) evaluateSpritesAt(dot int) {
	if dot != 1 {
		return
	}
	limit := 8
	if !p.SpriteLimit {
		limit = 64
	}
	height := p.spriteHeight()
	targetLine := p.scanline // sprites visible on p.scanline+1 are evaluated now
	count := 0
	overflow := false
	p.sprite0OnLine = false
	// m is the byte-within-sprite index the Y comparison reads. It stays 0
	// until secondary OAM is full; after that the hardware bug advances it
	// (wrapping 3->0) on every out-of-range sprite, so later comparisons
	// read tile, attribute or X bytes as Y and the overflow flag can be
	// set falsely or missed.
	m := 0
	for n := 0; n < 64; n++ {
		y := int(p.oam[n*4+m])
		rel := targetLine + 1 - y
		if rel < 0 || rel >= height {
			if count == limit {
				m = (m + 1) & 3
			}
			continue
		}
		if count == limit {
			// Only the flag is modeled, not the corrupted OAMADDR the
			// scan leaves behind, since nothing in this core reads
			// OAMADDR after evaluation. With SpriteLimit off, this branch
			// is unreachable since every in-range sprite fits under
			// limit=64.
			overflow = true
			break
		}
		if n == 0 {
			p.sprite0OnLine = true
		}
		copy(p.secOAM[count*4:count*4+4], p.oam[n*4:n*4+4])
		count++
	}
	if overflow {
		p.status |= statusSpriteOverflow
	}
	p.spriteCount = count
}

// loadSpritesForNextLine fetches pattern bytes for every sprite found by
// evaluateSpritesAt, flipping them per the attribute byte, ready for
// spritePixelAt on the following scanline.
func (p *Ppu) loadSpritesForNextLine() {
	height := p.spriteHeight()
	for i := 0; i < p.spriteCount; i++ {
		y := p.secOAM[i*4]
		tile := p.secOAM[i*4+1]
		attr := p.secOAM[i*4+2]
		x := p.secOAM[i*4+3]

		row := p.scanline + 1 - int(y)
		flipV := attr&0x80 != 0
		flipH := attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}

		var base uint16
		var tileIndex int
		if height == 16 {
			table := uint16(tile&0x01) * 0x1000
			tileIndex = int(tile &^ 0x01)
			if row >= 8 {
				tileIndex++
				row -= 8
			}
			base = table + uint16(tileIndex)*16
		} else {
			base = p.spritePatternTable() + uint16(tile)*16
		}

		lo := p.busRead(base + uint16(row))
		hi := p.busRead(base + uint16(row) + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.sprites[i] = sprite{
			y: y, tile: tile, attr: attr, x: x,
			index: i, patternLo: lo, patternHi: hi,
		}
	}
	for i := p.spriteCount; i < len(p.sprites); i++ {
		p.sprites[i] = sprite{}
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixelAt returns the first non-transparent sprite pixel at screen
// column x (sprites earlier in OAM order win ties), its palette index,
// whether it draws behind the background, and whether it came from OAM
// slot 0 (for sprite-0-hit detection).
func (p *Ppu) spritePixelAt(x int) (pixel, pal uint8, behindBG bool, isSprite0 bool) {
	if p.mask&maskShowSprites == 0 {
		return 0, 0, false, false
	}
	for i := 0; i < p.spriteCount; i++ {
		s := p.sprites[i]
		col := x - int(s.x)
		if col < 0 || col > 7 {
			continue
		}
		shift := uint(7 - col)
		lo := (s.patternLo >> shift) & 1
		hi := (s.patternHi >> shift) & 1
		px := hi<<1 | lo
		if px == 0 {
			continue
		}
		return px, s.attr & 0x03, s.attr&0x20 != 0, s.index == 0 && p.sprite0OnLine
	}
	return 0, 0, false, false
}
