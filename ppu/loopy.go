package ppu

// loopy is the 15-bit "loopy" scroll register shape used for both v and
// t: yyy NN YYYYY XXXXX (fine Y / nametable select / coarse Y / coarse X).
//
// Kept almost verbatim from nes/ppu_registers.go's loopyRegister, the most
// accurate teacher file found for this concern.
type loopy struct {
	val uint16
}

func (l *loopy) setCoarseX(v uint16) { l.val = (l.val & 0xFFE0) | (v & 0x1F) }
func (l *loopy) coarseX() uint16     { return l.val & 0x1F }

func (l *loopy) setCoarseY(v uint16) { l.val = (l.val & 0xFC1F) | ((v & 0x1F) << 5) }
func (l *loopy) coarseY() uint16     { return (l.val >> 5) & 0x1F }

func (l *loopy) setFineY(v uint16) { l.val = (l.val & 0x8FFF) | ((v & 0x7) << 12) }
func (l *loopy) fineY() uint16     { return (l.val >> 12) & 0x7 }

func (l *loopy) nameTables() uint16 { return (l.val & 0x0C00) >> 10 }

func (l *loopy) setMsb(v uint8) { l.val = (l.val & 0x80FF) | ((uint16(v) & 0x3F) << 8) }
func (l *loopy) setLsb(v uint8) { l.val = (l.val & 0xFF00) | uint16(v) }

func (l *loopy) copy(t loopy) { l.val = t.val }

// copyHori is "v: ....F.. ...EDCBA = t: ....F.. ...EDCBA", executed at dot
// 257 of each visible/pre-render scanline.
func (l *loopy) copyHori(t loopy) { l.val = (l.val & 0xFBE0) | (t.val & 0x041F) }

// copyVert is "v: IHGF.ED CBA..... = t: IHGF.ED CBA.....", executed once
// per dot 280-304 of the pre-render scanline.
func (l *loopy) copyVert(t loopy) { l.val = (l.val & 0x841F) | (t.val & 0x7BE0) }

func (l *loopy) incCoarseX() {
	if l.val&0x001F == 31 {
		l.val &^= 0x001F
		l.val ^= 0x0400 // flip horizontal nametable
	} else {
		l.val++
	}
}

func (l *loopy) incFineY() {
	if l.val&0x7000 != 0x7000 {
		l.val += 0x1000
		return
	}
	l.val &^= 0x7000
	y := (l.val & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		l.val ^= 0x0800 // flip vertical nametable
	case 31:
		y = 0
	default:
		y++
	}
	l.val = (l.val & ^uint16(0x03E0)) | (y << 5)
}
