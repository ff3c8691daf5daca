package cpu

// The 13 6502 addressing modes, matching nes/cpu.go's ModeXxx constants.
const (
	modeImplied uint8 = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect
	modeRelative
)

// resolveOperand advances PC past the instruction's operand bytes and
// returns the effective address (meaningless for modeImplied/
// modeAccumulator) plus whether indexing crossed a page boundary.
//
// Grounded on nes/cpu.go's getOperandAddr, with one correction: indexed
// indirect (X) wraps the zero-page pointer fetch within page 0 instead of
// calling Read16 across the $FF/$00 boundary unmasked.
func (c *Cpu) resolveOperand(mode uint8) (uint16, bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false
	case modeImmediate:
		addr := c.PC
		c.PC++
		return addr, false
	case modeZeroPage:
		addr := uint16(c.read8(c.PC))
		c.PC++
		return addr, false
	case modeZeroPageX:
		addr := uint16(c.read8(c.PC) + c.X)
		c.PC++
		return addr, false
	case modeZeroPageY:
		addr := uint16(c.read8(c.PC) + c.Y)
		c.PC++
		return addr, false
	case modeAbsolute:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr, false
	case modeAbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return addr, pageCrossed(base, addr)
	case modeAbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr)
	case modeIndirectX:
		zp := c.read8(c.PC)
		c.PC++
		ptr := zp + c.X
		lo := uint16(c.read8(uint16(ptr)))
		hi := uint16(c.read8(uint16(ptr + 1)))
		return lo | hi<<8, false
	case modeIndirectY:
		zp := c.read8(c.PC)
		c.PC++
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		base := lo | hi<<8
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr)
	case modeIndirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		var addr uint16
		if ptr&0x00FF == 0x00FF {
			// JMP ($xxFF) bug: the high byte wraps within the same page
			// instead of crossing into the next one.
			lo := uint16(c.read8(ptr))
			hi := uint16(c.read8(ptr & 0xFF00))
			addr = lo | hi<<8
		} else {
			addr = c.read16(ptr)
		}
		return addr, false
	case modeRelative:
		off := int8(c.read8(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(off)), false
	}
	return 0, false
}

// loadOperand and storeOperand route through the accumulator for
// modeAccumulator instructions (ASL/LSR/ROL/ROR A) and through the bus
// otherwise.
func (c *Cpu) loadOperand(addr uint16, mode uint8) uint8 {
	if mode == modeAccumulator {
		return c.A
	}
	return c.read8(addr)
}

func (c *Cpu) storeOperand(addr uint16, mode uint8, v uint8) {
	if mode == modeAccumulator {
		c.A = v
		return
	}
	c.write8(addr, v)
}
