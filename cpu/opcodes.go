package cpu

type execFunc func(c *Cpu, addr uint16, mode uint8)

type opcode struct {
	name           string
	mode           uint8
	bytes          uint8
	cycles         uint8
	pageCrossExtra bool
	exec           execFunc
}

// Load/store.
func opLDA(c *Cpu, addr uint16, mode uint8) { c.A = c.loadOperand(addr, mode); c.setZN(c.A) }
func opLDX(c *Cpu, addr uint16, mode uint8) { c.X = c.loadOperand(addr, mode); c.setZN(c.X) }
func opLDY(c *Cpu, addr uint16, mode uint8) { c.Y = c.loadOperand(addr, mode); c.setZN(c.Y) }
func opSTA(c *Cpu, addr uint16, mode uint8) { c.storeOperand(addr, mode, c.A) }
func opSTX(c *Cpu, addr uint16, mode uint8) { c.storeOperand(addr, mode, c.X) }
func opSTY(c *Cpu, addr uint16, mode uint8) { c.storeOperand(addr, mode, c.Y) }

// Register transfers.
func opTAX(c *Cpu, addr uint16, mode uint8) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *Cpu, addr uint16, mode uint8) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *Cpu, addr uint16, mode uint8) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *Cpu, addr uint16, mode uint8) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *Cpu, addr uint16, mode uint8) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *Cpu, addr uint16, mode uint8) { c.SP = c.X }

// Stack.
func opPHA(c *Cpu, addr uint16, mode uint8) { c.push8(c.A) }
func opPHP(c *Cpu, addr uint16, mode uint8) { c.push8(c.readStatus(true)) }
func opPLA(c *Cpu, addr uint16, mode uint8) { c.A = c.pop8(); c.setZN(c.A) }
func opPLP(c *Cpu, addr uint16, mode uint8) { c.writeStatus(c.pop8()) }

// ALU.
func (c *Cpu) adc(v uint8) {
	carry := uint16(0)
	if c.getFlag(flagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.setFlag(flagC, sum > 0xFF)
	c.setFlag(flagV, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func opADC(c *Cpu, addr uint16, mode uint8) { c.adc(c.loadOperand(addr, mode)) }

// SBC is ADC with the operand's bits inverted, the same identity
// nes/cpu.go's _add(... ^ 0xFF) uses: borrow is carry-complement, so
// inverting the subtrahend turns subtraction into the same addition path.
func opSBC(c *Cpu, addr uint16, mode uint8) { c.adc(c.loadOperand(addr, mode) ^ 0xFF) }

func (c *Cpu) compare(reg, v uint8) {
	c.setFlag(flagC, reg >= v)
	c.setZN(reg - v)
}
func opCMP(c *Cpu, addr uint16, mode uint8) { c.compare(c.A, c.loadOperand(addr, mode)) }
func opCPX(c *Cpu, addr uint16, mode uint8) { c.compare(c.X, c.loadOperand(addr, mode)) }
func opCPY(c *Cpu, addr uint16, mode uint8) { c.compare(c.Y, c.loadOperand(addr, mode)) }

func opAND(c *Cpu, addr uint16, mode uint8) { c.A &= c.loadOperand(addr, mode); c.setZN(c.A) }
func opORA(c *Cpu, addr uint16, mode uint8) { c.A |= c.loadOperand(addr, mode); c.setZN(c.A) }
func opEOR(c *Cpu, addr uint16, mode uint8) { c.A ^= c.loadOperand(addr, mode); c.setZN(c.A) }

func opBIT(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	c.setFlag(flagZ, c.A&v == 0)
	c.setFlag(flagV, v&0x40 != 0)
	c.setFlag(flagN, v&0x80 != 0)
}

// Increment/decrement. Real hardware writes the unmodified value back
// before the final value on every read-modify-write instruction.
func opINC(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	c.write8(addr, v)
	v++
	c.setZN(v)
	c.storeOperand(addr, mode, v)
}
func opDEC(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	c.write8(addr, v)
	v--
	c.setZN(v)
	c.storeOperand(addr, mode, v)
}
func opINX(c *Cpu, addr uint16, mode uint8) { c.X++; c.setZN(c.X) }
func opINY(c *Cpu, addr uint16, mode uint8) { c.Y++; c.setZN(c.Y) }
func opDEX(c *Cpu, addr uint16, mode uint8) { c.X--; c.setZN(c.X) }
func opDEY(c *Cpu, addr uint16, mode uint8) { c.Y--; c.setZN(c.Y) }

// Shifts/rotates.
func opASL(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	if mode != modeAccumulator {
		c.write8(addr, v)
	}
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	c.storeOperand(addr, mode, v)
}
func opLSR(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	if mode != modeAccumulator {
		c.write8(addr, v)
	}
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	c.storeOperand(addr, mode, v)
}
func opROL(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	if mode != modeAccumulator {
		c.write8(addr, v)
	}
	carryIn := uint8(0)
	if c.getFlag(flagC) {
		carryIn = 1
	}
	c.setFlag(flagC, v&0x80 != 0)
	v = v<<1 | carryIn
	c.setZN(v)
	c.storeOperand(addr, mode, v)
}
func opROR(c *Cpu, addr uint16, mode uint8) {
	v := c.loadOperand(addr, mode)
	if mode != modeAccumulator {
		c.write8(addr, v)
	}
	carryIn := uint8(0)
	if c.getFlag(flagC) {
		carryIn = 0x80
	}
	c.setFlag(flagC, v&0x01 != 0)
	v = v>>1 | carryIn
	c.setZN(v)
	c.storeOperand(addr, mode, v)
}

// Jumps/calls.
func opJMP(c *Cpu, addr uint16, mode uint8) { c.PC = addr }
func opJSR(c *Cpu, addr uint16, mode uint8) { c.push16(c.PC - 1); c.PC = addr }
func opRTS(c *Cpu, addr uint16, mode uint8) { c.PC = c.pop16() + 1 }
func opRTI(c *Cpu, addr uint16, mode uint8) { c.writeStatus(c.pop8()); c.PC = c.pop16() }

// BRK behaves like a 2-byte instruction: the byte after the opcode is a
// padding byte skipped by real hardware's disassemblers, and it pushes
// with B set. A same-cycle NMI hijacks the vector fetch, same as a
// hardware IRQ would.
func opBRK(c *Cpu, addr uint16, mode uint8) {
	c.PC++
	c.push16(c.PC)
	c.push8(c.readStatus(true))
	c.setFlag(flagI, true)
	if c.nmiPending {
		c.PC = c.read16(0xFFFA)
		c.nmiPending = false
	} else {
		c.PC = c.read16(0xFFFE)
	}
}

// Branches. addr is already resolved to the target by modeRelative;
// taking a branch costs one extra cycle, two if it lands on a different
// page than the instruction following the branch.
func (c *Cpu) branch(cond bool, target uint16) {
	if !cond {
		return
	}
	next := c.PC
	c.branchExtra++
	if pageCrossed(next, target) {
		c.branchExtra++
	}
	c.PC = target
}
func opBCC(c *Cpu, addr uint16, mode uint8) { c.branch(!c.getFlag(flagC), addr) }
func opBCS(c *Cpu, addr uint16, mode uint8) { c.branch(c.getFlag(flagC), addr) }
func opBEQ(c *Cpu, addr uint16, mode uint8) { c.branch(c.getFlag(flagZ), addr) }
func opBNE(c *Cpu, addr uint16, mode uint8) { c.branch(!c.getFlag(flagZ), addr) }
func opBMI(c *Cpu, addr uint16, mode uint8) { c.branch(c.getFlag(flagN), addr) }
func opBPL(c *Cpu, addr uint16, mode uint8) { c.branch(!c.getFlag(flagN), addr) }
func opBVC(c *Cpu, addr uint16, mode uint8) { c.branch(!c.getFlag(flagV), addr) }
func opBVS(c *Cpu, addr uint16, mode uint8) { c.branch(c.getFlag(flagV), addr) }

// Flags.
func opCLC(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagC, false) }
func opSEC(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagC, true) }
func opCLD(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagD, false) }
func opSED(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagD, true) }
func opCLI(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagI, false) }
func opSEI(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagI, true) }
func opCLV(c *Cpu, addr uint16, mode uint8) { c.setFlag(flagV, false) }

func opNOP(c *Cpu, addr uint16, mode uint8) {}

const (
	imp = modeImplied
	acc = modeAccumulator
	imm = modeImmediate
	zp  = modeZeroPage
	zpx = modeZeroPageX
	zpy = modeZeroPageY
	abs = modeAbsolute
	abx = modeAbsoluteX
	aby = modeAbsoluteY
	izx = modeIndirectX
	izy = modeIndirectY
	ind = modeIndirect
	rel = modeRelative
)

// opcodeTable is the full 256-entry dispatch table. init first fills every
// entry with a 1-byte, 2-cycle implied NOP and then overwrites the
// official opcodes, so unofficial opcodes run as that NOP, matching the "treat unofficial opcodes as NOP" policy the Rust
// reference this core was ported from also follows.
var opcodeTable [256]opcode

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opcode{name: "NOP*", mode: imp, bytes: 1, cycles: 2, exec: opNOP}
	}
	set := func(code uint8, name string, mode uint8, bytes, cycles uint8, pageCross bool, fn execFunc) {
		opcodeTable[code] = opcode{name: name, mode: mode, bytes: bytes, cycles: cycles, pageCrossExtra: pageCross, exec: fn}
	}

	set(0x00, "BRK", imp, 1, 7, false, opBRK)
	set(0x01, "ORA", izx, 2, 6, false, opORA)
	set(0x05, "ORA", zp, 2, 3, false, opORA)
	set(0x06, "ASL", zp, 2, 5, false, opASL)
	set(0x08, "PHP", imp, 1, 3, false, opPHP)
	set(0x09, "ORA", imm, 2, 2, false, opORA)
	set(0x0A, "ASL", acc, 1, 2, false, opASL)
	set(0x0D, "ORA", abs, 3, 4, false, opORA)
	set(0x0E, "ASL", abs, 3, 6, false, opASL)

	set(0x10, "BPL", rel, 2, 2, false, opBPL)
	set(0x11, "ORA", izy, 2, 5, true, opORA)
	set(0x15, "ORA", zpx, 2, 4, false, opORA)
	set(0x16, "ASL", zpx, 2, 6, false, opASL)
	set(0x18, "CLC", imp, 1, 2, false, opCLC)
	set(0x19, "ORA", aby, 3, 4, true, opORA)
	set(0x1D, "ORA", abx, 3, 4, true, opORA)
	set(0x1E, "ASL", abx, 3, 7, false, opASL)

	set(0x20, "JSR", abs, 3, 6, false, opJSR)
	set(0x21, "AND", izx, 2, 6, false, opAND)
	set(0x24, "BIT", zp, 2, 3, false, opBIT)
	set(0x25, "AND", zp, 2, 3, false, opAND)
	set(0x26, "ROL", zp, 2, 5, false, opROL)
	set(0x28, "PLP", imp, 1, 4, false, opPLP)
	set(0x29, "AND", imm, 2, 2, false, opAND)
	set(0x2A, "ROL", acc, 1, 2, false, opROL)
	set(0x2C, "BIT", abs, 3, 4, false, opBIT)
	set(0x2D, "AND", abs, 3, 4, false, opAND)
	set(0x2E, "ROL", abs, 3, 6, false, opROL)

	set(0x30, "BMI", rel, 2, 2, false, opBMI)
	set(0x31, "AND", izy, 2, 5, true, opAND)
	set(0x35, "AND", zpx, 2, 4, false, opAND)
	set(0x36, "ROL", zpx, 2, 6, false, opROL)
	set(0x38, "SEC", imp, 1, 2, false, opSEC)
	set(0x39, "AND", aby, 3, 4, true, opAND)
	set(0x3D, "AND", abx, 3, 4, true, opAND)
	set(0x3E, "ROL", abx, 3, 7, false, opROL)

	set(0x40, "RTI", imp, 1, 6, false, opRTI)
	set(0x41, "EOR", izx, 2, 6, false, opEOR)
	set(0x45, "EOR", zp, 2, 3, false, opEOR)
	set(0x46, "LSR", zp, 2, 5, false, opLSR)
	set(0x48, "PHA", imp, 1, 3, false, opPHA)
	set(0x49, "EOR", imm, 2, 2, false, opEOR)
	set(0x4A, "LSR", acc, 1, 2, false, opLSR)
	set(0x4C, "JMP", abs, 3, 3, false, opJMP)
	set(0x4D, "EOR", abs, 3, 4, false, opEOR)
	set(0x4E, "LSR", abs, 3, 6, false, opLSR)

	set(0x50, "BVC", rel, 2, 2, false, opBVC)
	set(0x51, "EOR", izy, 2, 5, true, opEOR)
	set(0x55, "EOR", zpx, 2, 4, false, opEOR)
	set(0x56, "LSR", zpx, 2, 6, false, opLSR)
	set(0x58, "CLI", imp, 1, 2, false, opCLI)
	set(0x59, "EOR", aby, 3, 4, true, opEOR)
	set(0x5D, "EOR", abx, 3, 4, true, opEOR)
	set(0x5E, "LSR", abx, 3, 7, false, opLSR)

	set(0x60, "RTS", imp, 1, 6, false, opRTS)
	set(0x61, "ADC", izx, 2, 6, false, opADC)
	set(0x65, "ADC", zp, 2, 3, false, opADC)
	set(0x66, "ROR", zp, 2, 5, false, opROR)
	set(0x68, "PLA", imp, 1, 4, false, opPLA)
	set(0x69, "ADC", imm, 2, 2, false, opADC)
	set(0x6A, "ROR", acc, 1, 2, false, opROR)
	set(0x6C, "JMP", ind, 3, 5, false, opJMP)
	set(0x6D, "ADC", abs, 3, 4, false, opADC)
	set(0x6E, "ROR", abs, 3, 6, false, opROR)

	set(0x70, "BVS", rel, 2, 2, false, opBVS)
	set(0x71, "ADC", izy, 2, 5, true, opADC)
	set(0x75, "ADC", zpx, 2, 4, false, opADC)
	set(0x76, "ROR", zpx, 2, 6, false, opROR)
	set(0x78, "SEI", imp, 1, 2, false, opSEI)
	set(0x79, "ADC", aby, 3, 4, true, opADC)
	set(0x7D, "ADC", abx, 3, 4, true, opADC)
	set(0x7E, "ROR", abx, 3, 7, false, opROR)

	set(0x81, "STA", izx, 2, 6, false, opSTA)
	set(0x84, "STY", zp, 2, 3, false, opSTY)
	set(0x85, "STA", zp, 2, 3, false, opSTA)
	set(0x86, "STX", zp, 2, 3, false, opSTX)
	set(0x88, "DEY", imp, 1, 2, false, opDEY)
	set(0x8A, "TXA", imp, 1, 2, false, opTXA)
	set(0x8C, "STY", abs, 3, 4, false, opSTY)
	set(0x8D, "STA", abs, 3, 4, false, opSTA)
	set(0x8E, "STX", abs, 3, 4, false, opSTX)

	set(0x90, "BCC", rel, 2, 2, false, opBCC)
	set(0x91, "STA", izy, 2, 6, false, opSTA)
	set(0x94, "STY", zpx, 2, 4, false, opSTY)
	set(0x95, "STA", zpx, 2, 4, false, opSTA)
	set(0x96, "STX", zpy, 2, 4, false, opSTX)
	set(0x98, "TYA", imp, 1, 2, false, opTYA)
	set(0x99, "STA", aby, 3, 5, false, opSTA)
	set(0x9A, "TXS", imp, 1, 2, false, opTXS)
	set(0x9D, "STA", abx, 3, 5, false, opSTA)

	set(0xA0, "LDY", imm, 2, 2, false, opLDY)
	set(0xA1, "LDA", izx, 2, 6, false, opLDA)
	set(0xA2, "LDX", imm, 2, 2, false, opLDX)
	set(0xA4, "LDY", zp, 2, 3, false, opLDY)
	set(0xA5, "LDA", zp, 2, 3, false, opLDA)
	set(0xA6, "LDX", zp, 2, 3, false, opLDX)
	set(0xA8, "TAY", imp, 1, 2, false, opTAY)
	set(0xA9, "LDA", imm, 2, 2, false, opLDA)
	set(0xAA, "TAX", imp, 1, 2, false, opTAX)
	set(0xAC, "LDY", abs, 3, 4, false, opLDY)
	set(0xAD, "LDA", abs, 3, 4, false, opLDA)
	set(0xAE, "LDX", abs, 3, 4, false, opLDX)

	set(0xB0, "BCS", rel, 2, 2, false, opBCS)
	set(0xB1, "LDA", izy, 2, 5, true, opLDA)
	set(0xB4, "LDY", zpx, 2, 4, false, opLDY)
	set(0xB5, "LDA", zpx, 2, 4, false, opLDA)
	set(0xB6, "LDX", zpy, 2, 4, false, opLDX)
	set(0xB8, "CLV", imp, 1, 2, false, opCLV)
	set(0xB9, "LDA", aby, 3, 4, true, opLDA)
	set(0xBA, "TSX", imp, 1, 2, false, opTSX)
	set(0xBC, "LDY", abx, 3, 4, true, opLDY)
	set(0xBD, "LDA", abx, 3, 4, true, opLDA)
	set(0xBE, "LDX", aby, 3, 4, true, opLDX)

	set(0xC0, "CPY", imm, 2, 2, false, opCPY)
	set(0xC1, "CMP", izx, 2, 6, false, opCMP)
	set(0xC4, "CPY", zp, 2, 3, false, opCPY)
	set(0xC5, "CMP", zp, 2, 3, false, opCMP)
	set(0xC6, "DEC", zp, 2, 5, false, opDEC)
	set(0xC8, "INY", imp, 1, 2, false, opINY)
	set(0xC9, "CMP", imm, 2, 2, false, opCMP)
	set(0xCA, "DEX", imp, 1, 2, false, opDEX)
	set(0xCC, "CPY", abs, 3, 4, false, opCPY)
	set(0xCD, "CMP", abs, 3, 4, false, opCMP)
	set(0xCE, "DEC", abs, 3, 6, false, opDEC)

	set(0xD0, "BNE", rel, 2, 2, false, opBNE)
	set(0xD1, "CMP", izy, 2, 5, true, opCMP)
	set(0xD5, "CMP", zpx, 2, 4, false, opCMP)
	set(0xD6, "DEC", zpx, 2, 6, false, opDEC)
	set(0xD8, "CLD", imp, 1, 2, false, opCLD)
	set(0xD9, "CMP", aby, 3, 4, true, opCMP)
	set(0xDD, "CMP", abx, 3, 4, true, opCMP)
	set(0xDE, "DEC", abx, 3, 7, false, opDEC)

	set(0xE0, "CPX", imm, 2, 2, false, opCPX)
	set(0xE1, "SBC", izx, 2, 6, false, opSBC)
	set(0xE4, "CPX", zp, 2, 3, false, opCPX)
	set(0xE5, "SBC", zp, 2, 3, false, opSBC)
	set(0xE6, "INC", zp, 2, 5, false, opINC)
	set(0xE8, "INX", imp, 1, 2, false, opINX)
	set(0xE9, "SBC", imm, 2, 2, false, opSBC)
	set(0xEA, "NOP", imp, 1, 2, false, opNOP)
	set(0xEC, "CPX", abs, 3, 4, false, opCPX)
	set(0xED, "SBC", abs, 3, 4, false, opSBC)
	set(0xEE, "INC", abs, 3, 6, false, opINC)

	set(0xF0, "BEQ", rel, 2, 2, false, opBEQ)
	set(0xF1, "SBC", izy, 2, 5, true, opSBC)
	set(0xF5, "SBC", zpx, 2, 4, false, opSBC)
	set(0xF6, "INC", zpx, 2, 6, false, opINC)
	set(0xF8, "SED", imp, 1, 2, false, opSED)
	set(0xF9, "SBC", aby, 3, 4, true, opSBC)
	set(0xFD, "SBC", abx, 3, 4, true, opSBC)
	set(0xFE, "INC", abx, 3, 7, false, opINC)
}
