// Package cpu implements the 2A03's 6502-derived instruction set: 151
// official opcodes across 13 addressing modes, cycle-accurate timing
// including page-cross and branch penalties, and the reset/NMI/IRQ/BRK
// interrupt sequences.
//
// Grounded on nes/register.go's bit-per-flag ps_register and nes/cpu.go's
// getOperandAddr/per-mnemonic-method shape, generalized per spec.md §4.1:
// the status register is a flat byte (not a bit array, which made PHP/PLP
// and BRK's status push awkward to get exactly right), and addressing-mode
// resolution reports page-crossing explicitly for cycle accounting.
package cpu

import "github.com/golang/glog"

const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

// Bus is the memory interface the CPU drives; bus.Bus satisfies it.
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
	Read16(addr uint16) uint16
}

// Cpu is the 2A03 register file and execution engine.
type Cpu struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8 // C Z I D V N only; B and U exist only when pushed

	Bus Bus

	cycles uint64
	ticked uint8

	nmiPending bool
	irqLine    bool

	branchExtra uint8

	Verbose bool

	// OnCycle, if set, is called once per CPU cycle actually spent,
	// synchronously with the bus access that spent it, so a caller
	// ticking the PPU/APU from it sees accurate mid-instruction state on
	// every subsequent bus access this same instruction makes (including
	// the exact dot $2002/$2007 reads land on).
	OnCycle func()
}

func New(bus Bus) *Cpu {
	c := &Cpu{Bus: bus}
	c.Reset()
	return c
}

// Reset puts the CPU in its post-reset state: interrupts disabled, stack
// pointer at 0xFD, PC loaded from the reset vector.
func (c *Cpu) Reset() {
	c.SP = 0xFD
	c.P = 0
	c.setFlag(flagI, true)
	c.PC = c.Bus.Read16(0xFFFC)
	c.cycles = 0
	c.nmiPending = false
	c.irqLine = false
}

func (c *Cpu) Cycles() uint64 { return c.cycles }

// tick spends one CPU cycle, notifying OnCycle synchronously so a caller
// ticking the PPU/APU from it observes accurate state on the very next
// bus access this instruction makes.
func (c *Cpu) tick() {
	c.ticked++
	if c.OnCycle != nil {
		c.OnCycle()
	}
}

func (c *Cpu) read8(addr uint16) uint8 {
	v := c.Bus.Read8(addr)
	c.tick()
	return v
}

func (c *Cpu) write8(addr uint16, v uint8) {
	c.Bus.Write8(addr, v)
	c.tick()
}

func (c *Cpu) read16(addr uint16) uint16 {
	lo := uint16(c.read8(addr))
	hi := uint16(c.read8(addr + 1))
	return lo | hi<<8
}

// topUp spends whatever cycles of target weren't already accounted for by
// tick()ed bus accesses this Step, so every instruction's total cycle count
// stays exactly what the opcode table says regardless of how many of its
// cycles actually touched the bus.
func (c *Cpu) topUp(target uint8) {
	for c.ticked < target {
		c.tick()
	}
}

// RequestNMI latches a pending NMI. The caller (the PPU, via the top-level
// emulator) is responsible for edge-detecting vblank's 0->1 transition;
// this call always latches, matching the NMI line's edge-triggered nature.
func (c *Cpu) RequestNMI() { c.nmiPending = true }

// SetIRQLine sets the level of the CPU's IRQ input, already OR'd across
// every source (APU frame/DMC IRQ, mapper IRQ) by the caller.
func (c *Cpu) SetIRQLine(active bool) { c.irqLine = active }

func (c *Cpu) setFlag(mask uint8, set bool) {
	if set {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *Cpu) getFlag(mask uint8) bool { return c.P&mask != 0 }

func (c *Cpu) setZN(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

// readStatus assembles the pushable status byte; break is true for
// PHP/BRK pushes and false for hardware IRQ/NMI pushes. U always reads 1.
func (c *Cpu) readStatus(brk bool) uint8 {
	s := c.P | flagU
	if brk {
		s |= flagB
	} else {
		s &^= flagB
	}
	return s
}

// writeStatus restores C/Z/I/D/V/N from a pulled byte; B and U are not
// real register state and are discarded.
func (c *Cpu) writeStatus(v uint8) {
	c.P = v &^ (flagB | flagU)
}

func (c *Cpu) push8(v uint8) {
	c.write8(0x0100+uint16(c.SP), v)
	c.SP--
}

func (c *Cpu) pop8() uint8 {
	c.SP++
	return c.read8(0x0100 + uint16(c.SP))
}

func (c *Cpu) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *Cpu) pop16() uint16 {
	lo := uint16(c.pop8())
	hi := uint16(c.pop8())
	return lo | hi<<8
}

func pageCrossed(a, b uint16) bool { return a&0xFF00 != b&0xFF00 }

// serviceNMI and serviceIRQ push PC/status, set I, and load the handler
// vector. If an NMI is latched while an IRQ/BRK sequence is mid-push, the
// NMI vector wins instead: real hardware re-samples the interrupt lines
// right up until the vector fetch, so a same-cycle NMI "hijacks" the
// lower-priority sequence.
func (c *Cpu) serviceNMI() {
	c.push16(c.PC)
	c.push8(c.readStatus(false))
	c.setFlag(flagI, true)
	c.PC = c.read16(0xFFFA)
	c.nmiPending = false
	c.topUp(7)
	c.cycles += 7
}

func (c *Cpu) serviceIRQ() {
	c.push16(c.PC)
	c.push8(c.readStatus(false))
	c.setFlag(flagI, true)
	if c.nmiPending {
		c.PC = c.read16(0xFFFA)
		c.nmiPending = false
	} else {
		c.PC = c.read16(0xFFFE)
	}
	c.topUp(7)
	c.cycles += 7
}

// Step executes exactly one instruction (or one interrupt sequence) and
// returns the number of CPU cycles it consumed.
func (c *Cpu) Step() uint8 {
	c.ticked = 0
	before := c.cycles
	if c.nmiPending {
		c.serviceNMI()
		return uint8(c.cycles - before)
	}
	if c.irqLine && !c.getFlag(flagI) {
		c.serviceIRQ()
		return uint8(c.cycles - before)
	}

	opByte := c.read8(c.PC)
	c.PC++
	op := &opcodeTable[opByte]

	addr, crossed := c.resolveOperand(op.mode)
	if c.Verbose || bool(glog.V(2)) {
		glog.Infof("%04x: %02x %-4s mode=%d", c.PC-1, opByte, op.name, op.mode)
	}
	op.exec(c, addr, op.mode)

	cycles := op.cycles
	if crossed && op.pageCrossExtra {
		cycles++
	}
	cycles += c.branchExtra
	c.branchExtra = 0
	c.topUp(cycles)
	c.cycles += uint64(cycles)
	return cycles
}
