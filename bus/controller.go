package bus

// Controllers models the two standard-controller shift registers exposed
// at $4016 (port 0, plus the strobe write) and $4017 (port 1 read side).
//
// Grounded on nes/controller.go's latch/shift register pair, corrected in
// two places per spec.md §6: reads past the 8th bit return all-ones (the
// teacher's version returns 0), and the strobe only re-latches button
// state on a 1->0 transition of bit 0 (the teacher re-latches on every
// write while the line is high, which also re-latches on a constant-1
// write sequence).
type Controllers struct {
	state  [2]uint8 // live button state, set by the host via SetButtons
	shift  [2]uint8
	strobe bool
}

// SetButtons is called by the host once per frame (or on input events) to
// load the live button state that will be latched on the next strobe.
func (c *Controllers) SetButtons(port int, buttons uint8) {
	c.state[port] = buttons
}

// Write handles a $4016 write; only bit 0 (the strobe line) is used.
func (c *Controllers) Write(val uint8) {
	strobe := val&0x01 != 0
	if c.strobe && !strobe {
		// Falling edge: latch the current button state into both shift
		// registers.
		c.shift[0] = c.state[0]
		c.shift[1] = c.state[1]
	}
	c.strobe = strobe
	if c.strobe {
		// While strobe is held high the registers continuously reload,
		// so the first bit read back is always button A regardless of
		// how many reads happened before the edge.
		c.shift[0] = c.state[0]
		c.shift[1] = c.state[1]
	}
}

// Read returns the next button bit for the given port (0 or 1) in bit 0,
// with the upper bits set as open-bus convention dictates (1 here, since
// real hardware ORs in bits from the expansion port that float high).
// After 8 reads, and on every subsequent read until the next strobe,
// returns all-ones.
func (c *Controllers) Read(port int) uint8 {
	if c.strobe {
		return 0x40 | c.state[port]&0x01
	}
	bit := c.shift[port] & 0x01
	c.shift[port] = c.shift[port]>>1 | 0x80
	return 0x40 | bit
}
