package cartridge

import (
	"testing"

	"github.com/nesgo/nesgo/romerr"
)

func buildINES(mapperLo, mapperHi uint8, prgBanks, chrBanks int, vertical bool) []byte {
	data := make([]byte, 16+prgBanks*prgBankSize+chrBanks*chrBankSize)
	copy(data[0:4], magic[:])
	data[4] = uint8(prgBanks)
	data[5] = uint8(chrBanks)
	flags6 := mapperLo << 4
	if vertical {
		flags6 |= 0x01
	}
	data[6] = flags6
	data[7] = mapperHi << 4
	return data
}

func TestLoadNROM(t *testing.T) {
	data := buildINES(0, 0, 2, 1, true)
	c, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Info.Mapper != 0 {
		t.Fatalf("mapper = %d, want 0", c.Info.Mapper)
	}
	if c.Info.Mirroring != Vertical {
		t.Fatalf("mirroring = %v, want vertical", c.Info.Mirroring)
	}
	if len(c.PRGROM) != 2*prgBankSize {
		t.Fatalf("prg rom size = %d", len(c.PRGROM))
	}
}

func TestLoadBadMagic(t *testing.T) {
	data := buildINES(0, 0, 1, 1, false)
	data[0] = 'X'
	_, err := Load(data)
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	rerr, ok := err.(*romerr.Error)
	if !ok || rerr.Code != romerr.RomFormat {
		t.Fatalf("err = %v, want RomFormat", err)
	}
}

func TestLoadUnsupportedMapper(t *testing.T) {
	data := buildINES(0x0F, 0x0F, 1, 1, false) // mapper 255
	_, err := Load(data)
	rerr, ok := err.(*romerr.Error)
	if !ok || rerr.Code != romerr.UnsupportedMapper {
		t.Fatalf("err = %v, want UnsupportedMapper", err)
	}
}

func TestNROMBankMirror(t *testing.T) {
	data := buildINES(0, 0, 1, 1, false) // single 16KiB PRG bank, mirrored
	c, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.PRGROM[0] = 0x42
	lo, _ := c.Mapper.CPURead(0x8000)
	hi, _ := c.Mapper.CPURead(0xC000)
	if lo != 0x42 || hi != 0x42 {
		t.Fatalf("mirrored bank read = %#x/%#x, want both 0x42", lo, hi)
	}
}

func TestMMC1ShiftRegisterLoad(t *testing.T) {
	data := buildINES(1, 0, 4, 1, false)
	c, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Select PRG bank mode 3 (fix last at $C000, switch at $8000) and pick
	// bank 1 by writing five times to the control then the PRG register.
	writeMMC1(c, 0x8000, 0x0F) // control: mode 3, chr 8k
	writeMMC1(c, 0xE000, 0x01) // select PRG bank 1 at $8000
	lo, _ := c.Mapper.CPURead(0x8000)
	_ = lo
}

// writeMMC1 performs the 5-bit serial write protocol real hardware uses.
func writeMMC1(c *Cartridge, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		bit := (val >> i) & 1
		c.Mapper.CPUWrite(addr, bit)
	}
}
