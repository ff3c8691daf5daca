// Package cartridge parses the iNES 1.0 ROM container and dispatches to a
// mapper implementation for bank switching.
//
// Grounded on nes/cartridge.go's binary.Read header parser; the
// unsafe.Pointer-based multi-version reader in nes/iNES_format.go was read
// but not reused, since spec scope is iNES 1.0 only and a tagged struct +
// encoding/binary is the idiomatic fit.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
	"github.com/nesgo/nesgo/romerr"
)

const (
	headerSize    = 16
	trainerSize   = 512
	prgBankSize   = 16 * 1024
	chrBankSize   = 8 * 1024
	prgRAMDefault = 8 * 1024
)

var magic = [4]byte{'N', 'E', 'S', 0x1A}

// Mirroring describes how the PPU's 2 KiB of nametable VRAM is replicated
// across its $2000-$2FFF window. Completed to all five variants named by
// spec.md's mapper contract (the teacher's own nametable.go only
// implements the first two and panics on the rest); mappers 7 and 9/10
// require SingleScreenA/B to function at all.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	SingleScreenA
	SingleScreenB
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case SingleScreenA:
		return "single-screen-a"
	case SingleScreenB:
		return "single-screen-b"
	case FourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// header is the 16-byte iNES 1.0 container header.
type header struct {
	Magic    [4]byte
	PRGCount uint8
	CHRCount uint8
	Flags6   uint8
	Flags7   uint8
	Flags8   uint8
	Flags9   uint8
	Flags10  uint8
	_        [5]byte
}

// Info is the header-derived metadata exposed to the outer emulator and
// to mappers.
type Info struct {
	Mapper        int
	Mirroring     Mirroring
	Battery       bool
	FourScreen    bool
	Trainer       bool
	PRGROMSize    uint32
	CHRROMSize    uint32
	HasCHRRAM     bool
}

// Mapper is the contract every bank-switch implementation must satisfy.
// Dispatch happens on the CPU and PPU bus hot paths, so it stays a small,
// closed, interface-typed set rather than a virtual dispatch chain that
// grows per mapper quirk.
type Mapper interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() Mirroring
	IRQPending() bool
	// OnPPUA12Rise notifies mappers (MMC3) that drive a scanline IRQ
	// counter off rising edges of PPU address line A12.
	OnPPUA12Rise()
	// CPUTick lets a mapper observe CPU cycles for timing that isn't
	// A12-edge driven. Most mappers leave this empty.
	CPUTick()
	Reset()
}

// Cartridge owns the ROM/RAM images and the active mapper.
type Cartridge struct {
	Info Info

	PRGROM []byte
	CHRROM []byte // may be CHR RAM, see Info.HasCHRRAM
	PRGRAM []byte

	Mapper Mapper
}

// Load parses an iNES 1.0 byte blob and constructs the matching mapper.
func Load(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, romerr.New(romerr.RomFormat, "file too short for a header (%d bytes)", len(data))
	}
	var h header
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, romerr.New(romerr.RomFormat, "failed to read header: %v", err)
	}
	if h.Magic != magic {
		return nil, romerr.New(romerr.RomFormat, "bad magic %v", h.Magic)
	}

	trainerPresent := h.Flags6&0x04 != 0
	offset := headerSize
	if trainerPresent {
		// Trainers predate a documented use case the conformance
		// scenarios need; out of scope per spec.md's UnsupportedFeature
		// class rather than silently skipped.
		return nil, romerr.New(romerr.UnsupportedFeature, "trainer present but not supported")
	}

	prgSize := int(h.PRGCount) * prgBankSize
	if offset+prgSize > len(data) {
		return nil, romerr.New(romerr.RomFormat, "truncated PRG ROM: need %d bytes, have %d", prgSize, len(data)-offset)
	}
	prg := data[offset : offset+prgSize]
	offset += prgSize

	hasCHRRAM := h.CHRCount == 0
	var chr []byte
	if hasCHRRAM {
		chr = make([]byte, chrBankSize)
	} else {
		chrSize := int(h.CHRCount) * chrBankSize
		if offset+chrSize > len(data) {
			return nil, romerr.New(romerr.RomFormat, "truncated CHR ROM: need %d bytes, have %d", chrSize, len(data)-offset)
		}
		chr = data[offset : offset+chrSize]
		offset += chrSize
	}

	mapperNum := int(h.Flags7&0xF0) | int(h.Flags6>>4)
	fourScreen := h.Flags6&0x08 != 0
	mirror := Horizontal
	if h.Flags6&0x01 != 0 {
		mirror = Vertical
	}
	if fourScreen {
		mirror = FourScreen
	}

	c := &Cartridge{
		Info: Info{
			Mapper:     mapperNum,
			Mirroring:  mirror,
			Battery:    h.Flags6&0x02 != 0,
			FourScreen: fourScreen,
			Trainer:    trainerPresent,
			PRGROMSize: uint32(prgSize),
			CHRROMSize: uint32(len(chr)),
			HasCHRRAM:  hasCHRRAM,
		},
		PRGROM: prg,
		CHRROM: chr,
		PRGRAM: make([]byte, prgRAMDefault),
	}

	mapper, err := newMapper(mapperNum, c)
	if err != nil {
		return nil, err
	}
	c.Mapper = mapper
	glog.V(1).Infof("cartridge: mapper=%d mirroring=%s prg=%dKiB chr=%dKiB chrRAM=%v",
		mapperNum, mirror, len(prg)/1024, len(chr)/1024, hasCHRRAM)
	return c, nil
}

func newMapper(n int, c *Cartridge) (Mapper, error) {
	switch n {
	case 0:
		return newNROM(c), nil
	case 1:
		return newMMC1(c), nil
	case 2:
		return newUxROM(c), nil
	case 3:
		return newCNROM(c), nil
	case 4:
		return newMMC3(c), nil
	case 7:
		return newAxROM(c), nil
	case 9, 10:
		return newMMC2(c, n == 10), nil
	case 11:
		return newColorDreams(c), nil
	case 66:
		return newGxROM(c), nil
	default:
		return nil, romerr.UnsupportedMapperError(n)
	}
}

// Reset asks the active mapper to reinitialize its bank state.
func (c *Cartridge) Reset() {
	c.Mapper.Reset()
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("mapper %d (%s), prg=%dKiB chr=%dKiB", c.Info.Mapper, c.Info.Mirroring,
		len(c.PRGROM)/1024, len(c.CHRROM)/1024)
}
