package nes

import (
	"os"
	"testing"
)

// buildNROM assembles a minimal one-bank iNES 1.0 image (mapper 0, 16 KiB
// PRG mirrored across $8000-$FFFF, 8 KiB CHR) running a tight loop at
// $8000, in the style of the teacher's loadEasyCode hex-dump tests but
// built as a real cartridge image instead of poking CPU-visible RAM.
func buildNROM(t *testing.T) string {
	t.Helper()
	prg := make([]byte, 16*1024)
	// LDA #$01 ; STA $2000 ; JMP $8000
	copy(prg, []byte{0xA9, 0x01, 0x8D, 0x00, 0x20, 0x4C, 0x00, 0x80})
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80 // reset vector -> $8000

	chr := make([]byte, 8*1024)

	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	data := append(append(header, prg...), chr...)

	f, err := os.CreateTemp(t.TempDir(), "*.nes")
	if err != nil {
		t.Fatalf("failed to create temp ROM: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatalf("failed to write temp ROM: %v", err)
	}
	return f.Name()
}

func TestNewWiresAndResetsAtPowerOn(t *testing.T) {
	path := buildNROM(t)
	e, err := New(CartridgeFile(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.CPU.PC != 0x8000 {
		t.Fatalf("expected PC at reset vector $8000, got $%04X", e.CPU.PC)
	}
}

func TestStepInstructionAdvancesPC(t *testing.T) {
	path := buildNROM(t)
	e, err := New(CartridgeFile(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	start := e.CPU.PC
	if _, err := e.StepInstruction(); err != nil { // LDA #$01
		t.Fatalf("StepInstruction failed: %v", err)
	}
	if e.CPU.PC == start {
		t.Fatalf("expected PC to advance after one instruction")
	}
	if e.CPU.A != 0x01 {
		t.Fatalf("expected A=1 after LDA #$01, got %d", e.CPU.A)
	}
}

func TestStepFrameCompletesAFullFrame(t *testing.T) {
	path := buildNROM(t)
	e, err := New(CartridgeFile(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	before := e.PPU.Frame()
	if err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame failed: %v", err)
	}
	if e.PPU.Frame() != before+1 {
		t.Fatalf("expected exactly one frame to complete, went from %d to %d", before, e.PPU.Frame())
	}
}

func TestSetButtonStateReachesControllerPort(t *testing.T) {
	path := buildNROM(t)
	e, err := New(CartridgeFile(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.SetButtonState(0, 0x01)
	e.Bus.Write8(0x4016, 0x01)
	e.Bus.Write8(0x4016, 0x00)
	if v := e.Bus.Read8(0x4016); v&0x01 == 0 {
		t.Fatalf("expected controller port 0's A button bit set, got %08b", v)
	}
}

func TestResetReturnsToPowerOnVector(t *testing.T) {
	path := buildNROM(t)
	e, err := New(CartridgeFile(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := e.StepInstruction(); err != nil {
			t.Fatalf("StepInstruction failed: %v", err)
		}
	}
	e.Reset()
	if e.CPU.PC != 0x8000 {
		t.Fatalf("expected reset to return PC to $8000, got $%04X", e.CPU.PC)
	}
}

func TestSpriteLimitOptionPropagatesToPPU(t *testing.T) {
	path := buildNROM(t)
	e, err := New(CartridgeFile(path), SpriteLimit(false))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.PPU.SpriteLimit {
		t.Fatalf("expected SpriteLimit(false) to propagate to the PPU")
	}
}
