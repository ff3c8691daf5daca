package debugoverlay

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/nesgo/nesgo/nes"
)

// Render draws one frame of the overlay on top of whatever the console
// already rendered to the shared GL context. A no-op when the overlay is
// hidden, so the run loop can call it unconditionally every frame.
func (o *Overlay) Render(emu *nes.Emulator) {
	if !o.visible {
		return
	}

	w, h := o.window.SDLWindow().GetSize()
	o.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})
	o.io.SetDeltaTime(1.0 / 60.0)

	imgui.NewFrame()
	drawCPUWindow(emu)
	drawPPUWindow(emu)
	drawOAMWindow(emu)
	drawPaletteWindow(emu)
	imgui.Render()

	o.renderDrawData(imgui.RenderedDrawData())
}

func drawCPUWindow(emu *nes.Emulator) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("CPU", nil, imgui.WindowFlagsAlwaysAutoResize)

	c := emu.CPU
	imgui.Text(fmt.Sprintf("PC %04X", c.PC))
	imgui.Text(fmt.Sprintf("A  %02X", c.A))
	imgui.Text(fmt.Sprintf("X  %02X", c.X))
	imgui.Text(fmt.Sprintf("Y  %02X", c.Y))
	imgui.Text(fmt.Sprintf("SP %02X", c.SP))
	imgui.Text(fmt.Sprintf("Cycles %d", c.Cycles()))

	imgui.Separator()
	imgui.Text(statusString(c.P))

	imgui.End()
}

// statusString renders the packed P register MSB-first as the usual
// N V _ B D I Z C letters, upper-case when the bit is set.
func statusString(p uint8) string {
	const bits = "nv_bdizc"
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		bit := byte(1) << uint(7-i)
		ch := bits[i]
		if p&bit != 0 && ch != '_' {
			ch = ch - 'a' + 'A'
		}
		out[i] = ch
	}
	return string(out)
}

func drawPPUWindow(emu *nes.Emulator) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 180}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("PPU", nil, imgui.WindowFlagsAlwaysAutoResize)

	ctrl, mask, status := emu.PPU.Registers()
	scanline, dot := emu.PPU.ScanlineDot()
	v, t := emu.PPU.VRAMAddr()

	imgui.Text(fmt.Sprintf("PPUCTRL   %08b", ctrl))
	imgui.Text(fmt.Sprintf("PPUMASK   %08b", mask))
	imgui.Text(fmt.Sprintf("PPUSTATUS %08b", status))
	imgui.Text(fmt.Sprintf("scanline %4d dot %3d frame %d", scanline, dot, emu.PPU.Frame()))
	imgui.Text(fmt.Sprintf("v=%04X t=%04X", v, t))

	imgui.End()
}

func drawOAMWindow(emu *nes.Emulator) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 300, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("OAM", nil, imgui.WindowFlagsAlwaysAutoResize)

	oam := emu.PPU.OAM()
	for sprite := 0; sprite < 64; sprite++ {
		base := sprite * 4
		imgui.Text(fmt.Sprintf("#%02d y=%3d tile=%02X attr=%02X x=%3d",
			sprite, oam[base], oam[base+1], oam[base+2], oam[base+3]))
	}

	imgui.End()
}

func drawPaletteWindow(emu *nes.Emulator) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 300, Y: 180}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("Palette", nil, imgui.WindowFlagsAlwaysAutoResize)

	ram := emu.PPU.PaletteRAM()
	for row := 0; row < 4; row++ {
		line := ""
		for col := 0; col < 8; col++ {
			line += fmt.Sprintf("%02X ", ram[row*8+col])
		}
		imgui.Text(line)
	}

	imgui.End()
}
