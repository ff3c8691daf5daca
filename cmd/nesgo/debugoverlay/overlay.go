// Package debugoverlay draws a read-only register/VRAM inspector on top of
// the sdl2gl video backend. It is not part of the emulation core: it only
// reads nes.Emulator state through exported fields and accessor methods,
// the same way an external debugger would.
//
// Grounded on JetSetIlly-Gopher2600/gui/sdlimgui's imgui+go-gl renderer
// (gl32.go's draw-data translation, win_cpu.go's register windows),
// simplified to a single GUI shader and a handful of inspector windows
// instead of that repo's full windowed debugger and CRT shader pipeline.
package debugoverlay

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.2-core/gl"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/nesgo/nesgo/video"
)

const (
	vertexShader = `
#version 150
uniform mat4 proj;
in vec2 position;
in vec2 uv;
in vec4 color;
out vec2 fragUV;
out vec4 fragColor;
void main() {
	fragUV = uv;
	fragColor = color;
	gl_Position = proj * vec4(position.xy, 0, 1);
}
` + "\x00"

	fragmentShader = `
#version 150
uniform sampler2D tex;
in vec2 fragUV;
in vec4 fragColor;
out vec4 outColor;
void main() {
	outColor = fragColor * texture(tex, fragUV.st);
}
` + "\x00"
)

// Overlay renders imgui windows into the same GL context a sdl2gl
// video.Display owns. It is entirely optional: a console run without one
// behaves exactly as if it didn't exist.
type Overlay struct {
	window video.SDL2Windowed

	context *imgui.Context
	io      imgui.IO

	program              uint32
	projLoc              int32
	positionLoc, uvLoc   int32
	colorLoc, textureLoc int32
	vbo, ebo             uint32
	fontTexture          uint32

	visible bool
}

// New attaches an overlay to an sdl2gl display. It returns an error (not a
// panic) if display isn't a video.SDL2Windowed, since running without a
// debug overlay is always a valid choice, unlike an unknown video/audio
// backend name.
func New(display video.Display) (*Overlay, error) {
	win, ok := display.(video.SDL2Windowed)
	if !ok {
		return nil, fmt.Errorf("debugoverlay: video backend does not support overlays")
	}

	o := &Overlay{window: win, visible: true}
	o.context = imgui.CreateContext(nil)
	o.io = imgui.CurrentIO()
	o.io.SetIniFilename("")

	o.program = mustLinkProgram(vertexShader, fragmentShader)
	o.projLoc = gl.GetUniformLocation(o.program, gl.Str("proj\x00"))
	o.textureLoc = gl.GetUniformLocation(o.program, gl.Str("tex\x00"))
	o.positionLoc = gl.GetAttribLocation(o.program, gl.Str("position\x00"))
	o.uvLoc = gl.GetAttribLocation(o.program, gl.Str("uv\x00"))
	o.colorLoc = gl.GetAttribLocation(o.program, gl.Str("color\x00"))

	gl.GenBuffers(1, &o.vbo)
	gl.GenBuffers(1, &o.ebo)

	o.uploadFontTexture()

	return o, nil
}

func (o *Overlay) uploadFontTexture() {
	image := o.io.Fonts().TextureDataAlpha8()

	gl.GenTextures(1, &o.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, o.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height), 0,
		gl.RED, gl.UNSIGNED_BYTE, image.Pixels)

	o.io.Fonts().SetTextureID(imgui.TextureID(o.fontTexture))
}

// Close releases the GL and imgui resources the overlay owns. It does not
// touch the underlying video.Display.
func (o *Overlay) Close() {
	gl.DeleteProgram(o.program)
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteBuffers(1, &o.ebo)
	gl.DeleteTextures(1, &o.fontTexture)
	o.context.Destroy()
}

func mustLinkProgram(vertexSrc, fragmentSrc string) uint32 {
	compile := func(src string, kind uint32) uint32 {
		shader := gl.CreateShader(kind)
		csources, free := gl.Strs(src)
		gl.ShaderSource(shader, 1, csources, nil)
		free()
		gl.CompileShader(shader)
		return shader
	}

	vs := compile(vertexSrc, gl.VERTEX_SHADER)
	fs := compile(fragmentSrc, gl.FRAGMENT_SHADER)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program
}

// renderDrawData translates imgui's vertex/index buffers into GL 3.2 core
// draw calls, grounded on gl32.go's render() but collapsed to the single
// GUI shader this overlay needs (no per-texture-type shader table).
func (o *Overlay) renderDrawData(drawData imgui.DrawData) {
	displayWidth, displayHeight := o.io.DisplaySize().X, o.io.DisplaySize().Y
	if displayWidth <= 0 || displayHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(o.io.DisplayFramebufferScale())

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	orthoProjection := [4][4]float32{
		{2.0 / displayWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displayHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	gl.UseProgram(o.program)
	gl.Uniform1i(o.textureLoc, 0)
	gl.UniformMatrix4fv(o.projLoc, 1, false, &orthoProjection[0][0])

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.EnableVertexAttribArray(uint32(o.positionLoc))
	gl.EnableVertexAttribArray(uint32(o.uvLoc))
	gl.EnableVertexAttribArray(uint32(o.colorLoc))

	vertexSize, vertexOffsetPos, vertexOffsetUV, vertexOffsetColor := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, o.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		gl.VertexAttribPointer(uint32(o.positionLoc), 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(vertexOffsetPos))
		gl.VertexAttribPointer(uint32(o.uvLoc), 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(vertexOffsetUV))
		gl.VertexAttribPointer(uint32(o.colorLoc), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(vertexOffsetColor))

		var indexBufferOffset uintptr
		for _, cmd := range list.Commands() {
			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), int32(displayHeight-clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
			gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
			gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, indexBufferOffset)
			indexBufferOffset += uintptr(cmd.ElementCount()) * uintptr(indexSize)
		}
	}

	gl.DeleteVertexArrays(1, &vao)
	gl.Disable(gl.SCISSOR_TEST)
}
