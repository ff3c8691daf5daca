package video

import (
	"fmt"
	"image/color"
	"runtime"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.2-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	quadVertexShader = `
#version 150
in vec2 position;
in vec2 texCoord;
out vec2 fragTexCoord;
void main() {
	fragTexCoord = texCoord;
	gl_Position = vec4(position, 0.0, 1.0);
}
` + "\x00"

	quadFragmentShader = `
#version 150
in vec2 fragTexCoord;
out vec4 outColor;
uniform sampler2D tex;
void main() {
	outColor = texture(tex, fragTexCoord);
}
` + "\x00"
)

// quad covers the whole clip-space window with a single texture. Built
// as a triangle strip: position.xy, texCoord.uv per vertex.
var quad = []float32{
	-1, 1, 0, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	1, -1, 1, 1,
}

// sdl2GLDisplay is grounded in JetSetIlly-Gopher2600/gui/sdlwindows's
// platform.go (SDL2 window + GL context setup) and gui/sdlimgui's own
// shader-based texture draw (glsl_dbgscr.go, gl32_dbgscr.go), simplified
// down from that repo's full CRT-shader pipeline to the minimum a core
// GL 3.2 profile needs to stream one RGBA texture per frame: a single
// textured quad instead of imgui's widget tree.
type sdl2GLDisplay struct {
	window    *sdl.Window
	glContext sdl.GLContext
	program   uint32
	texture   uint32
	vao, vbo  uint32
	created   bool
	closed    bool
}

func newSDL2GLDisplay() *sdl2GLDisplay {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		panic(err)
	}
	window, err := sdl.CreateWindow("nesgo",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		FrameWidth*windowScale, FrameHeight*windowScale, sdl.WINDOW_OPENGL)
	if err != nil {
		sdl.Quit()
		panic(err)
	}

	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	glContext, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		panic(err)
	}
	if err := window.GLMakeCurrent(glContext); err != nil {
		window.Destroy()
		sdl.Quit()
		panic(err)
	}
	if err := gl.Init(); err != nil {
		panic(err)
	}
	_ = sdl.GLSetSwapInterval(1)

	d := &sdl2GLDisplay{window: window, glContext: glContext}
	d.program = mustLinkProgram(quadVertexShader, quadFragmentShader)
	d.setupQuad()

	gl.GenTextures(1, &d.texture)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	return d
}

func (d *sdl2GLDisplay) setupQuad() {
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	posAttr := uint32(gl.GetAttribLocation(d.program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(posAttr)
	gl.VertexAttribPointer(posAttr, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))

	texAttr := uint32(gl.GetAttribLocation(d.program, gl.Str("texCoord\x00")))
	gl.EnableVertexAttribArray(texAttr)
	gl.VertexAttribPointer(texAttr, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
}

func (d *sdl2GLDisplay) Frame(img *[FrameWidth * FrameHeight]color.RGBA) {
	if d.closed {
		return
	}
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			d.closed = true
			return
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	ptr := unsafe.Pointer(img)
	if !d.created {
		d.created = true
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, FrameWidth, FrameHeight, 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, FrameWidth, FrameHeight, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(d.program)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	d.window.GLSwap()
}

// SDLWindow and GLContext implement SDL2Windowed for debugoverlay.
func (d *sdl2GLDisplay) SDLWindow() *sdl.Window    { return d.window }
func (d *sdl2GLDisplay) GLContext() sdl.GLContext  { return d.glContext }

func (d *sdl2GLDisplay) Closed() bool { return d.closed }

func (d *sdl2GLDisplay) Close() {
	if d.closed {
		return
	}
	d.closed = true
	sdl.GLDeleteContext(d.glContext)
	d.window.Destroy()
	sdl.Quit()
}

func mustLinkProgram(vertexSrc, fragmentSrc string) uint32 {
	vs := mustCompileShader(vertexSrc, gl.VERTEX_SHADER)
	fs := mustCompileShader(fragmentSrc, gl.FRAGMENT_SHADER)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		panic(fmt.Sprintf("video: failed to link shader program: %v", log))
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program
}

func mustCompileShader(src string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	cSrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, cSrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		panic(fmt.Sprintf("video: failed to compile shader: %v", log))
	}
	return shader
}
