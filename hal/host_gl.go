//go:build cgo

package hal

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// glHAL drives a real OpenGL 4.1 core context through GLFW.
type glHAL struct {
	cfg    GLConfig
	logger Logger
	inited bool
	win    *glWindow
}

// NewGL returns the GLFW/OpenGL backend. Nothing touches the driver until
// CreateWindow.
func NewGL(cfg GLConfig, logger Logger) HAL {
	if logger == nil {
		logger = Discard
	}
	return &glHAL{cfg: cfg, logger: logger}
}

func (h *glHAL) Logger() Logger       { return h.logger }
func (h *glHAL) Windowing() Windowing { return h }
func (h *glHAL) Context() Context     { return h }
func (h *glHAL) Pipeline() Pipeline   { return h }
func (h *glHAL) Buffers() Buffers     { return h }

func (h *glHAL) CreateWindow(width, height int, title string) (Window, error) {
	if !h.inited {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("glfw init: %w", err)
		}
		h.inited = true
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	h.win = &glWindow{w: w}
	return h.win, nil
}

func (h *glHAL) PollEvents() { glfw.PollEvents() }

func (h *glHAL) Terminate() {
	if !h.inited {
		return
	}
	glfw.Terminate()
	h.inited = false
}

type glWindow struct {
	w *glfw.Window
}

func (w *glWindow) ShouldClose() bool { return w.w.ShouldClose() }
func (w *glWindow) SwapBuffers()      { w.w.SwapBuffers() }

// Size is the framebuffer size, which differs from the window size on
// high-DPI displays.
func (w *glWindow) Size() (int, int) { return w.w.GetFramebufferSize() }

func (w *glWindow) Destroy() { w.w.Destroy() }

func (h *glHAL) MakeCurrent(w Window) error {
	gw, ok := w.(*glWindow)
	if !ok {
		return fmt.Errorf("gl: cannot make %T current", w)
	}
	gw.w.MakeContextCurrent()
	glfw.SwapInterval(h.cfg.SwapInterval)
	return nil
}

func (h *glHAL) LoadEntryPoints() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	h.logger.WriteLineString("gl: OpenGL " + gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

func (h *glHAL) Viewport(x, y, w, hh int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(hh))
}

func (h *glHAL) ClearColor(c Color) { gl.ClearColor(c.R, c.G, c.B, c.A) }
func (h *glHAL) Clear()             { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (h *glHAL) SetWireframe(on bool) error {
	mode := uint32(gl.FILL)
	if on {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	return nil
}

func (h *glHAL) Language() ShadingLanguage { return GLSL }

var glStages = map[Stage]uint32{
	VertexStage:   gl.VERTEX_SHADER,
	FragmentStage: gl.FRAGMENT_SHADER,
}

func (h *glHAL) CompileShader(stage Stage, src string) (Shader, error) {
	typ, ok := glStages[stage]
	if !ok {
		return 0, fmt.Errorf("compile shader: unsupported stage %d", stage)
	}
	handle := gl.CreateShader(typ)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("compile %s shader: %s", stage, strings.TrimRight(msg, "\x00\n"))
	}
	return Shader(handle), nil
}

func (h *glHAL) LinkProgram(shaders ...Shader) (Program, error) {
	if len(shaders) == 0 {
		return 0, errors.New("link program: no shaders")
	}
	handle := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(handle, uint32(s))
	}
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(handle)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(msg, "\x00\n"))
	}
	return Program(handle), nil
}

func (h *glHAL) UseProgram(p Program)    { gl.UseProgram(uint32(p)) }
func (h *glHAL) DeleteShader(s Shader)   { gl.DeleteShader(uint32(s)) }
func (h *glHAL) DeleteProgram(p Program) { gl.DeleteProgram(uint32(p)) }

var glTargets = map[Target]uint32{
	ArrayBuffer:        gl.ARRAY_BUFFER,
	ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

func (h *glHAL) CreateVertexArray() VertexArray {
	var va uint32
	gl.GenVertexArrays(1, &va)
	return VertexArray(va)
}

func (h *glHAL) BindVertexArray(va VertexArray) { gl.BindVertexArray(uint32(va)) }

func (h *glHAL) DeleteVertexArray(va VertexArray) {
	v := uint32(va)
	gl.DeleteVertexArrays(1, &v)
}

func (h *glHAL) CreateBuffer() Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return Buffer(b)
}

func (h *glHAL) BindBuffer(target Target, b Buffer) {
	gl.BindBuffer(glTargets[target], uint32(b))
}

func (h *glHAL) BufferData(target Target, data []byte) {
	if len(data) == 0 {
		gl.BufferData(glTargets[target], 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTargets[target], len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

func (h *glHAL) DeleteBuffer(b Buffer) {
	v := uint32(b)
	gl.DeleteBuffers(1, &v)
}

func (h *glHAL) VertexAttribPointer(index uint32, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(index, int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (h *glHAL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (h *glHAL) DrawElements(mode Primitive, count int, typ IndexType) {
	if mode != Triangles || typ != UnsignedInt {
		h.logger.WriteLineString(fmt.Sprintf("gl: draw mode %d / index type %d not supported", mode, typ))
		return
	}
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, nil)
}
