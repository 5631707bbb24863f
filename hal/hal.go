package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrWindowCreate marks a failure to acquire the window or its context.
	ErrWindowCreate = errors.New("failed to create window")

	// ErrNoCgo is returned by window backends in builds without cgo.
	ErrNoCgo = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
)

// Color is a linear RGBA color with components in 0..1.
type Color struct {
	R, G, B, A float32
}

// Handles name GPU-side objects. Zero means "none" and unbinds.
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	VertexArray uint32
)

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	VertexStage Stage = iota + 1
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// ShadingLanguage is the source language a Pipeline compiles.
type ShadingLanguage uint8

const (
	// GLSL is OpenGL core-profile GLSL.
	GLSL ShadingLanguage = iota + 1
	// Kage is Ebitengine's shading language. It has no vertex stage.
	Kage
)

// Target selects a buffer binding point.
type Target uint8

const (
	ArrayBuffer Target = iota + 1
	ElementArrayBuffer
)

// Primitive is the assembly mode for a draw.
type Primitive uint8

const (
	Triangles Primitive = iota + 1
)

// IndexType is the element type of an index buffer.
type IndexType uint8

const (
	UnsignedInt IndexType = iota + 1
)

// Window is an open window with a presentable surface.
type Window interface {
	ShouldClose() bool
	SwapBuffers()
	Size() (w, h int)
	Destroy()
}

// Windowing creates windows and pumps their events.
type Windowing interface {
	CreateWindow(width, height int, title string) (Window, error)
	PollEvents()
	Terminate()
}

// Context is the graphics context bound to a window.
type Context interface {
	MakeCurrent(w Window) error
	LoadEntryPoints() error
	Viewport(x, y, w, h int)
	ClearColor(c Color)
	Clear()
	SetWireframe(on bool) error
}

// Pipeline compiles and links shader programs.
type Pipeline interface {
	Language() ShadingLanguage
	CompileShader(stage Stage, src string) (Shader, error)
	LinkProgram(shaders ...Shader) (Program, error)
	UseProgram(p Program)
	DeleteShader(s Shader)
	DeleteProgram(p Program)
}

// Buffers manages GPU-resident vertex state and issues draws.
//
// Semantics follow OpenGL: the element buffer binding belongs to the bound
// vertex array, the array buffer binding is global and is captured by
// VertexAttribPointer.
type Buffers interface {
	CreateVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)

	CreateBuffer() Buffer
	BindBuffer(target Target, b Buffer)
	BufferData(target Target, data []byte)
	DeleteBuffer(b Buffer)

	VertexAttribPointer(index uint32, size, stride, offset int)
	EnableVertexAttribArray(index uint32)

	DrawElements(mode Primitive, count int, typ IndexType)
}

// Loop is a render loop driven from outside, for backends that own the
// event loop themselves.
type Loop interface {
	Start() error
	Frame()
	Stop()
}

// HAL provides the only contact point between the renderer and the platform.
type HAL interface {
	Logger() Logger
	Windowing() Windowing
	Context() Context
	Pipeline() Pipeline
	Buffers() Buffers
}
