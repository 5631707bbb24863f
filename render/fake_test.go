package render

import (
	"fmt"

	"sierpinski/hal"
)

// fakeHAL records every call by name. The window closes after closeAfter
// frames have been presented.
type fakeHAL struct {
	calls []string
	lang  hal.ShadingLanguage

	createErr   error
	currentErr  error
	compileErr  map[hal.Stage]error
	linkErr     error
	wireErr     error
	closeAfter  int
	next        uint32
	uploads     map[hal.Target][]byte
	attribs     []string
	compiled    map[hal.Stage]string
	win         *fakeWindow
	terminated  int
	lastProgram hal.Program
}

func newFakeHAL(closeAfter int) *fakeHAL {
	return &fakeHAL{
		lang:       hal.GLSL,
		closeAfter: closeAfter,
		compileErr: map[hal.Stage]error{},
		uploads:    map[hal.Target][]byte{},
		compiled:   map[hal.Stage]string{},
	}
}

func (f *fakeHAL) rec(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeHAL) handle() uint32 {
	f.next++
	return f.next
}

func (f *fakeHAL) Logger() hal.Logger       { return hal.Discard }
func (f *fakeHAL) Windowing() hal.Windowing { return f }
func (f *fakeHAL) Context() hal.Context     { return f }
func (f *fakeHAL) Pipeline() hal.Pipeline   { return f }
func (f *fakeHAL) Buffers() hal.Buffers     { return f }

func (f *fakeHAL) CreateWindow(w, h int, title string) (hal.Window, error) {
	f.rec("CreateWindow(%d,%d,%s)", w, h, title)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.win = &fakeWindow{f: f, w: w, h: h}
	return f.win, nil
}

func (f *fakeHAL) PollEvents() { f.rec("PollEvents") }

func (f *fakeHAL) Terminate() {
	f.rec("Terminate")
	f.terminated++
}

type fakeWindow struct {
	f      *fakeHAL
	w, h   int
	swaps  int
	closed bool
}

func (w *fakeWindow) ShouldClose() bool {
	return w.closed || w.swaps >= w.f.closeAfter
}

func (w *fakeWindow) SwapBuffers() {
	w.f.rec("SwapBuffers")
	w.swaps++
}

func (w *fakeWindow) Size() (int, int) { return w.w, w.h }

func (w *fakeWindow) Destroy() {
	w.f.rec("Destroy")
	w.closed = true
}

func (f *fakeHAL) MakeCurrent(hal.Window) error {
	f.rec("MakeCurrent")
	return f.currentErr
}

func (f *fakeHAL) LoadEntryPoints() error {
	f.rec("LoadEntryPoints")
	return nil
}

func (f *fakeHAL) Viewport(x, y, w, h int) { f.rec("Viewport(%d,%d,%d,%d)", x, y, w, h) }
func (f *fakeHAL) ClearColor(hal.Color)    { f.rec("ClearColor") }
func (f *fakeHAL) Clear()                  { f.rec("Clear") }

func (f *fakeHAL) SetWireframe(on bool) error {
	f.rec("SetWireframe(%t)", on)
	return f.wireErr
}

func (f *fakeHAL) Language() hal.ShadingLanguage { return f.lang }

func (f *fakeHAL) CompileShader(stage hal.Stage, src string) (hal.Shader, error) {
	f.rec("CompileShader(%s)", stage)
	if err := f.compileErr[stage]; err != nil {
		return 0, err
	}
	f.compiled[stage] = src
	return hal.Shader(f.handle()), nil
}

func (f *fakeHAL) LinkProgram(shaders ...hal.Shader) (hal.Program, error) {
	f.rec("LinkProgram(%d)", len(shaders))
	if f.linkErr != nil {
		return 0, f.linkErr
	}
	return hal.Program(f.handle()), nil
}

func (f *fakeHAL) UseProgram(p hal.Program) {
	f.rec("UseProgram")
	f.lastProgram = p
}

func (f *fakeHAL) DeleteShader(hal.Shader)   { f.rec("DeleteShader") }
func (f *fakeHAL) DeleteProgram(hal.Program) { f.rec("DeleteProgram") }

func (f *fakeHAL) CreateVertexArray() hal.VertexArray {
	f.rec("CreateVertexArray")
	return hal.VertexArray(f.handle())
}

func (f *fakeHAL) BindVertexArray(va hal.VertexArray) { f.rec("BindVertexArray(%d)", va) }

func (f *fakeHAL) DeleteVertexArray(va hal.VertexArray) { f.rec("DeleteVertexArray(%d)", va) }

func (f *fakeHAL) CreateBuffer() hal.Buffer {
	f.rec("CreateBuffer")
	return hal.Buffer(f.handle())
}

func (f *fakeHAL) BindBuffer(t hal.Target, b hal.Buffer) { f.rec("BindBuffer(%d,%d)", t, b) }

func (f *fakeHAL) BufferData(t hal.Target, data []byte) {
	f.rec("BufferData(%d,%d)", t, len(data))
	f.uploads[t] = append([]byte(nil), data...)
}

func (f *fakeHAL) DeleteBuffer(b hal.Buffer) { f.rec("DeleteBuffer(%d)", b) }

func (f *fakeHAL) VertexAttribPointer(index uint32, size, stride, offset int) {
	f.rec("VertexAttribPointer(%d,%d,%d,%d)", index, size, stride, offset)
}

func (f *fakeHAL) EnableVertexAttribArray(index uint32) { f.rec("EnableVertexAttribArray(%d)", index) }

func (f *fakeHAL) DrawElements(mode hal.Primitive, count int, typ hal.IndexType) {
	f.rec("DrawElements(%d,%d,%d)", mode, count, typ)
}
