// Package render uploads a mesh once and redraws it every frame until the
// window is asked to close.
package render

import (
	"fmt"

	"sierpinski/geometry"
	"sierpinski/hal"
)

// Background is the clear color used when Config leaves it zero.
var Background = hal.Color{R: 0.07, G: 0.13, B: 0.17, A: 1}

// Config sizes and titles the window and picks the clear color.
type Config struct {
	Width, Height int
	Title         string
	Background    hal.Color

	// PrimeFrame clears and presents once before the first Frame.
	PrimeFrame bool
	Wireframe  bool
}

// Driver owns the window, the mesh buffers and the shader program.
// It implements hal.Loop.
type Driver struct {
	cfg  Config
	mesh geometry.Mesh
	h    hal.HAL
	log  hal.Logger

	win     hal.Window
	vao     hal.VertexArray
	vbo     hal.Buffer
	ebo     hal.Buffer
	program hal.Program
	frames  uint64
}

var _ hal.Loop = (*Driver)(nil)

// New returns a Driver for mesh on h; nothing is acquired until Start.
func New(cfg Config, mesh geometry.Mesh, h hal.HAL) *Driver {
	if cfg.Background == (hal.Color{}) {
		cfg.Background = Background
	}
	log := h.Logger()
	if log == nil {
		log = hal.Discard
	}
	return &Driver{cfg: cfg, mesh: mesh, h: h, log: log}
}

// Frames returns how many frames have been presented.
func (d *Driver) Frames() uint64 { return d.frames }

// Run starts the driver, draws until the window should close, then stops.
func (d *Driver) Run() error {
	if err := d.Start(); err != nil {
		return err
	}
	for !d.win.ShouldClose() {
		d.Frame()
	}
	d.Stop()
	return nil
}

// Start acquires the window, uploads the mesh and builds the program, in
// that order. On error everything acquired so far is released.
func (d *Driver) Start() error {
	ws := d.h.Windowing()
	win, err := ws.CreateWindow(d.cfg.Width, d.cfg.Height, d.cfg.Title)
	if err != nil {
		ws.Terminate()
		return fmt.Errorf("%w: %w", hal.ErrWindowCreate, err)
	}
	d.win = win
	d.log.WriteLineString(fmt.Sprintf("render: window %dx%d %q", d.cfg.Width, d.cfg.Height, d.cfg.Title))

	ctx := d.h.Context()
	if err := ctx.MakeCurrent(win); err != nil {
		d.release()
		return fmt.Errorf("make current: %w", err)
	}
	if err := ctx.LoadEntryPoints(); err != nil {
		d.release()
		return fmt.Errorf("load entry points: %w", err)
	}
	w, h := win.Size()
	ctx.Viewport(0, 0, w, h)

	d.upload()

	if err := d.buildProgram(); err != nil {
		d.release()
		return err
	}

	if d.cfg.Wireframe {
		if err := ctx.SetWireframe(true); err != nil {
			d.release()
			return err
		}
	}
	if d.cfg.PrimeFrame {
		ctx.ClearColor(d.cfg.Background)
		ctx.Clear()
		win.SwapBuffers()
	}
	return nil
}

func (d *Driver) upload() {
	b := d.h.Buffers()
	d.vao = b.CreateVertexArray()
	d.vbo = b.CreateBuffer()
	d.ebo = b.CreateBuffer()

	b.BindVertexArray(d.vao)
	b.BindBuffer(hal.ArrayBuffer, d.vbo)
	b.BufferData(hal.ArrayBuffer, d.mesh.VertexBytes())
	b.BindBuffer(hal.ElementArrayBuffer, d.ebo)
	b.BufferData(hal.ElementArrayBuffer, d.mesh.IndexBytes())

	b.VertexAttribPointer(0, geometry.ComponentsPerVertex, geometry.VertexStride, 0)
	b.EnableVertexAttribArray(0)

	// The element buffer binding stays recorded in the vertex array.
	b.BindBuffer(hal.ArrayBuffer, 0)
	b.BindVertexArray(0)
	d.log.WriteLineString(fmt.Sprintf("render: uploaded %d vertices, %d indices", geometry.VertexCount, geometry.IndexCount))
}

func (d *Driver) buildProgram() error {
	p := d.h.Pipeline()
	vsrc, fsrc, err := Sources(p.Language())
	if err != nil {
		return err
	}
	vs, err := p.CompileShader(hal.VertexStage, vsrc)
	if err != nil {
		return err
	}
	fs, err := p.CompileShader(hal.FragmentStage, fsrc)
	if err != nil {
		p.DeleteShader(vs)
		return err
	}
	prog, err := p.LinkProgram(vs, fs)
	p.DeleteShader(vs)
	p.DeleteShader(fs)
	if err != nil {
		return err
	}
	d.program = prog
	return nil
}

// Frame clears, draws the mesh, presents and pumps events.
func (d *Driver) Frame() {
	ctx := d.h.Context()
	ctx.ClearColor(d.cfg.Background)
	ctx.Clear()

	d.h.Pipeline().UseProgram(d.program)
	b := d.h.Buffers()
	b.BindVertexArray(d.vao)
	b.DrawElements(hal.Triangles, geometry.IndexCount, hal.UnsignedInt)

	d.win.SwapBuffers()
	d.h.Windowing().PollEvents()
	d.frames++
}

// Stop releases everything in reverse acquisition order.
func (d *Driver) Stop() {
	d.release()
	d.log.WriteLineString(fmt.Sprintf("render: stopped after %d frames", d.frames))
}

func (d *Driver) release() {
	if d.program != 0 {
		d.h.Pipeline().DeleteProgram(d.program)
		d.program = 0
	}
	b := d.h.Buffers()
	if d.ebo != 0 {
		b.DeleteBuffer(d.ebo)
		d.ebo = 0
	}
	if d.vbo != 0 {
		b.DeleteBuffer(d.vbo)
		d.vbo = 0
	}
	if d.vao != 0 {
		b.DeleteVertexArray(d.vao)
		d.vao = 0
	}
	if d.win != nil {
		d.win.Destroy()
		d.win = nil
	}
	d.h.Windowing().Terminate()
}
