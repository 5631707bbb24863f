//go:build cgo

package hal

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"sierpinski/raster"
)

// RunWindow opens an ebiten window and drives the Loop built by newLoop from
// ebiten's Update and Draw callbacks. It blocks until the window closes.
func RunWindow(cfg EbitenConfig, logger Logger, newLoop func(HAL) Loop) error {
	if logger == nil {
		logger = Discard
	}
	h := &ebitenHAL{logger: logger}
	h.gpu = newEbitenGPU(logger)
	g := &windowGame{h: h, loop: newLoop(h)}

	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(g)
	if err != nil && !g.started {
		return fmt.Errorf("%w: %w", ErrWindowCreate, err)
	}
	return err
}

type windowGame struct {
	h       *ebitenHAL
	loop    Loop
	started bool
	running bool
}

func (g *windowGame) Update() error {
	if !g.started {
		g.started = true
		if err := g.loop.Start(); err != nil {
			return err
		}
		g.running = true
	}
	if !g.running {
		return ebiten.Termination
	}
	g.h.PollEvents()
	if g.h.win == nil || g.h.win.ShouldClose() {
		g.loop.Stop()
		g.running = false
		return ebiten.Termination
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.h.gpu.screen = screen
	if g.running {
		g.loop.Frame()
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w := g.h.win; w != nil {
		return w.width, w.height
	}
	return outsideWidth, outsideHeight
}

type ebitenHAL struct {
	logger Logger
	win    *ebitenWindow
	gpu    *ebitenGPU
}

func (h *ebitenHAL) Logger() Logger       { return h.logger }
func (h *ebitenHAL) Windowing() Windowing { return h }
func (h *ebitenHAL) Context() Context     { return h.gpu }
func (h *ebitenHAL) Pipeline() Pipeline   { return h.gpu }
func (h *ebitenHAL) Buffers() Buffers     { return h.gpu }

// CreateWindow sizes and titles the window ebiten already opened.
func (h *ebitenHAL) CreateWindow(width, height int, title string) (Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ebiten: invalid window size %dx%d", width, height)
	}
	if h.win != nil {
		return nil, errors.New("ebiten: window already created")
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	h.win = &ebitenWindow{width: width, height: height}
	return h.win, nil
}

func (h *ebitenHAL) PollEvents() {
	if h.win != nil && ebiten.IsWindowBeingClosed() {
		h.win.closing = true
	}
}

func (h *ebitenHAL) Terminate() {}

type ebitenWindow struct {
	width, height int
	frames        uint64
	closing       bool
	destroyed     bool
}

func (w *ebitenWindow) ShouldClose() bool { return w.closing || w.destroyed }

// SwapBuffers only counts: ebiten presents once Draw returns.
func (w *ebitenWindow) SwapBuffers()     { w.frames++ }
func (w *ebitenWindow) Size() (int, int) { return w.width, w.height }
func (w *ebitenWindow) Destroy()         { w.destroyed = true }

// ebitenGPU draws onto the screen image ebiten hands to Draw. Vertex
// processing runs on the CPU, so only the fragment stage is a real Kage
// shader.
type ebitenGPU struct {
	*cpuBuffers
	logger Logger

	win      *ebitenWindow
	screen   *ebiten.Image
	clear    Color
	viewport image.Rectangle

	shaders  map[Shader]*kageShader
	programs map[Program]*ebiten.Shader
	program  Program

	vertices []ebiten.Vertex
	indices  []uint16
}

type kageShader struct {
	stage  Stage
	shader *ebiten.Shader
	linked bool
}

func newEbitenGPU(logger Logger) *ebitenGPU {
	return &ebitenGPU{
		cpuBuffers: newCPUBuffers(),
		logger:     logger,
		shaders:    make(map[Shader]*kageShader),
		programs:   make(map[Program]*ebiten.Shader),
	}
}

func (g *ebitenGPU) MakeCurrent(w Window) error {
	ew, ok := w.(*ebitenWindow)
	if !ok {
		return fmt.Errorf("ebiten: cannot make %T current", w)
	}
	g.win = ew
	return nil
}

func (g *ebitenGPU) LoadEntryPoints() error {
	if g.win == nil {
		return errors.New("ebiten: no current context")
	}
	return nil
}

func (g *ebitenGPU) Viewport(x, y, w, h int) { g.viewport = image.Rect(x, y, x+w, y+h) }

func (g *ebitenGPU) ClearColor(c Color) { g.clear = c }

func (g *ebitenGPU) Clear() {
	if g.screen == nil {
		return
	}
	g.screen.Fill(rgba8(g.clear))
}

func (g *ebitenGPU) SetWireframe(on bool) error {
	if on {
		return fmt.Errorf("ebiten wireframe: %w", ErrNotImplemented)
	}
	return nil
}

func (g *ebitenGPU) Language() ShadingLanguage { return Kage }

// CompileShader accepts any vertex source, since Kage has no vertex stage.
func (g *ebitenGPU) CompileShader(stage Stage, src string) (Shader, error) {
	ks := &kageShader{stage: stage}
	switch stage {
	case VertexStage:
	case FragmentStage:
		s, err := ebiten.NewShader([]byte(src))
		if err != nil {
			return 0, fmt.Errorf("compile fragment shader: %w", err)
		}
		ks.shader = s
	default:
		return 0, fmt.Errorf("compile shader: unsupported stage %d", stage)
	}
	h := Shader(g.handle())
	g.shaders[h] = ks
	return h, nil
}

func (g *ebitenGPU) LinkProgram(shaders ...Shader) (Program, error) {
	var vert, frag *kageShader
	for _, h := range shaders {
		ks, ok := g.shaders[h]
		if !ok {
			return 0, fmt.Errorf("link program: unknown shader %d", h)
		}
		switch ks.stage {
		case VertexStage:
			vert = ks
		case FragmentStage:
			frag = ks
		}
	}
	if vert == nil || frag == nil {
		return 0, errors.New("link program: need a vertex and a fragment stage")
	}
	frag.linked = true
	p := Program(g.handle())
	g.programs[p] = frag.shader
	return p, nil
}

func (g *ebitenGPU) UseProgram(p Program) { g.program = p }

func (g *ebitenGPU) DeleteShader(s Shader) {
	ks, ok := g.shaders[s]
	if !ok {
		return
	}
	if ks.shader != nil && !ks.linked {
		ks.shader.Deallocate()
	}
	delete(g.shaders, s)
}

func (g *ebitenGPU) DeleteProgram(p Program) {
	if s, ok := g.programs[p]; ok {
		s.Deallocate()
		delete(g.programs, p)
	}
	if g.program == p {
		g.program = 0
	}
}

func (g *ebitenGPU) DrawElements(mode Primitive, count int, typ IndexType) {
	if g.screen == nil {
		g.logger.WriteLineString("ebiten: draw outside of a frame")
		return
	}
	if mode != Triangles {
		g.logger.WriteLineString(fmt.Sprintf("ebiten: primitive %d not supported", mode))
		return
	}
	shader, ok := g.programs[g.program]
	if !ok {
		g.logger.WriteLineString("ebiten: draw without a program")
		return
	}
	pos, idx, err := g.fetch(count, typ)
	if err != nil {
		g.logger.WriteLineString("ebiten: " + err.Error())
		return
	}

	b := g.screen.Bounds()
	vp := g.viewport
	if vp.Empty() {
		vp = image.Rect(0, 0, b.Dx(), b.Dy())
	}
	g.vertices = g.vertices[:0]
	for _, p := range pos {
		x, y := raster.Project(p, vp, b.Dy())
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX: x, DstY: y,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	g.indices = g.indices[:0]
	for _, i := range idx {
		if i > 0xFFFF {
			g.logger.WriteLineString(fmt.Sprintf("ebiten: index %d exceeds 16 bits", i))
			return
		}
		g.indices = append(g.indices, uint16(i))
	}
	g.screen.DrawTrianglesShader(g.vertices, g.indices, shader, nil)
}
