package hal

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"

	"sierpinski/raster"
)

// softGPU implements Context, Pipeline and Buffers on top of the raster
// package. It accepts the same GLSL sources as the GL backend: the vertex
// stage is taken to pass positions through unchanged, and the fragment stage
// must write a constant vec4, which becomes the fill color.
type softGPU struct {
	*cpuBuffers
	logger Logger
	scale  int

	win      *headlessWindow
	loaded   bool
	clear    Color
	renderer *raster.Renderer

	shaders  map[Shader]*softShader
	programs map[Program]*softProgram
	program  Program
}

type softShader struct {
	stage Stage
	fill  raster.Color
}

type softProgram struct {
	fill raster.Color
}

func newSoftGPU(logger Logger, scale int) *softGPU {
	return &softGPU{
		cpuBuffers: newCPUBuffers(),
		logger:     logger,
		scale:      scale,
		renderer:   raster.NewRenderer(),
		shaders:    make(map[Shader]*softShader),
		programs:   make(map[Program]*softProgram),
	}
}

func (g *softGPU) MakeCurrent(w Window) error {
	hw, ok := w.(*headlessWindow)
	if !ok {
		return fmt.Errorf("headless: cannot make %T current", w)
	}
	g.win = hw
	return nil
}

func (g *softGPU) LoadEntryPoints() error {
	if g.win == nil {
		return errors.New("headless: no current context")
	}
	g.loaded = true
	return nil
}

func (g *softGPU) Viewport(x, y, w, h int) {
	s := g.scale
	g.renderer.Viewport = image.Rect(x*s, y*s, (x+w)*s, (y+h)*s)
}

func (g *softGPU) ClearColor(c Color) { g.clear = c }

func (g *softGPU) Clear() {
	if g.win == nil {
		return
	}
	g.win.fb.target().Clear(rasterColor(g.clear))
}

func (g *softGPU) SetWireframe(on bool) error {
	if on {
		g.renderer.SetRenderMode(raster.RenderWireframe)
	} else {
		g.renderer.SetRenderMode(raster.RenderSolid)
	}
	return nil
}

func (g *softGPU) Language() ShadingLanguage { return GLSL }

var (
	glslMain     = regexp.MustCompile(`void\s+main\s*\(\s*\)`)
	glslNum      = `([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)f?`
	glslConstVec = regexp.MustCompile(`vec4\s*\(\s*` + glslNum + `\s*,\s*` + glslNum + `\s*,\s*` + glslNum + `\s*,\s*` + glslNum + `\s*\)`)
)

func (g *softGPU) CompileShader(stage Stage, src string) (Shader, error) {
	if !strings.HasPrefix(strings.TrimSpace(src), "#version") {
		return 0, fmt.Errorf("compile %s shader: missing #version directive", stage)
	}
	if !glslMain.MatchString(src) {
		return 0, fmt.Errorf("compile %s shader: no main function", stage)
	}
	sh := &softShader{stage: stage}
	switch stage {
	case VertexStage:
		if !strings.Contains(src, "gl_Position") {
			return 0, fmt.Errorf("compile vertex shader: gl_Position is never written")
		}
	case FragmentStage:
		m := glslConstVec.FindAllStringSubmatch(src, -1)
		if len(m) == 0 {
			return 0, fmt.Errorf("compile fragment shader: no constant vec4 output")
		}
		last := m[len(m)-1]
		var ch [4]float32
		for i := range ch {
			v, err := strconv.ParseFloat(last[i+1], 32)
			if err != nil {
				return 0, fmt.Errorf("compile fragment shader: %w", err)
			}
			ch[i] = float32(v)
		}
		sh.fill = raster.FromFloat(ch[0], ch[1], ch[2], ch[3])
	default:
		return 0, fmt.Errorf("compile shader: unsupported stage %d", stage)
	}
	h := Shader(g.handle())
	g.shaders[h] = sh
	return h, nil
}

func (g *softGPU) LinkProgram(shaders ...Shader) (Program, error) {
	var vert, frag *softShader
	for _, h := range shaders {
		sh, ok := g.shaders[h]
		if !ok {
			return 0, fmt.Errorf("link program: unknown shader %d", h)
		}
		switch sh.stage {
		case VertexStage:
			vert = sh
		case FragmentStage:
			frag = sh
		}
	}
	if vert == nil || frag == nil {
		return 0, errors.New("link program: need a vertex and a fragment stage")
	}
	p := Program(g.handle())
	g.programs[p] = &softProgram{fill: frag.fill}
	return p, nil
}

func (g *softGPU) UseProgram(p Program) {
	if _, ok := g.programs[p]; ok || p == 0 {
		g.program = p
	}
}

func (g *softGPU) DeleteShader(s Shader) { delete(g.shaders, s) }

func (g *softGPU) DeleteProgram(p Program) {
	delete(g.programs, p)
	if g.program == p {
		g.program = 0
	}
}

func (g *softGPU) DrawElements(mode Primitive, count int, typ IndexType) {
	if g.win == nil || !g.loaded {
		g.logger.WriteLineString("headless: draw without a loaded context")
		return
	}
	if mode != Triangles {
		g.logger.WriteLineString(fmt.Sprintf("headless: primitive %d not supported", mode))
		return
	}
	prog, ok := g.programs[g.program]
	if !ok {
		g.logger.WriteLineString("headless: draw without a program")
		return
	}
	pos, idx, err := g.fetch(count, typ)
	if err != nil {
		g.logger.WriteLineString("headless: " + err.Error())
		return
	}
	g.renderer.DrawIndexed(g.win.fb.target(), pos, idx, prog.fill)
}
