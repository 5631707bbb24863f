package render

import (
	_ "embed"
	"fmt"

	"sierpinski/hal"
)

var (
	//go:embed shaders/triangle.vert
	vertexGLSL string
	//go:embed shaders/triangle.frag
	fragmentGLSL string
	//go:embed shaders/triangle.kage
	fragmentKage string
)

// FillColor is the constant color the fragment stages write.
var FillColor = hal.Color{R: 0.8, G: 0.3, B: 0.02, A: 1}

// Sources returns the vertex and fragment source for lang. Kage has no vertex
// stage, so its vertex source is empty.
func Sources(lang hal.ShadingLanguage) (vertex, fragment string, err error) {
	switch lang {
	case hal.GLSL:
		return vertexGLSL, fragmentGLSL, nil
	case hal.Kage:
		return "", fragmentKage, nil
	}
	return "", "", fmt.Errorf("no shaders for language %d", lang)
}
