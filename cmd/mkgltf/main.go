// Command mkgltf writes the Sierpinski mesh as a glTF asset.
package main

import (
	"flag"
	"fmt"
	"os"

	"sierpinski/geometry"
	"sierpinski/internal/config"
)

const defaultOutPath = "sierpinski.glb"

func main() {
	d := config.Default()
	var outPath, name string
	var offsetX, offsetY float64
	flag.StringVar(&outPath, "out", defaultOutPath, "Output path (.gltf or .glb).")
	flag.StringVar(&name, "name", "sierpinski", "Mesh and node name.")
	flag.Float64Var(&offsetX, "offset-x", float64(d.OffsetX), "Horizontal mesh offset.")
	flag.Float64Var(&offsetY, "offset-y", float64(d.OffsetY), "Vertical mesh offset.")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	if err := run(outPath, name, geometry.Offset{X: float32(offsetX), Y: float32(offsetY)}); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(outPath, name string, off geometry.Offset) error {
	mesh := geometry.Build(off)
	if err := mesh.WriteGLTF(outPath, name); err != nil {
		return err
	}
	lo, hi := mesh.Bounds()
	fmt.Printf("wrote %s: %d vertices, %d triangles, bounds (%.4f, %.4f)..(%.4f, %.4f)\n",
		outPath, geometry.VertexCount, geometry.TriangleCount, lo.X, lo.Y, hi.X, hi.Y)
	return nil
}
