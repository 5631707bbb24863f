// Package geometry builds the subdivided triangle drawn by the renderer.
//
// The shape is one level of a Sierpinski-style split: an outer triangle and its
// edge midpoints give six vertices, and three of the four sub-triangles are
// listed for drawing. The centre triangle (3,4,5) is left out on purpose.
//
// Everything here is a pure function of the offset. Meshes are value types and
// can be copied freely.
package geometry

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

const (
	// VertexCount is the number of vertices in a Mesh.
	VertexCount = 6
	// TriangleCount is the number of drawn triangles in a Mesh.
	TriangleCount = 3
	// IndexCount is the length of the flattened index list.
	IndexCount = TriangleCount * 3
	// ComponentsPerVertex is the number of float32 position components per vertex.
	ComponentsPerVertex = 3
	// VertexStride is the byte stride of one interleaved position.
	VertexStride = ComponentsPerVertex * 4
)

// Vertex is a position. Z is always 0 for meshes built here.
type Vertex struct {
	X, Y, Z float32
}

// Add returns v translated by o in the XY plane.
func (v Vertex) Add(o Offset) Vertex {
	return Vertex{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z}
}

// IndexTriple names one drawable triangle by vertex index.
type IndexTriple [3]uint32

// Offset is a translation applied to every generated vertex.
type Offset struct {
	X, Y float32
}

// Mesh is the output of Build.
type Mesh struct {
	Vertices  [VertexCount]Vertex
	Triangles [TriangleCount]IndexTriple
}

// CenterTriple is the inverted middle triangle that Build never emits.
var CenterTriple = IndexTriple{3, 4, 5}

var triangles = [TriangleCount]IndexTriple{
	{0, 3, 5}, // lower left
	{3, 2, 4}, // lower right
	{5, 4, 1}, // upper
}

// Build returns the six vertices and three index triples, translated by off.
func Build(off Offset) Mesh {
	s := math32.Sqrt(3)

	m := Mesh{
		Vertices: [VertexCount]Vertex{
			{X: -0.5, Y: s / 3},
			{X: 0.5, Y: s / 3},
			{X: 0, Y: s * 2 / 3},
			{X: -0.25, Y: s / 6},
			{X: 0.25, Y: s / 6},
			{X: 0, Y: s / 3},
		},
		Triangles: triangles,
	}
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(off)
	}
	return m
}

// Indices returns the flattened index list in draw order.
func (m Mesh) Indices() [IndexCount]uint32 {
	var out [IndexCount]uint32
	for i, t := range m.Triangles {
		copy(out[i*3:], t[:])
	}
	return out
}

// Positions returns the interleaved xyz stream.
func (m Mesh) Positions() [VertexCount * ComponentsPerVertex]float32 {
	var out [VertexCount * ComponentsPerVertex]float32
	for i, v := range m.Vertices {
		out[i*3+0] = v.X
		out[i*3+1] = v.Y
		out[i*3+2] = v.Z
	}
	return out
}

// VertexBytes returns Positions encoded as little-endian float32s.
func (m Mesh) VertexBytes() []byte {
	pos := m.Positions()
	buf := make([]byte, len(pos)*4)
	for i, f := range pos {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// IndexBytes returns Indices encoded as little-endian uint32s.
func (m Mesh) IndexBytes() []byte {
	idx := m.Indices()
	buf := make([]byte, len(idx)*4)
	for i, v := range idx {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// Contains reports whether t is one of the drawn triangles.
func (m Mesh) Contains(t IndexTriple) bool {
	for _, have := range m.Triangles {
		if have == t {
			return true
		}
	}
	return false
}

// Bounds returns the axis-aligned extent of the vertices.
func (m Mesh) Bounds() (lo, hi Vertex) {
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo.X = math32.Min(lo.X, v.X)
		lo.Y = math32.Min(lo.Y, v.Y)
		lo.Z = math32.Min(lo.Z, v.Z)
		hi.X = math32.Max(hi.X, v.X)
		hi.Y = math32.Max(hi.Y, v.Y)
		hi.Z = math32.Max(hi.Z, v.Z)
	}
	return lo, hi
}
