package geometry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Document returns m as a single-mesh glTF document.
//
// Positions and indices are written to the first buffer; accessor bounds are
// filled in by the modeler.
func (m Mesh) Document(name string) *gltf.Document {
	doc := gltf.NewDocument()

	var pos [VertexCount][3]float32
	for i, v := range m.Vertices {
		pos[i] = [3]float32{v.X, v.Y, v.Z}
	}
	idx := m.Indices()

	positionAccessor := modeler.WritePosition(doc, pos[:])
	indicesAccessor := modeler.WriteIndices(doc, idx[:])

	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indicesAccessor),
			Attributes: map[string]int{gltf.POSITION: positionAccessor},
			Mode:       gltf.PrimitiveTriangles,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// WriteGLTF saves m to path. A ".glb" extension selects the binary container,
// ".gltf" the JSON one.
func (m Mesh) WriteGLTF(path, name string) error {
	doc := m.Document(name)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		if err := gltf.SaveBinary(doc, path); err != nil {
			return fmt.Errorf("save glb %q: %w", path, err)
		}
	case ".gltf":
		if err := gltf.Save(doc, path); err != nil {
			return fmt.Errorf("save gltf %q: %w", path, err)
		}
	default:
		return fmt.Errorf("export %q: unsupported extension (want .gltf or .glb)", path)
	}
	return nil
}
