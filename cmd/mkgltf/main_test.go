package main

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sierpinski/geometry"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, run(path, "tri", geometry.Offset{X: 0.2, Y: -0.7}))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "tri", doc.Meshes[0].Name)
}

func TestRunBadExtension(t *testing.T) {
	assert.Error(t, run(filepath.Join(t.TempDir(), "tri.obj"), "tri", geometry.Offset{}))
}
