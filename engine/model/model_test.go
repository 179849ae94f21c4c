package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
)

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		TexCoord: [2]float32{0.5, 0.75},
		Normal:   [3]float32{0, 1, 0},
	}

	require.Equal(t, 32, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:])))
}

func TestMarshalHelpers(t *testing.T) {
	vertices := []GPUVertex{{}, {}, {}}
	assert.Len(t, MarshalVertices(vertices), 96)

	indices := []uint32{0, 1, 2}
	buf := MarshalIndices(indices)
	require.Len(t, buf, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[8:]))
}

func TestNewCubeMesh(t *testing.T) {
	cube := NewCubeMesh("cube", 0.5)

	assert.Len(t, cube.Vertices, 24)
	require.Len(t, cube.Indices, 36)
	assert.Equal(t, uint32(36), cube.IndexCount())

	for _, idx := range cube.Indices {
		assert.Less(t, idx, uint32(len(cube.Vertices)))
	}
	for _, v := range cube.Vertices {
		n := v.Normal
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		assert.InDelta(t, 1.0, length, 1e-6)
	}

	// Half-extent 0.5 puts every corner at distance sqrt(3)/2.
	assert.InDelta(t, math.Sqrt(3)/2, float64(cube.BoundingRadius()), 1e-6)
}

func TestNewPlaneMesh(t *testing.T) {
	plane := NewPlaneMesh("floor", 10, 4)

	require.Len(t, plane.Vertices, 4)
	assert.Len(t, plane.Indices, 6)
	for _, v := range plane.Vertices {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
		assert.Equal(t, float32(0), v.Position[1])
	}
	assert.Equal(t, [2]float32{4, 4}, plane.Vertices[2].TexCoord)
}

func TestNewSphereMesh(t *testing.T) {
	const radius = 2.0
	sphere := NewSphereMesh("sphere", radius, 8, 16)

	assert.Len(t, sphere.Vertices, 9*17)
	assert.Len(t, sphere.Indices, 8*16*6)

	for _, v := range sphere.Vertices {
		n := v.Normal
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		assert.InDelta(t, 1.0, length, 1e-5)

		p := v.Position
		dist := math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		assert.InDelta(t, radius, dist, 1e-5)
	}

	clamped := NewSphereMesh("tiny", 1, 1, 1)
	assert.Len(t, clamped.Vertices, 4*4)
}

func TestModelMaterialResolution(t *testing.T) {
	red := material.NewMaterial(material.WithName("red"))
	blue := material.NewMaterial(material.WithName("blue"))

	cube := NewCubeMesh("cube", 0.5)
	cube.MaterialIndex = 1
	orphan := NewPlaneMesh("orphan", 1, 1)
	orphan.MaterialIndex = 5

	m := NewModel(
		WithName("scene_props"),
		WithMeshes(cube, orphan),
		WithMaterials(red, blue),
	)

	assert.Equal(t, "scene_props", m.Name())
	require.Len(t, m.Meshes(), 2)

	resolved := m.MaterialFor(0)
	require.NotNil(t, resolved)
	assert.Equal(t, "blue", resolved.Name())

	// Out-of-range material index resolves to nil so the caller can substitute.
	assert.Nil(t, m.MaterialFor(1))
	assert.Nil(t, m.MaterialFor(-1))
	assert.Nil(t, m.MaterialFor(7))

	m.SetMaterials(nil)
	assert.Nil(t, m.MaterialFor(0))
}
