package model

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name      string
	meshes    []Mesh
	materials []material.Material
}

// Model defines the interface for a renderable asset: a named collection of
// meshes and the materials they reference. Geometry is immutable after
// construction; the material list is mutable so the scene can substitute the
// default material when a model carries none.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the name of the model
	Name() string

	// Meshes retrieves the model's mesh list.
	//
	// Returns:
	//   - []Mesh: the meshes making up the model
	Meshes() []Mesh

	// Materials retrieves the model's material list. Meshes reference entries
	// in this list by MaterialIndex.
	//
	// Returns:
	//   - []material.Material: the materials, possibly empty
	Materials() []material.Material

	// MaterialFor resolves the material for the given mesh, falling back to
	// nil when the mesh's material index is out of range.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh within Meshes()
	//
	// Returns:
	//   - material.Material: the resolved material, or nil
	MaterialFor(meshIndex int) material.Material

	// SetMaterials replaces the model's material list.
	//
	// Parameters:
	//   - materials: the new material list
	SetMaterials(materials []material.Material)
}

var _ Model = &model{}

// NewModel creates a new Model instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []Mesh {
	return m.meshes
}

func (m *model) Materials() []material.Material {
	return m.materials
}

func (m *model) MaterialFor(meshIndex int) material.Material {
	if meshIndex < 0 || meshIndex >= len(m.meshes) {
		return nil
	}
	idx := m.meshes[meshIndex].MaterialIndex
	if idx < 0 || idx >= len(m.materials) {
		return nil
	}
	return m.materials[idx]
}

func (m *model) SetMaterials(materials []material.Material) {
	m.materials = materials
}
