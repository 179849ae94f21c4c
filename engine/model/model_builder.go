package model

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
)

// ModelBuilderOption is a function that configures a model instance during construction.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the model.
//
// Parameters:
//   - name: the identifier for the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshes is an option builder that sets the mesh list of the model.
//
// Parameters:
//   - meshes: the meshes making up the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMeshes(meshes ...Mesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = meshes
	}
}

// WithMaterials is an option builder that sets the material list of the model.
//
// Parameters:
//   - materials: the materials referenced by the model's meshes
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterials(materials ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = materials
	}
}
