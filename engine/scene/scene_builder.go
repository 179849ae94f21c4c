package scene

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/instance"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithShowDepth sets the initial state of the depth overlay flag.
//
// Parameters:
//   - show: true to draw the depth overlay from the first frame
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShowDepth(show bool) SceneBuilderOption {
	return func(s *scene) {
		s.showDepth.Store(show)
	}
}

// WithInstanceManager replaces the scene's instance buffer manager. By
// default the scene creates one backed by its renderer.
//
// Parameters:
//   - m: the instance manager to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInstanceManager(m instance.Manager) SceneBuilderOption {
	return func(s *scene) {
		s.instances = m
	}
}
