package game_object

import (
	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/instance"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the Model for this GameObject.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithTransforms sets the per-instance transforms for this GameObject.
//
// Parameters:
//   - transforms: the instance transforms to draw the model with
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the transforms
func WithTransforms(transforms ...instance.Transform) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transforms = transforms
	}
}

// WithPosition sets a single instance transform at the given position with
// identity rotation and unit scale. Shorthand for the common one-instance case.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		t := instance.NewTransform()
		t.Translation = [3]float32{x, y, z}
		obj.transforms = []instance.Transform{t}
	}
}
