package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/instance"
)

type gameObject struct {
	mu      *sync.Mutex
	id      uint64
	enabled atomic.Bool
	mdl     model.Model

	// transforms is the CPU-side source of truth for the object's instances.
	// transformsDirty marks that the scene must re-upload the instance buffer.
	transforms      []instance.Transform
	transformsDirty bool
}

// GameObject defines the interface for a renderable scene entity: a model plus
// the instance transforms it is drawn with. Transform mutations set a dirty
// flag the scene consumes when refreshing the entity's instance buffer.
type GameObject interface {
	// ID returns the object's unique identifier, assigned by the scene on Add.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Transforms returns a copy of the object's instance transforms.
	//
	// Returns:
	//   - []instance.Transform: the per-instance transforms
	Transforms() []instance.Transform

	// InstanceCount returns the number of instances this object is drawn with.
	//
	// Returns:
	//   - uint32: the instance count
	InstanceCount() uint32

	// TransformsDirty reports whether the transforms changed since the last
	// ClearTransformsDirty.
	//
	// Returns:
	//   - bool: true if the instance buffer needs a refresh
	TransformsDirty() bool

	// ClearTransformsDirty resets the dirty flag after the scene has uploaded
	// the transforms.
	ClearTransformsDirty()

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetTransforms replaces all instance transforms and marks them dirty.
	//
	// Parameters:
	//   - transforms: the new per-instance transforms
	SetTransforms(transforms []instance.Transform)

	// SetTransform replaces a single instance transform and marks the set
	// dirty. Out-of-range indices are ignored.
	//
	// Parameters:
	//   - index: the instance index to update
	//   - t: the new transform
	SetTransform(index int, t instance.Transform)

	// Transform returns the transform at the given index, or the identity
	// transform when the index is out of range.
	//
	// Parameters:
	//   - index: the instance index to read
	//
	// Returns:
	//   - instance.Transform: the transform at index
	Transform(index int) instance.Transform
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects with no explicit transforms get a single identity transform so they
// render at the origin.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu: &sync.Mutex{},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if len(obj.transforms) == 0 {
		obj.transforms = []instance.Transform{instance.NewTransform()}
	}
	obj.transformsDirty = true
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) Transforms() []instance.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]instance.Transform, len(g.transforms))
	copy(out, g.transforms)
	return out
}

func (g *gameObject) InstanceCount() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint32(len(g.transforms))
}

func (g *gameObject) TransformsDirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transformsDirty
}

func (g *gameObject) ClearTransformsDirty() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transformsDirty = false
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) SetTransforms(transforms []instance.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transforms = transforms
	g.transformsDirty = true
}

func (g *gameObject) SetTransform(index int, t instance.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index < 0 || index >= len(g.transforms) {
		return
	}
	g.transforms[index] = t
	g.transformsDirty = true
}

func (g *gameObject) Transform(index int) instance.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index < 0 || index >= len(g.transforms) {
		return instance.NewTransform()
	}
	return g.transforms[index]
}
