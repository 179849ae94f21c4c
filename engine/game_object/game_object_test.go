package game_object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/instance"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()

	assert.True(t, obj.Enabled())
	assert.Nil(t, obj.Model())
	// Objects with no explicit transforms render once at the origin.
	require.Equal(t, uint32(1), obj.InstanceCount())
	assert.Equal(t, instance.NewTransform(), obj.Transform(0))
	assert.True(t, obj.TransformsDirty())
}

func TestGameObjectTransformMutation(t *testing.T) {
	a := instance.NewTransform()
	a.Translation = [3]float32{1, 0, 0}
	b := instance.NewTransform()
	b.Translation = [3]float32{0, 2, 0}

	obj := NewGameObject(WithTransforms(a, b))
	require.Equal(t, uint32(2), obj.InstanceCount())

	obj.ClearTransformsDirty()
	assert.False(t, obj.TransformsDirty())

	moved := instance.NewTransform()
	moved.Translation = [3]float32{5, 5, 5}
	obj.SetTransform(1, moved)
	assert.True(t, obj.TransformsDirty())
	assert.Equal(t, [3]float32{5, 5, 5}, obj.Transform(1).Translation)

	// Out-of-range writes are ignored and do not dirty the set.
	obj.ClearTransformsDirty()
	obj.SetTransform(7, moved)
	assert.False(t, obj.TransformsDirty())
	assert.Equal(t, instance.NewTransform(), obj.Transform(7))
}

func TestGameObjectTransformsReturnsCopy(t *testing.T) {
	obj := NewGameObject(WithPosition(1, 2, 3))

	transforms := obj.Transforms()
	require.Len(t, transforms, 1)
	assert.Equal(t, [3]float32{1, 2, 3}, transforms[0].Translation)

	transforms[0].Translation = [3]float32{9, 9, 9}
	assert.Equal(t, [3]float32{1, 2, 3}, obj.Transform(0).Translation)
}

func TestGameObjectModelAndEnabled(t *testing.T) {
	cube := model.NewModel(
		model.WithName("cube"),
		model.WithMeshes(model.NewCubeMesh("cube", 0.5)),
	)

	obj := NewGameObject(WithModel(cube), WithEnabled(false))
	assert.False(t, obj.Enabled())
	assert.Equal(t, "cube", obj.Model().Name())

	obj.SetEnabled(true)
	assert.True(t, obj.Enabled())

	obj.SetID(42)
	assert.Equal(t, uint64(42), obj.ID())
}
