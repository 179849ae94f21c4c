package bind_group_layout

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualIdenticalStructure(t *testing.T) {
	a := NewLayout("a",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 32},
		Entry{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindTexture},
	)
	b := NewLayout("b",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 32},
		Entry{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindTexture},
	)

	// Names differ but structure matches.
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestEqualDetectsMismatch(t *testing.T) {
	base := NewLayout("base",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 32},
	)

	differentBinding := NewLayout("x",
		Entry{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 32},
	)
	differentVisibility := NewLayout("x",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageVertex, Kind: EntryKindUniformBuffer, MinBindingSize: 32},
	)
	differentKind := NewLayout("x",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindTexture},
	)
	differentSize := NewLayout("x",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 64},
	)
	extraEntry := NewLayout("x",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 32},
		Entry{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindSampler},
	)

	assert.False(t, base.Equal(differentBinding))
	assert.False(t, base.Equal(differentVisibility))
	assert.False(t, base.Equal(differentKind))
	assert.False(t, base.Equal(differentSize))
	assert.False(t, base.Equal(extraEntry))
	assert.False(t, base.Equal(nil))
}

func TestValidate(t *testing.T) {
	assert.Error(t, NewLayout("empty").Validate())

	duplicate := NewLayout("dup",
		Entry{Binding: 0, Kind: EntryKindTexture},
		Entry{Binding: 0, Kind: EntryKindSampler},
	)
	assert.Error(t, duplicate.Validate())

	zeroSize := NewLayout("zero",
		Entry{Binding: 0, Kind: EntryKindUniformBuffer},
	)
	assert.Error(t, zeroSize.Validate())

	ok := NewLayout("ok",
		Entry{Binding: 0, Kind: EntryKindUniformBuffer, MinBindingSize: 16},
		Entry{Binding: 1, Kind: EntryKindTexture},
	)
	assert.NoError(t, ok.Validate())
}

func TestDescriptorKinds(t *testing.T) {
	l := NewLayout("kinds",
		Entry{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindUniformBuffer, MinBindingSize: 48},
		Entry{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindTexture},
		Entry{Binding: 2, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindSampler},
		Entry{Binding: 3, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindDepthTexture},
		Entry{Binding: 4, Visibility: wgpu.ShaderStageFragment, Kind: EntryKindComparisonSampler},
	)

	desc := l.Descriptor()
	require.Len(t, desc.Entries, 5)
	assert.Equal(t, "kinds", desc.Label)

	assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(48), desc.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[2].Sampler.Type)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, desc.Entries[3].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, desc.Entries[4].Sampler.Type)
}

func TestNewSharedLayouts(t *testing.T) {
	s, err := NewSharedLayouts()
	require.NoError(t, err)

	require.Len(t, s.Camera.Entries(), 1)
	assert.Equal(t, uint64(CameraUniformSize), s.Camera.Entries()[0].MinBindingSize)
	require.Len(t, s.Light.Entries(), 1)
	assert.Equal(t, uint64(LightUniformSize), s.Light.Entries()[0].MinBindingSize)
	require.Len(t, s.Material.Entries(), 3)
	require.Len(t, s.DepthOverlay.Entries(), 2)

	// A second construction is structurally identical to the first.
	s2, err := NewSharedLayouts()
	require.NoError(t, err)
	assert.True(t, s.Camera.Equal(s2.Camera))
	assert.True(t, s.Light.Equal(s2.Light))
	assert.True(t, s.Material.Equal(s2.Material))
	assert.True(t, s.DepthOverlay.Equal(s2.DepthOverlay))
}
