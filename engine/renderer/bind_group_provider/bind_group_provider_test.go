package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderDefaults(t *testing.T) {
	p := NewBindGroupProvider("camera_provider")

	assert.Equal(t, "camera_provider", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
	assert.Empty(t, p.Buffers())
	assert.Empty(t, p.TextureViews())
	assert.Empty(t, p.Samplers())
}

func TestBindGroupProviderSettersByBinding(t *testing.T) {
	p := NewBindGroupProvider("material_provider")

	p.SetBuffer(0, nil)
	p.SetTextureView(1, nil)
	p.SetSampler(2, nil)
	p.SetIndexCount(36)

	assert.Len(t, p.Buffers(), 1)
	assert.Len(t, p.TextureViews(), 1)
	assert.Len(t, p.Samplers(), 1)
	assert.Equal(t, 36, p.IndexCount())
}

func TestReleaseOnUninitializedProvider(t *testing.T) {
	p := NewBindGroupProvider("empty")

	// Nothing was initialized on the GPU; Release must be a no-op.
	assert.NotPanics(t, func() { p.Release() })
	assert.Nil(t, p.BindGroup())
}
