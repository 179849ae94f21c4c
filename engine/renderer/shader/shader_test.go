package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSource = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 1.0, 1.0);
}
`

func TestNewShaderParsesEntryPoints(t *testing.T) {
	vs := NewShader("test_vs", ShaderTypeVertex, testSource)
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())
	assert.Equal(t, "test_vs", vs.Key())

	fs := NewShader("test_fs", ShaderTypeFragment, testSource)
	assert.Equal(t, "fs_main", fs.EntryPoint())
}

func TestNewShaderModuleDescriptor(t *testing.T) {
	s := NewShader("mod", ShaderTypeVertex, testSource)
	assert.Equal(t, "mod", s.Module().Label)
	assert.Equal(t, testSource, s.Module().WGSLDescriptor.Code)
}

func TestNewShaderPanicsOnMissingEntryPoint(t *testing.T) {
	fragmentOnly := "@fragment\nfn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(0.0); }"
	assert.Panics(t, func() {
		NewShader("bad", ShaderTypeVertex, fragmentOnly)
	})
}

func TestNewShaderPanicsOnEmptySource(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("empty", ShaderTypeVertex, "")
	})
}
