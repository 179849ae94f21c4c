package material

import (
	"sync"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_provider"
)

// glossOverride is an optional global override for the specular exponent of
// every material, used for interactive tuning of the highlight. Guarded by
// glossOverrideMu.
var (
	glossOverrideMu  sync.RWMutex
	glossOverride    float32
	glossOverrideSet bool
)

// SetGlossOverride forces every material's uniform to use the given specular
// exponent instead of its own gloss value. The override takes effect on the
// next uniform upload.
//
// Parameters:
//   - gloss: the specular exponent to apply globally
func SetGlossOverride(gloss float32) {
	glossOverrideMu.Lock()
	defer glossOverrideMu.Unlock()
	glossOverride = gloss
	glossOverrideSet = true
}

// ClearGlossOverride removes the global gloss override, restoring per-material
// gloss values.
func ClearGlossOverride() {
	glossOverrideMu.Lock()
	defer glossOverrideMu.Unlock()
	glossOverrideSet = false
}

// material is the implementation of the Material interface.
type material struct {
	name              string
	baseColor         [4]float32
	alpha             float32
	gloss             float32
	diffuseTexture    *common.DecodedTexture
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material, encapsulating surface
// properties, the diffuse texture reference, and GPU resource bindings needed
// for draw calls.
//
// Surface properties (name, base color, alpha, gloss, texture) are set at
// construction and are read-only through this interface. GPU resource references
// (pipeline key, bind group provider) are mutable so they can be configured after
// construction during scene GPU init.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color of the material, multiplied with
	// the diffuse texture in the fragment shader.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Alpha retrieves the opacity multiplier of the material. Values below 1
	// route the material's meshes through the blended transparent pipeline.
	//
	// Returns:
	//   - float32: the opacity multiplier
	Alpha() float32

	// Gloss retrieves the specular exponent used for the Blinn-Phong highlight.
	//
	// Returns:
	//   - float32: the specular exponent
	Gloss() float32

	// Transparent reports whether this material requires alpha blending.
	//
	// Returns:
	//   - bool: true when the alpha multiplier is below 1
	Transparent() bool

	// DiffuseTexture retrieves the diffuse/albedo texture data reference, or nil if none is set.
	//
	// Returns:
	//   - *common.DecodedTexture: the diffuse texture, or nil
	DiffuseTexture() *common.DecodedTexture

	// Uniform builds the GPU uniform representation of the material, applying
	// the global gloss override when one is set.
	//
	// Returns:
	//   - GPUMaterialUniform: the material surface parameters
	Uniform() GPUMaterialUniform

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults: white base color, fully opaque, gloss 32.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
		alpha:     1.0,
		gloss:     32.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewDefaultMaterial creates the substitute material used for meshes whose
// model carries no material list: an unmistakable magenta-pink, fully opaque,
// textured with a single white pixel so the shared lit pipeline can still
// sample a diffuse texture.
//
// Returns:
//   - Material: the default substitute material
func NewDefaultMaterial() Material {
	return NewMaterial(
		WithName("default"),
		WithBaseColor([4]float32{1.0, 0.2, 0.8, 1.0}),
		WithAlpha(1.0),
		WithGloss(32.0),
	)
}

// WhitePixelStaging returns staging data for a 1x1 opaque white texture, used
// as the diffuse texture for materials that have none.
//
// Returns:
//   - common.TextureStagingData: a single white RGBA pixel
func WhitePixelStaging() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Alpha() float32 {
	return m.alpha
}

func (m *material) Gloss() float32 {
	return m.gloss
}

func (m *material) Transparent() bool {
	return m.alpha < 1.0
}

func (m *material) DiffuseTexture() *common.DecodedTexture {
	return m.diffuseTexture
}

func (m *material) Uniform() GPUMaterialUniform {
	gloss := m.gloss
	glossOverrideMu.RLock()
	if glossOverrideSet {
		gloss = glossOverride
	}
	glossOverrideMu.RUnlock()

	return GPUMaterialUniform{
		BaseColor: m.baseColor,
		Alpha:     m.alpha,
		Gloss:     gloss,
	}
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
