package light

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_provider"
)

// lightCount is an atomic counter used to generate unique bind group provider names for each light instance.
var lightCount atomic.Uint64

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	position [3]float32
	color    [3]float32

	// animate toggles the orbit animation driven by Tick.
	animate bool
	// angularSpeed is the orbit speed around the world Y axis in radians per second.
	angularSpeed float32

	// dirty is set whenever position or color changes and cleared by ClearDirty
	// once the uniform buffer has been re-uploaded.
	dirty bool

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Light defines the interface for the scene's point light.
//
// The light contributes diffuse and specular terms to every lit fragment and is
// drawn as a small proxy mesh by the light marker pipeline. Its uniform data is
// marshaled into a GPU uniform buffer whenever the state changes.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Animate returns whether the orbit animation is enabled.
	//
	// Returns:
	//   - bool: true if Tick moves the light
	Animate() bool

	// Uniform builds the GPU uniform representation of the light's current state.
	//
	// Returns:
	//   - GPULightUniform: the light position and color
	Uniform() GPULightUniform

	// Dirty reports whether the light state changed since the last ClearDirty.
	// Used to skip redundant uniform uploads.
	//
	// Returns:
	//   - bool: true if the uniform buffer needs re-uploading
	Dirty() bool

	// ClearDirty marks the light state as uploaded.
	ClearDirty()

	// BindGroupProvider returns the light's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Tick advances the orbit animation by dt seconds, rotating the light's
	// position around the world Y axis at the configured angular speed. The
	// distance to the Y axis and the height are preserved. Does nothing when
	// animation is disabled.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Tick(dt float64)

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetAnimate enables or disables the orbit animation.
	//
	// Parameters:
	//   - animate: true to move the light on Tick
	SetAnimate(animate bool)

	// SetBindGroupProvider sets the light's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Light = &lightImpl{}

// NewLight creates a new point Light with sensible defaults and any provided
// options applied. Defaults: position (2, 2, 2), white color, animation enabled
// at a quarter turn per second.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:           &sync.Mutex{},
		position:     [3]float32{2, 2, 2},
		color:        [3]float32{1, 1, 1},
		animate:      true,
		angularSpeed: float32(math.Pi / 2),
		dirty:        true,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"light_" + strconv.FormatUint(lightCount.Load(), 10),
		),
	}
	for _, opt := range opts {
		opt(l)
	}
	lightCount.Add(1)
	return l
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Animate() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.animate
}

func (l *lightImpl) Uniform() GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GPULightUniform{
		Position: l.position,
		Color:    l.color,
	}
}

func (l *lightImpl) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

func (l *lightImpl) ClearDirty() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirty = false
}

func (l *lightImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bindGroupProvider
}

func (l *lightImpl) Tick(dt float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.animate || dt == 0 {
		return
	}

	angle := float64(l.angularSpeed) * dt
	sin, cos := math.Sincos(angle)
	x := float64(l.position[0])
	z := float64(l.position[2])

	l.position[0] = float32(cos*x + sin*z)
	l.position[2] = float32(-sin*x + cos*z)
	l.dirty = true
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
	l.dirty = true
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
	l.dirty = true
}

func (l *lightImpl) SetAnimate(animate bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.animate = animate
}

func (l *lightImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bindGroupProvider = provider
}
