package light

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_provider"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithAnimate is an option builder that enables or disables the orbit animation.
//
// Parameters:
//   - animate: true if Tick should move the light around the Y axis
//
// Returns:
//   - LightBuilderOption: a function that applies the animate option to a lightImpl
func WithAnimate(animate bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.animate = animate
	}
}

// WithAngularSpeed is an option builder that sets the orbit speed around the
// world Y axis.
//
// Parameters:
//   - radPerSec: angular speed in radians per second
//
// Returns:
//   - LightBuilderOption: a function that applies the angular speed option to a lightImpl
func WithAngularSpeed(radPerSec float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.angularSpeed = radPerSec
	}
}

// WithBindGroupProvider is an option builder that attaches a bind group provider
// to the light.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - LightBuilderOption: a function that applies the bind group provider option to a lightImpl
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) LightBuilderOption {
	return func(l *lightImpl) {
		l.bindGroupProvider = provider
	}
}
