package camera

import (
	"math"
	"sync"
)

// CameraController supplies the camera's eye position and look-at target.
// The camera reads both each frame via Update and recomputes its matrices
// when either changed. The orbit controller implements this with spherical
// coordinates around the target; the camera itself does not care how the
// position is produced.
type CameraController interface {
	// Position returns the world-space eye position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget moves the look-at/pivot point. The eye position follows,
	// keeping the current radius and angles.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// OrbitLeft rotates the eye left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the eye right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the eye upward by one orbit speed step, clamped to the
	// elevation bounds.
	OrbitUp()

	// OrbitDown tilts the eye downward by one orbit speed step, clamped to the
	// elevation bounds.
	OrbitDown()

	// Zoom adjusts the distance to the target. Positive delta zooms in. The
	// resulting radius is clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: zoom amount, scaled by the zoom speed
	Zoom(delta float32)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: current orbit radius
	Radius() float32

	// SetRadius sets the distance from the target, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: new distance from the target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians,
	// normalized to [0, 2*pi).
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle in radians.
	//
	// Parameters:
	//   - azimuth: new horizontal angle (0 = looking down the +Z axis)
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane in radians.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// OrbitSpeed returns the angle applied per Orbit* call in radians.
	//
	// Returns:
	//   - float32: radians per orbit step
	OrbitSpeed() float32

	// ZoomSpeed returns the radius change applied per unit of Zoom delta.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}

// orbitController orbits the eye around a pivot using spherical coordinates.
// The position is derived from target + (radius, azimuth, elevation) on every
// read, so there is no cached eye state to fall out of sync.
type orbitController struct {
	mu *sync.Mutex

	target [3]float32

	radius    float32
	azimuth   float32 // around the Y axis, 0 = +Z
	elevation float32 // from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
}

var _ CameraController = &orbitController{}

// NewOrbitController creates an orbit-style camera controller with sensible
// defaults: radius 10 looking at the origin from a 30 degree elevation.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	oc := &orbitController{
		mu: &sync.Mutex{},

		radius:    10.0,
		azimuth:   0.0,
		elevation: float32(math.Pi / 6),

		minRadius:    0.5,
		maxRadius:    500.0,
		minElevation: 0.05,
		maxElevation: float32(math.Pi/2 - 0.05),

		orbitSpeed: 0.05,
		zoomSpeed:  1.0,
	}

	for _, option := range options {
		option(oc)
	}

	oc.radius = oc.clampRadius(oc.radius)
	oc.elevation = oc.clampElevation(oc.elevation)
	oc.azimuth = wrapAngle(oc.azimuth)
	return oc
}

// eye converts the spherical state to a cartesian position around the target.
// Caller must hold the mutex.
func (oc *orbitController) eye() (x, y, z float32) {
	cosE := float32(math.Cos(float64(oc.elevation)))
	sinE := float32(math.Sin(float64(oc.elevation)))
	cosA := float32(math.Cos(float64(oc.azimuth)))
	sinA := float32(math.Sin(float64(oc.azimuth)))

	x = oc.target[0] + oc.radius*cosE*sinA
	y = oc.target[1] + oc.radius*sinE
	z = oc.target[2] + oc.radius*cosE*cosA
	return
}

func (oc *orbitController) clampRadius(r float32) float32 {
	if r < oc.minRadius {
		return oc.minRadius
	}
	if r > oc.maxRadius {
		return oc.maxRadius
	}
	return r
}

func (oc *orbitController) clampElevation(e float32) float32 {
	if e < oc.minElevation {
		return oc.minElevation
	}
	if e > oc.maxElevation {
		return oc.maxElevation
	}
	return e
}

// wrapAngle normalizes an angle into [0, 2*pi).
func wrapAngle(a float32) float32 {
	wrapped := math.Mod(float64(a), 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return float32(wrapped)
}

func (oc *orbitController) Position() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.eye()
}

func (oc *orbitController) Target() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target[0], oc.target[1], oc.target[2]
}

func (oc *orbitController) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
}

func (oc *orbitController) OrbitLeft() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth = wrapAngle(oc.azimuth - oc.orbitSpeed)
}

func (oc *orbitController) OrbitRight() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth = wrapAngle(oc.azimuth + oc.orbitSpeed)
}

func (oc *orbitController) OrbitUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = oc.clampElevation(oc.elevation + oc.orbitSpeed)
}

func (oc *orbitController) OrbitDown() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = oc.clampElevation(oc.elevation - oc.orbitSpeed)
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = oc.clampRadius(oc.radius - delta*oc.zoomSpeed)
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = oc.clampRadius(radius)
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) SetAzimuth(azimuth float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth = wrapAngle(azimuth)
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitController) SetElevation(elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = oc.clampElevation(elevation)
}

func (oc *orbitController) OrbitSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.orbitSpeed
}

func (oc *orbitController) ZoomSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.zoomSpeed
}
