package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUCameraUniformLayout(t *testing.T) {
	u := GPUCameraUniform{
		ViewPosition: [4]float32{1, 2, 3, 1},
	}
	for i := range 16 {
		u.ViewProj[i] = float32(i)
	}

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())

	// Position occupies the first 16 bytes, the matrix the remaining 64.
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	assert.Equal(t, float32(0), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, float32(15), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])))
}

func TestOrbitControllerPositionFromSphericalState(t *testing.T) {
	ctrl := NewOrbitController(
		WithRadius(10),
		WithTarget(0, 0, 0),
		WithElevationBounds(0, math.Pi/2),
		WithElevation(0),
		WithAzimuth(0),
	)

	// Azimuth 0 at zero elevation looks down +Z.
	x, y, z := ctrl.Position()
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 10, z, 1e-5)

	// A quarter turn moves the eye to +X.
	ctrl.SetAzimuth(math.Pi / 2)
	x, y, z = ctrl.Position()
	assert.InDelta(t, 10, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-4)

	// The eye follows the target rigidly.
	ctrl.SetTarget(1, 2, 3)
	tx, ty, tz := ctrl.Target()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{tx, ty, tz})
	x2, y2, z2 := ctrl.Position()
	assert.InDelta(t, x+1, x2, 1e-5)
	assert.InDelta(t, y+2, y2, 1e-5)
	assert.InDelta(t, z+3, z2, 1e-4)
}

func TestOrbitControllerClampsAndWraps(t *testing.T) {
	ctrl := NewOrbitController(
		WithRadius(10),
		WithRadiusBounds(2, 20),
		WithElevationBounds(0.1, 1.0),
		WithElevation(0.5),
		WithZoomSpeed(1),
		WithOrbitSpeed(0.25),
	)

	ctrl.Zoom(100)
	assert.Equal(t, float32(2), ctrl.Radius())
	ctrl.SetRadius(999)
	assert.Equal(t, float32(20), ctrl.Radius())

	ctrl.SetElevation(5)
	assert.Equal(t, float32(1.0), ctrl.Elevation())
	for range 10 {
		ctrl.OrbitDown()
	}
	assert.Equal(t, float32(0.1), ctrl.Elevation())

	// Orbiting left from azimuth 0 wraps instead of going negative, and a
	// matching right step returns the eye to where it started.
	ctrl.SetAzimuth(0)
	x0, y0, z0 := ctrl.Position()
	ctrl.OrbitLeft()
	assert.InDelta(t, 2*math.Pi-float64(ctrl.OrbitSpeed()), float64(ctrl.Azimuth()), 1e-5)
	ctrl.OrbitRight()
	x1, y1, z1 := ctrl.Position()
	assert.InDelta(t, float64(x0), float64(x1), 1e-4)
	assert.InDelta(t, float64(y0), float64(y1), 1e-4)
	assert.InDelta(t, float64(z0), float64(z1), 1e-4)

	assert.Equal(t, float32(0.25), ctrl.OrbitSpeed())
	assert.Equal(t, float32(1), ctrl.ZoomSpeed())
}

func TestCameraDirtyOnControllerMovement(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10), WithTarget(0, 0, 0))
	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0))

	// Construction computes the initial matrices.
	assert.True(t, cam.Dirty())
	cam.ClearDirty()

	// No controller movement, no recompute.
	cam.Update()
	assert.False(t, cam.Dirty())

	ctrl.OrbitLeft()
	cam.Update()
	assert.True(t, cam.Dirty())

	// A second Update with no further movement stays clean.
	cam.ClearDirty()
	cam.Update()
	assert.False(t, cam.Dirty())
}

func TestCameraDirtyOnProjectionChange(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(5))
	cam := NewCamera(WithController(ctrl))
	cam.ClearDirty()

	cam.SetAspect(2.0)
	assert.True(t, cam.Dirty())
}

func TestCameraUniformTracksController(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10), WithTarget(0, 0, 0))
	cam := NewCamera(WithController(ctrl))

	u := cam.Uniform()
	px, py, pz := ctrl.Position()
	assert.Equal(t, px, u.ViewPosition[0])
	assert.Equal(t, py, u.ViewPosition[1])
	assert.Equal(t, pz, u.ViewPosition[2])
	assert.Equal(t, cam.ViewProjectionMatrix(), u.ViewProj)
}
