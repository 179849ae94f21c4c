package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeTRSOrdering(t *testing.T) {
	// Scale first, then rotate, then translate: a unit X vector scaled by 2,
	// rotated 90 degrees around Y, then translated must land at the
	// translation plus the rotated-scaled vector.
	rot := QuatFromAxisAngle(0, 1, 0, float32(math.Pi/2))
	var m [16]float32
	ComposeTRS(m[:], [3]float32{10, 0, 0}, rot, [3]float32{2, 2, 2})

	// Transform the point (1, 0, 0): expect (10, 0, -2).
	x := m[0]*1 + m[12]
	y := m[1]*1 + m[13]
	z := m[2]*1 + m[14]
	assert.InDelta(t, 10.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
	assert.InDelta(t, -2.0, z, 1e-5)
}

func TestComposeTRSIdentity(t *testing.T) {
	var m [16]float32
	ComposeTRS(m[:], [3]float32{}, [4]float32{0, 0, 0, 1}, [3]float32{1, 1, 1})

	var id [16]float32
	Identity(id[:])
	assert.Equal(t, id, m)
}

func TestComposeTRSMatchesManualMultiply(t *testing.T) {
	rot := QuatFromAxisAngle(1, 2, 3, 0.7)
	trans := [3]float32{1, -2, 3}
	scale := [3]float32{2, 0.5, 4}

	var composed [16]float32
	ComposeTRS(composed[:], trans, rot, scale)

	// Build T, R, S separately and multiply T * R * S.
	var tm, rm, sm [16]float32
	Identity(tm[:])
	tm[12], tm[13], tm[14] = trans[0], trans[1], trans[2]
	ComposeTRS(rm[:], [3]float32{}, rot, [3]float32{1, 1, 1})
	Identity(sm[:])
	sm[0], sm[5], sm[10] = scale[0], scale[1], scale[2]

	var tr, trs [16]float32
	Mul4(tr[:], tm[:], rm[:])
	Mul4(trs[:], tr[:], sm[:])

	for i := range composed {
		assert.InDelta(t, trs[i], composed[i], 1e-5, "element %d", i)
	}
}

func TestQuatFromAxisAngleNormalizesAxis(t *testing.T) {
	a := QuatFromAxisAngle(0, 10, 0, 1.0)
	b := QuatFromAxisAngle(0, 1, 0, 1.0)
	for i := range a {
		assert.InDelta(t, b[i], a[i], 1e-6)
	}
}

func TestQuatFromAxisAngleZeroAxis(t *testing.T) {
	q := QuatFromAxisAngle(0, 0, 0, 2.5)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, q)
}

func TestQuatMulComposesRotations(t *testing.T) {
	// Two quarter turns around Y compose to a half turn.
	quarter := QuatFromAxisAngle(0, 1, 0, float32(math.Pi/2))
	half := QuatFromAxisAngle(0, 1, 0, float32(math.Pi))
	got := QuatNormalize(QuatMul(quarter, quarter))
	for i := range got {
		assert.InDelta(t, half[i], got[i], 1e-5)
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m [16]float32
	ComposeTRS(m[:], [3]float32{3, 1, -4}, QuatFromAxisAngle(0, 0, 1, 0.3), [3]float32{2, 2, 2})

	var inv, prod [16]float32
	require.True(t, Invert4(inv[:], m[:]))
	Mul4(prod[:], m[:], inv[:])

	var id [16]float32
	Identity(id[:])
	for i := range prod {
		assert.InDelta(t, id[i], prod[i], 1e-4)
	}
}

func TestInvert4Singular(t *testing.T) {
	var m [16]float32 // all zeros, determinant 0
	var out [16]float32
	assert.False(t, Invert4(out[:], m[:]))
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	ComposeTRS(m[:], [3]float32{1, 2, 3}, QuatFromAxisAngle(1, 0, 0, 0.5), [3]float32{1, 1, 1})
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestLookAtTransformsEyeToOrigin(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)

	// The eye position must map to the view-space origin.
	x := v[0]*0 + v[4]*0 + v[8]*5 + v[12]
	y := v[1]*0 + v[5]*0 + v[9]*5 + v[13]
	z := v[2]*0 + v[6]*0 + v[10]*5 + v[14]
	assert.InDelta(t, 0.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
	assert.InDelta(t, 0.0, z, 1e-5)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2}
	b := SliceToBytes(data)
	require.Len(t, b, 8)
	assert.Nil(t, SliceToBytes([]float32{}))
}
