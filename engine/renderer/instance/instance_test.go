package instance

import (
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/lumen-go/common"
)

// fakeBackend records buffer creations and writes without touching a GPU.
type fakeBackend struct {
	created []uint64 // sizes in creation order
	writes  [][]byte
}

func (f *fakeBackend) CreateInstanceBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	f.created = append(f.created, size)
	return nil, nil
}

func (f *fakeBackend) WriteRawBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.writes = append(f.writes, cp)
}

func TestTransformMatrixComposition(t *testing.T) {
	tr := NewTransform()
	tr.Translation = [3]float32{1, 2, 3}
	tr.Scale = [3]float32{2, 2, 2}

	var m [16]float32
	tr.Matrix(m[:])

	// Scale on the diagonal, translation in the last column.
	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, float32(2), m[5])
	assert.Equal(t, float32(2), m[10])
	assert.Equal(t, float32(1), m[12])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(3), m[14])
	assert.Equal(t, float32(1), m[15])
}

func TestTransformMatrixRotation(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = common.QuatFromAxisAngle(0, 1, 0, float32(math.Pi/2))

	var m [16]float32
	tr.Matrix(m[:])

	// A quarter turn around Y maps +X to -Z.
	assert.InDelta(t, 0, m[0], 1e-6)
	assert.InDelta(t, -1, m[2], 1e-6)
}

func TestPackMatricesSerialAndParallelAgree(t *testing.T) {
	transforms := make([]Transform, 300)
	for i := range transforms {
		transforms[i] = NewTransform()
		transforms[i].Translation = [3]float32{float32(i), float32(i * 2), float32(i * 3)}
		transforms[i].Rotation = common.QuatFromAxisAngle(0, 1, 0, float32(i)*0.01)
	}

	serial := make([]float32, len(transforms)*matrixFloats)
	packMatrices(serial, transforms)

	m := NewManager(&fakeBackend{}, WithWorkers(4)).(*manager)
	parallel := make([]float32, len(transforms)*matrixFloats)
	packMatricesParallel(parallel, transforms, m.pool, m.workers)

	assert.Equal(t, serial, parallel)
}

func TestManagerEnsureAndRefresh(t *testing.T) {
	backend := &fakeBackend{}
	m := NewManager(backend, WithWorkers(2))

	require.NoError(t, m.Ensure(1, 16))
	require.Len(t, backend.created, 1)
	assert.Equal(t, uint64(16*MatrixSize), backend.created[0])

	// Ensure within capacity does not recreate the buffer.
	require.NoError(t, m.Ensure(1, 8))
	assert.Len(t, backend.created, 1)

	transforms := []Transform{NewTransform(), NewTransform(), NewTransform()}
	require.NoError(t, m.Refresh(1, transforms))
	assert.Equal(t, uint32(3), m.Count(1))
	require.Len(t, backend.writes, 1)
	assert.Len(t, backend.writes[0], 3*MatrixSize)
}

func TestManagerRefreshErrors(t *testing.T) {
	m := NewManager(&fakeBackend{})

	err := m.Refresh(42, []Transform{NewTransform()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no instance buffer")

	require.NoError(t, m.Ensure(1, 2))
	err = m.Refresh(1, []Transform{NewTransform(), NewTransform(), NewTransform()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds capacity")
}

func TestManagerEnsureGrows(t *testing.T) {
	backend := &fakeBackend{}
	m := NewManager(backend)

	require.NoError(t, m.Ensure(1, 4))
	require.NoError(t, m.Refresh(1, []Transform{NewTransform()}))
	assert.Equal(t, uint32(1), m.Count(1))

	// Growing replaces the buffer and resets the uploaded count.
	require.NoError(t, m.Ensure(1, 32))
	assert.Len(t, backend.created, 2)
	assert.Equal(t, uint64(32*MatrixSize), backend.created[1])
	assert.Equal(t, uint32(0), m.Count(1))
}

func TestManagerRemoveAndRelease(t *testing.T) {
	m := NewManager(&fakeBackend{})

	require.NoError(t, m.Ensure(1, 4))
	require.NoError(t, m.Ensure(2, 4))

	m.Remove(1)
	assert.Equal(t, uint32(0), m.Count(1))
	require.Error(t, m.Refresh(1, nil))

	m.Release()
	require.Error(t, m.Refresh(2, nil))
}

func TestManagerRefreshEmptySkipsUpload(t *testing.T) {
	backend := &fakeBackend{}
	m := NewManager(backend)

	require.NoError(t, m.Ensure(1, 4))
	require.NoError(t, m.Refresh(1, nil))
	assert.Empty(t, backend.writes)
}
