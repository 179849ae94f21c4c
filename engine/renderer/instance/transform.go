package instance

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/lumen-go/common"
)

// MatrixSize is the byte size of one per-instance world matrix (a column-major
// 4x4 of float32).
const MatrixSize = 64

// matrixFloats is the number of float32 elements in one instance matrix.
const matrixFloats = 16

// Transform holds the CPU-side placement of a single instance: translation,
// unit-quaternion rotation, and per-axis scale. It is plain data; the GPU only
// ever sees the composed world matrix.
type Transform struct {
	// Translation is the world-space position as (x, y, z).
	Translation [3]float32
	// Rotation is a unit quaternion as (x, y, z, w).
	Rotation [4]float32
	// Scale holds the per-axis scale factors.
	Scale [3]float32
}

// NewTransform creates a Transform at the origin with identity rotation and
// unit scale.
//
// Returns:
//   - Transform: the identity transform
func NewTransform() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Matrix composes the transform into a column-major 4x4 world matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
func (t *Transform) Matrix(out []float32) {
	common.ComposeTRS(out, t.Translation, t.Rotation, t.Scale)
}

// packMatrices composes every transform into dst, 16 floats per instance,
// sequentially. dst must hold at least len(transforms)*16 elements.
func packMatrices(dst []float32, transforms []Transform) {
	for i := range transforms {
		transforms[i].Matrix(dst[i*matrixFloats : (i+1)*matrixFloats])
	}
}

// packMatricesParallel splits the transform slice into one chunk per worker
// and composes chunks concurrently on the pool. A WaitGroup provides the
// per-call barrier since pool workers persist across calls.
func packMatricesParallel(dst []float32, transforms []Transform, pool worker.DynamicWorkerPool, workers int) {
	chunk := (len(transforms) + workers - 1) / workers

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(transforms); start += chunk {
		end := min(start+chunk, len(transforms))
		s, e := start, end
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				packMatrices(dst[s*matrixFloats:e*matrixFloats], transforms[s:e])
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
}
