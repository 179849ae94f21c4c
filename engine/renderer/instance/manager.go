package instance

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// parallelThreshold is the instance count at or above which matrix packing is
// split across the worker pool. Below it the per-task overhead outweighs the
// composition work.
const parallelThreshold = 2048

// BufferBackend is the subset of the renderer the manager needs: creating
// instance vertex buffers and writing raw bytes into them.
type BufferBackend interface {
	// CreateInstanceBuffer creates a GPU buffer sized for per-instance world matrices.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if buffer creation fails
	CreateInstanceBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// WriteRawBuffer writes data into a buffer at the given byte offset.
	//
	// Parameters:
	//   - buf: the target buffer
	//   - offset: the byte offset to write at
	//   - data: the bytes to write
	WriteRawBuffer(buf *wgpu.Buffer, offset uint64, data []byte)
}

// record tracks the GPU buffer and CPU staging area for one entity's instances.
type record struct {
	buffer   *wgpu.Buffer
	capacity uint32
	count    uint32

	// staging is reused across Refresh calls; queue writes copy the data
	// before returning so the same backing array is safe every frame.
	staging []float32
}

// manager is the implementation of the Manager interface.
type manager struct {
	mu      *sync.Mutex
	backend BufferBackend
	records map[uint64]*record

	// pool runs parallel matrix packing for large instance sets. Workers
	// persist across frames and idle-exit on the timeout.
	pool    worker.DynamicWorkerPool
	workers int
}

// Manager owns one per-instance matrix buffer per entity. Each buffer holds
// the composed world matrices consumed at vertex slot 1 by instanced draw
// calls. Capacity is fixed at Ensure time; Refresh re-packs and uploads the
// matrices and fails rather than silently growing past capacity.
type Manager interface {
	// Ensure creates (or grows) the instance buffer for an entity so it can
	// hold at least capacity matrices. Growing replaces the GPU buffer, so the
	// entity's matrices must be refreshed afterwards.
	//
	// Parameters:
	//   - entityID: the entity owning the buffer
	//   - capacity: the minimum number of instances the buffer must hold
	//
	// Returns:
	//   - error: an error if buffer creation fails
	Ensure(entityID uint64, capacity uint32) error

	// Refresh composes the transforms into world matrices and uploads them to
	// the entity's instance buffer. Large sets are packed in parallel on the
	// worker pool.
	//
	// Parameters:
	//   - entityID: the entity owning the buffer
	//   - transforms: the per-instance transforms to upload
	//
	// Returns:
	//   - error: an error if the entity has no buffer or the transform count exceeds capacity
	Refresh(entityID uint64, transforms []Transform) error

	// Buffer retrieves the GPU instance buffer for an entity, or nil when none exists.
	//
	// Parameters:
	//   - entityID: the entity owning the buffer
	//
	// Returns:
	//   - *wgpu.Buffer: the instance buffer, or nil
	Buffer(entityID uint64) *wgpu.Buffer

	// Count retrieves the number of matrices uploaded by the last Refresh for an entity.
	//
	// Parameters:
	//   - entityID: the entity owning the buffer
	//
	// Returns:
	//   - uint32: the uploaded instance count, 0 when the entity is unknown
	Count(entityID uint64) uint32

	// Remove releases the entity's instance buffer and forgets the entity.
	//
	// Parameters:
	//   - entityID: the entity to remove
	Remove(entityID uint64)

	// Release frees every tracked instance buffer.
	Release()
}

var _ Manager = &manager{}

// NewManager creates a new instance buffer Manager backed by the given buffer
// backend, typically the renderer.
//
// Parameters:
//   - backend: the renderer operations used to create and fill instance buffers
//   - options: variadic list of ManagerBuilderOption functions to configure the manager
//
// Returns:
//   - Manager: a new Manager instance
func NewManager(backend BufferBackend, options ...ManagerBuilderOption) Manager {
	m := &manager{
		mu:      &sync.Mutex{},
		backend: backend,
		records: make(map[uint64]*record),
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(m)
	}

	// Queue size of 256 leaves headroom over one chunk per worker.
	m.pool = worker.NewDynamicWorkerPool(m.workers, 256, 1*time.Second)
	return m
}

func (m *manager) Ensure(entityID uint64, capacity uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.records[entityID]
	if exists && rec.capacity >= capacity {
		return nil
	}

	buf, err := m.backend.CreateInstanceBuffer(fmt.Sprintf("instance_%d", entityID), uint64(capacity)*MatrixSize)
	if err != nil {
		return fmt.Errorf("instance buffer for entity %d: %w", entityID, err)
	}

	if exists {
		if rec.buffer != nil {
			rec.buffer.Release()
		}
		rec.buffer = buf
		rec.capacity = capacity
		rec.count = 0
		rec.staging = make([]float32, int(capacity)*matrixFloats)
		return nil
	}

	m.records[entityID] = &record{
		buffer:   buf,
		capacity: capacity,
		staging:  make([]float32, int(capacity)*matrixFloats),
	}
	return nil
}

func (m *manager) Refresh(entityID uint64, transforms []Transform) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.records[entityID]
	if !exists {
		return fmt.Errorf("no instance buffer for entity %d", entityID)
	}
	if uint32(len(transforms)) > rec.capacity {
		return fmt.Errorf("instance count %d exceeds capacity %d for entity %d", len(transforms), rec.capacity, entityID)
	}

	rec.count = uint32(len(transforms))
	if rec.count == 0 {
		return nil
	}

	dst := rec.staging[:len(transforms)*matrixFloats]
	if len(transforms) >= parallelThreshold {
		packMatricesParallel(dst, transforms, m.pool, m.workers)
	} else {
		packMatrices(dst, transforms)
	}

	m.backend.WriteRawBuffer(rec.buffer, 0, common.SliceToBytes(dst))
	return nil
}

func (m *manager) Buffer(entityID uint64) *wgpu.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, exists := m.records[entityID]; exists {
		return rec.buffer
	}
	return nil
}

func (m *manager) Count(entityID uint64) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, exists := m.records[entityID]; exists {
		return rec.count
	}
	return 0
}

func (m *manager) Remove(entityID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, exists := m.records[entityID]; exists {
		if rec.buffer != nil {
			rec.buffer.Release()
		}
		delete(m.records, entityID)
	}
}

func (m *manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rec := range m.records {
		if rec.buffer != nil {
			rec.buffer.Release()
		}
		delete(m.records, id)
	}
}
