package model

// Mesh is a single drawable batch of geometry: a vertex/index pair plus the
// index of the material (within the owning model's material list) that shades
// it. Meshes are plain data; GPU buffers for them live on a bind group
// provider created during scene GPU init.
type Mesh struct {
	// Name identifies the mesh for debug labels and logging.
	Name string
	// Vertices is the CPU-side vertex data for the mesh.
	Vertices []GPUVertex
	// Indices is the triangle list indexing into Vertices.
	Indices []uint32
	// MaterialIndex selects the material from the owning model's material
	// list. Out-of-range values fall back to the default material.
	MaterialIndex int
}

// VertexBytes serializes the mesh's vertices into a GPU-uploadable buffer.
//
// Returns:
//   - []byte: the packed vertex data, 32 bytes per vertex
func (m *Mesh) VertexBytes() []byte {
	return MarshalVertices(m.Vertices)
}

// IndexBytes serializes the mesh's indices into a GPU-uploadable buffer.
//
// Returns:
//   - []byte: the packed index data, 4 bytes per index
func (m *Mesh) IndexBytes() []byte {
	return MarshalIndices(m.Indices)
}

// IndexCount returns the number of indices to draw for this mesh.
//
// Returns:
//   - uint32: the index count
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// BoundingRadius returns the radius of the mesh's bounding sphere around the
// model-space origin.
//
// Returns:
//   - float32: the bounding sphere radius
func (m *Mesh) BoundingRadius() float32 {
	return ComputeBoundingRadius(m.Vertices)
}
