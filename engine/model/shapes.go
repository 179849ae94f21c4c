package model

import "math"

// NewCubeMesh generates a unit-extent cube centered on the origin with
// per-face normals and UVs. 24 vertices, 36 indices.
//
// Parameters:
//   - name: the identifier for the mesh
//   - halfExtent: half the cube's edge length
//
// Returns:
//   - Mesh: the generated cube mesh
func NewCubeMesh(name string, halfExtent float32) Mesh {
	h := halfExtent
	vertices := []GPUVertex{
		// +X face
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		// -X face
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		// +Y face
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		// -Y face
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		// +Z face
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		// -Z face
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
	}

	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return Mesh{Name: name, Vertices: vertices, Indices: indices}
}

// NewPlaneMesh generates a flat quad in the XZ plane at y=0 facing +Y, with
// UVs tiled by the given repeat factor.
//
// Parameters:
//   - name: the identifier for the mesh
//   - halfExtent: half the plane's edge length along X and Z
//   - uvRepeat: how many times the texture tiles across the plane
//
// Returns:
//   - Mesh: the generated plane mesh
func NewPlaneMesh(name string, halfExtent, uvRepeat float32) Mesh {
	h := halfExtent
	r := uvRepeat
	vertices := []GPUVertex{
		{Position: [3]float32{-h, 0, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, 0, h}, TexCoord: [2]float32{0, r}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, 0, h}, TexCoord: [2]float32{r, r}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, 0, -h}, TexCoord: [2]float32{r, 0}, Normal: [3]float32{0, 1, 0}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	return Mesh{Name: name, Vertices: vertices, Indices: indices}
}

// NewSphereMesh generates a UV sphere centered on the origin. Normals are the
// unit position vector, UVs wrap longitude on U and latitude on V.
//
// Parameters:
//   - name: the identifier for the mesh
//   - radius: the sphere radius
//   - rings: the number of latitude subdivisions, minimum 3
//   - segments: the number of longitude subdivisions, minimum 3
//
// Returns:
//   - Mesh: the generated sphere mesh
func NewSphereMesh(name string, radius float32, rings, segments int) Mesh {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	vertices := make([]GPUVertex, 0, (rings+1)*(segments+1))
	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		sinPhi, cosPhi := math.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			sinTheta, cosTheta := math.Sincos(theta)

			nx := float32(sinPhi * cosTheta)
			ny := float32(cosPhi)
			nz := float32(sinPhi * sinTheta)

			vertices = append(vertices, GPUVertex{
				Position: [3]float32{nx * radius, ny * radius, nz * radius},
				TexCoord: [2]float32{float32(seg) / float32(segments), float32(ring) / float32(rings)},
				Normal:   [3]float32{nx, ny, nz},
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return Mesh{Name: name, Vertices: vertices, Indices: indices}
}
