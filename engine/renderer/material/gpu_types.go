package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (32 bytes, WGSL aligned).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned representation of the material uniform buffer.
// Matches the WGSL MaterialUniform struct layout exactly (see GPUMaterialUniformSource).
// Size: 32 bytes.
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset  0: albedo RGBA multiplied with the diffuse texture (vec4<f32>)
	Alpha     float32    // offset 16: opacity multiplier applied to the final fragment alpha (f32)
	Gloss     float32    // offset 20: specular exponent for the Blinn-Phong highlight (f32)
	_pad      [2]float32 // offset 24: padding to 32 bytes
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Alpha))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Gloss))
	return buf
}
