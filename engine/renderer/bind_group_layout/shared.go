package bind_group_layout

import "github.com/cogentcore/webgpu/wgpu"

// Canonical uniform block sizes in bytes. These must match the Marshal
// output of the corresponding GPU structs and the WGSL struct definitions
// embedded next to them.
const (
	CameraUniformSize   = 80
	LightUniformSize    = 32
	MaterialUniformSize = 32
)

// SharedLayouts bundles the four bind group layouts used by the fixed
// pipeline set. It is constructed once at startup and injected into both
// the resource binding layer and the pipeline registry so that bind groups
// and pipeline layouts are guaranteed to be built from the same values.
type SharedLayouts struct {
	// Camera is group 0 on the mesh and light-marker pipelines: one uniform
	// holding the view position and view-projection matrix.
	Camera Layout

	// Light is group 1 on the mesh and light-marker pipelines: one uniform
	// holding the light position and color.
	Light Layout

	// Material is group 2 on the mesh pipelines: the material uniform plus
	// the diffuse texture view and its sampler.
	Material Layout

	// DepthOverlay is group 0 on the depth overlay pipeline: the depth
	// texture and a comparison sampler.
	DepthOverlay Layout
}

// NewSharedLayouts constructs the canonical layout set.
//
// Returns:
//   - SharedLayouts: the shared layout values
//   - error: an error if any layout fails validation
func NewSharedLayouts() (SharedLayouts, error) {
	s := SharedLayouts{
		Camera: NewLayout("camera",
			Entry{
				Binding:        0,
				Visibility:     wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Kind:           EntryKindUniformBuffer,
				MinBindingSize: CameraUniformSize,
			},
		),
		Light: NewLayout("light",
			Entry{
				Binding:        0,
				Visibility:     wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Kind:           EntryKindUniformBuffer,
				MinBindingSize: LightUniformSize,
			},
		),
		Material: NewLayout("material",
			Entry{
				Binding:        0,
				Visibility:     wgpu.ShaderStageFragment,
				Kind:           EntryKindUniformBuffer,
				MinBindingSize: MaterialUniformSize,
			},
			Entry{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Kind:       EntryKindTexture,
			},
			Entry{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Kind:       EntryKindSampler,
			},
		),
		DepthOverlay: NewLayout("depth_overlay",
			Entry{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Kind:       EntryKindDepthTexture,
			},
			Entry{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Kind:       EntryKindComparisonSampler,
			},
		),
	}

	for _, l := range []Layout{s.Camera, s.Light, s.Material, s.DepthOverlay} {
		if err := l.Validate(); err != nil {
			return SharedLayouts{}, err
		}
	}
	return s, nil
}
