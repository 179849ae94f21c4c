package bind_group_layout

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// EntryKind identifies the resource category a layout entry describes.
type EntryKind int

const (
	// EntryKindUniformBuffer is a uniform buffer binding.
	EntryKindUniformBuffer EntryKind = iota

	// EntryKindTexture is a float-sampled 2D texture binding.
	EntryKindTexture

	// EntryKindDepthTexture is a depth-sampled 2D texture binding, used by the depth overlay.
	EntryKindDepthTexture

	// EntryKindSampler is a filtering sampler binding.
	EntryKindSampler

	// EntryKindComparisonSampler is a comparison sampler binding, paired with a depth texture.
	EntryKindComparisonSampler
)

// Entry describes a single resource binding within a layout: its binding
// index, the shader stages that can see it, its resource kind, and (for
// buffers) the minimum binding size in bytes.
type Entry struct {
	Binding        uint32
	Visibility     wgpu.ShaderStage
	Kind           EntryKind
	MinBindingSize uint64
}

type layoutImpl struct {
	name    string
	entries []Entry
	handle  *wgpu.BindGroupLayout
}

// Layout is a named value object describing the structure of one bind group.
// The same Layout value is injected into both the resource binding layer
// (to create bind groups) and the pipeline registry (to create pipeline
// layouts), so a structural mismatch between the two is impossible by
// construction. Equal provides an explicit structural check for layouts
// built independently.
//
// The underlying GPU handle is created once by the renderer via SetHandle
// and shared by every bind group and pipeline referencing this Layout.
type Layout interface {
	// Name returns the layout's identifying name.
	//
	// Returns:
	//   - string: the layout name
	Name() string

	// Entries returns the ordered binding entries of this layout.
	//
	// Returns:
	//   - []Entry: the layout entries, ordered by binding index
	Entries() []Entry

	// Equal reports whether other has the same structure as this layout:
	// same entry count, and per entry the same binding index, visibility,
	// kind, and minimum binding size. Names are not compared.
	//
	// Parameters:
	//   - other: the layout to compare against
	//
	// Returns:
	//   - bool: true if the two layouts are structurally identical
	Equal(other Layout) bool

	// Descriptor builds the wgpu layout descriptor for this layout.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor
	Descriptor() wgpu.BindGroupLayoutDescriptor

	// Handle returns the GPU layout handle, or nil if not yet built.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the GPU handle or nil
	Handle() *wgpu.BindGroupLayout

	// SetHandle stores the GPU layout handle built from Descriptor.
	//
	// Parameters:
	//   - h: the GPU handle to store
	SetHandle(h *wgpu.BindGroupLayout)

	// Validate checks the layout for internal consistency: at least one
	// entry, no duplicate binding indices, and a non-zero size on every
	// uniform buffer entry.
	//
	// Returns:
	//   - error: a descriptive error, or nil if the layout is well-formed
	Validate() error
}

var _ Layout = &layoutImpl{}

// NewLayout creates a Layout from the given entries. Entries should be
// listed in ascending binding order.
//
// Parameters:
//   - name: the identifying name for this layout
//   - entries: the binding entries
//
// Returns:
//   - Layout: the new layout value
func NewLayout(name string, entries ...Entry) Layout {
	return &layoutImpl{
		name:    name,
		entries: entries,
	}
}

func (l *layoutImpl) Name() string {
	return l.name
}

func (l *layoutImpl) Entries() []Entry {
	return l.entries
}

func (l *layoutImpl) Equal(other Layout) bool {
	if other == nil {
		return false
	}
	otherEntries := other.Entries()
	if len(l.entries) != len(otherEntries) {
		return false
	}
	for i, e := range l.entries {
		o := otherEntries[i]
		if e.Binding != o.Binding || e.Visibility != o.Visibility || e.Kind != o.Kind || e.MinBindingSize != o.MinBindingSize {
			return false
		}
	}
	return true
}

func (l *layoutImpl) Descriptor() wgpu.BindGroupLayoutDescriptor {
	entries := make([]wgpu.BindGroupLayoutEntry, len(l.entries))
	for i, e := range l.entries {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    e.Binding,
			Visibility: e.Visibility,
		}
		switch e.Kind {
		case EntryKindUniformBuffer:
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
			entry.Buffer.MinBindingSize = e.MinBindingSize
		case EntryKindTexture:
			entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
			entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		case EntryKindDepthTexture:
			entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
			entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		case EntryKindSampler:
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		case EntryKindComparisonSampler:
			entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
		}
		entries[i] = entry
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   l.name,
		Entries: entries,
	}
}

func (l *layoutImpl) Handle() *wgpu.BindGroupLayout {
	return l.handle
}

func (l *layoutImpl) SetHandle(h *wgpu.BindGroupLayout) {
	l.handle = h
}

func (l *layoutImpl) Validate() error {
	if len(l.entries) == 0 {
		return fmt.Errorf("layout %q has no entries", l.name)
	}
	seen := make(map[uint32]bool, len(l.entries))
	for _, e := range l.entries {
		if seen[e.Binding] {
			return fmt.Errorf("layout %q declares binding %d more than once", l.name, e.Binding)
		}
		seen[e.Binding] = true
		if e.Kind == EntryKindUniformBuffer && e.MinBindingSize == 0 {
			return fmt.Errorf("layout %q binding %d is a uniform buffer with zero size", l.name, e.Binding)
		}
	}
	return nil
}
