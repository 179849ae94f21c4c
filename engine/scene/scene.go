package scene

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/camera"
	"github.com/Carmen-Shannon/lumen-go/engine/game_object"
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_layout"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/depth_overlay"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/instance"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Material bind group bindings, matching the material layout: the uniform at
// 0, the diffuse texture at 1, and its sampler at 2.
const (
	materialUniformBinding = 0
	diffuseTextureBinding  = 1
	diffuseSamplerBinding  = 2
)

// uniformBinding is binding 0 on the single-uniform camera and light groups.
const uniformBinding = 0

// materialState pairs a material with its GPU resources plus the last uniform
// written, so uniform rewrites only happen when the CPU-side values change
// (e.g. the global gloss override).
type materialState struct {
	mat         material.Material
	provider    bind_group_provider.BindGroupProvider
	lastUniform material.GPUMaterialUniform
}

// modelState holds the per-model GPU resources shared by every object drawn
// with that model: one mesh provider per sub-mesh and one material state per
// material. refs counts the objects using the model so resources are released
// when the last one is removed.
type modelState struct {
	meshProviders []bind_group_provider.BindGroupProvider
	materials     []*materialState
	refs          int
}

// drawItem is one recorded sub-mesh draw, produced by the per-frame partition
// and consumed in pass order.
type drawItem struct {
	meshProvider     bind_group_provider.BindGroupProvider
	materialProvider bind_group_provider.BindGroupProvider
	pipelineKey      string
	instanceBuffer   *wgpu.Buffer
	instanceCount    uint32
}

// Scene owns the renderable registry, the camera, the light, and the frame
// orchestration: uniform uploads in PrepareFrame, then the fixed pass sequence
// in RenderFrame (light marker, opaque, transparent, optional depth overlay).
// Thread-safe for concurrent access; all GPU command recording for a frame
// happens on the caller's goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Light returns the scene's light.
	Light() light.Light

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Count returns the number of GameObjects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject for rendering. The object must carry a Model.
	// GPU resources (mesh buffers, material bind groups, the instance buffer)
	// are created on first use; models shared between objects share mesh and
	// material resources. A model with an empty material list gets the default
	// material substituted so every mesh resolves a valid binding.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	//   - error: an error if the object has no model or GPU init fails
	Add(obj game_object.GameObject) (uint64, error)

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject from the registry by ID, releasing its
	// instance buffer and, when no other object shares the model, the model's
	// GPU resources.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene and releases their GPU resources.
	Clear()

	// ShowDepth returns whether the depth overlay pass runs this frame.
	//
	// Returns:
	//   - bool: true if the depth overlay is enabled
	ShowDepth() bool

	// SetShowDepth enables or disables the depth overlay pass.
	//
	// Parameters:
	//   - show: true to draw the depth overlay after the main pass
	SetShowDepth(show bool)

	// ToggleShowDepth flips the depth overlay flag. Safe to call from input
	// callbacks on another goroutine.
	ToggleShowDepth()

	// PrepareFrame advances per-frame CPU state and uploads dirty uniforms:
	// camera (when moved), light (ticked while animating), material uniforms
	// (when the gloss override changed), and instance buffers for objects
	// whose transforms changed.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	PrepareFrame(deltaTime float64)

	// RenderFrame records and submits one frame: light marker, opaque draws,
	// transparent draws, then the depth overlay pass when enabled. A surface
	// acquisition failure is logged and the frame skipped; the next call
	// retries.
	//
	// Returns:
	//   - error: an error if a draw call fails mid-frame
	RenderFrame() error

	// Resize reconfigures the renderer surface and rebuilds the depth
	// overlay's bind group against the recreated depth texture.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// Release frees all GPU resources owned by the scene.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	lt  light.Light
	r   renderer.Renderer

	layouts bind_group_layout.SharedLayouts

	registry map[uint64]game_object.GameObject
	nextID   uint64

	instances   instance.Manager
	modelStates map[model.Model]*modelState

	// lightMarkerProvider holds the vertex/index buffers of the light's proxy
	// sphere, drawn through the light_marker pipeline.
	lightMarkerProvider bind_group_provider.BindGroupProvider

	overlay   depth_overlay.Overlay
	showDepth atomic.Bool

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	opaquePool      []drawItem
	transparentPool []drawItem
	writePool       []bind_group_provider.BufferWrite
	sortedIDs       []uint64
}

var _ Scene = &scene{}

// NewScene creates a new Scene and initializes its GPU-side resources: the
// camera and light bind groups, the light marker proxy mesh, and the depth
// overlay. Camera, light, and renderer are required; the layouts must be the
// same shared values the pipeline set was registered with. GPU init failure
// here is fatal and panics, matching the startup error model.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - lt: the light to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - layouts: the shared bind group layouts used by the pipeline set
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, lt light.Light, r renderer.Renderer, layouts bind_group_layout.SharedLayouts, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if lt == nil {
		panic("scene: NewScene requires a non-nil Light")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:              &sync.RWMutex{},
		name:            name,
		active:          false,
		cam:             cam,
		lt:              lt,
		r:               r,
		layouts:         layouts,
		registry:        make(map[uint64]game_object.GameObject),
		modelStates:     make(map[model.Model]*modelState),
		nextID:          1,
		opaquePool:      make([]drawItem, 0, 16),
		transparentPool: make([]drawItem, 0, 16),
	}

	for _, option := range options {
		option(s)
	}

	if s.instances == nil {
		s.instances = instance.NewManager(r)
	}

	if err := r.InitBindGroup(cam.BindGroupProvider(), layouts.Camera, nil, nil); err != nil {
		panic(fmt.Sprintf("scene: failed to init camera bind group: %v", err))
	}
	if err := r.InitBindGroup(lt.BindGroupProvider(), layouts.Light, nil, nil); err != nil {
		panic(fmt.Sprintf("scene: failed to init light bind group: %v", err))
	}

	marker := model.NewSphereMesh("light_marker", 1, 12, 24)
	s.lightMarkerProvider = bind_group_provider.NewBindGroupProvider(name + "_light_marker")
	if err := r.InitMeshBuffers(s.lightMarkerProvider, marker.VertexBytes(), marker.IndexBytes(), int(marker.IndexCount())); err != nil {
		panic(fmt.Sprintf("scene: failed to init light marker mesh: %v", err))
	}

	s.overlay = depth_overlay.NewOverlay()
	if err := s.overlay.Init(r, layouts.DepthOverlay); err != nil {
		panic(fmt.Sprintf("scene: failed to init depth overlay: %v", err))
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Light() light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lt
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	if obj == nil {
		return 0, fmt.Errorf("scene %s: cannot add a nil object", s.Name())
	}
	mdl := obj.Model()
	if mdl == nil {
		return 0, fmt.Errorf("scene %s: object has no model", s.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ms, exists := s.modelStates[mdl]
	if !exists {
		var err error
		ms, err = s.initModelState(mdl)
		if err != nil {
			return 0, err
		}
		s.modelStates[mdl] = ms
	}
	ms.refs++

	id := s.nextID
	s.nextID++
	obj.SetID(id)

	if err := s.instances.Ensure(id, obj.InstanceCount()); err != nil {
		s.releaseModelState(mdl, ms)
		return 0, err
	}
	if err := s.instances.Refresh(id, obj.Transforms()); err != nil {
		s.instances.Remove(id)
		s.releaseModelState(mdl, ms)
		return 0, err
	}
	obj.ClearTransformsDirty()

	s.registry[id] = obj
	return id, nil
}

// initModelState creates the GPU resources for a model: mesh buffers for each
// sub-mesh and a bind group per material. An empty material list gets the
// default material substituted first. Caller must hold s.mu.
func (s *scene) initModelState(mdl model.Model) (*modelState, error) {
	if len(mdl.Materials()) == 0 {
		mdl.SetMaterials([]material.Material{material.NewDefaultMaterial()})
	}

	ms := &modelState{}
	for _, mat := range mdl.Materials() {
		state, err := s.initMaterial(mat)
		if err != nil {
			s.releaseModelStateResources(ms)
			return nil, err
		}
		ms.materials = append(ms.materials, state)
	}

	for i, mesh := range mdl.Meshes() {
		provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s_mesh_%d", mdl.Name(), i))
		if err := s.r.InitMeshBuffers(provider, mesh.VertexBytes(), mesh.IndexBytes(), int(mesh.IndexCount())); err != nil {
			s.releaseModelStateResources(ms)
			return nil, fmt.Errorf("mesh buffers for %s: %w", mesh.Name, err)
		}
		ms.meshProviders = append(ms.meshProviders, provider)
	}

	return ms, nil
}

// initMaterial builds the GPU bind group for one material: the uniform
// buffer, the diffuse texture (a white pixel when the material has none), and
// its sampler. The uniform is written immediately so the material is drawable
// without waiting for the next PrepareFrame. Caller must hold s.mu.
func (s *scene) initMaterial(mat material.Material) (*materialState, error) {
	provider := bind_group_provider.NewBindGroupProvider("material_" + mat.Name())

	staging := material.WhitePixelStaging()
	var samplerData common.SamplerStagingData
	if tex := mat.DiffuseTexture(); tex != nil {
		pixels, width, height, err := tex.Decode()
		if err != nil {
			return nil, fmt.Errorf("material %s diffuse texture: %w", mat.Name(), err)
		}
		staging = common.TextureStagingData{Pixels: pixels, Width: width, Height: height}
		if tex.SamplerData != nil {
			samplerData = *tex.SamplerData
		}
	}

	if err := s.r.InitTextureView(provider, diffuseTextureBinding, staging); err != nil {
		return nil, fmt.Errorf("material %s texture view: %w", mat.Name(), err)
	}
	if err := s.r.InitSampler(provider, diffuseSamplerBinding, samplerData); err != nil {
		provider.Release()
		return nil, fmt.Errorf("material %s sampler: %w", mat.Name(), err)
	}
	if err := s.r.InitBindGroup(provider, s.layouts.Material, nil, nil); err != nil {
		provider.Release()
		return nil, fmt.Errorf("material %s bind group: %w", mat.Name(), err)
	}

	uniform := mat.Uniform()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: provider,
		Binding:  materialUniformBinding,
		Offset:   0,
		Data:     uniform.Marshal(),
	}})

	mat.SetBindGroupProvider(provider)
	if mat.Transparent() {
		mat.SetPipelineKey(pipeline.KeyTransparent)
	} else {
		mat.SetPipelineKey(pipeline.KeyOpaque)
	}

	return &materialState{mat: mat, provider: provider, lastUniform: uniform}, nil
}

// releaseModelStateResources frees whatever GPU resources the partially or
// fully built model state holds. Caller must hold s.mu.
func (s *scene) releaseModelStateResources(ms *modelState) {
	for _, state := range ms.materials {
		if state.provider != nil {
			state.provider.Release()
		}
		state.mat.SetBindGroupProvider(nil)
	}
	for _, provider := range ms.meshProviders {
		provider.Release()
	}
	ms.materials = nil
	ms.meshProviders = nil
}

// releaseModelState drops one reference to the model's shared resources and
// frees them when no object uses the model anymore. Caller must hold s.mu.
func (s *scene) releaseModelState(mdl model.Model, ms *modelState) {
	ms.refs--
	if ms.refs <= 0 {
		s.releaseModelStateResources(ms)
		delete(s.modelStates, mdl)
	}
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)
	s.instances.Remove(id)

	if mdl := obj.Model(); mdl != nil {
		if ms, ok := s.modelStates[mdl]; ok {
			s.releaseModelState(mdl, ms)
		}
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.registry {
		delete(s.registry, id)
		s.instances.Remove(id)
	}
	for mdl, ms := range s.modelStates {
		s.releaseModelStateResources(ms)
		delete(s.modelStates, mdl)
	}
}

func (s *scene) ShowDepth() bool {
	return s.showDepth.Load()
}

func (s *scene) SetShowDepth(show bool) {
	s.showDepth.Store(show)
}

func (s *scene) ToggleShowDepth() {
	for {
		old := s.showDepth.Load()
		if s.showDepth.CompareAndSwap(old, !old) {
			return
		}
	}
}

func (s *scene) PrepareFrame(deltaTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writePool = s.writePool[:0]

	// Camera: the controller comparison inside Update keeps the dirty flag
	// clear when nothing moved, so a static camera costs no upload.
	s.cam.Update()
	if s.cam.Dirty() {
		uniform := s.cam.Uniform()
		s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
			Provider: s.cam.BindGroupProvider(),
			Binding:  uniformBinding,
			Offset:   0,
			Data:     uniform.Marshal(),
		})
		s.cam.ClearDirty()
	}

	// Light: ticking the orbit marks it dirty; a static light uploads once.
	if s.lt.Animate() {
		s.lt.Tick(deltaTime)
	}
	if s.lt.Dirty() {
		uniform := s.lt.Uniform()
		s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
			Provider: s.lt.BindGroupProvider(),
			Binding:  uniformBinding,
			Offset:   0,
			Data:     uniform.Marshal(),
		})
		s.lt.ClearDirty()
	}

	// Materials: rewrite only when the effective uniform changed, which is
	// how the global gloss override propagates.
	for _, ms := range s.modelStates {
		for _, state := range ms.materials {
			uniform := state.mat.Uniform()
			if uniform == state.lastUniform {
				continue
			}
			state.lastUniform = uniform
			s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
				Provider: state.provider,
				Binding:  materialUniformBinding,
				Offset:   0,
				Data:     uniform.Marshal(),
			})
		}
	}

	if len(s.writePool) > 0 {
		s.r.WriteBuffers(s.writePool)
	}

	// Instance buffers for objects whose transforms changed since last frame.
	for id, obj := range s.registry {
		if !obj.TransformsDirty() {
			continue
		}
		if err := s.instances.Ensure(id, obj.InstanceCount()); err != nil {
			log.Printf("scene %s: instance buffer for object %d: %v", s.name, id, err)
			continue
		}
		if err := s.instances.Refresh(id, obj.Transforms()); err != nil {
			log.Printf("scene %s: instance refresh for object %d: %v", s.name, id, err)
			continue
		}
		obj.ClearTransformsDirty()
	}
}

func (s *scene) RenderFrame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.r.BeginFrame(); err != nil {
		// Transient: resize or occlusion. Skip the frame and retry next tick.
		log.Printf("scene %s: skipping frame: %v", s.name, err)
		return nil
	}

	// The acquired frame must always be closed out, even when a draw fails:
	// EndFrame ends any open pass and submits what was recorded, Present
	// releases the surface. Bailing out early instead would leave the backend
	// holding frame state and fail every subsequent BeginFrame.
	err := s.recordPasses()

	s.r.EndFrame()
	s.r.Present()
	return err
}

// recordPasses records the fixed pass sequence for one frame: light marker,
// opaque, transparent, then the optional depth overlay in its own pass.
// Returns the first draw error. Caller must hold s.mu and owns closing the
// frame regardless of the result.
func (s *scene) recordPasses() error {
	camProvider := s.cam.BindGroupProvider()
	lightProvider := s.lt.BindGroupProvider()

	// Light marker first: a small untextured proxy at the light position.
	if err := s.r.DrawCall(pipeline.KeyLightMarker, s.lightMarkerProvider, nil, 1,
		[]bind_group_provider.BindGroupProvider{camProvider, lightProvider}); err != nil {
		return err
	}

	s.partitionDraws()

	for i := range s.opaquePool {
		if err := s.drawOne(&s.opaquePool[i], camProvider, lightProvider); err != nil {
			return err
		}
	}
	for i := range s.transparentPool {
		if err := s.drawOne(&s.transparentPool[i], camProvider, lightProvider); err != nil {
			return err
		}
	}

	s.r.EndMainPass()

	if s.showDepth.Load() {
		s.r.BeginOverlayPass()
		if err := s.overlay.Draw(s.r); err != nil {
			return err
		}
	}
	return nil
}

// partitionDraws walks the registry in id order and splits every enabled
// object's sub-meshes into the opaque and transparent pools by each
// sub-mesh's own material, so mixed-alpha models contribute to both passes.
// Caller must hold s.mu.
func (s *scene) partitionDraws() {
	s.opaquePool = s.opaquePool[:0]
	s.transparentPool = s.transparentPool[:0]

	s.sortedIDs = s.sortedIDs[:0]
	for id := range s.registry {
		s.sortedIDs = append(s.sortedIDs, id)
	}
	sort.Slice(s.sortedIDs, func(i, j int) bool { return s.sortedIDs[i] < s.sortedIDs[j] })

	for _, id := range s.sortedIDs {
		obj := s.registry[id]
		if !obj.Enabled() {
			continue
		}
		mdl := obj.Model()
		ms, ok := s.modelStates[mdl]
		if !ok {
			continue
		}

		buffer := s.instances.Buffer(id)
		count := s.instances.Count(id)
		if count == 0 {
			continue
		}

		for i := range mdl.Meshes() {
			state := s.materialStateFor(mdl, ms, i)
			if state == nil {
				continue
			}
			item := drawItem{
				meshProvider:     ms.meshProviders[i],
				materialProvider: state.provider,
				pipelineKey:      state.mat.PipelineKey(),
				instanceBuffer:   buffer,
				instanceCount:    count,
			}
			if state.mat.Transparent() {
				s.transparentPool = append(s.transparentPool, item)
			} else {
				s.opaquePool = append(s.opaquePool, item)
			}
		}
	}
}

// materialStateFor resolves the material state for a sub-mesh, falling back
// to the model's first material when the mesh's index is out of range.
// Caller must hold s.mu.
func (s *scene) materialStateFor(mdl model.Model, ms *modelState, meshIndex int) *materialState {
	if mat := mdl.MaterialFor(meshIndex); mat != nil {
		for _, state := range ms.materials {
			if state.mat == mat {
				return state
			}
		}
	}
	if len(ms.materials) > 0 {
		return ms.materials[0]
	}
	return nil
}

// drawOne issues a single sub-mesh draw with the standard camera, light, and
// material groups. Caller must hold s.mu.
func (s *scene) drawOne(item *drawItem, camProvider, lightProvider bind_group_provider.BindGroupProvider) error {
	return s.r.DrawCall(item.pipelineKey, item.meshProvider, item.instanceBuffer, item.instanceCount,
		[]bind_group_provider.BindGroupProvider{camProvider, lightProvider, item.materialProvider})
}

func (s *scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.r.Resize(width, height)
	if err := s.overlay.Resize(s.r); err != nil {
		log.Printf("scene %s: depth overlay resize: %v", s.name, err)
	}
	if height > 0 {
		s.cam.SetAspect(float32(width) / float32(height))
	}
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.registry {
		delete(s.registry, id)
	}
	s.instances.Release()
	for mdl, ms := range s.modelStates {
		s.releaseModelStateResources(ms)
		delete(s.modelStates, mdl)
	}
	if s.lightMarkerProvider != nil {
		s.lightMarkerProvider.Release()
		s.lightMarkerProvider = nil
	}
	if s.overlay != nil {
		s.overlay.Release()
	}
}
