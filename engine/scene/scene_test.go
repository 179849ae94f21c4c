package scene

import (
	"fmt"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/camera"
	"github.com/Carmen-Shannon/lumen-go/engine/game_object"
	"github.com/Carmen-Shannon/lumen-go/engine/light"
	"github.com/Carmen-Shannon/lumen-go/engine/model"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_layout"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/material"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/pipeline"
)

// recordedDraw captures one DrawCall issued through the fake renderer.
type recordedDraw struct {
	pipelineKey   string
	meshLabel     string
	instanceCount uint32
	bindGroups    int
}

// fakeRenderer satisfies renderer.Renderer without a GPU, recording the call
// sequence the scene produces.
type fakeRenderer struct {
	draws            []recordedDraw
	writes           []bind_group_provider.BufferWrite
	beginFrameErrors int // BeginFrame fails this many times before succeeding
	drawErrors       int // DrawCall fails this many times before succeeding
	frames           int
	frameOpen        bool // set between a successful BeginFrame and Present
	overlayPasses    int
	mainPassEnds     int
	endFrames        int
	presents         int
	resizes          [][2]int
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline           { return nil }
func (f *fakeRenderer) Pipelines() map[string]pipeline.Pipeline        { return nil }
func (f *fakeRenderer) RegisterPipelines(p ...pipeline.Pipeline) error { return nil }
func (f *fakeRenderer) SetPipeline(key string, p pipeline.Pipeline)    {}
func (f *fakeRenderer) SetPipelines(p map[string]pipeline.Pipeline)    {}

func (f *fakeRenderer) Resize(width, height int) {
	f.resizes = append(f.resizes, [2]int{width, height})
}

func (f *fakeRenderer) DepthTextureView() *wgpu.TextureView { return &wgpu.TextureView{} }

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, layout bind_group_layout.Layout, usageOverrides map[int]wgpu.BufferUsage, sizeOverrides map[int]uint64) error {
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeRenderer) CreateInstanceBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return nil, nil
}

func (f *fakeRenderer) WriteRawBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {}

func (f *fakeRenderer) BeginFrame() error {
	if f.frameOpen {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	if f.beginFrameErrors > 0 {
		f.beginFrameErrors--
		return fmt.Errorf("surface texture acquisition failed")
	}
	f.frames++
	f.frameOpen = true
	return nil
}

func (f *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceBuffer *wgpu.Buffer, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	if f.drawErrors > 0 {
		f.drawErrors--
		return fmt.Errorf("draw call failed")
	}
	f.draws = append(f.draws, recordedDraw{
		pipelineKey:   pipelineKey,
		meshLabel:     meshProvider.Label(),
		instanceCount: instanceCount,
		bindGroups:    len(bindGroups),
	})
	return nil
}

func (f *fakeRenderer) EndMainPass()      { f.mainPassEnds++ }
func (f *fakeRenderer) BeginOverlayPass() { f.overlayPasses++ }
func (f *fakeRenderer) EndFrame()         { f.endFrames++ }

func (f *fakeRenderer) Present() {
	f.presents++
	f.frameOpen = false
}
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) SetClearColor(wgpu.Color)            {}

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *fakeRenderer) {
	t.Helper()

	layouts, err := bind_group_layout.NewSharedLayouts()
	require.NoError(t, err)

	cam := camera.NewCamera(
		camera.WithController(camera.NewOrbitController(camera.WithRadius(5))),
	)
	lt := light.NewLight(light.WithAnimate(false))

	r := &fakeRenderer{}
	return NewScene("test", cam, lt, r, layouts, options...), r
}

func mixedModel() model.Model {
	glass := material.NewMaterial(material.WithName("glass"), material.WithAlpha(0.4))
	stone := material.NewMaterial(material.WithName("stone"))

	cube := model.NewCubeMesh("cube", 0.5)
	cube.MaterialIndex = 1 // stone
	pane := model.NewPlaneMesh("pane", 1, 1)
	pane.MaterialIndex = 0 // glass

	return model.NewModel(
		model.WithName("mixed"),
		model.WithMeshes(cube, pane),
		model.WithMaterials(glass, stone),
	)
}

func TestSceneFramePassOrder(t *testing.T) {
	s, r := newTestScene(t)

	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mixedModel())))
	require.NoError(t, err)

	s.PrepareFrame(0.016)
	require.NoError(t, s.RenderFrame())

	require.Len(t, r.draws, 3)
	// Light marker first, then opaque, then transparent.
	assert.Equal(t, pipeline.KeyLightMarker, r.draws[0].pipelineKey)
	assert.Equal(t, 2, r.draws[0].bindGroups)
	assert.Equal(t, pipeline.KeyOpaque, r.draws[1].pipelineKey)
	assert.Equal(t, pipeline.KeyTransparent, r.draws[2].pipelineKey)

	// The mixed model's sub-meshes land in different passes by material.
	assert.Equal(t, "mixed_mesh_0", r.draws[1].meshLabel)
	assert.Equal(t, "mixed_mesh_1", r.draws[2].meshLabel)
	assert.Equal(t, 3, r.draws[1].bindGroups)

	assert.Equal(t, 1, r.mainPassEnds)
	assert.Equal(t, 0, r.overlayPasses)
	assert.Equal(t, 1, r.presents)
}

func TestSceneDefaultMaterialSubstitution(t *testing.T) {
	s, r := newTestScene(t)

	bare := model.NewModel(
		model.WithName("bare"),
		model.WithMeshes(model.NewCubeMesh("cube", 0.5)),
	)
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(bare)))
	require.NoError(t, err)

	// The model now carries the substituted default material.
	require.Len(t, bare.Materials(), 1)
	assert.Equal(t, "default", bare.Materials()[0].Name())
	assert.Equal(t, pipeline.KeyOpaque, bare.Materials()[0].PipelineKey())
	assert.NotNil(t, bare.Materials()[0].BindGroupProvider())

	s.PrepareFrame(0.016)
	require.NoError(t, s.RenderFrame())
	require.Len(t, r.draws, 2)
	assert.Equal(t, pipeline.KeyOpaque, r.draws[1].pipelineKey)
}

func TestSceneSurfaceFailureSkipsFrame(t *testing.T) {
	s, r := newTestScene(t)
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mixedModel())))
	require.NoError(t, err)

	r.beginFrameErrors = 2

	// Two failed acquisitions in a row: no draws, no present, no error.
	require.NoError(t, s.RenderFrame())
	require.NoError(t, s.RenderFrame())
	assert.Empty(t, r.draws)
	assert.Zero(t, r.presents)

	// The next frame renders normally.
	require.NoError(t, s.RenderFrame())
	assert.Len(t, r.draws, 3)
	assert.Equal(t, 1, r.presents)
}

func TestSceneDrawFailureStillReleasesFrame(t *testing.T) {
	s, r := newTestScene(t)
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mixedModel())))
	require.NoError(t, err)

	// A draw fails after the frame was acquired: the error surfaces, but the
	// frame is still closed out so the surface is not held open.
	r.drawErrors = 1
	require.Error(t, s.RenderFrame())
	assert.Equal(t, 1, r.endFrames)
	assert.Equal(t, 1, r.presents)
	assert.False(t, r.frameOpen)

	// The next frame acquires and renders normally.
	require.NoError(t, s.RenderFrame())
	assert.Len(t, r.draws, 3)
	assert.Equal(t, 2, r.presents)
}

func TestScenePrepareFrameUploadsDirtyUniformsOnce(t *testing.T) {
	s, r := newTestScene(t)

	s.PrepareFrame(0.016)
	// Camera and light both start dirty.
	assert.Len(t, r.writes, 2)

	// Nothing moved: no further uploads.
	s.PrepareFrame(0.016)
	assert.Len(t, r.writes, 2)

	// Orbiting the camera dirties it again.
	s.Camera().Controller().OrbitLeft()
	s.PrepareFrame(0.016)
	assert.Len(t, r.writes, 3)
}

func TestSceneAnimatedLightUploadsEveryFrame(t *testing.T) {
	s, r := newTestScene(t)
	s.Light().SetAnimate(true)

	s.PrepareFrame(0.016)
	writes := len(r.writes)

	s.PrepareFrame(0.016)
	assert.Equal(t, writes+1, len(r.writes))
}

func TestSceneGlossOverridePropagates(t *testing.T) {
	s, r := newTestScene(t)
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mixedModel())))
	require.NoError(t, err)

	s.PrepareFrame(0.016)
	baseline := len(r.writes)

	// No material changed: no rewrites.
	s.PrepareFrame(0.016)
	assert.Len(t, r.writes, baseline)

	material.SetGlossOverride(128)
	defer material.ClearGlossOverride()

	// Both materials rewrite once, then settle.
	s.PrepareFrame(0.016)
	assert.Len(t, r.writes, baseline+2)
	s.PrepareFrame(0.016)
	assert.Len(t, r.writes, baseline+2)
}

func TestSceneRegistryLifecycle(t *testing.T) {
	s, _ := newTestScene(t)

	shared := mixedModel()
	idA, err := s.Add(game_object.NewGameObject(game_object.WithModel(shared)))
	require.NoError(t, err)
	idB, err := s.Add(game_object.NewGameObject(game_object.WithModel(shared)))
	require.NoError(t, err)
	require.NotEqual(t, idA, idB)
	assert.Equal(t, 2, s.Count())

	assert.NotNil(t, s.Get(idA))
	s.Remove(idA)
	assert.Nil(t, s.Get(idA))
	assert.Equal(t, 1, s.Count())

	// The model is still usable by the second object.
	assert.NotNil(t, shared.Materials()[0].BindGroupProvider())

	s.Remove(idB)
	assert.Equal(t, 0, s.Count())
	// Last reference gone: the material's GPU binding is dropped.
	assert.Nil(t, shared.Materials()[0].BindGroupProvider())
}

func TestSceneAddRejectsInvalidObjects(t *testing.T) {
	s, _ := newTestScene(t)

	_, err := s.Add(nil)
	require.Error(t, err)

	_, err = s.Add(game_object.NewGameObject())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model")
}

func TestSceneDepthOverlayToggle(t *testing.T) {
	s, r := newTestScene(t)
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mixedModel())))
	require.NoError(t, err)

	assert.False(t, s.ShowDepth())
	s.ToggleShowDepth()
	assert.True(t, s.ShowDepth())

	s.PrepareFrame(0.016)
	require.NoError(t, s.RenderFrame())

	assert.Equal(t, 1, r.overlayPasses)
	last := r.draws[len(r.draws)-1]
	assert.Equal(t, pipeline.KeyDepthOverlay, last.pipelineKey)
	assert.Equal(t, "depth_overlay", last.meshLabel)
}

func TestSceneResizePropagates(t *testing.T) {
	s, r := newTestScene(t)

	s.Resize(1280, 720)
	require.Len(t, r.resizes, 1)
	assert.Equal(t, [2]int{1280, 720}, r.resizes[0])
	assert.InDelta(t, 1280.0/720.0, float64(s.Camera().Aspect()), 1e-6)
}

func TestSceneTransformRefreshOnDirty(t *testing.T) {
	s, _ := newTestScene(t)

	obj := game_object.NewGameObject(game_object.WithModel(mixedModel()))
	id, err := s.Add(obj)
	require.NoError(t, err)

	// Add uploads and clears the initial transforms.
	assert.False(t, obj.TransformsDirty())

	moved := obj.Transform(0)
	moved.Translation = [3]float32{3, 0, 0}
	obj.SetTransform(0, moved)
	require.True(t, obj.TransformsDirty())

	s.PrepareFrame(0.016)
	assert.False(t, obj.TransformsDirty())
	_ = id
}
