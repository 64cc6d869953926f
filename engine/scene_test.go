package engine

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/systems"
)

func newMeshSystem(t *testing.T) *systems.MeshSystem {
	t.Helper()
	ms, err := systems.NewMeshSystem()
	if err != nil {
		t.Fatalf("NewMeshSystem: %v", err)
	}
	return ms
}

func TestNewScene(t *testing.T) {
	scene, err := NewScene(DefaultObjects(), newMeshSystem(t))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if len(scene.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(scene.Objects))
	}

	backdrop := scene.Find("backdrop")
	if backdrop == nil || backdrop.Mesh.Name != systems.RectMeshName {
		t.Fatalf("backdrop = %+v", backdrop)
	}
	// The rect corner (0.5, 0.5) scaled by 8 and pushed back by 3.
	corner := math.NewVec4(0.5, 0.5, 0, 1).Transform(backdrop.Transform.GetWorld())
	if !corner.Compare(math.NewVec4(4, 4, -3, 1), 1e-5) {
		t.Errorf("backdrop corner = %v", corner)
	}
	if scene.Find("nothing") != nil {
		t.Error("Find on an unknown name should return nil")
	}
}

func TestNewSceneUnknownMesh(t *testing.T) {
	_, err := NewScene([]ObjectConfig{{Name: "teapot", Mesh: "teapot"}}, newMeshSystem(t))
	if !errors.Is(err, systems.ErrMeshNotFound) {
		t.Errorf("NewScene = %v, want ErrMeshNotFound", err)
	}
}

func TestSceneUpdateSpins(t *testing.T) {
	objects := []ObjectConfig{
		{Name: "spinner", Mesh: systems.CubeMeshName, Scale: [3]float32{1, 1, 1}, Spin: [3]float32{0, 90, 0}},
		{Name: "still", Mesh: systems.CubeMeshName, Scale: [3]float32{1, 1, 1}},
	}
	scene, err := NewScene(objects, newMeshSystem(t))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	scene.Update(1)

	// A quarter turn around +y takes +x to -z.
	got := math.NewVec4(1, 0, 0, 1).Transform(scene.Find("spinner").Transform.GetWorld())
	if !got.Compare(math.NewVec4(0, 0, -1, 1), 1e-4) {
		t.Errorf("spun point = %v, want (0,0,-1,1)", got)
	}
	if w := scene.Find("still").Transform.GetWorld(); w != math.NewMat4Identity() {
		t.Errorf("still object moved: %v", w.Data)
	}
}

func TestSceneRender(t *testing.T) {
	depth := metadata.DepthTestAlways
	objects := []ObjectConfig{
		{Name: "a", Mesh: systems.RectMeshName, Scale: [3]float32{1, 1, 1}, Position: [3]float32{1, 0, 0}},
		{Name: "b", Mesh: systems.CubeMeshName, Scale: [3]float32{1, 1, 1}, Depth: &depth, Checkerboard: true},
	}
	scene, err := NewScene(objects, newMeshSystem(t))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	viewProjection := math.NewMat4Scale(math.NewVec3(2, 2, 2))
	packet := &metadata.RenderPacket{}
	scene.Render(packet, viewProjection)

	if len(packet.DrawCalls) != 2 {
		t.Fatalf("got %d draw calls, want 2", len(packet.DrawCalls))
	}
	first := packet.DrawCalls[0]
	if first.Mesh.Name != systems.RectMeshName || first.DepthMode != metadata.DepthTestLess {
		t.Errorf("first draw call = %s, %s", first.Mesh.Name, first.DepthMode)
	}
	// model first, then view projection
	origin := math.NewVec4(0, 0, 0, 1).Transform(first.Transform)
	if !origin.Compare(math.NewVec4(2, 0, 0, 1), 1e-5) {
		t.Errorf("origin = %v, want (2,0,0,1)", origin)
	}

	second := packet.DrawCalls[1]
	if second.DepthMode != metadata.DepthTestAlways || !second.DebugCheckerboard {
		t.Errorf("second draw call = %s, checkerboard %v", second.DepthMode, second.DebugCheckerboard)
	}
}
