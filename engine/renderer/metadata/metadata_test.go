package metadata

import (
	"testing"

	"github.com/spaghettifunk/anima-soft/engine/math"
)

func TestVertexLerp(t *testing.T) {
	a := NewVertex(math.NewVec4(0, 0, -1, 1), math.NewVec4(1, 0, 0, 1))
	b := NewVertex(math.NewVec4(4, 2, 1, 1), math.NewVec4(0, 1, 0, 1))

	mid := a.Lerp(b, 0.5)
	if !mid.Position.Compare(math.NewVec4(2, 1, 0, 1), 1e-6) {
		t.Errorf("position = %v", mid.Position)
	}
	if !mid.Color.Compare(math.NewVec4(0.5, 0.5, 0, 1), 1e-6) {
		t.Errorf("color = %v", mid.Color)
	}
}

func TestNewDrawCallDefaults(t *testing.T) {
	mesh := NewMesh("tri", nil, []uint32{0, 1, 2, 0})
	dc := NewDrawCall(mesh, math.NewMat4Identity())
	if dc.Mode != CullModeCCW || dc.DepthMode != DepthTestLess || !dc.WriteDepth || dc.DebugCheckerboard {
		t.Errorf("unexpected defaults: %+v", dc)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	var nilMesh *Mesh
	if nilMesh.TriangleCount() != 0 {
		t.Error("nil mesh has no triangles")
	}
}

func TestCullModeText(t *testing.T) {
	for _, mode := range []CullMode{CullModeNone, CullModeCW, CullModeCCW} {
		text, err := mode.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back CullMode
		if err := back.UnmarshalText(text); err != nil || back != mode {
			t.Errorf("round trip of %v = %v, %v", mode, back, err)
		}
	}

	var m CullMode
	if err := m.UnmarshalText([]byte(" CCW ")); err != nil || m != CullModeCCW {
		t.Errorf("UnmarshalText(CCW) = %v, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("front")); err == nil {
		t.Error("unknown cull mode should fail")
	}
	if s := CullMode(9).String(); s != "CullMode(9)" {
		t.Errorf("String = %q", s)
	}
}

func TestDepthTestModeText(t *testing.T) {
	tests := []struct {
		in   string
		want DepthTestMode
	}{
		{"never", DepthTestNever},
		{"Always", DepthTestAlways},
		{"less", DepthTestLess},
		{"less-equal", DepthTestLessEqual},
		{"GREATER", DepthTestGreater},
		{"greater_equal", DepthTestGreaterEqual},
		{"equal", DepthTestEqual},
		{"not_equal", DepthTestNotEqual},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var m DepthTestMode
			if err := m.UnmarshalText([]byte(tc.in)); err != nil {
				t.Fatal(err)
			}
			if m != tc.want {
				t.Errorf("got %v, want %v", m, tc.want)
			}
		})
	}

	if _, err := DepthTestMode(42).MarshalText(); err == nil {
		t.Error("marshalling an unknown mode should fail")
	}
}

func TestRenderPacket(t *testing.T) {
	var p RenderPacket
	p.Add(NewDrawCall(nil, math.NewMat4Identity()))
	p.DeltaTime = 0.016
	if len(p.DrawCalls) != 1 {
		t.Fatalf("len = %d, want 1", len(p.DrawCalls))
	}
	p.Reset()
	if len(p.DrawCalls) != 0 || p.DeltaTime != 0 {
		t.Error("Reset should drop draw calls")
	}
}
