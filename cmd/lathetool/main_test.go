package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/lathe/internal/scene"
	"github.com/Faultbox/lathe/pkg/revolve"
)

func TestCmdInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdInfo(&buf, []string{"-angular", "8", "-vertical", "4"}); err != nil {
		t.Fatalf("cmdInfo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Vertices:       45", "5 rings x 9 columns", "triangle-strip"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCmdInfoInvalid(t *testing.T) {
	err := cmdInfo(&bytes.Buffer{}, []string{"-angular", "2"})
	if !errors.Is(err, revolve.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestCmdOBJProfile(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdOBJ(&buf, []string{"-angular", "3", "-vertical", "1"}); err != nil {
		t.Fatalf("cmdOBJ: %v", err)
	}
	var verts, faces int
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			verts++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}
	if verts != revolve.VertexCount(3, 1) {
		t.Errorf("vertices = %d, want %d", verts, revolve.VertexCount(3, 1))
	}
	// one ring pair of three quads
	if faces != 6 {
		t.Errorf("faces = %d, want 6", faces)
	}
}

func TestWriteSceneOBJ(t *testing.T) {
	s, err := scene.Build(scene.Default())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeSceneOBJ(&buf, s); err != nil {
		t.Fatalf("writeSceneOBJ: %v", err)
	}
	objects := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "o ") {
			objects++
		}
	}
	if objects != len(s.Entries) {
		t.Errorf("objects = %d, want %d", objects, len(s.Entries))
	}
}

func TestWorldMesh(t *testing.T) {
	s, err := scene.Build(scene.Default())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range s.Entries {
		if e.Name != "water_bottle" {
			continue
		}
		w := worldMesh(e)
		if w.Position(0) == e.Mesh.Position(0) {
			t.Error("world copy should be moved by the model matrix")
		}
		if e.Mesh.Position(0).Y != 0 {
			t.Error("source mesh must stay in local space")
		}
		if top := w.Bounds.Max.Y; top < 24.79 || top > 24.81 {
			t.Errorf("world top = %v, want 24.8", top)
		}
		return
	}
	t.Fatal("water_bottle not found")
}

func TestCmdScene(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdScene(&buf, nil); err != nil {
		t.Fatalf("cmdScene: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Scene: room (built-in)", "water_bottle", "glasses_case"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
