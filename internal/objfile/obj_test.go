package objfile

import (
	"strings"
	"testing"
)

func TestParseTriangleWithNormalsAndUVs(t *testing.T) {
	src := `
o cube
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 0 1
f 1/1/1 2/2/1 3/3/1
`
	mesh, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(mesh.Triangles))
	}
	tri := mesh.Triangles[0]
	if tri.Normals == nil {
		t.Fatal("expected normals to be populated when every corner has one")
	}
	if tri.UVs == nil {
		t.Fatal("expected UVs to be populated when every corner has one")
	}
	if tri.Verts[1].X() != 1 {
		t.Fatalf("expected second vertex x=1, got %v", tri.Verts[1])
	}
}

func TestParseMissingNormalOnOneCornerDropsAll(t *testing.T) {
	src := `
o tri
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3
`
	mesh, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(mesh.Triangles))
	}
	if mesh.Triangles[0].Normals != nil {
		t.Fatal("expected normals to be nil when not every corner has one")
	}
}

func TestParseQuadFaceIgnored(t *testing.T) {
	src := `
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	mesh, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected an error for a mesh with no triangles")
	}
	if len(mesh.Triangles) != 0 {
		t.Fatalf("expected the quad face to be ignored, got %d triangles", len(mesh.Triangles))
	}
}

func TestParseOnlyFirstObject(t *testing.T) {
	src := `
o first
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o second
v 5 5 5
v 6 5 5
v 5 6 5
f 4 5 6
`
	mesh, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected only the first object's triangle, got %d", len(mesh.Triangles))
	}
}

func TestParseMalformedFileYieldsEmptyMeshWithError(t *testing.T) {
	src := `this is not an obj file at all`
	mesh, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected an error for a file with no usable geometry")
	}
	if len(mesh.Triangles) != 0 {
		t.Fatalf("expected an empty mesh, got %d triangles", len(mesh.Triangles))
	}
}

func TestParseOutOfRangeFaceIndexDropsFace(t *testing.T) {
	src := `
o broken
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 99
`
	mesh, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected an error since the only face references an out-of-range vertex")
	}
	if len(mesh.Triangles) != 0 {
		t.Fatalf("expected the out-of-range face to be dropped, got %d", len(mesh.Triangles))
	}
}
