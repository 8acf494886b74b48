package meshcache

import (
	"os"
	"path/filepath"
	"testing"
)

const triangleOBJ = `
o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeTempOBJ(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp obj: %v", err)
	}
	return path
}

func TestLoadParsesAndBuildsBVH(t *testing.T) {
	path := writeTempOBJ(t, triangleOBJ)
	c, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	built, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if built.BVH.TriCount() != 1 {
		t.Fatalf("expected 1 triangle in the built BVH, got %d", built.BVH.TriCount())
	}
}

func TestLoadSharesCachedBuildAcrossInstances(t *testing.T) {
	path := writeTempOBJ(t, triangleOBJ)
	c, _ := New(4)
	first, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Fatal("expected the second Load of the same path to return the cached *Built")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", c.Len())
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	c, _ := New(4)
	if _, err := c.Load("/nonexistent/path/does/not/exist.obj"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadMalformedFileReturnsErrorWithoutCaching(t *testing.T) {
	path := writeTempOBJ(t, "not an obj file")
	c, _ := New(4)
	if _, err := c.Load(path); err == nil {
		t.Fatal("expected an error for a malformed file")
	}
	if c.Len() != 0 {
		t.Fatalf("expected nothing cached after a parse failure, got %d entries", c.Len())
	}
}
