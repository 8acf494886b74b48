// Package objfile implements the OBJ text reader spec.md §1 names as an
// external collaborator ("the OBJ text-file reader (consumed as a pure
// function parse_obj(bytes) -> mesh data)"). Grounded on gazed-vu's
// load/obj.go (line-oriented v/vt/vn/f scanning, an "o" line separating
// objects, Sscanf-based face-index parsing) but reworked into triangle
// records the scene package can hand straight to BVH construction instead of
// gazed-vu's flattened GL vertex/index buffers.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/barretodiego/pathtracer/internal/geom"
)

// Mesh is the host-facing result of Parse: a flat triangle list ready to
// hand to accel.Build. A malformed or empty source yields a zero-value Mesh
// (len(Triangles) == 0) and a non-nil error — never a panic (spec.md §7).
type Mesh struct {
	Triangles []Triangle
}

// Triangle carries the three corner positions plus optional per-corner
// normals and UVs. Normals/UVs are populated only when every corner of the
// face supplied them (spec.md §3: "stored if all three corners have them,
// else left as None").
type Triangle struct {
	Verts   [3]geom.Vec3
	Normals *[3]geom.Vec3
	UVs     *[3]geom.Vec2
}

type vertexData struct {
	v []geom.Vec3
	n []geom.Vec3
	t []geom.Vec2
}

// faceCorner is one "v/t/n" token of a face line, as 0-based indices; t and
// n are negative (-2) when absent.
type faceCorner struct {
	v, t, n int
}

// Parse reads the first object in a Wavefront OBJ stream and returns its
// triangles. Per spec.md §6: vertex positions are mandatory; texture
// coordinates and normals are optional per corner; non-triangle faces
// (lines, quads, n-gons) are ignored rather than triangulated; malformed
// v/vn/vt/f lines are skipped. A read failure, or a source that yields no
// triangle, returns an empty Mesh and a descriptive error instead of
// aborting, so the host can log and continue (spec.md §7 "Input-file parse
// failure"); when at least one triangle is built, skipped lines produce no
// error.
func Parse(r io.Reader) (Mesh, error) {
	data := &vertexData{}
	var faces [][3]faceCorner
	var firstErr error

	scanner := bufio.NewScanner(r)
	// OBJ files exported from modeling tools can have very long face lines
	// (high-poly n-gons); grow past bufio.Scanner's 64KiB default.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seenObject := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o":
			if seenObject {
				// Only the first object in the file is loaded (spec.md §6).
				goto done
			}
			seenObject = true
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				firstErr = fmt.Errorf("objfile: %w", err)
				continue
			}
			data.v = append(data.v, p)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				firstErr = fmt.Errorf("objfile: %w", err)
				continue
			}
			data.n = append(data.n, n)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				firstErr = fmt.Errorf("objfile: %w", err)
				continue
			}
			data.t = append(data.t, uv)
		case "f":
			face, ok := parseFace(fields[1:])
			if !ok {
				// Not a triangle (or malformed): ignored, not fatal.
				continue
			}
			faces = append(faces, face)
		}
	}
done:
	if err := scanner.Err(); err != nil {
		return Mesh{}, fmt.Errorf("objfile: read error: %w", err)
	}

	triangles := make([]Triangle, 0, len(faces))
	for _, face := range faces {
		tri, ok := buildTriangle(face, data)
		if !ok {
			continue
		}
		triangles = append(triangles, tri)
	}

	if len(triangles) == 0 {
		if firstErr == nil {
			firstErr = fmt.Errorf("objfile: no triangles found")
		}
		return Mesh{}, firstErr
	}
	return Mesh{Triangles: triangles}, nil
}

func parseVec3(fields []string) (geom.Vec3, error) {
	if len(fields) < 3 {
		return geom.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var x, y, z float64
	if _, err := fmt.Sscanf(fields[0], "%g", &x); err != nil {
		return geom.Vec3{}, err
	}
	if _, err := fmt.Sscanf(fields[1], "%g", &y); err != nil {
		return geom.Vec3{}, err
	}
	if _, err := fmt.Sscanf(fields[2], "%g", &z); err != nil {
		return geom.Vec3{}, err
	}
	return geom.Vec3{x, y, z}, nil
}

func parseVec2(fields []string) (geom.Vec2, error) {
	if len(fields) < 2 {
		return geom.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	var u, v float64
	if _, err := fmt.Sscanf(fields[0], "%g", &u); err != nil {
		return geom.Vec2{}, err
	}
	if _, err := fmt.Sscanf(fields[1], "%g", &v); err != nil {
		return geom.Vec2{}, err
	}
	return geom.Vec2{u, v}, nil
}

// parseFace accepts only triangle faces (exactly 3 corners); anything else
// is reported as not-ok so the caller skips it per spec.md §6.
func parseFace(fields []string) ([3]faceCorner, bool) {
	if len(fields) != 3 {
		return [3]faceCorner{}, false
	}
	var out [3]faceCorner
	for i, tok := range fields {
		c, err := parseFaceCorner(tok)
		if err != nil {
			return [3]faceCorner{}, false
		}
		out[i] = c
	}
	return out, true
}

// parseFaceCorner parses one of "v", "v/t", "v//n", or "v/t/n" and converts
// OBJ's 1-based indices to 0-based. Negative (relative) indices are not
// supported — a deliberate subset match to gazed-vu's loader.
func parseFaceCorner(tok string) (faceCorner, error) {
	parts := strings.Split(tok, "/")
	var v, t, n int = -1, -1, -1
	var err error
	if v, err = parseIndex(parts[0]); err != nil {
		return faceCorner{}, err
	}
	if len(parts) >= 2 && parts[1] != "" {
		if t, err = parseIndex(parts[1]); err != nil {
			return faceCorner{}, err
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		if n, err = parseIndex(parts[2]); err != nil {
			return faceCorner{}, err
		}
	}
	return faceCorner{v: v - 1, t: t - 1, n: n - 1}, nil
}

func parseIndex(s string) (int, error) {
	var i int
	if _, err := fmt.Sscanf(s, "%d", &i); err != nil {
		return 0, err
	}
	return i, nil
}

// buildTriangle resolves one face's three corners against the accumulated
// vertex/normal/UV pools. A corner referencing an out-of-range index drops
// the whole face rather than panicking.
func buildTriangle(face [3]faceCorner, data *vertexData) (Triangle, bool) {
	var tri Triangle
	hasNormals, hasUVs := true, true
	for i, c := range face {
		if c.v < 0 || c.v >= len(data.v) {
			return Triangle{}, false
		}
		tri.Verts[i] = data.v[c.v]

		if c.n >= 0 && c.n < len(data.n) {
			if tri.Normals == nil {
				tri.Normals = &[3]geom.Vec3{}
			}
			tri.Normals[i] = data.n[c.n]
		} else {
			hasNormals = false
		}

		if c.t >= 0 && c.t < len(data.t) {
			if tri.UVs == nil {
				tri.UVs = &[3]geom.Vec2{}
			}
			tri.UVs[i] = data.t[c.t]
		} else {
			hasUVs = false
		}
	}
	if !hasNormals {
		tri.Normals = nil
	}
	if !hasUVs {
		tri.UVs = nil
	}
	return tri, true
}
