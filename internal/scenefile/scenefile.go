// Package scenefile implements SPEC_FULL.md §4.10's YAML scene description:
// a list of typed primitive entries plus a material table, describing a
// scene.Scene without recompiling. Grounded on gazed-vu's load/shd.go
// (an intermediate yaml-tagged struct, decoded once, then converted to
// typed domain values through string-keyed lookup maps with a
// function-prefixed error on every unrecognized name) using
// gopkg.in/yaml.v3 directly.
package scenefile

import (
	"fmt"
	"io"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/barretodiego/pathtracer/internal/accel"
	"github.com/barretodiego/pathtracer/internal/camera"
	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/internal/material"
	"github.com/barretodiego/pathtracer/internal/meshcache"
	"github.com/barretodiego/pathtracer/internal/scene"
)

// document mirrors the on-disk YAML shape. Every field is a plain string,
// number, bool or fixed-size array so the file stays hand-editable; Load
// converts it into typed domain values.
type document struct {
	EnvironmentLight *bool                    `yaml:"environment_light"`
	Materials        map[string]materialEntry `yaml:"materials"`
	Objects          []objectEntry            `yaml:"objects"`
	Camera           *cameraEntry             `yaml:"camera"`
}

type materialEntry struct {
	Type      string     `yaml:"type"`
	Albedo    [3]float64 `yaml:"albedo"`
	Roughness float64    `yaml:"roughness"`
	Radiance  [3]float64 `yaml:"radiance"`
}

type objectEntry struct {
	Type      string         `yaml:"type"`
	Material  string         `yaml:"material"`
	Center    [3]float64     `yaml:"center"`
	Radius    float64        `yaml:"radius"`
	Point     [3]float64     `yaml:"point"`
	Normal    [3]float64     `yaml:"normal"`
	U         [3]float64     `yaml:"u"`
	V         [3]float64     `yaml:"v"`
	Path      string         `yaml:"path"`
	Transform *transformYAML `yaml:"transform"`
}

type transformYAML struct {
	Translate [3]float64 `yaml:"translate"`
	RotateDeg [3]float64 `yaml:"rotate_deg"`
	Scale     [3]float64 `yaml:"scale"`
}

type cameraEntry struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
	Pitch    float64    `yaml:"pitch"`
}

// Result is a loaded scene plus the initial camera pose the file requested,
// if any (spec.md leaves initial pose entirely to the host; nil means the
// host should supply its own default).
type Result struct {
	Scene  *scene.Scene
	Camera *camera.Camera
}

// Load decodes r into a scene.Scene. meshes resolves `mesh:` object entries
// through the shared LRU so repeated instances of one OBJ reuse a single
// BVH build (spec.md §3, SPEC_FULL.md §4.11). A malformed document is a
// single reported error; a mesh reference whose OBJ cannot be opened or
// parsed is logged and replaced by an empty mesh rather than aborting the
// whole scene (spec.md §7).
func Load(r io.Reader, meshes *meshcache.Cache) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("scenefile: yaml: %w", err)
	}

	materials, err := buildMaterials(doc.Materials)
	if err != nil {
		return nil, err
	}

	s := scene.New()
	if doc.EnvironmentLight != nil {
		s.EnvironmentLight = *doc.EnvironmentLight
	}

	for i, obj := range doc.Objects {
		mat, ok := materials[obj.Material]
		if !ok {
			return nil, fmt.Errorf("scenefile: objects[%d]: unknown material %q", i, obj.Material)
		}
		prim, err := buildObject(obj, mat, meshes)
		if err != nil {
			return nil, fmt.Errorf("scenefile: objects[%d]: %w", i, err)
		}
		s.Add(prim)
	}

	result := &Result{Scene: s}
	if doc.Camera != nil {
		cam := camera.New(vec3(doc.Camera.Position))
		cam.SetRotation(doc.Camera.Yaw, doc.Camera.Pitch)
		result.Camera = cam
	}
	return result, nil
}

func buildMaterials(entries map[string]materialEntry) (map[string]material.Handle, error) {
	out := make(map[string]material.Handle, len(entries))
	for name, e := range entries {
		switch e.Type {
		case "lambertian":
			out[name] = material.Lambertian{Albedo: vec3(e.Albedo)}
		case "metal":
			out[name] = material.Metal{Albedo: vec3(e.Albedo), Roughness: e.Roughness}
		case "emissive":
			out[name] = material.Emissive{Radiance: vec3(e.Radiance)}
		default:
			return nil, fmt.Errorf("scenefile: materials[%s]: unknown type %q", name, e.Type)
		}
	}
	return out, nil
}

func buildObject(e objectEntry, mat material.Handle, meshes *meshcache.Cache) (scene.Primitive, error) {
	switch e.Type {
	case "sphere":
		return scene.Sphere{Center: vec3(e.Center), Radius: e.Radius, Mat: mat}, nil
	case "plane":
		return scene.Plane{P0: vec3(e.Point), Normal: vec3(e.Normal), Mat: mat}, nil
	case "quad":
		return scene.Quad{P0: vec3(e.Point), U: vec3(e.U), V: vec3(e.V), Mat: mat}, nil
	case "mesh":
		if meshes == nil {
			return nil, fmt.Errorf("mesh entries require a mesh cache")
		}
		built, err := meshes.Load(e.Path)
		if err != nil {
			log.Printf("scenefile: mesh %s: %v; using an empty mesh", e.Path, err)
			return &scene.Mesh{BVH: accel.Build(nil), Transform: transformOf(e.Transform), Mat: mat}, nil
		}
		return &scene.Mesh{BVH: built.BVH, Transform: transformOf(e.Transform), Mat: mat}, nil
	default:
		return nil, fmt.Errorf("unknown object type %q", e.Type)
	}
}

func transformOf(t *transformYAML) geom.Mat4 {
	if t == nil {
		return mgl64.Ident4()
	}
	m := mgl64.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2])
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(t.RotateDeg[0])))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(t.RotateDeg[1])))
	m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(t.RotateDeg[2])))
	scale := t.Scale
	if scale == ([3]float64{}) {
		scale = [3]float64{1, 1, 1}
	}
	m = m.Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
	return m
}

func vec3(a [3]float64) geom.Vec3 {
	return geom.Vec3{a[0], a[1], a[2]}
}
