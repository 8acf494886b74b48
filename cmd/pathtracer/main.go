// Command pathtracer is the reference host for the progressive path tracer
// core: a GLFW window pumps frames, polls keyboard/mouse, and uploads each
// completed sample pass to a GPU texture for display (spec.md §1's
// out-of-scope "windowing layer"); an ImGui-less set of keyboard shortcuts
// stands in for the slider/toggle GUI spec.md also treats as external.
// Grounded on the teacher's cmd/voxelgame/main.go entry-point shape (load
// config, construct subsystems, defer Cleanup, Run) generalized from a
// voxel-world bootstrap to scene/config/mesh-cache wiring.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/draw"

	"github.com/barretodiego/pathtracer/assets"
	"github.com/barretodiego/pathtracer/internal/appconfig"
	"github.com/barretodiego/pathtracer/internal/camera"
	"github.com/barretodiego/pathtracer/internal/film"
	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/internal/meshcache"
	"github.com/barretodiego/pathtracer/internal/renderer"
	"github.com/barretodiego/pathtracer/internal/scene"
	"github.com/barretodiego/pathtracer/internal/scenefile"
)

const meshCacheSize = 32

// mode selects which of the renderer's three passes drives the display.
type mode int

const (
	modeBeauty mode = iota
	modeNormals
	modeBVHHeat
)

func main() {
	configPath := "pathtracer.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := appconfig.Load(configPath)
	if err != nil {
		log.Fatalf("pathtracer: loading config: %v", err)
	}

	s, cam := loadScene(cfg)

	win, err := NewWindow(cfg.WindowWidth, cfg.WindowHeight, "pathtracer")
	if err != nil {
		log.Fatalf("pathtracer: %v", err)
	}
	defer win.Cleanup()

	renderW, renderH := scaledSize(cfg.WindowWidth, cfg.WindowHeight, cfg.ResScale)
	fb := film.New(renderW, renderH)
	upscaled := newRGBABuffer(cfg.WindowWidth, cfg.WindowHeight)

	display, err := NewDisplay(cfg.WindowWidth, cfg.WindowHeight)
	if err != nil {
		log.Fatalf("pathtracer: %v", err)
	}
	defer display.Cleanup()

	r := renderer.New(s, 1)
	if cfg.BounceLimit > 0 {
		r.BounceLimit = cfg.BounceLimit
	}

	currentMode := modeBeauty
	const lookSensitivity = 0.15
	const rescaleStep = 0.25

	win.Run(func(w *Window) bool {
		input := w.Input()
		if input.IsKeyPressed(glfw.KeyEscape) {
			return false
		}

		winW, winH := w.Size()
		dirty := false

		if input.LookActive() {
			dx, dy := input.ConsumeMouseDelta()
			if dx != 0 || dy != 0 {
				cam.SetRotation(cam.Yaw+dx*lookSensitivity, cam.Pitch+dy*lookSensitivity)
				dirty = true
			}
		}

		if input.consumeKeyPress(glfw.KeyR) {
			dirty = true
		}
		if input.consumeKeyPress(glfw.KeyN) {
			currentMode = toggleMode(currentMode, modeNormals)
			dirty = true
		}
		if input.consumeKeyPress(glfw.KeyB) {
			currentMode = toggleMode(currentMode, modeBVHHeat)
			dirty = true
		}
		if input.consumeKeyPress(glfw.KeyEqual) {
			cfg.ResScale += rescaleStep
			renderW, renderH = scaledSize(winW, winH, cfg.ResScale)
			fb.Resize(renderW, renderH)
			dirty = true
		}
		if input.consumeKeyPress(glfw.KeyMinus) && cfg.ResScale > rescaleStep {
			cfg.ResScale -= rescaleStep
			renderW, renderH = scaledSize(winW, winH, cfg.ResScale)
			fb.Resize(renderW, renderH)
			dirty = true
		}
		if renderW, renderH := scaledSize(winW, winH, cfg.ResScale); fb.Width != renderW || fb.Height != renderH {
			fb.Resize(renderW, renderH)
			dirty = true
		}

		if dirty {
			fb.Reset()
			r.Reset()
		}

		if err := renderPass(r, fb, cam, currentMode); err != nil {
			log.Printf("pathtracer: render pass: %v", err)
			return false
		}

		var bytes []byte
		switch currentMode {
		case modeBeauty:
			bytes = fb.ToBytes(r.NumSamples)
		default:
			bytes = fb.ToBytesDirect()
		}

		if winW != fb.Width || winH != fb.Height {
			if display.width != winW || display.height != winH {
				display.Resize(winW, winH)
			}
			upscaleRGBA(bytes, fb.Width, fb.Height, upscaled, winW, winH)
			display.Upload(upscaled)
		} else {
			display.Upload(bytes)
		}
		display.Draw()

		if r.NumSamples%32 == 0 {
			fmt.Printf("\rsamples: %d (mode=%d)   ", r.NumSamples, currentMode)
		}
		return true
	})
}

func renderPass(r *renderer.Renderer, fb *film.Framebuffer, cam *camera.Camera, m mode) error {
	switch m {
	case modeNormals:
		return r.RenderNormals(fb, cam)
	case modeBVHHeat:
		return r.RenderBVHHits(fb, cam)
	default:
		return r.RenderSample(fb, cam)
	}
}

func toggleMode(current, requested mode) mode {
	if current == requested {
		return modeBeauty
	}
	return requested
}

func scaledSize(width, height int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func loadScene(cfg appconfig.Config) (*scene.Scene, *camera.Camera) {
	cache, err := meshcache.New(meshCacheSize)
	if err != nil {
		log.Fatalf("pathtracer: %v", err)
	}

	f, err := os.Open(cfg.ScenePath)
	if err != nil {
		log.Printf("pathtracer: %v; falling back to the bundled scene", err)
		return loadDefaultScene(cfg, cache)
	}
	defer f.Close()

	result, err := scenefile.Load(f, cache)
	if err != nil {
		log.Printf("pathtracer: %v; falling back to the bundled scene", err)
		return loadDefaultScene(cfg, cache)
	}

	cam := result.Camera
	if cam == nil {
		cam = camera.New(geom.Vec3{})
	}
	return result.Scene, cam
}

// loadDefaultScene loads the scene embedded in the assets package, used
// whenever cfg.ScenePath can't be opened or fails to parse. If even the
// bundled scene fails to decode, the host still gets an empty scene rather
// than crashing.
func loadDefaultScene(cfg appconfig.Config, cache *meshcache.Cache) (*scene.Scene, *camera.Camera) {
	raw, err := assets.DefaultScene()
	if err != nil {
		log.Printf("pathtracer: %v; starting from an empty scene", err)
		s := scene.New()
		s.EnvironmentLight = cfg.EnvironmentLight
		return s, camera.New(geom.Vec3{})
	}

	result, err := scenefile.Load(bytes.NewReader(raw), cache)
	if err != nil {
		log.Printf("pathtracer: bundled scene: %v; starting from an empty scene", err)
		s := scene.New()
		s.EnvironmentLight = cfg.EnvironmentLight
		return s, camera.New(geom.Vec3{})
	}

	cam := result.Camera
	if cam == nil {
		cam = camera.New(geom.Vec3{})
	}
	return result.Scene, cam
}
