package main

// Input tracks keyboard/mouse state between frames. Adapted from the
// teacher's internal/render/input.go (key/button maps plus accumulated
// mouse delta, reset each poll) — generalized from a voxel-game WASD+mine
// binding set to a free-look camera plus the debug-pass toggles SPEC_FULL.md
// §4.1/§6 leaves to the host (reset, normals view, BVH-heat view,
// resolution-scale step), standing in for the ImGui sliders spec.md
// describes as an external GUI.
import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Input struct {
	keys map[glfw.Key]bool

	mouseX, mouseY           float64
	lastMouseX, lastMouseY   float64
	firstMouse               bool
	mouseDeltaX, mouseDeltaY float64

	lookActive bool
}

func NewInput() *Input {
	return &Input{
		keys:       make(map[glfw.Key]bool),
		firstMouse: true,
	}
}

func (i *Input) HandleKey(key glfw.Key, action glfw.Action) {
	if action == glfw.Press {
		i.keys[key] = true
	} else if action == glfw.Release {
		i.keys[key] = false
	}
}

func (i *Input) HandleMouseMove(xpos, ypos float64) {
	if i.firstMouse {
		i.lastMouseX, i.lastMouseY = xpos, ypos
		i.firstMouse = false
	}
	i.mouseDeltaX = xpos - i.lastMouseX
	i.mouseDeltaY = i.lastMouseY - ypos // inverted: moving the mouse up looks up.
	i.lastMouseX, i.lastMouseY = xpos, ypos
	i.mouseX, i.mouseY = xpos, ypos
}

func (i *Input) HandleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button == glfw.MouseButtonRight {
		i.lookActive = action == glfw.Press
	}
}

// IsKeyPressed reports whether key is currently held.
func (i *Input) IsKeyPressed(key glfw.Key) bool {
	return i.keys[key]
}

// ConsumeMouseDelta returns the mouse movement since the last call and
// resets it, mirroring the teacher's GetMouseDelta.
func (i *Input) ConsumeMouseDelta() (dx, dy float64) {
	dx, dy = i.mouseDeltaX, i.mouseDeltaY
	i.mouseDeltaX, i.mouseDeltaY = 0, 0
	return
}

// LookActive reports whether the right mouse button is held, gating camera
// rotation so dragging the window or clicking UI doesn't spin the view.
func (i *Input) LookActive() bool {
	return i.lookActive
}

// consumeKeyPress returns true once per physical press of key (edge
// detection for toggles like reset/normals/BVH-heat, which must fire once
// per press rather than every frame the key is held).
func (i *Input) consumeKeyPress(key glfw.Key) bool {
	if !i.keys[key] {
		return false
	}
	i.keys[key] = false
	return true
}
