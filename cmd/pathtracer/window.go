package main

// Window owns the GLFW window and GL context: the windowing layer spec.md
// §1 names as an out-of-scope collaborator ("the windowing layer that
// provides a frame pump, keyboard/mouse polling, and texture upload"), given
// a concrete reference implementation. Adapted from the teacher's
// internal/render/engine.go (NewEngine's window-hint/context setup and
// Run's poll/update/render/swap loop), trimmed of voxel-specific state
// (depth test, face culling, particle system, multisampling) since the
// path tracer only ever draws one textured quad per frame.
import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Window struct {
	handle *glfw.Window
	input  *Input
	width  int
	height int
}

func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	fmt.Printf("OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	w := &Window{handle: handle, input: NewInput(), width: width, height: height}
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.input.HandleKey(key, action)
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.input.HandleMouseMove(xpos, ypos)
	})
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.input.HandleMouseButton(button, action)
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
	})

	return w, nil
}

// Run pumps events and calls onFrame once per frame until the window is
// closed or onFrame returns false (spec.md §5: one sample pass always runs
// to completion — there is no mid-pass cancellation, so onFrame is expected
// to call RenderSample synchronously and return promptly after it joins).
func (w *Window) Run(onFrame func(win *Window) bool) {
	for !w.handle.ShouldClose() {
		glfw.PollEvents()
		if !onFrame(w) {
			break
		}
		w.handle.SwapBuffers()
	}
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Input() *Input {
	return w.input
}

func (w *Window) Close() {
	w.handle.SetShouldClose(true)
}

func (w *Window) Cleanup() {
	glfw.Terminate()
}
