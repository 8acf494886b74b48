package main

// Display presents the path tracer's framebuffer as a GPU texture drawn
// over a fullscreen quad. Adapted from the teacher's
// internal/render/raytracing.go (outputTexture + quadVAO/quadVBO +
// displayShader present step): that file's fragment shader ray-marched a
// voxel scene on the GPU as a placeholder; this one only blits CPU-computed
// bytes, since the actual path tracing happens in internal/renderer on the
// CPU, not in a shader.
import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

type Display struct {
	texture uint32
	quadVAO uint32
	quadVBO uint32
	shader  *Shader
	width   int
	height  int
}

func NewDisplay(width, height int) (*Display, error) {
	d := &Display{width: width, height: height}

	gl.GenTextures(1, &d.texture)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	d.createQuad()

	shader, err := NewShader(presentVertShader, presentFragShader)
	if err != nil {
		return nil, err
	}
	d.shader = shader

	return d, nil
}

func (d *Display) createQuad() {
	vertices := []float32{
		-1, -1, 0, 0,
		1, -1, 1, 0,
		1, 1, 1, 1,
		-1, -1, 0, 0,
		1, 1, 1, 1,
		-1, 1, 0, 1,
	}

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)

	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// Resize reallocates the backing texture storage for a new pixel size.
func (d *Display) Resize(width, height int) {
	d.width, d.height = width, height
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
}

// Upload pushes a width*height*4 RGBA byte buffer (film.Framebuffer.ToBytes'
// output) into the texture.
func (d *Display) Upload(rgba []byte) {
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(d.width), int32(d.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

// Draw renders the current texture contents over the full viewport.
func (d *Display) Draw() {
	d.shader.Use()
	d.shader.SetInt("uTexture", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)

	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (d *Display) Cleanup() {
	if d.texture != 0 {
		gl.DeleteTextures(1, &d.texture)
	}
	if d.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &d.quadVAO)
	}
	if d.quadVBO != 0 {
		gl.DeleteBuffers(1, &d.quadVBO)
	}
	if d.shader != nil {
		d.shader.Delete()
	}
}

var presentVertShader = `
#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
` + "\x00"

var presentFragShader = `
#version 410 core

in vec2 vTexCoord;

uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
    fragColor = texture(uTexture, vTexCoord);
}
` + "\x00"
