// Package assets embeds the fallback scene description shown when no
// scene file is found on disk, adapted from the teacher's assets.go
// (embed.FS over shaders/textures) for a single scene document instead
// of a shader/texture tree.
package assets

import "embed"

//go:embed scene.yaml
var embeddedFS embed.FS

// DefaultScene returns the bundled scene.yaml used when the configured
// scene path can't be opened.
func DefaultScene() ([]byte, error) {
	return embeddedFS.ReadFile("scene.yaml")
}
