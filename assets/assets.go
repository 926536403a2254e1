// Package assets bundles the quad shaders and texture.
package assets

import _ "embed"

// Entry point name of both bundled shader stages.
const EntryPoint = "main"

var (
	//go:embed quad.vert.wgsl
	vertexShader []byte

	//go:embed quad.frag.wgsl
	fragmentShader []byte

	//go:embed texture.png
	texture []byte
)

// Bundle holds the raw bytes of the assets the renderer consumes.
// Shaders are WGSL source; the texture is any encoded image format
// registered with the image package.
type Bundle struct {
	VertexShader   []byte
	FragmentShader []byte
	Texture        []byte
}

// Default returns the embedded assets.
func Default() Bundle {
	return Bundle{
		VertexShader:   vertexShader,
		FragmentShader: fragmentShader,
		Texture:        texture,
	}
}
