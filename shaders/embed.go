// Package shaders embeds the WGSL sources for the triangle pipeline.
package shaders

import "embed"

const (
	Vertex   = "triangle.vert.wgsl"
	Fragment = "triangle.frag.wgsl"
)

//go:embed *.wgsl
var FS embed.FS
