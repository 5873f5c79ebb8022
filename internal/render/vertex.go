package render

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position mgl32.Vec2
	Color    mgl32.Vec3
}

// TriangleVertices is the fixed mesh.
var TriangleVertices = []Vertex{
	{Position: mgl32.Vec2{0.0, -0.5}, Color: mgl32.Vec3{1, 0, 0}},
	{Position: mgl32.Vec2{0.5, 0.5}, Color: mgl32.Vec3{0, 1, 0}},
	{Position: mgl32.Vec2{-0.5, 0.5}, Color: mgl32.Vec3{0, 0, 1}},
}

type VertexAttribute struct {
	Location   int
	Components int
	Offset     int
}

type VertexLayout struct {
	Binding    int
	Stride     int
	Attributes []VertexAttribute
}

// VertexLayoutOf describes Vertex as a single interleaved binding.
func VertexLayoutOf() VertexLayout {
	v := Vertex{}
	return VertexLayout{
		Binding: 0,
		Stride:  int(unsafe.Sizeof(v)),
		Attributes: []VertexAttribute{
			{
				Location:   0,
				Components: len(v.Position),
				Offset:     int(unsafe.Offsetof(v.Position)),
			},
			{
				Location:   1,
				Components: len(v.Color),
				Offset:     int(unsafe.Offsetof(v.Color)),
			},
		},
	}
}
