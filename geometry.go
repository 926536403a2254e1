package quad

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// VertexSize is the byte stride of one Vertex.
const VertexSize = 16

// QuadVertexCount is the number of vertices drawn per frame.
const QuadVertexCount = 6

// Vertex is an interleaved position and texture coordinate.
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// QuadVertices returns the two triangles of the quad, TL-BL-BR and
// TL-TR-BR. size is the half-extent in normalized device coordinates;
// shrink moves both top corners toward the center, so shrink 0 gives a
// rectangle.
func QuadVertices(size, shrink float32) [QuadVertexCount]Vertex {
	size = math32.Abs(size)
	shrink = math32.Min(math32.Abs(shrink), size)

	tl := Vertex{Position: [2]float32{-size + shrink, size}, TexCoord: [2]float32{0, 0}}
	bl := Vertex{Position: [2]float32{-size, -size}, TexCoord: [2]float32{0, 1}}
	br := Vertex{Position: [2]float32{size, -size}, TexCoord: [2]float32{1, 1}}
	tr := Vertex{Position: [2]float32{size - shrink, size}, TexCoord: [2]float32{1, 0}}

	return [QuadVertexCount]Vertex{
		tl, bl, br,
		tl, tr, br,
	}
}

// VertexBytes encodes vertices as little-endian float32s in Vertex layout.
func VertexBytes(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	for i, v := range vertices {
		o := i * VertexSize
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(v.TexCoord[0]))
		binary.LittleEndian.PutUint32(buf[o+12:], math.Float32bits(v.TexCoord[1]))
	}
	return buf
}
