package rendering

import (
	"github.com/fosdem/glquad/lib/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

const (
	positionAttrib = 0
	colourAttrib   = 1

	// x, y, r, g, b, a
	floatsPerVertex = 6
)

// Quad is a single coloured square centred on the origin, drawn as two
// indexed triangles.
type Quad struct {
	Vertices []float32
	Indices  []uint32

	// GL IDs
	VAO uint32
	VBO uint32
	EBO uint32
}

// NewQuad builds the geometry for a square with the given half-extent in
// normalised device coordinates.
func NewQuad(size float32, colour utils.Colour) *Quad {
	q := &Quad{}

	corners := []mgl32.Vec2{
		{-size, -size},
		{size, -size},
		{size, size},
		{-size, size},
	}
	rgba := colour.Vec4()
	for _, c := range corners {
		q.Vertices = append(q.Vertices, c.X(), c.Y(), rgba.X(), rgba.Y(), rgba.Z(), rgba.W())
	}
	q.Indices = []uint32{0, 1, 2, 0, 2, 3}

	return q
}

func (q *Quad) NumVertices() int {
	return len(q.Vertices) / floatsPerVertex
}

// Upload creates the vertex array and buffers and copies the geometry to
// the GPU. Leaves the VAO bound.
func (q *Quad) Upload() {
	gl.GenVertexArrays(1, &q.VAO)
	gl.BindVertexArray(q.VAO)

	gl.GenBuffers(1, &q.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(q.Vertices)*f32, gl.Ptr(q.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &q.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(q.Indices)*f32, gl.Ptr(q.Indices), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * f32)

	gl.VertexAttribPointerWithOffset(positionAttrib, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(positionAttrib)

	gl.VertexAttribPointerWithOffset(colourAttrib, 4, gl.FLOAT, false, stride, 2*f32)
	gl.EnableVertexAttribArray(colourAttrib)
}

func (q *Quad) Draw(program uint32) {
	gl.UseProgram(program)
	gl.BindVertexArray(q.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(q.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (q *Quad) Delete() {
	gl.DeleteBuffers(1, &q.EBO)
	gl.DeleteBuffers(1, &q.VBO)
	gl.DeleteVertexArrays(1, &q.VAO)
	q.VAO, q.VBO, q.EBO = 0, 0, 0
}
