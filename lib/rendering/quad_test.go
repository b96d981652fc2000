package rendering

import (
	"testing"

	"github.com/fosdem/glquad/lib/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuad(t *testing.T) {
	q := NewQuad(0.1, utils.ColourParse("#ff0000ff"))

	require.Equal(t, 4, q.NumVertices())
	assert.Equal(t, []float32{
		-0.1, -0.1, 1, 0, 0, 1,
		0.1, -0.1, 1, 0, 0, 1,
		0.1, 0.1, 1, 0, 0, 1,
		-0.1, 0.1, 1, 0, 0, 1,
	}, q.Vertices)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, q.Indices)
}

func TestQuadIndicesInRange(t *testing.T) {
	q := NewQuad(0.5, utils.Colour{A: 1})
	for _, i := range q.Indices {
		assert.Less(t, int(i), q.NumVertices())
	}
}
