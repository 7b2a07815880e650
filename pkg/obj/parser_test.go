package obj

import (
	"strings"
	"testing"

	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuadIsFanned(t *testing.T) {
	doc := `# unit square
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`
	model, err := ParseReader(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, model.Vertices, 4)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), model.Vertices[2])
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}}, model.Faces)
}

func TestParseNegativeIndices(t *testing.T) {
	doc := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3/1 -2/2 -1/3\n"
	model, err := ParseReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 1, 2}}, model.Faces)
}

func TestParsePointCloud(t *testing.T) {
	doc := "v 0 0 0\nv 1 0 0\n"
	model, err := ParseReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, model.Vertices, 2)
	assert.Empty(t, model.Faces)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad coordinate", "v 0 x 0\n", "invalid coordinate"},
		{"short vertex", "v 0 0\n", "vertex needs 3 coordinates"},
		{"short face", "v 0 0 0\nf 1 1\n", "at least 3 corners"},
		{"zero index", "v 0 0 0\nf 0 1 1\n", "index 0"},
		{"garbage index", "v 0 0 0\nf a b c\n", "invalid face index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.doc))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
