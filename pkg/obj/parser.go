// Package obj reads the geometry subset of Wavefront OBJ files: vertex
// positions and polygonal faces. Texture coordinates, normals, groups and
// materials are skipped.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshdist/pkg/geometry"
)

// Model holds the positions and triangulated faces of an OBJ file.
// Face indices are zero-based and not range-checked here.
type Model struct {
	Vertices []geometry.Vector3
	Faces    [][3]int
}

// Parse reads an OBJ file from disk
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader decodes an OBJ document. Polygons with more than three corners
// are split into a triangle fan around their first corner.
func ParseReader(r io.Reader) (*Model, error) {
	model := &Model{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", lineNo, fields[i+1], err)
				}
				xyz[i] = v
			}
			model.Vertices = append(model.Vertices, geometry.NewVector3(xyz[0], xyz[1], xyz[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveIndex(ref, len(model.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				model.Faces = append(model.Faces, [3]int{corners[0], corners[i], corners[i+1]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return model, nil
}

// resolveIndex converts a face corner reference ("7", "7/2", "7//3", "-1")
// to a zero-based position index. Negative references count back from the
// most recently declared vertex.
func resolveIndex(ref string, declared int) (int, error) {
	pos := ref
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		pos = ref[:i]
	}
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", ref)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return declared + n, nil
	default:
		return 0, fmt.Errorf("face index 0 is not valid in OBJ")
	}
}
