package mesh

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshdist/pkg/obj"
	"github.com/philipparndt/meshdist/pkg/stl"
)

// LoadError reports a mesh source that could not be turned into a valid mesh
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid mesh: %v", e.Err)
	}
	return fmt.Sprintf("failed to load mesh %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Kind distinguishes a usable mesh from the degenerate results of a load
type Kind int

const (
	// Loaded is a mesh with at least one vertex and one triangle.
	Loaded Kind = iota
	// EmptyFaces is a point cloud: vertices but no triangles.
	EmptyFaces
	// EmptyVertices has no vertices at all.
	EmptyVertices
)

func (k Kind) String() string {
	switch k {
	case Loaded:
		return "loaded"
	case EmptyFaces:
		return "empty faces"
	case EmptyVertices:
		return "empty vertices"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LoadResult is the tagged outcome of loading a mesh source. Mesh is set for
// every Kind so callers can still report counts for degenerate inputs.
type LoadResult struct {
	Kind Kind
	Mesh *Mesh
}

// Classify tags an already constructed mesh
func Classify(m *Mesh) LoadResult {
	switch {
	case m.VertexCount() == 0:
		return LoadResult{Kind: EmptyVertices, Mesh: m}
	case m.TriangleCount() == 0:
		return LoadResult{Kind: EmptyFaces, Mesh: m}
	default:
		return LoadResult{Kind: Loaded, Mesh: m}
	}
}

// Load reads a mesh file, choosing the reader by extension (.stl or .obj)
func Load(path string) (LoadResult, error) {
	m, err := read(path)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return LoadResult{}, le
		}
		return LoadResult{}, &LoadError{Path: path, Err: err}
	}
	return Classify(m), nil
}

func read(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		return FromTriangles(model.Triangles), nil
	case ".obj":
		model, err := obj.Parse(path)
		if err != nil {
			return nil, err
		}
		return New(model.Vertices, model.Faces)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl or .obj)", ext)
	}
}
