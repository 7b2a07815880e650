package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshdist/pkg/geometry"
)

const (
	binaryHeaderSize = 80
	binaryRecordSize = 50
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes an in-memory STL document
func ParseBytes(data []byte) (*Model, error) {
	if !isASCII(data) {
		return parseBinary(bytes.NewReader(data))
	}

	model, err := parseASCII(bytes.NewReader(data))
	if (err == nil && model.TriangleCount() > 0) || isText(data) {
		return model, err
	}

	// A "solid" header over binary content: a binary file whose size does
	// not match its triangle count.
	binModel, binErr := parseBinary(bytes.NewReader(data))
	switch {
	case binErr == nil:
		return binModel, nil
	case err != nil:
		return nil, err
	default:
		return nil, fmt.Errorf("not an ASCII STL and not a valid binary STL: %w", binErr)
	}
}

// isText reports whether data holds only printable ASCII and whitespace
func isText(data []byte) bool {
	for _, c := range data {
		switch {
		case c == '\t', c == '\n', c == '\r', c == '\f', c == '\v':
		case c < 0x20, c >= 0x7f:
			return false
		}
	}
	return true
}

// isASCII reports whether data looks like an ASCII STL. Some exporters write
// binary files whose header also starts with "solid", so a header whose
// declared triangle count matches the file size wins.
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("solid")) {
		return false
	}
	if len(data) >= binaryHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
		if int64(len(data)) == binaryHeaderSize+4+int64(count)*binaryRecordSize {
			return false
		}
	}
	return true
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			vertices = vertices[:0]

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, expected 3", lineNo, len(vertices))
			}
			model.AddTriangle(geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal (3 float32), three vertices (9 float32), attribute byte count
	record := make([]byte, binaryRecordSize)
	for i := uint32(0); i < triangleCount; i++ {
		if _, err := io.ReadFull(reader, record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		var corners [3]geometry.Vector3
		for c := range corners {
			off := 12 + c*12
			corners[c] = geometry.NewVector3(
				float64(math.Float32frombits(binary.LittleEndian.Uint32(record[off:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(record[off+4:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(record[off+8:]))),
			)
		}
		model.AddTriangle(geometry.NewTriangle(corners[0], corners[1], corners[2]))
	}

	return model, nil
}
