package main

import (
	"fmt"

	"github.com/philipparndt/meshdist/pkg/analysis"
	"github.com/philipparndt/meshdist/pkg/mesh"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a mesh file",
	Long:  "Show vertex and triangle counts, surface area, bounding box and edge statistics of an STL or OBJ file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var longestEdges int

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVar(&longestEdges, "edges", 0, "also list the N longest edges")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	loaded, err := mesh.Load(filename)
	if err != nil {
		return err
	}
	result := analysis.AnalyzeMesh(loaded.Mesh)
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Mesh Information")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "File: %s\n", filename)
	fmt.Fprintf(w, "Status: %s\n\n", loaded.Kind)

	fmt.Fprintln(w, "Mesh Statistics:")
	fmt.Fprintf(w, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(w, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "  Edges: %d (%d boundary)\n", result.EdgeCount, result.BoundaryEdges)
	fmt.Fprintf(w, "  Closed: %t\n", result.Closed())
	fmt.Fprintf(w, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if result.VertexCount == 0 {
		return nil
	}

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(w, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(w, "Dimensions:")
	fmt.Fprintf(w, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(w, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(w, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(w, "  Diagonal: %.6f units\n", result.Diagonal)
	fmt.Fprintf(w, "  Volume: %.6f cubic units\n", result.Volume)

	if result.EdgeCount == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nEdge Lengths:")
	fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(w, "  Average: %.6f units\n", result.AvgEdgeLength)

	if longestEdges <= 0 {
		return nil
	}
	fmt.Fprintf(w, "\nLongest Edges:\n")
	for i, e := range analysis.FindLongestEdges(result, longestEdges) {
		fmt.Fprintf(w, "  %d. %s -> %s: %.6f units (%d triangles)\n", i+1,
			analysis.FormatVector(loaded.Mesh.Vertex(e.A)),
			analysis.FormatVector(loaded.Mesh.Vertex(e.B)),
			e.Length, e.Triangles)
	}
	return nil
}
