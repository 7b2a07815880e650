package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/meshdist/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meshdist",
	Short: "Measure how far a processed mesh has drifted from its original",
	Long: `meshdist compares a candidate triangle mesh against a reference mesh and
reports normalized Hausdorff and Chamfer distances between their surfaces.
It reads STL (ASCII and binary) and Wavefront OBJ files and can merge the
metrics into a JSON statistics file shared with other tools.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
