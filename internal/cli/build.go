package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/internal/api"
	"github.com/matzehuels/halfmesh/pkg/meshio"
	"github.com/matzehuels/halfmesh/pkg/primitive"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		primitiveName string
		inputPath     string
		outputPath    string
		storeName     string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Construct a mesh from a primitive or polygon-stream file",
		Long: `Build constructs a half-edge mesh and verifies its structural invariants.

The source is either a named primitive (--primitive) or a polygon-stream
JSON file (--input). The result can be written to a file (--output),
stored under a name (--store), or both; with neither, build is a pure
validation pass.`,
		Example: `  halfmesh build --primitive cube --store cube
  halfmesh build --input scan.json --output checked.json
  halfmesh build --input scan.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.Logger
			if (primitiveName == "") == (inputPath == "") {
				return fmt.Errorf("exactly one of --primitive or --input is required")
			}

			prog := newProgress(logger)
			var (
				doc    meshio.Document
				source string
				err    error
			)
			if primitiveName != "" {
				source = primitiveName
				doc, err = primitive.Generate(primitiveName)
			} else {
				source = inputPath
				doc, err = meshio.Load(inputPath)
			}
			if err != nil {
				return err
			}

			// Building proves the stream is manifold and establishes every
			// structural invariant.
			m, err := meshio.ToMesh(doc)
			if err != nil {
				return err
			}
			doc, err = meshio.FromMesh(m, doc.Name)
			if err != nil {
				return err
			}
			stats, err := api.StatsOf(doc.Name, doc)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built %d faces from %s", stats.Faces, source))

			if outputPath != "" {
				if err := meshio.Save(doc, outputPath); err != nil {
					return err
				}
				printFile(outputPath)
			}
			if storeName != "" {
				s, err := c.newStore(cmd)
				if err != nil {
					return err
				}
				defer s.Close()
				if err := s.Put(cmd.Context(), storeName, doc); err != nil {
					return err
				}
				printSuccess("Stored as %q", storeName)
				printNextStep("Inspect it", fmt.Sprintf("halfmesh info %s", storeName))
			}

			printCounts(stats.Vertices, stats.Edges, stats.Faces, stats.BoundaryArcs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&primitiveName, "primitive", "p", "", "primitive to generate (triangle, quad, tetrahedron, cube, sphere)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "polygon-stream JSON file to build from")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the snapshot to this file")
	cmd.Flags().StringVarP(&storeName, "store", "s", "", "store the snapshot under this name")

	return cmd
}
