package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format     string
		outputPath string
		coords     bool
		faces      bool
	)

	cmd := &cobra.Command{
		Use:   "render <name-or-path>",
		Short: "Generate a connectivity diagram",
		Long: `Render draws a mesh's vertex-edge connectivity as a Graphviz graph.

The dot format writes plain Graphviz source; svg lays the graph out with
the neato engine and writes the rendered image. --coords annotates each
vertex with its position, --faces adds a node per face linked to its
corners.`,
		Example: `  halfmesh render cube -o cube.svg
  halfmesh render cube --format dot
  halfmesh render ./scan.json --faces --coords -o scan.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			dot := render.ToDOT(doc, render.Options{Coords: coords, Faces: faces})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				spinner := newSpinner(cmd.Context(), "Laying out graph...")
				spinner.Start()
				data, err = render.RenderSVG(dot)
				spinner.Stop()
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q, expected dot or svg", format)
			}

			if outputPath == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := errors.ValidateOutputPath(outputPath); err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write diagram %s", outputPath)
			}
			printSuccess("Rendered %s", displayName(doc, args[0]))
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format (dot, svg)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the diagram to this file (default stdout)")
	cmd.Flags().BoolVar(&coords, "coords", false, "label vertices with their coordinates")
	cmd.Flags().BoolVar(&faces, "faces", false, "include face nodes")

	return cmd
}
