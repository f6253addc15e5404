package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/internal/api"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// refineCommand creates the refine command.
func (c *CLI) refineCommand() *cobra.Command {
	var (
		op         string
		outputPath string
		storeName  string
	)

	cmd := &cobra.Command{
		Use:   "refine <name-or-path>",
		Short: "Apply a refinement operator to every face",
		Long: `Refine rebuilds a mesh and applies the chosen operator to each of its
faces.

Operators:
  poke          split each face into triangles around its centroid
  circumscribe  split each edge at its midpoint and cut off every corner

The refined snapshot replaces the stored one when the argument is a store
name; --output and --store redirect the result instead.`,
		Example: `  halfmesh refine cube --op poke
  halfmesh refine ./scan.json --op circumscribe -o refined.json
  halfmesh refine cube --op poke --store cube-poked`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			spinner := newSpinner(cmd.Context(), fmt.Sprintf("Refining %s...", displayName(doc, args[0])))
			spinner.Start()

			m, err := meshio.ToMesh(doc)
			if err != nil {
				spinner.Stop()
				return err
			}
			refined, err := api.Refine(m, op)
			if err != nil {
				spinner.Stop()
				if ctxErr := cmd.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				return err
			}
			out, err := meshio.FromMesh(m, doc.Name)
			if err != nil {
				spinner.Stop()
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Refined %d faces with %s", refined, op))

			stats, err := api.StatsOf(displayName(out, args[0]), out)
			if err != nil {
				return err
			}

			switch {
			case outputPath != "":
				if err := meshio.Save(out, outputPath); err != nil {
					return err
				}
				printFile(outputPath)
			case storeName != "" || !looksLikePath(args[0]):
				name := storeName
				if name == "" {
					name = args[0]
				}
				s, err := c.newStore(cmd)
				if err != nil {
					return err
				}
				defer s.Close()
				if err := s.Put(cmd.Context(), name, out); err != nil {
					return err
				}
				printSuccess("Stored as %q", name)
			default:
				printWarning("result discarded, pass --output or --store to keep it")
			}

			printCounts(stats.Vertices, stats.Edges, stats.Faces, stats.BoundaryArcs)
			return nil
		},
	}

	cmd.Flags().StringVar(&op, "op", api.OpPoke, "operator to apply (poke, circumscribe)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the refined snapshot to this file")
	cmd.Flags().StringVarP(&storeName, "store", "s", "", "store the refined snapshot under this name")

	return cmd
}
