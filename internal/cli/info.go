package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/internal/api"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "info <name-or-path>",
		Short: "Inspect a mesh's topology",
		Long: `Info prints entity counts, boundary structure, and the Euler
characteristic of a mesh.

The argument is a stored snapshot name, or a polygon-stream JSON file when
it looks like a path. With --interactive, info opens a face browser
instead of printing a summary.`,
		Example: `  halfmesh info cube
  halfmesh info ./scan.json
  halfmesh info cube --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			if interactive {
				return browseFaces(doc)
			}

			stats, err := api.StatsOf(args[0], doc)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(displayName(doc, args[0])))
			printKeyValue("vertices", fmt.Sprintf("%d", stats.Vertices))
			printKeyValue("arcs", fmt.Sprintf("%d", stats.Arcs))
			printKeyValue("edges", fmt.Sprintf("%d", stats.Edges))
			printKeyValue("faces", fmt.Sprintf("%d", stats.Faces))
			printKeyValue("boundary", fmt.Sprintf("%d", stats.BoundaryArcs))
			printKeyValue("euler", fmt.Sprintf("%d", stats.Euler))
			if doc.ID != uuid.Nil {
				printDetail("id: %s", doc.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&interactive, "interactive", false, "browse faces in a TUI")

	return cmd
}

// loadDocument resolves a mesh argument: anything that looks like a path is
// read as a file, everything else is a store lookup.
func (c *CLI) loadDocument(cmd *cobra.Command, arg string) (meshio.Document, error) {
	if looksLikePath(arg) {
		return meshio.Load(arg)
	}
	s, err := c.newStore(cmd)
	if err != nil {
		return meshio.Document{}, err
	}
	defer s.Close()
	return s.Get(cmd.Context(), arg)
}

func looksLikePath(arg string) bool {
	return strings.ContainsAny(arg, "/\\") || strings.HasSuffix(arg, ".json")
}

func displayName(doc meshio.Document, fallback string) string {
	if doc.Name != "" {
		return doc.Name
	}
	return fallback
}

// browseFaces opens the interactive face browser.
func browseFaces(doc meshio.Document) error {
	model, err := newFaceListModel(doc)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model).Run()
	return err
}
