package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/pkg/meshio"
	"github.com/matzehuels/halfmesh/pkg/store"
)

// storeCommand creates the store command with its subcommands.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the snapshot store",
		Long: `Store manages mesh snapshots in the configured backend.

The backend is selected in the config file: file (the default, under
~/.local/share/halfmesh), null, redis, or mongo. Remote backends retry
transient failures with exponential backoff.`,
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored meshes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var names []string
			err = store.RetryWithBackoff(cmd.Context(), func() error {
				var err error
				names, err = s.List(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			if len(names) == 0 {
				printInfo("Store is empty")
				return nil
			}
			for _, name := range names {
				fmt.Println(StyleValue.Render(name))
			}
			printDetail("%d meshes", len(names))
			return nil
		},
	}
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Fetch a stored mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var doc meshio.Document
			err = store.RetryWithBackoff(cmd.Context(), func() error {
				var err error
				doc, err = s.Get(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := meshio.Save(doc, outputPath); err != nil {
					return err
				}
				printFile(outputPath)
				return nil
			}
			return meshio.Write(doc, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the snapshot to this file (default stdout)")

	return cmd
}

func (c *CLI) storePutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put <name> <file>",
		Short: "Store a mesh snapshot from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := meshio.Load(args[1])
			if err != nil {
				return err
			}
			// Only manifold snapshots enter the store.
			if _, err := meshio.ToMesh(doc); err != nil {
				return err
			}
			doc.Name = args[0]

			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			err = store.RetryWithBackoff(cmd.Context(), func() error {
				return s.Put(cmd.Context(), args[0], doc)
			})
			if err != nil {
				return err
			}
			printSuccess("Stored as %q", args[0])
			return nil
		},
	}
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			err = store.RetryWithBackoff(cmd.Context(), func() error {
				return s.Delete(cmd.Context(), args[0])
			})
			if err != nil {
				return err
			}
			printSuccess("Deleted %q", args[0])
			return nil
		},
	}
}

func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file backend's snapshot directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Store.Dir
			if dir == "" {
				var err error
				if dir, err = dataDir(); err != nil {
					return err
				}
			}
			fmt.Println(dir)
			return nil
		},
	}
}
