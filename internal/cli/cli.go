// Package cli implements the halfmesh command-line interface.
//
// This package provides commands for building meshes from primitives or
// polygon-stream files, inspecting their topology, refining them with mesh
// operators, rendering connectivity diagrams, serving the HTTP API, and
// managing the snapshot store. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Construct a mesh from a primitive or a polygon-stream file
//   - info: Inspect a mesh's topology (optionally interactively)
//   - refine: Apply a refinement operator to every face
//   - render: Generate DOT or SVG connectivity diagrams
//   - serve: Run the HTTP API
//   - store: Manage the snapshot store
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/halfmesh/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/pkg/buildinfo"
	"github.com/matzehuels/halfmesh/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "halfmesh"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration (falling back to defaults if no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := LoadConfig("")
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("ignoring broken config file", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Halfmesh edits polygonal meshes as half-edge graphs",
		Long:         `Halfmesh is a CLI for building, inspecting, refining, and storing polygonal meshes represented as half-edge (doubly connected edge list) graphs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.refineCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// newStore opens the snapshot store selected by the configuration.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	return openStore(cmd.Context(), c.Config.Store)
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the snapshot directory using XDG standard
// (~/.local/share/halfmesh/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
