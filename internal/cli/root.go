// Package cli provides the command-line interface for tasklist.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/tui"
)

// Command group IDs.
const (
	groupTask  = "task"
	groupStore = "store"
	groupSetup = "setup"
)

// annotationNoStore marks commands that run without opening the store.
const annotationNoStore = "tasklist/no-store"

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for tasklist.
// It receives the container for dependency injection and version for display.
// Global flags are bound to the container's options; the store is opened
// lazily before the first command that needs it.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tasklist",
		Short: "A small to-do list for the terminal",
		Long: `tasklist keeps an ordered list of tasks, each either active or completed.

Run without arguments to open the interactive list. The list is saved after
every change; the first run starts from a small built-in seed.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || needsNoStore(cmd) {
				return nil
			}

			if err := c.Open(cmd.Context()); err != nil {
				return err
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}

	var discard app.Options
	opts := &discard
	if c != nil {
		opts = &c.Options
	}
	root.PersistentFlags().StringVar(&opts.Backend, "store", "", "Storage backend: file, git, badger or memory (overrides config)")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file merged over the global one (default: $TASKLIST_CONFIG)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupStore, Title: "Storage:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	toggleCmd := newToggleCommand(c)
	toggleCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	// Storage commands
	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupStore

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupStore

	resetCmd := newResetCommand(c)
	resetCmd.GroupID = groupStore

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		addCmd,
		listCmd,
		toggleCmd,
		rmCmd,
		tuiCmd,
		exportCmd,
		importCmd,
		resetCmd,
		configCmd,
	)

	return root
}

// needsNoStore reports whether cmd or one of its parents is marked to run
// without the store.
func needsNoStore(cmd *cobra.Command) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		if _, ok := cur.Annotations[annotationNoStore]; ok {
			return true
		}
	}
	return false
}

// launchTUI runs the interactive list until the user quits.
// External edits to a file store are followed while it runs.
func launchTUI(ctx context.Context, c *app.Container) error {
	if c == nil {
		return nil
	}
	if err := c.WatchStore(ctx); err != nil {
		c.Logger.Warn("tui", fmt.Sprintf("follow store changes: %v", err))
	}

	model := tui.New(c.Store)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	stop := tui.Forward(c.Store, p.Send)
	defer stop()

	_, err := p.Run()
	return err
}
