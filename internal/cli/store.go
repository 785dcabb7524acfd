package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON or YAML",
		Long: `Write every task, regardless of filter, as JSON or YAML.

Examples:
  tasklist export > tasks.json
  tasklist export --format yaml -o tasks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			w := cmd.OutOrStdout()
			if opts.Output != "" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{
				Writer: w,
				Format: opts.Format,
			})
			if err != nil {
				return err
			}
			if opts.Output != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", out.Count, opts.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", persist.FormatJSON, "Output format: json or yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append tasks from a YAML or JSON file",
		Long: `Append tasks read from a YAML or JSON list. Use - to read stdin.

Each entry is either a plain string or a record:

  - Buy milk
  - text: Call mom
    completed: true

Entries are added as new tasks; ids that already exist are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer func() { _ = f.Close() }()
				src = f
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Source: src,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks", len(out.Added))
			if out.Skipped > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%d skipped)", out.Skipped)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	return cmd
}

// newResetCommand creates the reset command.
func newResetCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved list",
		Long: `Remove the saved list from storage.

The list returns to the seed, which is not saved until the next change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ResetTasksUseCase().Execute(cmd.Context(), usecase.ResetTasksInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset to %d seed tasks\n", out.Tasks.Len())
			return nil
		},
	}
	return cmd
}
