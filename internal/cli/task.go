package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/usecase"
)

// newAddCommand creates the add command for appending tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Long: `Append a new active task. Arguments are joined with spaces.

Examples:
  tasklist add Buy milk
  tasklist add "Call mom"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Text: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", out.Task.ID, out.Task.Text)
			return nil
		},
	}
	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in insertion order.

Use --filter to show only active or completed tasks. The filter shown in the
interactive list is not changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Filter: filter,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(w, "No tasks.")
			} else {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTEXT")
				for _, task := range out.Tasks {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", task.ID, statusLabel(task), task.Text)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(w, "\n%d active, %d completed\n", out.Summary.Active, out.Summary.Completed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(domain.FilterAll), "Status filter: all, active or completed")
	_ = cmd.RegisterFlagCompletionFunc("filter", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(domain.AllStatusFilters()))
		for _, f := range domain.AllStatusFilters() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func statusLabel(task domain.Task) string {
	if task.Completed {
		return string(domain.FilterCompleted)
	}
	return string(domain.FilterActive)
}

// newToggleCommand creates the toggle command.
func newToggleCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between active and completed",
		Long: `Flip a task between active and completed.

The id may be shortened to any prefix that matches exactly one task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{
				Ref: args[0],
			})
			if err != nil {
				return err
			}
			if !out.Found {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No task matches %q; nothing changed\n", args[0])
				return nil
			}

			verb := "Reopened"
			if out.Task.Completed {
				verb = "Completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, out.Task.ID, out.Task.Text)
			return nil
		},
	}
	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task.

The id may be shortened to any prefix that matches exactly one task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{
				Ref: args[0],
			})
			if err != nil {
				return err
			}
			if !out.Found {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No task matches %q; nothing changed\n", args[0])
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", out.Task.ID, out.Task.Text)
			return nil
		},
	}
	return cmd
}
