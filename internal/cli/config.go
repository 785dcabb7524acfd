package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/usecase"
)

// newConfigCommand creates the config command.
// Without a subcommand it shows the effective configuration.
func newConfigCommand(c *app.Container) *cobra.Command {
	show := newConfigShowCommand(c)

	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration",
		Long:        `Manage tasklist configuration files and settings.`,
		Annotations: map[string]string{annotationNoStore: "true"},
		Args:        cobra.NoArgs,
		RunE:        show.RunE,
	}

	// Add subcommands
	cmd.AddCommand(show)
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if out.GlobalConfig.Path != "" && !out.GlobalConfig.Exists {
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.GlobalConfig.Path)
			}
			for _, src := range out.Effective.Sources {
				_, _ = fmt.Fprintf(w, "- %s\n", src)
			}
			if len(out.Effective.Sources) == 0 {
				_, _ = fmt.Fprintln(w, "- (defaults)")
			}

			for _, warning := range out.Effective.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
			}

			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
	return cmd
}

// formatEffectiveConfig writes cfg as TOML. The encryption key is masked.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	masked := *cfg
	if masked.Store.EncryptionKey != "" {
		masked.Store.EncryptionKey = "********"
	}
	if err := toml.NewEncoder(w).Encode(masked); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template to stdout.

It does not depend on existing configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return nil
		},
	}
	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Create the global configuration file with all settings commented out.

An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}
	return cmd
}
