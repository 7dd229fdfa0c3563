package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/changelog-reader/internal/config"
	clierrors "github.com/ariel-frischer/changelog-reader/internal/errors"
	"github.com/ariel-frischer/changelog-reader/internal/logging"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage changelog-reader configuration",
		Long: `Manage changelog-reader configuration files.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags
  2. Environment variables (CHANGELOG_READER_*)
  3. Config file (.changelog-reader.json, .changelogrc, .changelogrc.json or --config)
  4. Built-in defaults`,
		Example: `  # Create .changelog-reader.json in the working directory
  changelog-reader config init

  # Show the merged configuration
  changelog-reader config show`,
		GroupID: GroupManage,
	}

	cmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a config file with the default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileNames[0]
			if len(args) == 1 {
				path = args[0]
			}
			return initConfigFile(cmd, opts, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func initConfigFile(cmd *cobra.Command, opts *options, path string, force bool) error {
	out := cmd.OutOrStdout()
	green := paint(opts.plainOutput(out), color.FgGreen)
	check := opts.symbols(out).Checkmark

	_, err := os.Stat(path)
	exists := err == nil
	if exists && !force {
		fmt.Fprintf(out, "%s Config: exists at %s (use --force to overwrite)\n", green(check), path)
		return nil
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(fmt.Errorf("failed to write config: %w", err))
	}

	action := "created"
	if exists {
		action = "overwritten"
	}
	fmt.Fprintf(out, "%s Config: %s at %s\n", green(check), action, path)
	return nil
}

func newConfigShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Long: `Print the configuration after merging defaults, the config file,
environment variables and flags. The token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, nil)
			if err != nil {
				return toCLIError(err)
			}

			values := cfg.Values()
			if cfg.Token != "" {
				values["token"] = logging.MaskToken(cfg.Token)
			}

			out := cmd.OutOrStdout()
			if cfg.File != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.File)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(values); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		},
	}
}
