package cli

import (
	"github.com/spf13/cobra"

	"github.com/fsh/qplanarity/pkg/config"
)

// configCommand creates the config command with show and path subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect qplanarity configuration",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration is looked up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if c.configPath != "" {
				printKeyValue(out, "explicit", c.configPath)
				return nil
			}
			for _, p := range config.SearchPaths() {
				printDetail(out, "%s", p)
			}
			if found := config.FindPath(); found != "" {
				printKeyValue(out, "using", found)
			} else {
				printInfo(out, "no config file found, using defaults")
			}
			return nil
		},
	}
}
