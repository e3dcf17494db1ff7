package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/config"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Inspect or change the configuration",
	Annotations: map[string]string{skipAppAnnotation: "true"},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a single configuration value in the config file in use, keeping the
rest of the file and its comments as they are.

Settable keys:
  ` + strings.Join(config.SettableKeys, "\n  ") + `

Examples:
  # Store data in redis
  gymlog config set storage.driver redis
  gymlog config set storage.redis.addr localhost:6379

  # Sort history names with English collation
  gymlog config set locale en

  # Enable S3 backups
  gymlog config set backup.s3.bucket my-gym-backups`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.SettableKeys, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file in use",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return err
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
