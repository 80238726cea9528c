package cmd

import (
	"fmt"
	"text/tabwriter"

	"projection-video-3d/infrastructure/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change configuration values",
	Long: `Show and change values in the configuration file.

Examples:
  projection-video-3d config show
  projection-video-3d config get ffmpeg.path
  projection-video-3d config set projection.direction down`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigShowWithDependencies(cfg, cfgFile, DefaultOutput)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a single configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigGetWithDependencies(cfg, cfgFile, args[0], DefaultOutput)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a configuration value and save the file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigSetWithDependencies(cfg, cfgFile, args[0], args[1], DefaultOutput)
	},
}

// RunConfigShowWithDependencies prints every key and value
func RunConfigShowWithDependencies(cfg *config.Config, configPath string, out OutputWriter) error {
	mgr := config.NewManager(cfg, configPath)

	fmt.Fprintf(out, "Config file: %s\n\n", configPath)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, key := range config.Keys() {
		value, err := mgr.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", key, value)
	}
	return w.Flush()
}

// RunConfigGetWithDependencies prints the value of one key
func RunConfigGetWithDependencies(cfg *config.Config, configPath, key string, out OutputWriter) error {
	value, err := config.NewManager(cfg, configPath).Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, value)
	return nil
}

// RunConfigSetWithDependencies validates, stores and saves one key
func RunConfigSetWithDependencies(cfg *config.Config, configPath, key, value string, out OutputWriter) error {
	if err := config.NewManager(cfg, configPath).Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s = %s in %s\n", key, value, configPath)
	return nil
}
