package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spotlight/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the config file",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfgPath == "" {
				return errors.New("no config file (running on defaults)")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), opts.cfgPath)
			return err
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a dotted key, e.g. tour.dim_opacity 0.4",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfgPath
			if path == "" {
				path = defaultConfigPath()
			}
			return runConfigSet(cmd.OutOrStdout(), path, args[0], args[1])
		},
	}

	configCmd.AddCommand(pathCmd, setCmd)
	return configCmd
}

// runConfigSet writes key=value and re-validates the whole file. An invalid
// result restores the previous contents.
func runConfigSet(w io.Writer, path, key, value string) error {
	previous, err := os.ReadFile(path) //nolint:gosec // G304: user config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := config.SetValue(path, key, value); err != nil {
		return err
	}
	if _, _, err := loadConfig(path); err != nil {
		if previous != nil {
			_ = os.WriteFile(path, previous, 0o600)
		} else {
			_ = os.Remove(path)
		}
		return fmt.Errorf("not saved: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s = %s\n", key, value)
	return err
}
