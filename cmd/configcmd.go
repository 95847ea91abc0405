// file: cmd/configcmd.go
// version: 1.0.0
// guid: 2f3a4b5c-6d7e-8f9a-0b1c-2d3e4f5a6b7c

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lmorel/bibsearch/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file with every key at its default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigInit(os.Stdout, path)
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(os.Stdout)
		},
	}
)

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(out io.Writer, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".bibsearch.yaml")
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

// runConfigShow prints the settled values after defaults, config file,
// environment and flags have all had their say.
func runConfigShow(out io.Writer) error {
	config.SetDefaults()
	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
