package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"leadflow-engine/internal/config"
)

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the config and print errors and warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _, v, err := g.readConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range v.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			for _, e := range v.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			if !v.OK() {
				return fmt.Errorf("%s: %d config errors", path, len(v.Errors))
			}
			fmt.Fprintf(out, "%s: ok\n", path)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := g.configPath
			if path == "" {
				path = filepath.Join(g.bootstrapDir(), "config.yml")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.SaveAtomic(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(validate, initCmd)
	return cmd
}
