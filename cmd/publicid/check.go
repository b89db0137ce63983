package main

import (
	"fmt"

	"github.com/DillonStreator/identifiable/config"
	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/storage"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an identifiable config file",
		Long:  "Load the config file and run every table declaration through registration, reporting the first failure.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load(configPath)
			if err != nil {
				return err
			}

			cfg := identifiable.DefaultConfiguration()
			decls := storage.DefaultDeclarations()
			f.Apply(&cfg, &decls)

			if err := storage.ValidateDeclarations(decls); err != nil {
				return fmt.Errorf("%s: %w", configPath, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "overwrite_to_key: %t\n", cfg.OverwriteToKey)
			fmt.Fprintf(out, "overwrite_to_param: %t\n", cfg.OverwriteToParam)
			fmt.Fprintf(out, "users: %v\n", describe(decls.Users))
			fmt.Fprintf(out, "todos: %v\n", describe(decls.Todos))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func describe(d identifiable.DeclarationConfig) string {
	column := d.Column
	if column == nil {
		column = identifiable.DefaultColumn
	}
	style := d.Style
	if style == nil {
		style = identifiable.DefaultStyle
	}
	if d.Length == nil {
		return fmt.Sprintf("%v %v", column, style)
	}
	return fmt.Sprintf("%v %v %v", column, style, d.Length)
}
