package main

import (
	"fmt"

	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/stylist"
	"github.com/spf13/cobra"
)

// cliSchema stands in for a table so generated ids go through the same
// declaration checks as a registered model.
var cliSchema = identifiable.Schema{
	Table:   "cli",
	Columns: []string{"id", identifiable.DefaultColumn},
}

func newGenerateCmd() *cobra.Command {
	var (
		style  string
		length int
		count  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random public identifiers",
		Long:  "Print --count random public identifiers of the given style. Uniqueness is not checked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			opts := []identifiable.Option{identifiable.WithStyle(stylist.Style(style))}
			if cmd.Flags().Changed("length") {
				opts = append(opts, identifiable.WithLength(length))
			}
			typ, err := identifiable.Register(cliSchema, opts...)
			if err != nil {
				return err
			}

			for i := 0; i < count; i++ {
				id, err := typ.RandomID()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", string(identifiable.DefaultStyle), "numeric, alphanumeric or uuid")
	cmd.Flags().IntVarP(&length, "length", "l", identifiable.DefaultLength, "identifier length (not allowed with uuid)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many identifiers to print")
	return cmd
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the supported styles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, style := range stylist.Styles() {
				fmt.Fprintln(cmd.OutOrStdout(), style)
			}
		},
	}
}
