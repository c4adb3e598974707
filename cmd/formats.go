// Package cmd — formats command.
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/gaurav-prasanna/pygmalion/core/render"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMAT\tEXTENSION")
			for _, name := range render.Formats() {
				r, err := render.New(name, render.Options{})
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", name, r.Extension())
			}
			return tw.Flush()
		},
	}
}
