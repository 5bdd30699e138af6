package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List visual styles, densities and audiences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "STYLE\tNAME\tDESCRIPTION")
			for _, style := range entities.VisualStyles {
				fmt.Fprintf(w, "%s\t%s\t%s\n", style.ID, style.Name, style.Description)
			}
			fmt.Fprintln(w)

			fmt.Fprint(w, "DENSITIES\t")
			for i, d := range entities.ContentDensities {
				if i > 0 {
					fmt.Fprint(w, ", ")
				}
				fmt.Fprint(w, d)
			}
			fmt.Fprintln(w)

			fmt.Fprint(w, "AUDIENCES\t")
			for i, a := range entities.TargetAudiences {
				if i > 0 {
					fmt.Fprint(w, ", ")
				}
				fmt.Fprint(w, a)
			}
			fmt.Fprintln(w)

			return w.Flush()
		},
	}
}
