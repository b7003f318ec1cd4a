package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List keyword categories usable with --category",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, c := range cfg.CategoryTable() {
			fmt.Fprintf(out, "- %s: %s\n", c.Name, strings.Join(c.Keywords, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
