package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/kousuan/internal/kousuan"
	"github.com/abhisek/kousuan/internal/ui/theme"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the drill problem types",
	RunE: func(cmd *cobra.Command, args []string) error {
		tierVal, _ := cmd.Flags().GetString("tier")

		specs := kousuan.AllSpecs()
		if tierVal != "" {
			tier, err := kousuan.ParseTier(tierVal)
			if err != nil {
				return err
			}
			var filtered []kousuan.TypeSpec
			for _, s := range specs {
				if s.Tier == tier {
					filtered = append(filtered, s)
				}
			}
			specs = filtered
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-18s  %-14s  %7s  %s\n", "ID", "Tier", "Ceiling", "Label")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, s := range specs {
			fmt.Fprintf(out, "%-18s  %s  %7d  %s\n",
				s.ID, theme.Tier.Render(fmt.Sprintf("%-14s", s.Tier)), s.Ceiling, s.Label)
		}
		return nil
	},
}

func init() {
	typesCmd.Flags().String("tier", "", "Only list types of this tier: beginner, intermediate or advanced")
}
