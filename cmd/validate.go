package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/progression"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check tuned constants and the content banks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		tun, cat, err := loadStatic(cfg)
		if err != nil {
			return err
		}
		if err := tun.Validate(); err != nil {
			return err
		}
		g, err := progression.New(cat.Nodes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d questions, %d nodes across %d districts\n",
			len(cat.Questions), len(g.Nodes()), len(cat.DistrictNames()))
		fmt.Fprintln(out, "Unlock order:")
		for i, n := range g.TopologicalOrder() {
			fmt.Fprintf(out, "  %2d. %-13s  readiness >= %-3d", i+1, n.ID, n.Prerequisites.MinReadiness)
			if deps := g.Dependents(n.ID); len(deps) > 0 {
				ids := make([]string, len(deps))
				for j, d := range deps {
					ids[j] = d.ID
				}
				fmt.Fprintf(out, "  unlocks %s", strings.Join(ids, ", "))
			}
			fmt.Fprintln(out)
		}
		for _, w := range cat.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintln(out, "OK")
		return nil
	},
}
