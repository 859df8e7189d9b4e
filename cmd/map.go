package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/progression"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "List scenario nodes with today's conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		all, _ := cmd.Flags().GetBool("all")
		out := cmd.OutOrStdout()
		s := e.session

		fmt.Fprintf(out, "Day %s\n\n", s.DayKey())
		fmt.Fprintf(out, "%-13s  %-22s  %-13s  %4s  %-10s  %-8s  %4s  %5s  %s\n",
			"Node", "District", "Type", "Tier", "State", "Risk", "Diff", "Mult", "Modifiers")
		fmt.Fprintln(out, strings.Repeat("─", 120))

		for _, v := range s.Views() {
			if !all && v.State == progression.StateLocked {
				continue
			}
			state := string(v.State)
			if v.Recovery {
				state += "*"
			}
			fmt.Fprintf(out, "%-13s  %-22s  %-13s  %4d  %-10s  %-8s  %4d  %5.2f  %s\n",
				v.Node.ID, v.Node.District, v.Node.NodeType, v.Node.DifficultyTier,
				state, v.RiskLevel, v.DynamicDifficulty, v.RewardMultiplier,
				flagList(v.Modifiers.Active()))
		}

		fmt.Fprintf(out, "\n%-22s  %9s  %6s  %8s\n", "District", "Stability", "Stress", "Failures")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		ledger := s.Ledger()
		for _, name := range e.catalog.DistrictNames() {
			d := ledger[name]
			fmt.Fprintf(out, "%-22s  %9d  %6d  %8d\n", name, d.StabilityLevel, d.SystemStress, d.RecentFailures)
		}
		fmt.Fprintln(out, "\n* recovery node")
		return nil
	},
}

func flagList(flags []modifiers.Flag) string {
	if len(flags) == 0 {
		return "-"
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

func init() {
	mapCmd.Flags().Bool("all", false, "Include locked nodes")
}
