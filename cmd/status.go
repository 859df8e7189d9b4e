package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show readiness, domain breakdown and district heat",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		s := e.session
		p := s.Profile()
		b := s.Readiness()
		arch := catalog.ArchetypeOrDefault(p.ArchetypeID)

		fmt.Fprintf(out, "Profile %s  (%s, %s mode)\n", p.ID, arch.Name, p.Mode)
		fmt.Fprintf(out, "XP %d   completed nodes %d   recent failures %d\n\n", p.XP, len(p.CompletedNodes), p.RecentFailures)
		fmt.Fprintf(out, "Readiness %d  [%s]\n", b.Score, b.Label)
		fmt.Fprintf(out, "  domain composite %.1f   clinical judgment %d\n", b.DomainComposite, b.Judgment)
		fmt.Fprintf(out, "  consistency +%d   population mix -%d   error burden -%d\n\n", b.ConsistencyBonus, b.MixPenalty, b.ErrorPenalty)

		fmt.Fprintf(out, "%-36s  %5s  %-13s  %8s  %s\n", "Domain", "Score", "Label", "Attempts", "Top error")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		weakest, weakestScore := catalog.DomainID(""), 101.0
		for _, d := range catalog.AllDomains() {
			dr := b.Domains[d.ID]
			top := diagnosis.LabelFor(diagnosis.Code(dr.TopError))
			if top == "" {
				top = "-"
			}
			fmt.Fprintf(out, "%-36s  %5d  %-13s  %8d  %s\n", d.Name, dr.Score, dr.Label, dr.Attempts, top)
			if blended, ok := b.Blended[d.ID]; ok && blended < weakestScore {
				weakest, weakestScore = d.ID, blended
			}
		}

		fmt.Fprintf(out, "\n%-22s  %-12s  %5s  %s\n", "District", "Domain", "Heat", "Band")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		for _, h := range s.Heat() {
			fmt.Fprintf(out, "%-22s  %-12s  %5.2f  %s\n", h.Name, h.Domain, h.Heat, h.Band)
		}

		if c, ok := catalog.CoachingFor(weakest); ok {
			fmt.Fprintf(out, "\nFocus: %s\n  %s\n  Tested: %s\n", catalog.DomainName(weakest), c.Tip, c.WhatTesting)
			for _, pf := range c.Pitfalls {
				fmt.Fprintf(out, "  - avoid: %s\n", pf)
			}
		}
		return nil
	},
}
