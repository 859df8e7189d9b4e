package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
)

var archetypeCmd = &cobra.Command{
	Use:   "archetype [id]",
	Short: "List archetypes or choose one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			if err := e.session.SetArchetype(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Archetype set to %s.\n", catalog.ArchetypeOrDefault(args[0]).Name)
			return nil
		}

		current := e.session.Profile().ArchetypeID
		for _, a := range catalog.Archetypes() {
			marker := " "
			if a.ID == current {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-14s  %-26s  tolerance %.2f  %s\n", marker, a.ID, a.Name, a.StabilityTolerance, a.Description)
		}
		return nil
	},
}
