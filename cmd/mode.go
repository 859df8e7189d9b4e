package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
)

var modeCmd = &cobra.Command{
	Use:   "mode [study|exam]",
	Short: "Show or set the answer mode",
	Long:  "Exam-mode answers weigh more in readiness than study-mode answers.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), e.session.Profile().Mode)
			return nil
		}
		m, ok := profile.ParseMode(args[0])
		if !ok {
			return fmt.Errorf("unknown mode %q (want study or exam)", args[0])
		}
		if err := e.session.SetMode(cmd.Context(), m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mode set to %s.\n", m)
		return nil
	},
}
