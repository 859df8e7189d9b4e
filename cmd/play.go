package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play <node>",
	Short: "Run an encounter for a node",
	Long: "Run an encounter for an available node. Answers are zero-based option " +
		"indexes, given with --answers or typed one per line.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("answers")
		scripted, err := parseAnswers(raw)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		s := e.session

		b, err := s.StartEncounter(ctx, args[0])
		if err != nil {
			return err
		}
		n := b.View.Node
		fmt.Fprintf(out, "%s  %s  (%s, tier %d, %d questions)\n", n.ID, n.District, n.NodeType, n.DifficultyTier, b.Questions)
		fmt.Fprintf(out, "Risk %s   difficulty %d   reward x%.2f   modifiers: %s\n\n",
			b.View.RiskLevel, b.View.DynamicDifficulty, b.View.RewardMultiplier, flagList(b.View.Modifiers.Active()))

		in := bufio.NewReader(cmd.InOrStdin())
		for i := 0; ; i++ {
			item, ok := s.Current()
			if !ok {
				return nil
			}
			q := item.Question
			fmt.Fprintf(out, "Q%d [%s]", i+1, item.Interaction)
			if item.EventTag != "" {
				fmt.Fprintf(out, " [%s]", item.EventTag)
			}
			if item.Pediatric {
				fmt.Fprint(out, " [pediatric]")
			}
			fmt.Fprintf(out, "\n%s\n", q.Text)
			for j, opt := range q.Options {
				fmt.Fprintf(out, "  %d) %s\n", j, opt)
			}

			var choice int
			if i < len(scripted) {
				choice = scripted[i]
				fmt.Fprintf(out, "> %d\n", choice)
			} else if choice, err = readAnswer(in, out); err != nil {
				if abandonErr := s.Abandon(ctx); abandonErr != nil {
					return abandonErr
				}
				fmt.Fprintln(out, "Encounter abandoned.")
				return nil
			}

			step, err := s.Answer(ctx, choice)
			if err != nil {
				return err
			}
			printResult(out, step)
			if step.Completion != nil {
				printCompletion(out, s.Catalog(), step.Completion)
			}
		}
	},
}

func init() {
	playCmd.Flags().String("answers", "", "Comma-separated option indexes, e.g. 0,2,1")
}

func parseAnswers(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func readAnswer(in *bufio.Reader, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "> ")
		line, err := in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if n, convErr := strconv.Atoi(line); convErr == nil {
				return n, nil
			}
			fmt.Fprintln(out, "enter an option number")
		}
		if err != nil {
			return 0, err
		}
	}
}

func printResult(out io.Writer, step session.Step) {
	r := step.Result
	if r.Correct {
		fmt.Fprintln(out, "Correct.")
	} else {
		fmt.Fprintf(out, "Incorrect: %s (%s)\n", r.ErrorType, diagnosis.LabelFor(r.Code))
	}
	if r.Rationale != "" {
		fmt.Fprintf(out, "  %s\n", r.Rationale)
	}
	fmt.Fprintf(out, "  stability A%d C%d N%d\n\n", r.Stability.Airway, r.Stability.Circulation, r.Stability.Neuro)
}

func printCompletion(out io.Writer, cat *catalog.Catalog, c *session.CompletionReport) {
	outcome := "completed"
	if !c.Success {
		outcome = "failed"
	}
	fmt.Fprintf(out, "%s %s: %d/%d correct\n", c.NodeID, outcome, c.Correct, len(c.Answers))
	fmt.Fprintf(out, "  +%d XP", c.Award.XP)
	if c.Award.StreakBonus {
		fmt.Fprint(out, " (streak bonus)")
	}
	for _, d := range catalog.AllDomains() {
		if xp, ok := c.Award.DomainXP[d.ID]; ok {
			fmt.Fprintf(out, "  +%d %s", xp, d.ID)
		}
	}
	fmt.Fprintf(out, "\n  readiness %d -> %d\n", c.ReadinessBefore, c.ReadinessAfter)
	fmt.Fprintf(out, "  %s: stability %d, stress %d\n", c.District, c.DistrictState.StabilityLevel, c.DistrictState.SystemStress)
	if c.RecoveryGranted != "" {
		fmt.Fprintf(out, "  recovery node unlocked: %s\n", c.RecoveryGranted)
	}
	if len(c.Unlocked) > 0 {
		fmt.Fprintf(out, "  newly available: %s\n", strings.Join(c.Unlocked, ", "))
	}
	for _, r := range c.Answers {
		if r.Correct {
			continue
		}
		q, ok := cat.Question(r.QuestionID)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  review %s: %s\n", q.ID, q.Options[q.CorrectIndex])
	}
}
