package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/encounter"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/progression"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/readiness"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/rewards"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/stability"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/world"
)

// Briefing describes an encounter that has just started.
type Briefing struct {
	View             progression.NodeView
	Questions        int
	TargetDifficulty int
	Stability        stability.Vector
}

// Step is the outcome of one answer. Completion is set on the answer that
// ends the encounter.
type Step struct {
	Result     encounter.Result
	Completion *CompletionReport
}

// CompletionReport summarises a finished encounter.
type CompletionReport struct {
	NodeID          string
	District        string
	Success         bool
	Answers         []encounter.Result
	Correct         int
	Award           rewards.Award
	ReadinessBefore int
	ReadinessAfter  int
	Unlocked        []string
	RecoveryGranted string
	DistrictState   world.DistrictState
}

// Active reports whether an encounter is in progress.
func (s *Session) Active() bool { return s.active != nil }

// StartEncounter assembles and starts an encounter for an available node.
func (s *Session) StartEncounter(ctx context.Context, nodeID string) (Briefing, error) {
	if s.active != nil {
		return Briefing{}, ErrEncounterActive
	}
	if err := s.refreshDay(ctx); err != nil {
		return Briefing{}, err
	}
	node, err := s.graph.Node(nodeID)
	if err != nil {
		return Briefing{}, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}

	in := s.inputs()
	view := progression.View(node, in)
	if view.State != progression.StateAvailable {
		return Briefing{}, fmt.Errorf("%w: %s is %s", ErrNodeLocked, nodeID, view.State)
	}

	recent := s.profile.RecentErrorTypes(s.tuning.Encounter.RecentErrors)
	cfg := encounter.ConfigFor(node, view.Modifiers, recent)
	src := modifiers.NewLCG(s.encounterSeed(nodeID))
	assembly := s.assembler.Assemble(cfg, src)
	if len(assembly.Items) == 0 {
		return Briefing{}, fmt.Errorf("%w: %s", ErrNoQuestions, nodeID)
	}

	arch := catalog.ArchetypeOrDefault(s.profile.ArchetypeID)
	enc := encounter.Start(node, assembly, arch.StabilityTolerance, s.tuning.Stability)

	s.active = &active{
		enc:             enc,
		view:            view,
		readinessBefore: in.Readiness,
		available:       s.graph.Available(s.profile, in.Readiness),
	}
	if err := s.saveProfile(ctx); err != nil {
		s.active = nil
		return Briefing{}, err
	}

	s.log.Info("encounter started",
		"node", nodeID,
		"questions", len(assembly.Items),
		"difficulty", assembly.TargetDifficulty,
		"modifiers", view.Modifiers.Active(),
	)
	return Briefing{
		View:             view,
		Questions:        len(assembly.Items),
		TargetDifficulty: assembly.TargetDifficulty,
		Stability:        enc.Stability(),
	}, nil
}

// encounterSeed derives the assembly seed for a node from the daily seed
// and the learner's progress, so replays on the same day still vary.
func (s *Session) encounterSeed(nodeID string) uint32 {
	return modifiers.HashSeed(fmt.Sprintf("%d-%s-%d", s.daySeed, nodeID, len(s.profile.History)))
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (encounter.Item, bool) {
	if s.active == nil {
		return encounter.Item{}, false
	}
	return s.active.enc.Current()
}

// Stability returns the stability vector of the active encounter.
func (s *Session) Stability() (stability.Vector, bool) {
	if s.active == nil {
		return stability.Vector{}, false
	}
	return s.active.enc.Stability(), true
}

// Answer submits the selected option for the current question. The answer
// is recorded on the profile; the final answer completes the encounter.
func (s *Session) Answer(ctx context.Context, selected int) (Step, error) {
	if s.active == nil {
		return Step{}, ErrNoEncounter
	}
	r, err := s.active.enc.Answer(selected)
	if err != nil {
		return Step{}, err
	}

	s.profile.RecordAnswer(profile.Answer{
		Domain:           r.Domain,
		Difficulty:       r.Difficulty,
		Correct:          r.Correct,
		ErrorType:        r.ErrorType,
		Code:             r.Code,
		ClinicalJudgment: r.ClinicalJudgment,
		Pediatric:        r.Pediatric,
		At:               s.now(),
	}, s.tuning.Profile)

	step := Step{Result: r}
	if r.Done {
		report, err := s.complete(ctx)
		if err != nil {
			return step, err
		}
		step.Completion = report
	}
	return step, nil
}

// Abandon discards the active encounter. Answers already given stay in the
// history; no completion is recorded.
func (s *Session) Abandon(ctx context.Context) error {
	if s.active == nil {
		return ErrNoEncounter
	}
	nodeID := s.active.view.Node.ID
	s.active = nil
	s.log.Info("encounter abandoned", "node", nodeID)
	return s.saveProfile(ctx)
}

func (s *Session) complete(ctx context.Context) (*CompletionReport, error) {
	a := s.active
	s.active = nil
	node := a.view.Node
	now := s.now()
	success := a.enc.Succeeded()

	award := rewards.Compute(rewards.Input{
		Node:             node,
		RewardMultiplier: a.view.RewardMultiplier,
		Archetype:        catalog.ArchetypeOrDefault(s.profile.ArchetypeID),
		Momentum:         a.enc.Momentum(),
		Success:          success,
	}, s.tuning.Rewards)

	s.profile.RecordCompletion(profile.Completion{
		NodeID:   node.ID,
		Success:  success,
		XP:       award.XP,
		DomainXP: award.DomainXP,
		At:       now,
	})
	s.ledger = s.ledger.Apply(node.District, success, s.tuning.World)

	report := &CompletionReport{
		NodeID:          node.ID,
		District:        node.District,
		Success:         success,
		Answers:         slices.Clone(a.enc.Answers),
		Award:           award,
		ReadinessBefore: a.readinessBefore,
		DistrictState:   s.ledger.Get(node.District, s.tuning.World),
	}
	for _, r := range report.Answers {
		if r.Correct {
			report.Correct++
		}
	}

	if !success {
		if id, ok := s.graph.RecoveryCandidate(node.District, s.profile); ok {
			s.profile.GrantRecovery(id)
			report.RecoveryGranted = id
			s.log.Info("recovery node granted", "node", id, "district", node.District)
		}
	}

	report.ReadinessAfter = readiness.Score(s.profile, now, s.tuning)
	for _, id := range s.graph.Available(s.profile, report.ReadinessAfter) {
		if !slices.Contains(a.available, id) {
			report.Unlocked = append(report.Unlocked, id)
		}
	}

	s.log.Info("encounter finished",
		"node", node.ID,
		"success", success,
		"xp", award.XP,
		"readiness", report.ReadinessAfter,
	)

	if err := s.saveProfile(ctx); err != nil {
		return report, err
	}
	if err := s.store.SaveDistricts(ctx, s.id, s.ledger); err != nil {
		return report, fmt.Errorf("save districts: %w", err)
	}
	return report, nil
}
