package progression

import (
	"math"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/heat"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/world"
)

// NodeView is a node definition with its dynamic overlay for one moment:
// today's modifiers, district conditions and the learner's unlock state.
type NodeView struct {
	Node              catalog.NodeDefinition
	State             UnlockState
	Recovery          bool
	Modifiers         modifiers.Set
	Impact            modifiers.Impact
	District          world.DistrictState
	Risk              float64
	RiskLevel         heat.Band
	DynamicDifficulty int
	RewardMultiplier  float64
}

// Inputs bundles what a view is derived from.
type Inputs struct {
	Profile   *profile.Profile
	Readiness int
	Ledger    world.Ledger
	Modifiers map[string]modifiers.Set
	Tuning    *tuning.Tuning
}

// View derives the enriched view of one node.
func View(n catalog.NodeDefinition, in Inputs) NodeView {
	cfg := in.Tuning.Modifiers
	mods := in.Modifiers[n.ID]
	impact := modifiers.ImpactOf(mods, cfg)
	district := in.Ledger.Get(n.District, in.Tuning.World)

	base := clamp01(float64(district.SystemStress+district.RecentFailures*int(cfg.FailureStress)) / 100)
	risk := math.Min(1, base+float64(impact.DifficultyShift)*cfg.RiskPerShift)

	level := heat.BandHigh
	switch {
	case risk < cfg.RiskLowBelow:
		level = heat.BandLow
	case risk < cfg.RiskModerateBelow:
		level = heat.BandModerate
	}

	dynamic := n.DifficultyTier +
		int(math.Round(float64(impact.DifficultyShift)/2)) +
		int(math.Round(risk*2))

	return NodeView{
		Node:              n,
		State:             StateOf(n, in.Profile, in.Readiness),
		Recovery:          in.Profile.InRecovery(n.ID) && !in.Profile.IsCompleted(n.ID),
		Modifiers:         mods,
		Impact:            impact,
		District:          district,
		Risk:              risk,
		RiskLevel:         level,
		DynamicDifficulty: max(1, min(5, dynamic)),
		RewardMultiplier:  1 + risk*cfg.RiskRewardScale + (impact.RewardMult - 1),
	}
}

// Views derives the view of every node in bank order.
func (g *Graph) Views(in Inputs) []NodeView {
	out := make([]NodeView, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, View(n, in))
	}
	return out
}

// Eligible returns the views of available nodes.
func (g *Graph) Eligible(in Inputs) []NodeView {
	var out []NodeView
	for _, v := range g.Views(in) {
		if v.State == StateAvailable {
			out = append(out, v)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
