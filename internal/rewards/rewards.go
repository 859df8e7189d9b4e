// Package rewards computes the experience awarded when an encounter ends.
package rewards

import (
	"math"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/stability"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Award is the XP credited for one completed or failed encounter.
type Award struct {
	XP          int
	DomainXP    map[catalog.DomainID]int
	StreakBonus bool
	Success     bool
}

// Input is everything an award is derived from.
type Input struct {
	Node             catalog.NodeDefinition
	RewardMultiplier float64
	Archetype        catalog.Archetype
	Momentum         stability.Momentum
	Success          bool
}

// Compute returns the award for an encounter outcome.
func Compute(in Input, cfg tuning.Rewards) Award {
	mult := in.RewardMultiplier
	if mult <= 0 {
		mult = 1
	}

	streak := in.Momentum.CorrectStreak >= cfg.StreakAt
	streakMult := 1.0
	if streak {
		streakMult = cfg.StreakBonus
	}

	outcome, domainOutcome := 1.0, 1.0
	if !in.Success {
		outcome = cfg.FailureXPFactor
		domainOutcome = cfg.FailureDomainXPFactor
	}

	xp := float64(in.Node.Rewards.XP) *
		in.Archetype.XPModifier(in.Node.PrimaryDomain) *
		mult * streakMult * outcome

	award := Award{
		XP:          int(math.Round(xp)),
		DomainXP:    make(map[catalog.DomainID]int, len(in.Node.Rewards.DomainXP)),
		StreakBonus: streak,
		Success:     in.Success,
	}
	for d, base := range in.Node.Rewards.DomainXP {
		award.DomainXP[d] = int(math.Round(float64(base) * in.Archetype.XPModifier(d) * domainOutcome))
	}
	return award
}

// Total returns XP plus all domain XP.
func (a Award) Total() int {
	total := a.XP
	for _, v := range a.DomainXP {
		total += v
	}
	return total
}
