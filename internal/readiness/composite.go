package readiness

import (
	"math"
	"time"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Breakdown exposes every term of the composite score.
type Breakdown struct {
	Score            int
	Label            Label
	Domains          map[catalog.DomainID]DomainReadiness
	Blended          map[catalog.DomainID]float64
	DomainComposite  float64
	Judgment         int
	ConsistencyBonus int
	MixPenalty       int
	ErrorPenalty     int
}

// Compute derives the composite readiness of p at time now. An empty
// history scores 0.
func Compute(p *profile.Profile, now time.Time, t *tuning.Tuning) Breakdown {
	cfg := t.Readiness
	b := Breakdown{
		Domains: Domains(p.History, now, cfg),
		Blended: make(map[catalog.DomainID]float64),
	}
	if len(p.History) == 0 {
		b.Label = LabelForScore(0, cfg.Bands)
		return b
	}

	for _, d := range catalog.AllDomains() {
		w := cfg.DomainWeight(d.ID)
		if w <= 0 {
			continue
		}
		score := blend(b.Domains[d.ID], p, d.ID, cfg.MasteryBlend)
		b.Blended[d.ID] = score
		b.DomainComposite += score * (w / cfg.DomainWeightTotal)
	}
	b.Judgment = ClinicalJudgment(p.History, now, cfg, t.Judgment)
	b.MixPenalty = mixPenalty(p.History, cfg)
	b.ConsistencyBonus, b.ErrorPenalty = recentTerms(p.History, cfg)

	total := b.DomainComposite*(cfg.DomainWeightTotal/100) +
		float64(b.Judgment)*(cfg.JudgmentWeight/100) +
		float64(b.ConsistencyBonus) -
		float64(b.MixPenalty) -
		float64(b.ErrorPenalty)
	b.Score = int(clamp(math.Round(total), 0, 100))
	b.Label = LabelForScore(b.Score, cfg.Bands)
	return b
}

// Score is Compute without the breakdown.
func Score(p *profile.Profile, now time.Time, t *tuning.Tuning) int {
	return Compute(p, now, t).Score
}

// blend combines the history score of a domain with the profile's mastery
// score. Either side stands alone when the other is missing.
func blend(dr DomainReadiness, p *profile.Profile, d catalog.DomainID, weight float64) float64 {
	mastery, ok := p.MasteryScore(d)
	switch {
	case !ok:
		return float64(dr.Score)
	case dr.Attempts == 0:
		return float64(mastery)
	default:
		return weight*float64(mastery) + (1-weight)*float64(dr.Score)
	}
}

func mixPenalty(history []profile.HistoryEntry, cfg tuning.Readiness) int {
	var eligible, peds int
	for _, h := range history {
		if string(h.Domain) == cfg.MixExcludedDomain {
			continue
		}
		eligible++
		if h.IsPediatric {
			peds++
		}
	}
	rate := 0.0
	if eligible > 0 {
		rate = float64(peds) / float64(eligible)
	}
	return int(math.Min(cfg.MixPenaltyCap, math.Round(math.Abs(cfg.PediatricTarget-rate)*cfg.MixPenaltyScale)))
}

func recentTerms(history []profile.HistoryEntry, cfg tuning.Readiness) (bonus, penalty int) {
	recent := history[max(0, len(history)-cfg.RecentWindow):]
	if len(recent) == 0 {
		return 0, 0
	}
	correct := 0
	for _, h := range recent {
		if h.Correct {
			correct++
		}
	}
	mean := float64(correct) / float64(len(recent))
	bonus = int(math.Round(cfg.ConsistencyScale * mean))
	misses := float64(len(recent) - correct)
	penalty = int(math.Min(cfg.ErrorBurdenCap, math.Round(misses/cfg.ErrorBurdenDivisor)))
	return bonus, penalty
}
