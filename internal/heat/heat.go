// Package heat derives a per-district risk signal from domain mastery and
// global error counters.
package heat

import (
	"math"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

type Band string

const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandHigh     Band = "high"
)

// District is the heat of one district.
type District struct {
	Name   string
	Domain catalog.DomainID
	Heat   float64
	Band   Band
}

// BandFor maps a heat value onto its band.
func BandFor(v float64, cfg tuning.Heat) Band {
	switch {
	case v < cfg.LowBelow:
		return BandLow
	case v < cfg.ModerateBelow:
		return BandModerate
	default:
		return BandHigh
	}
}

// Of computes the heat of one domain-backed district for p, in [0, 1]
// rounded to two decimals.
func Of(p *profile.Profile, domain catalog.DomainID, cfg tuning.Heat) float64 {
	score, ok := p.MasteryScore(domain)
	accuracy := cfg.DefaultAccuracy / 100
	if ok {
		accuracy = float64(score) / 100
	}
	v := (1-accuracy)*cfg.DomainWeight(domain) +
		p.PriorityErrorRate*cfg.PriorityWeight +
		float64(p.RecentFailures)*cfg.FailureWeight
	v = math.Max(0, math.Min(1, v))
	return math.Round(v*100) / 100
}

// Map computes heat for every district in display order.
func Map(p *profile.Profile, cfg tuning.Heat) []District {
	districts := catalog.AllDistricts()
	out := make([]District, 0, len(districts))
	for _, d := range districts {
		v := Of(p, d.Domain, cfg)
		out = append(out, District{Name: d.Name, Domain: d.Domain, Heat: v, Band: BandFor(v, cfg)})
	}
	return out
}
