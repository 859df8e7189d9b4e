package modifiers

import (
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Flag names one scenario trait.
type Flag string

const (
	HighCallVolume   Flag = "highCallVolume"
	LimitedResources Flag = "limitedResources"
	PediatricSpike   Flag = "pediatricSpike"
	WeatherImpact    Flag = "weatherImpact"
	EquipmentFailure Flag = "equipmentFailure"
)

// Vocabulary is the fixed flag set in draw order.
var Vocabulary = []Flag{HighCallVolume, LimitedResources, PediatricSpike, WeatherImpact, EquipmentFailure}

// Set is the active modifiers for one node on one day.
type Set struct {
	HighCallVolume   bool `json:"highCallVolume"`
	LimitedResources bool `json:"limitedResources"`
	PediatricSpike   bool `json:"pediatricSpike"`
	WeatherImpact    bool `json:"weatherImpact"`
	EquipmentFailure bool `json:"equipmentFailure"`
}

func (s Set) Has(f Flag) bool {
	switch f {
	case HighCallVolume:
		return s.HighCallVolume
	case LimitedResources:
		return s.LimitedResources
	case PediatricSpike:
		return s.PediatricSpike
	case WeatherImpact:
		return s.WeatherImpact
	case EquipmentFailure:
		return s.EquipmentFailure
	}
	return false
}

func (s *Set) set(f Flag) {
	switch f {
	case HighCallVolume:
		s.HighCallVolume = true
	case LimitedResources:
		s.LimitedResources = true
	case PediatricSpike:
		s.PediatricSpike = true
	case WeatherImpact:
		s.WeatherImpact = true
	case EquipmentFailure:
		s.EquipmentFailure = true
	}
}

// Active lists the set flags in vocabulary order.
func (s Set) Active() []Flag {
	var out []Flag
	for _, f := range Vocabulary {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Impact is the difficulty and reward effect of a modifier set.
type Impact struct {
	DifficultyShift int
	RewardMult      float64
}

// ImpactOf computes the effect of s. Every active flag shifts difficulty by
// one; resource or weather strain and call volume raise the reward.
func ImpactOf(s Set, cfg tuning.Modifiers) Impact {
	imp := Impact{DifficultyShift: len(s.Active()), RewardMult: 1}
	if s.LimitedResources || s.WeatherImpact {
		imp.RewardMult += cfg.ResourceReward
	}
	if s.HighCallVolume {
		imp.RewardMult += cfg.VolumeReward
	}
	return imp
}

// Build assigns one or two distinct flags to every node, in node order,
// from a generator seeded with seed.
func Build(nodes []catalog.NodeDefinition, seed uint32, cfg tuning.Modifiers) map[string]Set {
	return BuildFrom(nodes, NewLCG(seed), cfg)
}

// BuildFrom is Build with an explicit source.
func BuildFrom(nodes []catalog.NodeDefinition, src Source, cfg tuning.Modifiers) map[string]Set {
	out := make(map[string]Set, len(nodes))
	for _, n := range nodes {
		count := 2
		if src.Next() < cfg.SingleProbability {
			count = 1
		}
		var s Set
		for len(s.Active()) < count {
			s.set(Vocabulary[Intn(src, len(Vocabulary))])
		}
		out[n.ID] = s
	}
	return out
}

// Cache pairs generated modifiers with the seed they came from.
type Cache struct {
	Seed      uint32         `json:"seed"`
	Modifiers map[string]Set `json:"modifiers"`
}

// Resolve returns the cached modifiers when they were built from seed,
// otherwise it builds fresh ones. The boolean reports whether a rebuild
// happened and the returned cache should be persisted.
func Resolve(cached *Cache, nodes []catalog.NodeDefinition, seed uint32, cfg tuning.Modifiers) (Cache, bool) {
	if cached != nil && cached.Seed == seed && cached.Modifiers != nil {
		return *cached, false
	}
	return Cache{Seed: seed, Modifiers: Build(nodes, seed, cfg)}, true
}
