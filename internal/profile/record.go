package profile

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Decode reads a serialized profile over the defaults, so fields missing
// from older records keep their default values.
func Decode(data []byte, id string, cfg tuning.Profile) (*Profile, error) {
	p := Default(id)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p.Normalize(cfg)
	p.ID = id
	return p, nil
}

func Encode(p *Profile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// Normalize restores every bounded field to its documented range and fills
// empty collections.
func (p *Profile) Normalize(cfg tuning.Profile) {
	defaults := Default(p.ID)

	p.Version = Version
	if _, err := catalog.GetArchetype(p.ArchetypeID); err != nil {
		p.ArchetypeID = catalog.DefaultArchetypeID
	}
	if _, ok := ParseMode(string(p.Mode)); !ok {
		p.Mode = ModeStudy
	}
	p.XP = max(0, p.XP)

	if p.DomainXP == nil {
		p.DomainXP = map[catalog.DomainID]int{}
	}
	if p.DomainScores == nil {
		p.DomainScores = defaults.DomainScores
	}
	for d, s := range p.DomainScores {
		if !catalog.IsDomain(d) {
			delete(p.DomainScores, d)
			continue
		}
		p.DomainScores[d] = int(clampFloat(float64(s), cfg.ScoreFloor, cfg.ScoreCeiling))
	}

	p.CompletedNodes = dedupe(p.CompletedNodes)
	p.RecoveryNodes = dedupe(p.RecoveryNodes)
	if p.RecentErrors == nil {
		p.RecentErrors = []diagnosis.ErrorType{}
	}
	if over := len(p.RecentErrors) - cfg.ErrorRing; over > 0 {
		p.RecentErrors = slices.Clone(p.RecentErrors[over:])
	}

	p.JudgmentErrors = max(0, p.JudgmentErrors)
	p.PriorityErrorRate = clampFloat(p.PriorityErrorRate, 0, 1)
	p.RecentFailures = max(0, p.RecentFailures)

	if p.History == nil {
		p.History = []HistoryEntry{}
	}
	for i := range p.History {
		h := &p.History[i]
		h.Difficulty = min(5, max(1, h.Difficulty))
		if _, ok := ParseMode(string(h.Mode)); !ok {
			h.Mode = ModeStudy
		}
		if h.ErrorType == "" {
			h.ErrorType = diagnosis.CodeNone
		}
	}
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
