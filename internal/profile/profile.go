// Package profile holds the learner aggregate: answer history, mastery
// scores, progression sets and the counters that feed readiness and risk.
package profile

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Version is the record version written by this build.
const Version = "v1.0.0"

// Mode selects how heavily attempts count toward readiness.
type Mode string

const (
	ModeStudy Mode = "study"
	ModeExam  Mode = "exam"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeStudy, ModeExam:
		return Mode(s), true
	}
	return "", false
}

// HistoryEntry is one recorded answer. ErrorType holds the judgment code
// of a miss, or "none".
type HistoryEntry struct {
	ID          uuid.UUID        `json:"id"`
	Domain      catalog.DomainID `json:"domain"`
	Difficulty  int              `json:"difficulty"`
	Correct     bool             `json:"correct"`
	Mode        Mode             `json:"mode"`
	Timestamp   time.Time        `json:"timestamp"`
	ErrorType   diagnosis.Code   `json:"errorType"`
	IsPediatric bool             `json:"isPediatric"`
}

type Profile struct {
	ID                string                   `json:"id"`
	Version           string                   `json:"version"`
	ArchetypeID       string                   `json:"archetypeId"`
	XP                int                      `json:"xp"`
	DomainXP          map[catalog.DomainID]int `json:"domainXp"`
	DomainScores      map[catalog.DomainID]int `json:"domainScores"`
	CompletedNodes    []string                 `json:"completedNodes"`
	RecentErrors      []diagnosis.ErrorType    `json:"recentErrors"`
	RecoveryNodes     []string                 `json:"recoveryNodes"`
	JudgmentErrors    int                      `json:"clinicalJudgmentErrors"`
	PriorityErrorRate float64                  `json:"priorityErrorRate"`
	RecentFailures    int                      `json:"recentFailures"`
	Mode              Mode                     `json:"mode"`
	History           []HistoryEntry           `json:"history"`
	LastEncounterAt   *time.Time               `json:"lastEncounterAt,omitempty"`
}

// Default returns a fresh profile with the starting mastery scores.
func Default(id string) *Profile {
	return &Profile{
		ID:          id,
		Version:     Version,
		ArchetypeID: catalog.DefaultArchetypeID,
		DomainXP:    map[catalog.DomainID]int{},
		DomainScores: map[catalog.DomainID]int{
			catalog.DomainAirway:     52,
			catalog.DomainCardiology: 55,
			catalog.DomainTrauma:     54,
			catalog.DomainMedical:    56,
			catalog.DomainOps:        58,
		},
		CompletedNodes: []string{},
		RecentErrors:   []diagnosis.ErrorType{},
		RecoveryNodes:  []string{},
		Mode:           ModeStudy,
		History:        []HistoryEntry{},
	}
}

// MasteryScore returns the mastery score of a domain and whether the
// profile has one.
func (p *Profile) MasteryScore(d catalog.DomainID) (int, bool) {
	s, ok := p.DomainScores[d]
	return s, ok
}

// RecentErrorTypes returns up to n of the most recent miss error types,
// oldest first.
func (p *Profile) RecentErrorTypes(n int) []diagnosis.ErrorType {
	if n <= 0 || len(p.RecentErrors) == 0 {
		return nil
	}
	start := max(0, len(p.RecentErrors)-n)
	return slices.Clone(p.RecentErrors[start:])
}

func (p *Profile) IsCompleted(nodeID string) bool {
	return slices.Contains(p.CompletedNodes, nodeID)
}

func (p *Profile) InRecovery(nodeID string) bool {
	return slices.Contains(p.RecoveryNodes, nodeID)
}

// MarkCompleted adds nodeID to the completed set and drops any recovery
// grant for it. The completed set never shrinks.
func (p *Profile) MarkCompleted(nodeID string) {
	if !p.IsCompleted(nodeID) {
		p.CompletedNodes = append(p.CompletedNodes, nodeID)
	}
	p.RecoveryNodes = slices.DeleteFunc(p.RecoveryNodes, func(id string) bool { return id == nodeID })
}

// GrantRecovery adds nodeID to the recovery set.
func (p *Profile) GrantRecovery(nodeID string) {
	if !p.InRecovery(nodeID) {
		p.RecoveryNodes = append(p.RecoveryNodes, nodeID)
	}
}

// Answer describes one answered question for bookkeeping.
type Answer struct {
	Domain           catalog.DomainID
	Difficulty       int
	Correct          bool
	ErrorType        diagnosis.ErrorType
	Code             diagnosis.Code
	ClinicalJudgment bool
	Pediatric        bool
	At               time.Time
}

// RecordAnswer appends a history entry and updates the mastery score,
// error ring and judgment counters.
func (p *Profile) RecordAnswer(a Answer, cfg tuning.Profile) HistoryEntry {
	code := diagnosis.CodeNone
	if !a.Correct {
		code = a.Code
		if code == "" {
			code = diagnosis.CodePriority
		}
	}
	entry := HistoryEntry{
		ID:          uuid.New(),
		Domain:      a.Domain,
		Difficulty:  a.Difficulty,
		Correct:     a.Correct,
		Mode:        p.Mode,
		Timestamp:   a.At,
		ErrorType:   code,
		IsPediatric: a.Pediatric,
	}
	p.History = append(p.History, entry)

	if !a.Correct {
		p.RecentErrors = append(p.RecentErrors, a.ErrorType)
		if over := len(p.RecentErrors) - cfg.ErrorRing; over > 0 {
			p.RecentErrors = slices.Clone(p.RecentErrors[over:])
		}
		if a.ClinicalJudgment {
			p.JudgmentErrors++
		}
		p.PriorityErrorRate = round2(clampFloat(p.PriorityErrorRate+cfg.PriorityErrorStep, 0, 1))
	}

	p.updateDomainScore(a, cfg)
	return entry
}

func (p *Profile) updateDomainScore(a Answer, cfg tuning.Profile) {
	if p.DomainScores == nil {
		p.DomainScores = map[catalog.DomainID]int{}
	}
	change := cfg.CorrectDelta
	if !a.Correct {
		change = cfg.IncorrectDelta
		if a.ClinicalJudgment {
			change = cfg.JudgmentIncorrectDelta
		}
	}
	current, ok := p.DomainScores[a.Domain]
	if !ok {
		current = int(cfg.DefaultScore)
	}
	next := clampFloat(float64(current)+change, cfg.ScoreFloor, cfg.ScoreCeiling)
	p.DomainScores[a.Domain] = int(math.Round(next))
}

// Completion summarises a finished encounter for bookkeeping.
type Completion struct {
	NodeID   string
	Success  bool
	XP       int
	DomainXP map[catalog.DomainID]int
	At       time.Time
}

// RecordCompletion credits XP, grows the completed set on success and moves
// the failure counter.
func (p *Profile) RecordCompletion(c Completion) {
	p.XP += c.XP
	if p.DomainXP == nil {
		p.DomainXP = map[catalog.DomainID]int{}
	}
	for d, xp := range c.DomainXP {
		p.DomainXP[d] += xp
	}
	if c.Success {
		p.MarkCompleted(c.NodeID)
		p.RecentFailures = max(0, p.RecentFailures-1)
	} else {
		p.RecentFailures++
	}
	at := c.At
	p.LastEncounterAt = &at
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := *p
	c.DomainXP = cloneMap(p.DomainXP)
	c.DomainScores = cloneMap(p.DomainScores)
	c.CompletedNodes = slices.Clone(p.CompletedNodes)
	c.RecentErrors = slices.Clone(p.RecentErrors)
	c.RecoveryNodes = slices.Clone(p.RecoveryNodes)
	c.History = slices.Clone(p.History)
	if p.LastEncounterAt != nil {
		at := *p.LastEncounterAt
		c.LastEncounterAt = &at
	}
	return &c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
