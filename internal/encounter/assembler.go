// Package encounter builds the ordered question sequence for a scenario
// node and plays it through against the stability machine.
package encounter

import (
	"slices"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// InteractionType is the presentation style hint for one question.
type InteractionType string

const (
	InteractionStandard       InteractionType = "standard"
	InteractionPrioritization InteractionType = "prioritization"
	InteractionVitalsUpdate   InteractionType = "midVitalsUpdate"
	InteractionReassessment   InteractionType = "reassessmentPrompt"
	InteractionTimePressured  InteractionType = "timePressured"
)

var interactionTypes = []InteractionType{
	InteractionStandard,
	InteractionPrioritization,
	InteractionVitalsUpdate,
	InteractionReassessment,
	InteractionTimePressured,
}

// EventTag is an optional narrative beat attached to a question.
type EventTag string

const (
	EventRadioTraffic         EventTag = "radioTraffic"
	EventPatientDeterioration EventTag = "patientDeterioration"
	EventSceneComplication    EventTag = "sceneComplication"
)

var eventTags = []EventTag{EventRadioTraffic, EventPatientDeterioration, EventSceneComplication}

// Config describes the encounter to assemble.
type Config struct {
	PrimaryDomain    catalog.DomainID
	SecondaryDomains []catalog.DomainID
	DifficultyBand   int
	Modifiers        modifiers.Set
	PatientMix       catalog.PatientMix
	RecentErrorTypes []diagnosis.ErrorType
	Length           int
}

// ConfigFor fills a Config from a node definition.
func ConfigFor(n catalog.NodeDefinition, mods modifiers.Set, recent []diagnosis.ErrorType) Config {
	return Config{
		PrimaryDomain:    n.PrimaryDomain,
		SecondaryDomains: n.SecondaryDomains,
		DifficultyBand:   n.DifficultyTier,
		Modifiers:        mods,
		PatientMix:       n.PatientMix,
		RecentErrorTypes: recent,
		Length:           n.EncounterLength,
	}
}

// Item is one assembled question with its annotations.
type Item struct {
	Question    catalog.Question
	Interaction InteractionType
	EventTag    EventTag
	PatientMix  catalog.PatientMix
	Pediatric   bool
}

// Assembly is the result of one assembly run.
type Assembly struct {
	Items            []Item
	TargetDifficulty int
	Impact           modifiers.Impact
}

// Assembler draws encounters from a fixed question bank.
type Assembler struct {
	bank []catalog.Question
	cfg  tuning.Encounter
	mcfg tuning.Modifiers
}

func NewAssembler(bank []catalog.Question, t *tuning.Tuning) *Assembler {
	return &Assembler{bank: bank, cfg: t.Encounter, mcfg: t.Modifiers}
}

// Assemble builds an encounter of c.Length questions. Candidates are
// ordered recent weaknesses first, then the primary domain, then all node
// domains, then the modifier wildcard pool. A pool shorter than c.Length
// repeats once every item in it was drawn. Every draw comes from src.
func (a *Assembler) Assemble(c Config, src modifiers.Source) Assembly {
	impact := modifiers.ImpactOf(c.Modifiers, a.mcfg)
	target := max(1, min(5, c.DifficultyBand+impact.DifficultyShift))

	ordered := a.ordered(c)
	pool := filter(ordered, func(q catalog.Question) bool {
		return q.Difficulty <= target+a.cfg.DifficultySlack
	})
	switch {
	case len(pool) == 0 && len(ordered) > 0:
		pool = ordered
	case len(pool) == 0:
		pool = slices.Clone(a.bank)
	}

	out := Assembly{TargetDifficulty: target, Impact: impact}
	if len(pool) == 0 {
		return out
	}

	n := len(pool)
	used := make(map[int]bool, n)
	for i := 0; i < c.Length; i++ {
		if len(used) == n {
			clear(used)
		}
		idx := (modifiers.Intn(src, n) + i) % n
		for used[idx] {
			idx = (idx + 1) % n
		}
		used[idx] = true

		item := Item{
			Question:    pool[idx],
			Interaction: interactionTypes[(modifiers.Intn(src, len(interactionTypes))+i)%len(interactionTypes)],
			PatientMix:  c.PatientMix,
		}
		if src.Next() < a.cfg.EventTagProbability {
			item.EventTag = eventTags[modifiers.Intn(src, len(eventTags))]
		}
		item.Pediatric = src.Next() < c.PatientMix.Pediatric || item.Question.Pediatric
		out.Items = append(out.Items, item)
	}
	return out
}

func (a *Assembler) ordered(c Config) []catalog.Question {
	domains := append([]catalog.DomainID{c.PrimaryDomain}, c.SecondaryDomains...)
	base := filter(a.bank, func(q catalog.Question) bool {
		return slices.Contains(domains, q.Domain)
	})
	weak := filter(base, func(q catalog.Question) bool {
		return slices.Contains(c.RecentErrorTypes, q.ErrorType)
	})
	primary := filter(base, func(q catalog.Question) bool {
		return q.Domain == c.PrimaryDomain
	})

	var wildcard []catalog.Question
	if match := wildcardMatcher(c.Modifiers); match != nil {
		wildcard = filter(a.bank, match)
	}
	return dedupe(weak, primary, base, wildcard)
}

// wildcardMatcher picks the pool of the highest-priority active modifier.
func wildcardMatcher(s modifiers.Set) func(catalog.Question) bool {
	switch {
	case s.PediatricSpike:
		return func(q catalog.Question) bool { return q.Domain == catalog.DomainMedical }
	case s.EquipmentFailure:
		return func(q catalog.Question) bool { return q.ErrorType == diagnosis.ErrMissedReassessment }
	case s.WeatherImpact:
		return func(q catalog.Question) bool { return q.Domain == catalog.DomainOps }
	}
	return nil
}

func filter(qs []catalog.Question, keep func(catalog.Question) bool) []catalog.Question {
	var out []catalog.Question
	for _, q := range qs {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// dedupe concatenates lists keeping the first occurrence of each id.
func dedupe(lists ...[]catalog.Question) []catalog.Question {
	seen := make(map[string]bool)
	var out []catalog.Question
	for _, l := range lists {
		for _, q := range l {
			if !seen[q.ID] {
				seen[q.ID] = true
				out = append(out, q)
			}
		}
	}
	return out
}
