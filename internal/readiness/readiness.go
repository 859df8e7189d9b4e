// Package readiness converts answer history into per-domain and composite
// readiness scores.
package readiness

import (
	"math"
	"time"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Label is a readiness band.
type Label string

const (
	LabelBelowPassing Label = "Below Passing"
	LabelBorderline   Label = "Borderline"
	LabelPassing      Label = "Passing"
	LabelStrong       Label = "Strong"
	LabelExamReady    Label = "Exam-Ready"
)

var labels = []Label{LabelBelowPassing, LabelBorderline, LabelPassing, LabelStrong, LabelExamReady}

// LabelForScore bands score at the ascending breakpoints.
func LabelForScore(score int, bands []int) Label {
	for i, b := range bands {
		if score < b && i < len(labels) {
			return labels[i]
		}
	}
	return labels[len(labels)-1]
}

// DomainReadiness is the derived readiness of one domain.
type DomainReadiness struct {
	Score    int    `json:"score"`
	Label    Label  `json:"label"`
	Attempts int    `json:"attempts"`
	TopError string `json:"topError"`
}

// entryWeight is recency × mode × difficulty for one history entry.
func entryWeight(h profile.HistoryEntry, now time.Time, cfg tuning.Readiness) float64 {
	ageDays := math.Max(0, now.Sub(h.Timestamp).Hours()/24)
	recency := math.Max(cfg.RecencyFloor, 1-ageDays/cfg.RecencyWindowDays)
	mode := cfg.StudyMultiplier
	if h.Mode == profile.ModeExam {
		mode = cfg.ExamMultiplier
	}
	difficulty := cfg.DifficultyBase + cfg.DifficultyStep*float64(h.Difficulty)
	return recency * mode * difficulty
}

// weightedRatio returns Σ(correct×w)/Σw, or 0 when the total weight is 0.
func weightedRatio(history []profile.HistoryEntry, now time.Time, cfg tuning.Readiness) float64 {
	var correct, total float64
	for _, h := range history {
		w := entryWeight(h, now, cfg)
		total += w
		if h.Correct {
			correct += w
		}
	}
	if total == 0 {
		return 0
	}
	return correct / total
}

// Domains scores every known domain from history. Domains with no
// attempts score 0.
func Domains(history []profile.HistoryEntry, now time.Time, cfg tuning.Readiness) map[catalog.DomainID]DomainReadiness {
	byDomain := make(map[catalog.DomainID][]profile.HistoryEntry)
	for _, h := range history {
		byDomain[h.Domain] = append(byDomain[h.Domain], h)
	}

	out := make(map[catalog.DomainID]DomainReadiness, len(catalog.AllDomains()))
	for _, d := range catalog.AllDomains() {
		entries := byDomain[d.ID]
		score := int(math.Round(100 * weightedRatio(entries, now, cfg)))
		out[d.ID] = DomainReadiness{
			Score:    score,
			Label:    LabelForScore(score, cfg.Bands),
			Attempts: len(entries),
			TopError: topError(entries),
		}
	}
	return out
}

// topError is the most frequent error among misses, earliest first on ties.
func topError(entries []profile.HistoryEntry) string {
	counts := map[string]int{}
	var order []string
	for _, h := range entries {
		if h.Correct {
			continue
		}
		key := string(h.ErrorType)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	best, bestN := "none", 0
	for _, k := range order {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
