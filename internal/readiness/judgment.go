package readiness

import (
	"math"
	"time"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// ClinicalJudgment scores the most recent window of answers across domains.
// Breadth is rewarded and recorded judgment errors are penalised.
func ClinicalJudgment(history []profile.HistoryEntry, now time.Time, rcfg tuning.Readiness, jcfg tuning.Judgment) int {
	if len(history) == 0 {
		return 0
	}
	recent := history[max(0, len(history)-jcfg.Window):]

	seen := make(map[catalog.DomainID]bool)
	errs := 0
	for _, h := range recent {
		seen[h.Domain] = true
		if jcfg.IsJudgmentError(h.ErrorType) {
			errs++
		}
	}
	breadth := math.Min(1, float64(len(seen))/float64(jcfg.BreadthDomains))
	penalty := math.Min(jcfg.PenaltyCap, float64(errs)/float64(max(1, len(recent))))
	ratio := weightedRatio(recent, now, rcfg)

	score := 100 * (ratio*jcfg.CorrectWeight + breadth*jcfg.BreadthWeight - penalty)
	return int(clamp(math.Round(score), 0, 100))
}
