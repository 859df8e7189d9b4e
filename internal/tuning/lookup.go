package tuning

import (
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
)

// DomainWeight returns the composite weight of a domain (0 when unlisted).
func (r Readiness) DomainWeight(d catalog.DomainID) float64 {
	return r.DomainWeights[string(d)]
}

// IsJudgmentError reports whether a recorded code counts against
// clinical judgment.
func (j Judgment) IsJudgmentError(code diagnosis.Code) bool {
	for _, c := range j.ErrorCodes {
		if diagnosis.Code(c) == code {
			return true
		}
	}
	return false
}

// DeltaFor returns the stability delta for an error type, falling back to
// the default delta for unknown or empty types.
func (s Stability) DeltaFor(t diagnosis.ErrorType) Delta {
	if d, ok := s.ErrorDeltas[string(t)]; ok {
		return d
	}
	return s.DefaultDelta
}

// DomainWeight returns the heat weight of a domain.
func (h Heat) DomainWeight(d catalog.DomainID) float64 {
	if w, ok := h.DomainWeights[string(d)]; ok {
		return w
	}
	return h.DefaultDomainWeight
}
