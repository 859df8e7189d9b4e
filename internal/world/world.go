// Package world keeps the per-district stability and stress values that
// encounter outcomes push around.
package world

import (
	"encoding/json"
	"fmt"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Version is the record version written by this build.
const Version = "v1.0.0"

// DistrictState is the mutable condition of one district.
type DistrictState struct {
	StabilityLevel int `json:"stabilityLevel"`
	SystemStress   int `json:"systemStress"`
	RecentFailures int `json:"recentFailures"`
}

// Ledger maps district name to state.
type Ledger map[string]DistrictState

// Default builds a ledger with every district at the default state.
func Default(districts []string, cfg tuning.World) Ledger {
	l := make(Ledger, len(districts))
	for _, name := range districts {
		l[name] = defaultState(cfg)
	}
	return l
}

func defaultState(cfg tuning.World) DistrictState {
	return DistrictState{
		StabilityLevel: cfg.Default.StabilityLevel,
		SystemStress:   cfg.Default.SystemStress,
		RecentFailures: cfg.Default.RecentFailures,
	}
}

// Get returns the state of a district, or the default state when the
// ledger has no entry for it.
func (l Ledger) Get(name string, cfg tuning.World) DistrictState {
	if s, ok := l[name]; ok {
		return s
	}
	return defaultState(cfg)
}

// Clone returns a copy of l.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Apply returns the ledger after an encounter in district ends. A failure
// also adds spillover stress to every other district. l is not modified.
func (l Ledger) Apply(district string, success bool, cfg tuning.World) Ledger {
	next := l.Clone()
	s := next.Get(district, cfg)

	outcome := cfg.Success
	if !success {
		outcome = cfg.Failure
	}
	s.StabilityLevel = clamp(s.StabilityLevel+outcome.Stability, 0, 100)
	s.SystemStress = clamp(s.SystemStress+outcome.Stress, 0, 100)
	s.RecentFailures = max(0, s.RecentFailures+outcome.Failures)
	next[district] = s

	if !success {
		for name, other := range next {
			if name == district {
				continue
			}
			other.SystemStress = clamp(other.SystemStress+cfg.SpilloverStress, 0, 100)
			next[name] = other
		}
	}
	return next
}

// Decode reads a serialized ledger and merges it over the defaults for
// districts. Values are clamped to their ranges.
func Decode(data []byte, districts []string, cfg tuning.World) (Ledger, error) {
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode districts: %w", err)
	}
	l := Default(districts, cfg)
	for name, raw := range stored {
		s := l.Get(name, cfg)
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode district %q: %w", name, err)
		}
		s.StabilityLevel = clamp(s.StabilityLevel, 0, 100)
		s.SystemStress = clamp(s.SystemStress, 0, 100)
		s.RecentFailures = max(0, s.RecentFailures)
		l[name] = s
	}
	return l, nil
}

func Encode(l Ledger) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode districts: %w", err)
	}
	return data, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
