// Package stability tracks the three-axis patient stability meter during an
// encounter and decides when the encounter has failed.
package stability

import (
	"math"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Vector is the transient health meter of one encounter.
type Vector struct {
	Airway      int `json:"airway"`
	Circulation int `json:"circulation"`
	Neuro       int `json:"neuro"`
}

func Full(start int) Vector {
	return Vector{Airway: start, Circulation: start, Neuro: start}
}

// Failed reports whether any axis has reached zero.
func (v Vector) Failed() bool {
	return v.Airway <= 0 || v.Circulation <= 0 || v.Neuro <= 0
}

func (v Vector) clamp(max int) Vector {
	return Vector{
		Airway:      clampInt(v.Airway, 0, max),
		Circulation: clampInt(v.Circulation, 0, max),
		Neuro:       clampInt(v.Neuro, 0, max),
	}
}

// ApplyError applies the delta for errorType scaled by tolerance. Unknown
// error types use the default delta. Each axis is rounded after scaling.
func ApplyError(v Vector, errorType diagnosis.ErrorType, tolerance float64, cfg tuning.Stability) Vector {
	d := cfg.DeltaFor(errorType)
	return Vector{
		Airway:      shift(v.Airway, d.Airway, tolerance),
		Circulation: shift(v.Circulation, d.Circulation, tolerance),
		Neuro:       shift(v.Neuro, d.Neuro, tolerance),
	}.clamp(int(cfg.Start))
}

// ApplyBonus adds n to every axis, capped at the start value.
func ApplyBonus(v Vector, n int, cfg tuning.Stability) Vector {
	return Vector{
		Airway:      v.Airway + n,
		Circulation: v.Circulation + n,
		Neuro:       v.Neuro + n,
	}.clamp(int(cfg.Start))
}

func shift(axis int, delta, tolerance float64) int {
	return int(math.Round(float64(axis) + delta*tolerance))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
