// Package modifiers provides the deterministic random source used for daily
// scenario variation and the per-node modifier flags derived from it.
package modifiers

import (
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// Source yields pseudo-random floats in [0, 1).
type Source interface {
	Next() float64
}

// LCG is a 32-bit linear congruential generator. It is reproducible for a
// given seed and makes no claim to unpredictability.
type LCG struct {
	state uint32
}

func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

func (g *LCG) Next() float64 {
	g.state = g.state*1664525 + 1013904223
	return float64(g.state) / 4294967296
}

// HashSeed folds a string into a 32-bit seed (FNV-1a).
func HashSeed(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// DayKey formats t as the UTC calendar day used to scope seeds.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NewDaySeed derives a fresh seed for dayKey mixed with random entropy.
// Callers cache the result for the rest of the day.
func NewDaySeed(dayKey string) uint32 {
	return HashSeed(dayKey + "-" + uuid.NewString())
}

// Intn maps a draw from src onto [0, n).
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
