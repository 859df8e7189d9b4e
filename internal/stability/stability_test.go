package stability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

func TestVector_Failed(t *testing.T) {
	tests := []struct {
		v    Vector
		want bool
	}{
		{Vector{0, 80, 80}, true},
		{Vector{80, 0, 80}, true},
		{Vector{80, 80, -3}, true},
		{Vector{1, 1, 1}, false},
		{Full(100), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Failed(), "%+v", tt.v)
	}
}

func TestApplyError_KnownDeltas(t *testing.T) {
	cfg := tuning.Default().Stability
	full := Full(100)

	tests := []struct {
		et   diagnosis.ErrorType
		want Vector
	}{
		{diagnosis.ErrIgnoredAirway, Vector{75, 100, 95}},
		{diagnosis.ErrDelayedCare, Vector{90, 90, 100}},
		{diagnosis.ErrWrongPriority, Vector{85, 90, 90}},
		{diagnosis.ErrOutOfScope, Vector{100, 85, 95}},
		{diagnosis.ErrMissedReassessment, Vector{95, 90, 85}},
	}
	for _, tt := range tests {
		t.Run(string(tt.et), func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyError(full, tt.et, 1, cfg))
		})
	}
}

func TestApplyError_UnknownTypeUsesDefault(t *testing.T) {
	cfg := tuning.Default().Stability
	assert.Equal(t, Vector{90, 90, 90}, ApplyError(Full(100), "Bad charting", 1, cfg))
	assert.Equal(t, Vector{90, 90, 90}, ApplyError(Full(100), "", 1, cfg))
}

func TestApplyError_ToleranceRoundsPerAxis(t *testing.T) {
	cfg := tuning.Default().Stability
	// 100 - 25*0.9 = 77.5 → 78; 100 - 5*0.9 = 95.5 → 96.
	assert.Equal(t, Vector{78, 100, 96}, ApplyError(Full(100), diagnosis.ErrIgnoredAirway, 0.9, cfg))
}

func TestApplyError_ClampsAtZero(t *testing.T) {
	cfg := tuning.Default().Stability
	v := ApplyError(Vector{10, 50, 50}, diagnosis.ErrIgnoredAirway, 1, cfg)
	assert.Equal(t, 0, v.Airway)
	assert.True(t, v.Failed())
}

func TestMachine_StreakPenalty(t *testing.T) {
	cfg := tuning.Default().Stability
	m := NewMachine(cfg, 1, true)

	m.Incorrect(diagnosis.ErrWrongPriority)
	assert.Equal(t, Vector{85, 90, 90}, m.Vector)

	// Second consecutive miss is scaled by 1.15: -17.25, -11.5, -11.5.
	m.Incorrect(diagnosis.ErrWrongPriority)
	assert.Equal(t, Vector{68, 79, 79}, m.Vector)
	assert.Equal(t, 2, m.Momentum.IncorrectStreak)
	assert.Equal(t, 0, m.Momentum.CorrectStreak)
}

func TestMachine_MomentumBonus(t *testing.T) {
	cfg := tuning.Default().Stability
	m := NewMachine(cfg, 1, true)

	m.Incorrect(diagnosis.ErrDelayedCare)
	m.Correct()
	assert.Equal(t, Vector{90, 90, 100}, m.Vector, "single correct gives no bonus")

	m.Correct()
	assert.Equal(t, Vector{94, 94, 100}, m.Vector, "bonus capped at start")
	assert.Equal(t, 2, m.Momentum.CorrectStreak)
	assert.Equal(t, 0, m.Momentum.IncorrectStreak)
}

func TestMachine_FailureIsImmediate(t *testing.T) {
	cfg := tuning.Default().Stability
	m := NewMachine(cfg, 1, true)
	for i := 0; i < 4; i++ {
		m.Incorrect(diagnosis.ErrIgnoredAirway)
	}
	assert.True(t, m.Failed())
}

func TestMachine_AdvanceResetsOnlyWithoutCarry(t *testing.T) {
	cfg := tuning.Default().Stability

	standard := NewMachine(cfg, 1, false)
	standard.Incorrect(diagnosis.ErrOutOfScope)
	standard.Advance()
	assert.Equal(t, Full(100), standard.Vector)

	boss := NewMachine(cfg, 1, true)
	boss.Incorrect(diagnosis.ErrOutOfScope)
	boss.Advance()
	assert.Equal(t, Vector{100, 85, 95}, boss.Vector)
}

func TestNewMachine_NonPositiveToleranceDefaults(t *testing.T) {
	m := NewMachine(tuning.Default().Stability, 0, false)
	m.Incorrect(diagnosis.ErrOutOfScope)
	assert.Equal(t, Vector{100, 85, 95}, m.Vector)
}
