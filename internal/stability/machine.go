package stability

import (
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Momentum counts consecutive correct and incorrect answers.
type Momentum struct {
	CorrectStreak   int `json:"correctStreak"`
	IncorrectStreak int `json:"incorrectStreak"`
}

// Machine owns the stability vector and momentum of one encounter.
type Machine struct {
	cfg       tuning.Stability
	tolerance float64
	carry     bool

	Vector   Vector
	Momentum Momentum
}

// NewMachine starts a full vector. tolerance is the archetype trait; carry
// keeps the vector across questions (boss encounters).
func NewMachine(cfg tuning.Stability, tolerance float64, carry bool) *Machine {
	if tolerance <= 0 {
		tolerance = 1
	}
	return &Machine{
		cfg:       cfg,
		tolerance: tolerance,
		carry:     carry,
		Vector:    Full(int(cfg.Start)),
	}
}

// Correct records a correct answer and applies the momentum bonus once the
// correct streak reaches its threshold.
func (m *Machine) Correct() {
	m.Momentum.CorrectStreak++
	m.Momentum.IncorrectStreak = 0
	if m.Momentum.CorrectStreak >= m.cfg.MomentumAt {
		m.Vector = ApplyBonus(m.Vector, int(m.cfg.MomentumBonus), m.cfg)
	}
}

// Incorrect records a miss and applies the error delta. Repeated misses
// scale the delta by the streak penalty.
func (m *Machine) Incorrect(errorType diagnosis.ErrorType) {
	m.Momentum.IncorrectStreak++
	m.Momentum.CorrectStreak = 0
	tol := m.tolerance
	if m.Momentum.IncorrectStreak >= m.cfg.StreakPenaltyAt {
		tol *= m.cfg.StreakPenalty
	}
	m.Vector = ApplyError(m.Vector, errorType, tol, m.cfg)
}

func (m *Machine) Failed() bool {
	return m.Vector.Failed()
}

// Advance is called between questions after a non-terminal step. Non-carry
// machines restore the full vector.
func (m *Machine) Advance() {
	if !m.carry {
		m.Vector = Full(int(m.cfg.Start))
	}
}
