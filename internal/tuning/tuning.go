// Package tuning holds every empirically tuned constant used by the scoring
// and simulation core. Values ship as an embedded YAML document and may be
// overridden by a file; the result is validated before use.
package tuning

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultYAML []byte

type Tuning struct {
	Readiness Readiness `yaml:"readiness"`
	Judgment  Judgment  `yaml:"judgment"`
	Stability Stability `yaml:"stability"`
	Heat      Heat      `yaml:"heat"`
	Modifiers Modifiers `yaml:"modifiers"`
	Encounter Encounter `yaml:"encounter"`
	World     World     `yaml:"world"`
	Rewards   Rewards   `yaml:"rewards"`
	Profile   Profile   `yaml:"profile"`
}

type Readiness struct {
	RecencyWindowDays  float64            `yaml:"recency_window_days" validate:"gt=0"`
	RecencyFloor       float64            `yaml:"recency_floor" validate:"gte=0,lte=1"`
	ExamMultiplier     float64            `yaml:"exam_multiplier" validate:"gt=0"`
	StudyMultiplier    float64            `yaml:"study_multiplier" validate:"gt=0"`
	DifficultyBase     float64            `yaml:"difficulty_base" validate:"gte=0"`
	DifficultyStep     float64            `yaml:"difficulty_step" validate:"gte=0"`
	DomainWeights      map[string]float64 `yaml:"domain_weights" validate:"required,dive,gte=0"`
	DomainWeightTotal  float64            `yaml:"domain_weight_total" validate:"gt=0"`
	JudgmentWeight     float64            `yaml:"judgment_weight" validate:"gte=0"`
	MasteryBlend       float64            `yaml:"mastery_blend" validate:"gte=0,lte=1"`
	PediatricTarget    float64            `yaml:"pediatric_target" validate:"gte=0,lte=1"`
	MixPenaltyScale    float64            `yaml:"mix_penalty_scale" validate:"gte=0"`
	MixPenaltyCap      float64            `yaml:"mix_penalty_cap" validate:"gte=0"`
	MixExcludedDomain  string             `yaml:"mix_excluded_domain"`
	RecentWindow       int                `yaml:"recent_window" validate:"gt=0"`
	ConsistencyScale   float64            `yaml:"consistency_scale" validate:"gte=0"`
	ErrorBurdenDivisor float64            `yaml:"error_burden_divisor" validate:"gt=0"`
	ErrorBurdenCap     float64            `yaml:"error_burden_cap" validate:"gte=0"`
	Bands              []int              `yaml:"bands" validate:"len=4,dive,gte=0,lte=100"`
}

type Judgment struct {
	Window         int      `yaml:"window" validate:"gt=0"`
	BreadthDomains int      `yaml:"breadth_domains" validate:"gt=0"`
	CorrectWeight  float64  `yaml:"correct_weight" validate:"gte=0,lte=1"`
	BreadthWeight  float64  `yaml:"breadth_weight" validate:"gte=0,lte=1"`
	PenaltyCap     float64  `yaml:"penalty_cap" validate:"gte=0,lte=1"`
	ErrorCodes     []string `yaml:"error_codes" validate:"required,dive,required"`
}

// Delta is a per-axis stability change.
type Delta struct {
	Airway      float64 `yaml:"airway"`
	Circulation float64 `yaml:"circulation"`
	Neuro       float64 `yaml:"neuro"`
}

type Stability struct {
	Start           float64          `yaml:"start" validate:"gt=0"`
	DefaultDelta    Delta            `yaml:"default_delta"`
	ErrorDeltas     map[string]Delta `yaml:"error_deltas" validate:"required"`
	StreakPenalty   float64          `yaml:"streak_penalty" validate:"gte=1"`
	StreakPenaltyAt int              `yaml:"streak_penalty_at" validate:"gt=0"`
	MomentumBonus   float64          `yaml:"momentum_bonus" validate:"gte=0"`
	MomentumAt      int              `yaml:"momentum_at" validate:"gt=0"`
}

type Heat struct {
	PriorityWeight      float64            `yaml:"priority_weight" validate:"gte=0"`
	FailureWeight       float64            `yaml:"failure_weight" validate:"gte=0"`
	DefaultAccuracy     float64            `yaml:"default_accuracy" validate:"gte=0,lte=100"`
	DefaultDomainWeight float64            `yaml:"default_domain_weight" validate:"gte=0"`
	DomainWeights       map[string]float64 `yaml:"domain_weights" validate:"dive,gte=0"`
	LowBelow            float64            `yaml:"low_below" validate:"gt=0,lte=1"`
	ModerateBelow       float64            `yaml:"moderate_below" validate:"gt=0,lte=1"`
}

type Modifiers struct {
	SingleProbability float64 `yaml:"single_probability" validate:"gte=0,lte=1"`
	ResourceReward    float64 `yaml:"resource_reward" validate:"gte=0"`
	VolumeReward      float64 `yaml:"volume_reward" validate:"gte=0"`
	FailureStress     float64 `yaml:"failure_stress" validate:"gte=0"`
	RiskPerShift      float64 `yaml:"risk_per_shift" validate:"gte=0"`
	RiskRewardScale   float64 `yaml:"risk_reward_scale" validate:"gte=0"`
	RiskLowBelow      float64 `yaml:"risk_low_below" validate:"gt=0,lte=1"`
	RiskModerateBelow float64 `yaml:"risk_moderate_below" validate:"gt=0,lte=1"`
}

type Encounter struct {
	DifficultySlack     int     `yaml:"difficulty_slack" validate:"gte=0"`
	RecentErrors        int     `yaml:"recent_errors" validate:"gte=0"`
	EventTagProbability float64 `yaml:"event_tag_probability" validate:"gte=0,lte=1"`
}

// DistrictDefault is the state every district starts in.
type DistrictDefault struct {
	StabilityLevel int `yaml:"stability_level" validate:"gte=0,lte=100"`
	SystemStress   int `yaml:"system_stress" validate:"gte=0,lte=100"`
	RecentFailures int `yaml:"recent_failures" validate:"gte=0"`
}

// Outcome is the change applied to the owning district after an encounter.
type Outcome struct {
	Stability int `yaml:"stability"`
	Stress    int `yaml:"stress"`
	Failures  int `yaml:"failures"`
}

type World struct {
	Default         DistrictDefault `yaml:"default"`
	Success         Outcome         `yaml:"success"`
	Failure         Outcome         `yaml:"failure"`
	SpilloverStress int             `yaml:"spillover_stress" validate:"gte=0"`
}

type Rewards struct {
	StreakBonus           float64 `yaml:"streak_bonus" validate:"gte=1"`
	StreakAt              int     `yaml:"streak_at" validate:"gt=0"`
	FailureXPFactor       float64 `yaml:"failure_xp_factor" validate:"gte=0,lte=1"`
	FailureDomainXPFactor float64 `yaml:"failure_domain_xp_factor" validate:"gte=0,lte=1"`
}

type Profile struct {
	ScoreFloor             float64 `yaml:"score_floor" validate:"gte=0"`
	ScoreCeiling           float64 `yaml:"score_ceiling" validate:"gtfield=ScoreFloor"`
	DefaultScore           float64 `yaml:"default_score" validate:"gte=0"`
	CorrectDelta           float64 `yaml:"correct_delta"`
	IncorrectDelta         float64 `yaml:"incorrect_delta"`
	JudgmentIncorrectDelta float64 `yaml:"judgment_incorrect_delta"`
	ErrorRing              int     `yaml:"error_ring" validate:"gt=0"`
	PriorityErrorStep      float64 `yaml:"priority_error_step" validate:"gte=0,lte=1"`
}

// Default returns the embedded tuning. It panics if the embedded document is
// invalid, which is a build defect rather than a runtime condition.
func Default() *Tuning {
	t, err := parse(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded tuning: %v", err))
	}
	return t
}

// Load reads a YAML override from path and merges it over the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning: %w", err)
	}
	base, err := parse(defaultYAML, nil)
	if err != nil {
		return nil, err
	}
	return parse(raw, base)
}

// LoadOrDefault loads path when non-empty, otherwise returns the defaults.
func LoadOrDefault(path string) (*Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func parse(raw []byte, base *Tuning) (*Tuning, error) {
	t := base
	if t == nil {
		t = &Tuning{}
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
