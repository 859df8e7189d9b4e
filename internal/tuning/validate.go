package tuning

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
)

var validate = validator.New()

// Validate runs field-level tag checks and then the cross-field invariants
// the scoring model depends on. All problems are reported together.
func (t *Tuning) Validate() error {
	var errs []string

	if err := validate.Struct(t); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				errs = append(errs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	r := t.Readiness
	var sum float64
	for key, w := range r.DomainWeights {
		if !catalog.IsDomain(catalog.DomainID(key)) {
			errs = append(errs, fmt.Sprintf("readiness.domain_weights: unknown domain %q", key))
		}
		sum += w
	}
	if math.Abs(sum-r.DomainWeightTotal) > 1e-9 {
		errs = append(errs, fmt.Sprintf("readiness.domain_weights sum to %g, want %g", sum, r.DomainWeightTotal))
	}
	if math.Abs(r.DomainWeightTotal+r.JudgmentWeight-100) > 1e-9 {
		errs = append(errs, fmt.Sprintf("readiness: domain_weight_total + judgment_weight = %g, want 100", r.DomainWeightTotal+r.JudgmentWeight))
	}
	if r.MixExcludedDomain != "" && !catalog.IsDomain(catalog.DomainID(r.MixExcludedDomain)) {
		errs = append(errs, fmt.Sprintf("readiness.mix_excluded_domain: unknown domain %q", r.MixExcludedDomain))
	}
	for i := 1; i < len(r.Bands); i++ {
		if r.Bands[i] <= r.Bands[i-1] {
			errs = append(errs, fmt.Sprintf("readiness.bands must be strictly ascending, got %v", r.Bands))
			break
		}
	}

	for _, code := range t.Judgment.ErrorCodes {
		if !diagnosis.IsCode(diagnosis.Code(code)) {
			errs = append(errs, fmt.Sprintf("judgment.error_codes: unknown code %q", code))
		}
	}

	for key := range t.Stability.ErrorDeltas {
		if diagnosis.Lookup(diagnosis.ErrorType(key)) == nil {
			errs = append(errs, fmt.Sprintf("stability.error_deltas: unknown error type %q", key))
		}
	}
	for _, et := range diagnosis.KnownErrorTypes() {
		if _, ok := t.Stability.ErrorDeltas[string(et)]; !ok {
			errs = append(errs, fmt.Sprintf("stability.error_deltas: missing error type %q", et))
		}
	}

	for key := range t.Heat.DomainWeights {
		if !catalog.IsDomain(catalog.DomainID(key)) {
			errs = append(errs, fmt.Sprintf("heat.domain_weights: unknown domain %q", key))
		}
	}
	if t.Heat.LowBelow >= t.Heat.ModerateBelow {
		errs = append(errs, "heat: low_below must be less than moderate_below")
	}
	if t.Modifiers.RiskLowBelow >= t.Modifiers.RiskModerateBelow {
		errs = append(errs, "modifiers: risk_low_below must be less than risk_moderate_below")
	}

	p := t.Profile
	if p.DefaultScore < p.ScoreFloor || p.DefaultScore > p.ScoreCeiling {
		errs = append(errs, fmt.Sprintf("profile.default_score %g outside [%g, %g]", p.DefaultScore, p.ScoreFloor, p.ScoreCeiling))
	}

	if len(errs) > 0 {
		return fmt.Errorf("tuning validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
