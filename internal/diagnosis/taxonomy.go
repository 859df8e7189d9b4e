package diagnosis

// Entry describes one known clinical error type.
type Entry struct {
	Type        ErrorType
	Code        Code
	Label       string
	Description string
}

// registry is the package-level taxonomy, keyed by error type.
var registry map[ErrorType]*Entry

func init() {
	registry = make(map[ErrorType]*Entry, len(seedTaxonomy))
	for i := range seedTaxonomy {
		e := &seedTaxonomy[i]
		registry[e.Type] = e
	}
}

var seedTaxonomy = []Entry{
	{
		Type:        ErrIgnoredAirway,
		Code:        CodePriority,
		Label:       "Airway ignored",
		Description: "Treated the complaint before securing oxygenation and ventilation",
	},
	{
		Type:        ErrDelayedCare,
		Code:        CodeDelayed,
		Label:       "Delayed care",
		Description: "Correct intervention chosen too late for the patient's trajectory",
	},
	{
		Type:        ErrWrongPriority,
		Code:        CodePriority,
		Label:       "Wrong priority",
		Description: "Addressed a lower-priority finding ahead of a life threat",
	},
	{
		Type:        ErrOutOfScope,
		Code:        CodeScope,
		Label:       "Out of scope",
		Description: "Selected an intervention outside paramedic scope of practice",
	},
	{
		Type:        ErrMissedReassessment,
		Code:        CodeAssessmentOrder,
		Label:       "Missed reassessment",
		Description: "Skipped the reassessment that would reveal deterioration",
	},
}

// Lookup returns the taxonomy entry for an error type, or nil if unknown.
func Lookup(t ErrorType) *Entry {
	return registry[t]
}

// KnownErrorTypes returns every error type in the taxonomy in seed order.
func KnownErrorTypes() []ErrorType {
	out := make([]ErrorType, 0, len(seedTaxonomy))
	for _, e := range seedTaxonomy {
		out = append(out, e.Type)
	}
	return out
}

// LabelFor returns a human-readable label for a recorded code.
func LabelFor(c Code) string {
	switch c {
	case CodePriority:
		return "Priority error"
	case CodeAssessmentOrder:
		return "Assessment order error"
	case CodeDelayed:
		return "Delayed intervention"
	case CodeScope:
		return "Scope error"
	case CodeNone, "":
		return "None"
	default:
		return string(c)
	}
}
