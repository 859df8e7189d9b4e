package diagnosis

// ErrorType is the clinical error vocabulary attached to questions.
type ErrorType string

const (
	ErrIgnoredAirway      ErrorType = "Ignored airway"
	ErrDelayedCare        ErrorType = "Delayed care"
	ErrWrongPriority      ErrorType = "Wrong priority"
	ErrOutOfScope         ErrorType = "Out of scope"
	ErrMissedReassessment ErrorType = "Missed reassessment"
)

// Code is the judgment-level classification recorded in answer history.
type Code string

const (
	CodeNone            Code = "none"
	CodePriority        Code = "priority_error"
	CodeAssessmentOrder Code = "assessment_order_error"
	CodeDelayed         Code = "delayed_intervention"
	CodeScope           Code = "scope_error"
)

// IsCode reports whether c is one of the codes above.
func IsCode(c Code) bool {
	switch c {
	case CodeNone, CodePriority, CodeAssessmentOrder, CodeDelayed, CodeScope:
		return true
	}
	return false
}

// ClassifyInput holds the context for classifying a wrong answer.
type ClassifyInput struct {
	ErrorType    ErrorType
	SelectedText string
}

// Result is the outcome of classifying a wrong answer.
type Result struct {
	Code           Code
	ClassifierName string
}
