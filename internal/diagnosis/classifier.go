package diagnosis

import "strings"

// Classifier is a rule-based wrong-answer classifier.
// Returns ok=false if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) (Code, bool)
}

// DefaultClassifiers returns classifiers in priority order. The taxonomy
// wins whenever the question carries a known error type; the option-text
// rule always produces a code and so must stay last.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&TaxonomyClassifier{},
		&OptionTextClassifier{},
	}
}

// RunClassifiers executes classifiers in order and returns the first match.
// A nil input classifies as CodeNone.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) Result {
	if input == nil {
		return Result{Code: CodeNone}
	}
	for _, c := range classifiers {
		if code, ok := c.Classify(input); ok {
			return Result{Code: code, ClassifierName: c.Name()}
		}
	}
	return Result{Code: CodePriority}
}

// Classify runs the default classifier chain.
func Classify(input *ClassifyInput) Result {
	return RunClassifiers(DefaultClassifiers(), input)
}

// TaxonomyClassifier maps known question error types to their code.
type TaxonomyClassifier struct{}

func (c *TaxonomyClassifier) Name() string { return "taxonomy" }

func (c *TaxonomyClassifier) Classify(input *ClassifyInput) (Code, bool) {
	if e := Lookup(input.ErrorType); e != nil {
		return e.Code, true
	}
	return "", false
}

// OptionTextClassifier infers a code from the wording of the selected option.
type OptionTextClassifier struct{}

func (c *OptionTextClassifier) Name() string { return "option-text" }

func (c *OptionTextClassifier) Classify(input *ClassifyInput) (Code, bool) {
	text := strings.ToLower(input.SelectedText)
	switch {
	case strings.Contains(text, "outside"), strings.Contains(text, "scope"):
		return CodeScope, true
	case strings.Contains(text, "delay"):
		return CodeDelayed, true
	case strings.Contains(text, "lower-priority"):
		return CodeAssessmentOrder, true
	default:
		return CodePriority, true
	}
}
