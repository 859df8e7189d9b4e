package encounter

import (
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/stability"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// Result is the outcome of one answer.
type Result struct {
	QuestionID       string
	Selected         int
	Correct          bool
	Rationale        string
	ErrorType        diagnosis.ErrorType
	Code             diagnosis.Code
	Domain           catalog.DomainID
	Difficulty       int
	ClinicalJudgment bool
	Pediatric        bool
	Stability        stability.Vector
	Done             bool
	Failed           bool
}

// Encounter is one play-through of a node. It is discarded once done.
type Encounter struct {
	Node    catalog.NodeDefinition
	Items   []Item
	Index   int
	Answers []Result

	machine *stability.Machine
	done    bool
}

// Start begins an encounter. Boss nodes carry the stability vector across
// questions; other nodes restore it after every surviving answer.
func Start(node catalog.NodeDefinition, a Assembly, tolerance float64, cfg tuning.Stability) *Encounter {
	return &Encounter{
		Node:    node,
		Items:   a.Items,
		machine: stability.NewMachine(cfg, tolerance, node.IsBoss()),
		done:    len(a.Items) == 0,
	}
}

// Current returns the question awaiting an answer.
func (e *Encounter) Current() (Item, bool) {
	if e.done || e.Index >= len(e.Items) {
		return Item{}, false
	}
	return e.Items[e.Index], true
}

// Answer scores the selected option for the current question and advances.
func (e *Encounter) Answer(selected int) (Result, error) {
	item, ok := e.Current()
	if !ok {
		return Result{}, ErrFinished
	}
	q := item.Question
	if selected < 0 || selected >= len(q.Options) {
		return Result{}, &OptionRangeError{QuestionID: q.ID, Index: selected, Options: len(q.Options)}
	}

	r := Result{
		QuestionID:       q.ID,
		Selected:         selected,
		Correct:          selected == q.CorrectIndex,
		Rationale:        q.Rationale,
		Domain:           q.Domain,
		Difficulty:       q.Difficulty,
		ClinicalJudgment: q.ClinicalJudgment,
		Pediatric:        item.Pediatric,
		Code:             diagnosis.CodeNone,
	}
	if r.Correct {
		e.machine.Correct()
	} else {
		r.ErrorType = q.ErrorType
		r.Code = diagnosis.Classify(&diagnosis.ClassifyInput{
			ErrorType:    q.ErrorType,
			SelectedText: q.Options[selected],
		}).Code
		e.machine.Incorrect(q.ErrorType)
	}

	switch {
	case e.machine.Failed():
		e.done = true
		r.Failed = true
	case e.Index+1 >= len(e.Items):
		e.Index++
		e.done = true
	default:
		e.Index++
	}
	r.Stability = e.machine.Vector
	r.Done = e.done
	if !e.done {
		e.machine.Advance()
	}
	e.Answers = append(e.Answers, r)
	return r, nil
}

func (e *Encounter) Done() bool { return e.done }

// Failed reports whether the encounter ended on a stability failure.
func (e *Encounter) Failed() bool {
	return e.done && e.machine.Failed()
}

// Succeeded reports whether every question was answered without failure.
func (e *Encounter) Succeeded() bool {
	return e.done && !e.machine.Failed() && len(e.Items) > 0
}

func (e *Encounter) Stability() stability.Vector { return e.machine.Vector }

func (e *Encounter) Momentum() stability.Momentum { return e.machine.Momentum }
