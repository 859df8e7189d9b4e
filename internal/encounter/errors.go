package encounter

import (
	"errors"
	"fmt"
)

// ErrFinished is returned when answering an encounter that already ended.
var ErrFinished = errors.New("encounter already finished")

// OptionRangeError indicates a selected option index the question does not
// have.
type OptionRangeError struct {
	QuestionID string
	Index      int
	Options    int
}

func (e *OptionRangeError) Error() string {
	return fmt.Sprintf("option %d out of range for question %s (%d options)", e.Index, e.QuestionID, e.Options)
}
