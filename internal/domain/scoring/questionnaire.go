package scoring

import (
	"sort"

	"github.com/okian/mindscan/internal/domain/model"
)

// Question is one ordinal item with an inclusive answer domain.
type Question struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// Questionnaire is the ordered item list a strategy scores.
type Questionnaire struct {
	Questions []Question `json:"questions"`
}

// Validate requires every question to be answered within its domain and
// rejects IDs the questionnaire does not know.
func (q Questionnaire) Validate(answers model.Answers) error {
	verr := &ValidationError{}
	known := make(map[string]struct{}, len(q.Questions))
	for _, item := range q.Questions {
		known[item.ID] = struct{}{}
		v, ok := answers[item.ID]
		switch {
		case !ok:
			verr.Missing = append(verr.Missing, item.ID)
		case v < item.Min || v > item.Max:
			verr.OutOfRange = append(verr.OutOfRange, item.ID)
		}
	}
	for id := range answers {
		if _, ok := known[id]; !ok {
			verr.Unknown = append(verr.Unknown, id)
		}
	}
	if len(verr.Missing)+len(verr.OutOfRange)+len(verr.Unknown) == 0 {
		return nil
	}
	sort.Strings(verr.Unknown)
	return verr
}

// IDs returns the question IDs in order.
func (q Questionnaire) IDs() []string {
	ids := make([]string, len(q.Questions))
	for i, item := range q.Questions {
		ids[i] = item.ID
	}
	return ids
}
