// Package scoring defines the contract for turning questionnaire answers
// into a bounded wellness score and risk label.
package scoring

import (
	"fmt"
	"sort"

	"github.com/okian/mindscan/internal/domain/model"
)

// Default is the canonical strategy name.
const Default = DASSLifestyleV2

// Strategy computes a ScoreResult from validated answers. Implementations
// are pure and safe for concurrent use.
type Strategy interface {
	// Name is the versioned identifier stored on history entries.
	Name() string
	// Questionnaire lists the items this strategy scores.
	Questionnaire() Questionnaire
	// Scale exposes the score bounds and thresholds.
	Scale() model.Scale
	// Compute validates answers and scores them.
	Compute(answers model.Answers) (model.ScoreResult, error)
}

var registry = map[string]Strategy{}

// Register adds s to the registry. It panics on duplicate names, which can
// only happen at init time.
func Register(s Strategy) {
	if _, dup := registry[s.Name()]; dup {
		panic("scoring: duplicate strategy " + s.Name())
	}
	registry[s.Name()] = s
}

// Lookup returns the named strategy; an empty name selects Default.
func Lookup(name string) (Strategy, error) {
	if name == "" {
		name = Default
	}
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Names lists registered strategies, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ScaleFor returns the scale of the named strategy, falling back to the
// default strategy for names that are no longer registered.
func ScaleFor(name string) model.Scale {
	if s, err := Lookup(name); err == nil {
		return s.Scale()
	}
	s, _ := Lookup(Default)
	return s.Scale()
}

func init() { //nolint:gochecknoinits // built-in strategies
	Register(NewDASS(DASSLifestyleV2Config()))
	Register(NewLifestyleSum(LifestyleSumV1Config()))
}
