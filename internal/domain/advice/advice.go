// Package advice holds the data-driven suggestion table: action plans keyed
// by symptom band and dominant axis, result messages, avatars and tips.
package advice

import (
	_ "embed"
	"fmt"
	"math/rand"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okian/mindscan/internal/domain/model"
)

// AnyBand matches every band in a plan rule.
const AnyBand = "any"

//go:embed advice.yaml
var seed []byte

type planRule struct {
	Axis  model.Axis `yaml:"axis"`
	Band  string     `yaml:"band"`
	Steps []string   `yaml:"steps"`
}

type document struct {
	Plans    []planRule        `yaml:"plans"`
	Balanced []string          `yaml:"balanced"`
	Messages map[string]string `yaml:"messages"`
	Avatars  map[string]string `yaml:"avatars"`
	Tips     []string          `yaml:"tips"`
}

// Table answers advice lookups. It is read-only after Parse.
type Table struct {
	plans    []planRule
	balanced []string
	messages map[model.RiskLevel]string
	avatars  map[model.RiskLevel]string
	tips     []string
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table parsed from the embedded seed data.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(seed)
		if err != nil {
			panic(fmt.Sprintf("advice: embedded seed: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Parse decodes and validates a YAML suggestion table.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if len(doc.Balanced) == 0 {
		return nil, fmt.Errorf("%w: balanced plan is empty", ErrInvalidTable)
	}
	if len(doc.Tips) == 0 {
		return nil, fmt.Errorf("%w: tips are empty", ErrInvalidTable)
	}

	t := &Table{
		balanced: doc.Balanced,
		messages: make(map[model.RiskLevel]string, len(doc.Messages)),
		avatars:  make(map[model.RiskLevel]string, len(doc.Avatars)),
		tips:     doc.Tips,
	}
	for i, p := range doc.Plans {
		if len(p.Steps) == 0 {
			return nil, fmt.Errorf("%w: plan %d has no steps", ErrInvalidTable, i)
		}
		switch model.Band(p.Band) {
		case model.BandLow, model.BandMedium, model.BandHigh, AnyBand:
		default:
			return nil, fmt.Errorf("%w: plan %d: unknown band %q", ErrInvalidTable, i, p.Band)
		}
		t.plans = append(t.plans, p)
	}
	if err := fill(t.messages, doc.Messages, "message"); err != nil {
		return nil, err
	}
	if err := fill(t.avatars, doc.Avatars, "avatar"); err != nil {
		return nil, err
	}
	return t, nil
}

func fill(dst map[model.RiskLevel]string, src map[string]string, what string) error {
	for k, v := range src {
		r, err := model.ParseRisk(k)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTable, what, err)
		}
		dst[r] = v
	}
	for _, r := range []model.RiskLevel{model.RiskHigh, model.RiskModerate, model.RiskLow} {
		if dst[r] == "" {
			return fmt.Errorf("%w: missing %s for %s", ErrInvalidTable, what, r)
		}
	}
	return nil
}

// Plan returns the action steps for a band and dominant axis. An exact band
// match wins over an "any" rule; with no axis or no matching rule the
// balanced plan is returned. The returned slice is a copy.
func (t *Table) Plan(band model.Band, axis model.Axis) []string {
	var fallback []string
	if axis != "" {
		for _, p := range t.plans {
			if p.Axis != axis {
				continue
			}
			if model.Band(p.Band) == band {
				return clone(p.Steps)
			}
			if p.Band == AnyBand && fallback == nil {
				fallback = p.Steps
			}
		}
	}
	if fallback == nil {
		fallback = t.balanced
	}
	return clone(fallback)
}

// Message returns the result message for a risk label.
func (t *Table) Message(r model.RiskLevel) string { return t.messages[r] }

// Avatar returns the emoji shown for a risk label.
func (t *Table) Avatar(r model.RiskLevel) string { return t.avatars[r] }

// Tips returns a copy of the tips pool.
func (t *Table) Tips() []string { return clone(t.tips) }

// Tip picks one tip. A nil rng uses the global source.
func (t *Table) Tip(rng *rand.Rand) string {
	if rng == nil {
		return t.tips[rand.Intn(len(t.tips))]
	}
	return t.tips[rng.Intn(len(t.tips))]
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
