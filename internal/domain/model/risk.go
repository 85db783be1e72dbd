// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRisk is returned when a risk label cannot be parsed.
var ErrUnknownRisk = errors.New("unknown risk label")

// RiskLevel is the ordered 3-level classification of a wellness score.
// Higher values are more favorable, so comparisons follow score order.
type RiskLevel int

const (
	RiskHigh RiskLevel = iota
	RiskModerate
	RiskLow
)

// String returns the traffic-light color used on the wire and in storage.
func (r RiskLevel) String() string {
	switch r {
	case RiskHigh:
		return "red"
	case RiskModerate:
		return "yellow"
	case RiskLow:
		return "green"
	default:
		return fmt.Sprintf("risk(%d)", int(r))
	}
}

// Title returns the human readable label shown next to a score.
func (r RiskLevel) Title() string {
	switch r {
	case RiskHigh:
		return "Red – high stress risk"
	case RiskModerate:
		return "Yellow – mild to moderate stress"
	default:
		return "Green – doing okay"
	}
}

// ParseRisk accepts the color name or the legacy title prefix ("Green – ...").
func ParseRisk(s string) (RiskLevel, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "red"):
		return RiskHigh, nil
	case strings.HasPrefix(v, "yellow"):
		return RiskModerate, nil
	case strings.HasPrefix(v, "green"):
		return RiskLow, nil
	}
	return RiskHigh, fmt.Errorf("%w: %q", ErrUnknownRisk, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) {
	if r < RiskHigh || r > RiskLow {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRisk, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskLevel) UnmarshalText(b []byte) error {
	v, err := ParseRisk(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Band classifies the symptom index, independently of RiskLevel.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)
