package model

import (
	"errors"
	"strings"
)

// ErrIncompleteProfile is returned when required profile fields are blank.
var ErrIncompleteProfile = errors.New("please fill in name, age and gender")

// Profile carries identity fields used only as coaching context.
type Profile struct {
	Name   string `json:"name,omitempty"`
	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
	Course string `json:"course,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Validate requires name, age and gender.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Age) == "" || strings.TrimSpace(p.Gender) == "" {
		return ErrIncompleteProfile
	}
	return nil
}

// Empty reports whether no field was ever filled in.
func (p Profile) Empty() bool {
	return p == Profile{}
}

// Theme is the saved UI preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ErrInvalidTheme is returned for themes other than dark or light.
var ErrInvalidTheme = errors.New("theme must be dark or light")

// Settings are the device preferences stored next to the history.
type Settings struct {
	ReminderEnabled bool  `json:"reminder_enabled"`
	Theme           Theme `json:"theme"`
}

// Validate checks the theme; an empty theme means the default.
func (s Settings) Validate() error {
	switch s.Theme {
	case "", ThemeDark, ThemeLight:
		return nil
	}
	return ErrInvalidTheme
}
