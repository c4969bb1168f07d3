package riff

import (
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/Conceptual-Machines/fretlab-api/internal/util"
)

// ErrUnknownStyle is returned for a style name outside melodic, arpeggiated and bass-driven
var ErrUnknownStyle = errors.New("unknown riff style")

// Pattern is a list of beat offsets within a measure
type Pattern []float64

// StyleProfile is the rhythm library and fretboard region used by a style
type StyleProfile struct {
	Patterns         []Pattern             `json:"patterns"`
	PreferredStrings []theory.GuitarString `json:"preferredStrings"`
	FretRange        FretRange             `json:"fretRange"`
}

var profiles = map[models.Style]StyleProfile{
	models.StyleMelodic: {
		Patterns: []Pattern{
			{0, 1, 2, 3},           // quarters
			{0, 0.5, 1, 2, 2.5, 3}, // eighths and quarters
			{0, 1, 1.5, 2, 3, 3.5}, // syncopated
			{0, 0.5, 1, 1.5, 2, 3}, // running start
		},
		PreferredStrings: []theory.GuitarString{1, 2, 3},
		FretRange:        FretRange{Min: 0, Max: 12},
	},
	models.StyleArpeggiated: {
		Patterns: []Pattern{
			{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, // straight eighths
			{0, 1, 2, 3, 2, 1},               // up and down
			{0, 0.5, 1, 2, 2.5, 3},
		},
		PreferredStrings: []theory.GuitarString{1, 2, 3, 4},
		FretRange:        FretRange{Min: 0, Max: 7},
	},
	models.StyleBassDriven: {
		Patterns: []Pattern{
			{0, 2},           // half notes
			{0, 1, 2, 3},     // walking
			{0, 0.5, 2, 2.5}, // pumping eighths
			{0, 2, 2.5, 3},   // root with fills
		},
		PreferredStrings: []theory.GuitarString{6, 5, 4},
		FretRange:        FretRange{Min: 0, Max: 5},
	},
}

// Styles lists the supported styles in name order
func Styles() []models.Style {
	return util.SortedKeys(profiles)
}

// ParseStyle validates an untrusted style name
func ParseStyle(s string) (models.Style, error) {
	style := models.Style(s)
	if _, ok := profiles[style]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
	return style, nil
}

// Profile returns the profile for style. It panics on an unknown style.
func Profile(style models.Style) StyleProfile {
	p, ok := profiles[style]
	if !ok {
		panic(fmt.Sprintf("riff: unknown style %q", string(style)))
	}
	return p
}
