package theory

import (
	"errors"
	"fmt"
)

// QualityID identifies a chord quality
type QualityID string

const (
	Major      QualityID = "major"
	Minor      QualityID = "minor"
	FlatThird  QualityID = "flatThird"
	Sus2       QualityID = "sus2"
	Sus4       QualityID = "sus4"
	Dominant7  QualityID = "dominant7"
	Major7     QualityID = "major7"
	Minor7     QualityID = "minor7"
	Add9       QualityID = "add9"
	Diminished QualityID = "diminished"
	Augmented  QualityID = "augmented"
)

// ErrUnknownQuality is returned when a quality id is not in the table
var ErrUnknownQuality = errors.New("unknown chord quality")

// Quality describes a chord quality and its interval set
type Quality struct {
	ID          QualityID `json:"id"`
	Label       string    `json:"label"`
	ShortLabel  string    `json:"shortLabel"`
	Description string    `json:"description"`
	Intervals   []string  `json:"intervals"`
	Color       string    `json:"color"`
	Accent      string    `json:"accent"`
	AliasOf     QualityID `json:"aliasOf,omitempty"`
}

var qualityTable = []Quality{
	{
		ID:          Major,
		Label:       "Major",
		ShortLabel:  "",
		Description: "Pure triad built from root, major third, and perfect fifth.",
		Intervals:   []string{"R", "3", "5"},
		Color:       "#4ef0ff",
		Accent:      "#73ffe9",
	},
	{
		ID:          Minor,
		Label:       "Minor",
		ShortLabel:  "m",
		Description: "Triad with a flattened third for a darker tone.",
		Intervals:   []string{"R", "b3", "5"},
		Color:       "#ff4fe1",
		Accent:      "#ff87ff",
	},
	{
		ID:          FlatThird,
		Label:       "Flat 3rd",
		ShortLabel:  "(b3)",
		Description: "Alias for the classic minor triad that emphasizes the lowered third.",
		Intervals:   []string{"R", "b3", "5"},
		Color:       "#ff9d2f",
		Accent:      "#ffc65c",
		AliasOf:     Minor,
	},
	{
		ID:          Sus2,
		Label:       "Sus2",
		ShortLabel:  "sus2",
		Description: "Replaces the third with a bright second.",
		Intervals:   []string{"R", "2", "5"},
		Color:       "#47ffb2",
		Accent:      "#7bffd4",
	},
	{
		ID:          Sus4,
		Label:       "Sus4",
		ShortLabel:  "sus4",
		Description: "Suspended fourth keeps the harmony open and percussive.",
		Intervals:   []string{"R", "4", "5"},
		Color:       "#a6ff47",
		Accent:      "#cafe6e",
	},
	{
		ID:          Dominant7,
		Label:       "Dominant 7",
		ShortLabel:  "7",
		Description: "Major triad plus a flattened seventh for tension.",
		Intervals:   []string{"R", "3", "5", "b7"},
		Color:       "#ffdb4f",
		Accent:      "#ffe98a",
	},
	{
		ID:          Major7,
		Label:       "Major 7",
		ShortLabel:  "maj7",
		Description: "Lush major triad topped with a natural seventh.",
		Intervals:   []string{"R", "3", "5", "7"},
		Color:       "#a96bff",
		Accent:      "#cda1ff",
	},
	{
		ID:          Minor7,
		Label:       "Minor 7",
		ShortLabel:  "m7",
		Description: "Minor triad paired with a flattened seventh.",
		Intervals:   []string{"R", "b3", "5", "b7"},
		Color:       "#ff77b4",
		Accent:      "#ff9fcc",
	},
	{
		ID:          Add9,
		Label:       "Add 9",
		ShortLabel:  "add9",
		Description: "Major triad with the 9th for sparkle.",
		Intervals:   []string{"R", "3", "5", "9"},
		Color:       "#4f9dff",
		Accent:      "#7ac0ff",
	},
	{
		ID:          Diminished,
		Label:       "Diminished",
		ShortLabel:  "dim",
		Description: "Stacked minor thirds: root, flat third, and flat fifth.",
		Intervals:   []string{"R", "b3", "b5"},
		Color:       "#ff5f5f",
		Accent:      "#ff9393",
	},
	{
		ID:          Augmented,
		Label:       "Augmented",
		ShortLabel:  "aug",
		Description: "Major triad with a sharpened fifth for a futuristic vibe.",
		Intervals:   []string{"R", "3", "#5"},
		Color:       "#ff94ff",
		Accent:      "#ffc3ff",
	},
}

var qualityIndex = func() map[QualityID]int {
	index := make(map[QualityID]int, len(qualityTable))
	for i, q := range qualityTable {
		index[q.ID] = i
	}
	return index
}()

// Qualities returns a copy of the quality table in display order
func Qualities() []Quality {
	out := make([]Quality, len(qualityTable))
	for i, q := range qualityTable {
		q.Intervals = append([]string(nil), q.Intervals...)
		out[i] = q
	}
	return out
}

// LookupQuality validates an untrusted quality id
func LookupQuality(id QualityID) (Quality, error) {
	i, ok := qualityIndex[id]
	if !ok {
		return Quality{}, fmt.Errorf("%w: %q", ErrUnknownQuality, string(id))
	}
	return qualityTable[i], nil
}

// MustQuality returns the quality for id and panics if it is not in the table
func MustQuality(id QualityID) Quality {
	q, err := LookupQuality(id)
	if err != nil {
		panic("theory: " + err.Error())
	}
	return q
}

// ResolveAlias follows a single aliasOf redirect
func ResolveAlias(id QualityID) QualityID {
	q := MustQuality(id)
	if q.AliasOf != "" {
		return q.AliasOf
	}
	return id
}

// ChordName formats a chord symbol such as "Em" or "G7"
func ChordName(root Note, quality QualityID) string {
	return root.String() + MustQuality(quality).ShortLabel
}

// ChordTones returns one note per interval of the quality, in interval order
func ChordTones(root Note, quality QualityID) []Note {
	q := MustQuality(quality)
	tones := make([]Note, len(q.Intervals))
	for i, symbol := range q.Intervals {
		tones[i] = NoteFromInterval(root, symbol)
	}
	return tones
}

// IntervalOf returns the quality's interval label for note relative to root, if note is a chord tone
func IntervalOf(root Note, quality QualityID, note Note) (string, bool) {
	q := MustQuality(quality)
	for _, symbol := range q.Intervals {
		if NoteFromInterval(root, symbol) == note {
			return symbol, true
		}
	}
	return "", false
}
