package riff

import (
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
)

// FretRange is an inclusive fret interval
type FretRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultFretRange is the range offered when editing a note
var DefaultFretRange = FretRange{Min: 0, Max: 12}

// Position is a playable string and fret
type Position struct {
	String theory.GuitarString `json:"string"`
	Fret   int                 `json:"fret"`
}

// NoteChoice is a fret on a string whose note fits the chord's scale
type NoteChoice struct {
	Note     theory.Note `json:"note"`
	Fret     int         `json:"fret"`
	Interval string      `json:"interval,omitempty"`
}

// FindNotePosition searches the preferred strings in order, then every string from low E,
// for the lowest fret within r that sounds note.
func FindNotePosition(note theory.Note, preferred []theory.GuitarString, r FretRange) (Position, bool) {
	if pos, ok := searchStrings(note, preferred, r); ok {
		return pos, true
	}
	return searchStrings(note, theory.Strings, r)
}

func searchStrings(note theory.Note, strings []theory.GuitarString, r FretRange) (Position, bool) {
	for _, s := range strings {
		for fret := max(r.Min, 0); fret <= r.Max; fret++ {
			if theory.NoteAt(s, fret) == note {
				return Position{String: s, Fret: fret}, true
			}
		}
	}
	return Position{}, false
}

// AvailableNotesAtPosition lists every fret on s within r whose note lies in the chord's
// best-fit scale, labelled with its interval when it is also a chord tone.
func AvailableNotesAtPosition(root theory.Note, quality theory.QualityID, s theory.GuitarString, r FretRange) []NoteChoice {
	scale := theory.ScaleNotes(root, quality)
	choices := make([]NoteChoice, 0)
	for fret := max(r.Min, 0); fret <= r.Max; fret++ {
		note := theory.NoteAt(s, fret)
		if !theory.Contains(scale, note) {
			continue
		}
		interval, _ := theory.IntervalOf(root, quality, note)
		choices = append(choices, NoteChoice{Note: note, Fret: fret, Interval: interval})
	}
	return choices
}
