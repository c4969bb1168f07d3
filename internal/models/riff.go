package models

import "github.com/Conceptual-Machines/fretlab-api/internal/theory"

// Style selects how a riff is voiced
type Style string

const (
	StyleMelodic     Style = "melodic"
	StyleArpeggiated Style = "arpeggiated"
	StyleBassDriven  Style = "bass-driven"
)

const (
	// DefaultBeatsPerMeasure is the length of a measure in 4/4
	DefaultBeatsPerMeasure = 4
	DefaultBPM             = 120
)

// RiffNote is a single plucked note inside a measure
type RiffNote struct {
	ID        string              `json:"id"`
	String    theory.GuitarString `json:"string"`
	Fret      int                 `json:"fret"`
	Duration  float64             `json:"duration"`  // beats
	StartBeat float64             `json:"startBeat"` // offset within the measure
	Note      theory.Note         `json:"note"`
	Interval  string              `json:"interval,omitempty"`
}

// ChordRiff is one measure of notes over a single chord
type ChordRiff struct {
	ChordRoot    theory.Note      `json:"chordRoot"`
	ChordQuality theory.QualityID `json:"chordQuality"`
	ChordDegree  string           `json:"chordDegree"`
	Notes        []RiffNote       `json:"notes"`
	TotalBeats   int              `json:"totalBeats"`
}

// ProgressionRiff is a riff over a whole progression
type ProgressionRiff struct {
	ID         string      `json:"id"`
	ChordRiffs []ChordRiff `json:"chordRiffs"`
	BPM        int         `json:"bpm"`
	Style      Style       `json:"style"`
}

// Clone returns a deep copy so edits never alias the original's note slices
func (r ProgressionRiff) Clone() ProgressionRiff {
	out := r
	out.ChordRiffs = make([]ChordRiff, len(r.ChordRiffs))
	for i, cr := range r.ChordRiffs {
		cr.Notes = append([]RiffNote(nil), cr.Notes...)
		out.ChordRiffs[i] = cr
	}
	return out
}
