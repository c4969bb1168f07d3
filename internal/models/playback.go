package models

import "github.com/Conceptual-Machines/fretlab-api/internal/theory"

// EventKind tells an audio scheduler whether to strum or pluck
type EventKind string

const (
	EventChord EventKind = "chord"
	EventNote  EventKind = "note"
)

// NoteEvent is a sounded string with its absolute pitch
type NoteEvent struct {
	String         theory.GuitarString `json:"string"`
	Fret           int                 `json:"fret"`
	MidiNoteNumber int                 `json:"midiNoteNumber"`
	Frequency      float64             `json:"frequency"`
}

// PlaybackEvent is one scheduled strum or note, timed in seconds from the start
type PlaybackEvent struct {
	Kind     EventKind   `json:"kind"`
	Measure  int         `json:"measure"`
	Time     float64     `json:"time"`
	Duration float64     `json:"duration"`
	Notes    []NoteEvent `json:"notes"`
	Label    string      `json:"label,omitempty"`
}

// Schedule is the full playback plan for a riff
type Schedule struct {
	BPM             int             `json:"bpm"`
	SecondsPerBeat  float64         `json:"secondsPerBeat"`
	BeatsPerMeasure int             `json:"beatsPerMeasure"`
	TotalSeconds    float64         `json:"totalSeconds"`
	Events          []PlaybackEvent `json:"events"`
}

// TabMeasure lays one measure out as fret slots per string. A nil slot is empty.
type TabMeasure struct {
	ChordName    string                         `json:"chordName"`
	ChordDegree  string                         `json:"chordDegree"`
	Positions    map[theory.GuitarString][]*int `json:"positions"`
	Subdivisions int                            `json:"subdivisions"`
}

// TabSheet is a riff rendered as tablature
type TabSheet struct {
	Measures        []TabMeasure `json:"measures"`
	BPM             int          `json:"bpm"`
	BeatsPerMeasure int          `json:"beatsPerMeasure"`
}
