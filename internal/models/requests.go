package models

import "github.com/Conceptual-Machines/fretlab-api/internal/theory"

// RiffRequest asks for a riff over a preset or inline progression
type RiffRequest struct {
	ProgressionID   string              `json:"progression_id,omitempty"`
	Progression     *theory.Progression `json:"progression,omitempty"`
	Root            string              `json:"root" binding:"required"`
	Style           string              `json:"style"`
	BPM             int                 `json:"bpm"`
	Speed           string              `json:"speed,omitempty"` // "slow", "medium", "fast"; ignored when bpm is set
	Seed            *int64              `json:"seed,omitempty"`  // Optional seed for reproducibility
	Subdivisions    int                 `json:"subdivisions,omitempty"`
	IncludeTab      bool                `json:"include_tab,omitempty"`
	IncludeSchedule bool                `json:"include_schedule,omitempty"`
}

// ChordRiffRequest asks for a single measure
type ChordRiffRequest struct {
	Root            string `json:"root" binding:"required"`
	Quality         string `json:"quality" binding:"required"`
	Degree          string `json:"degree"`
	NextRoot        string `json:"next_root,omitempty"`
	Style           string `json:"style"`
	BeatsPerMeasure int    `json:"beats_per_measure,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
}

// RiffEditRequest carries a riff and one edit to apply to a measure
type RiffEditRequest struct {
	Riff         ProgressionRiff `json:"riff"`
	MeasureIndex int             `json:"measure_index"`
	NoteID       string          `json:"note_id,omitempty"`
	String       int             `json:"string,omitempty"`
	Fret         int             `json:"fret"`
	StartBeat    float64         `json:"start_beat"`
	Note         string          `json:"note,omitempty"`
}

// RiffBodyRequest wraps a riff for the tab, schedule and MIDI endpoints
type RiffBodyRequest struct {
	Riff         ProgressionRiff `json:"riff"`
	Subdivisions int             `json:"subdivisions,omitempty"`
}

// FindPositionRequest asks where a note can be played
type FindPositionRequest struct {
	Note             string `json:"note" binding:"required"`
	PreferredStrings []int  `json:"preferred_strings"`
	MinFret          int    `json:"min_fret"`
	MaxFret          *int   `json:"max_fret,omitempty"`
}
