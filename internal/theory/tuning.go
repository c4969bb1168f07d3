package theory

import (
	"errors"
	"fmt"
	"math"
)

// GuitarString numbers a string from 1 (high E) to 6 (low E)
type GuitarString int

const (
	HighEString GuitarString = 1
	BString     GuitarString = 2
	GString     GuitarString = 3
	DString     GuitarString = 4
	AString     GuitarString = 5
	LowEString  GuitarString = 6
)

const (
	concertPitchMIDI = 69
	concertPitchHz   = 440.0
)

// ErrInvalidString is returned for string numbers outside 1..6
var ErrInvalidString = errors.New("invalid guitar string")

// Strings lists every string from low E to high E. This is the display and strum order.
var Strings = []GuitarString{LowEString, AString, DString, GString, BString, HighEString}

// StringTuning is the open pitch of a string
type StringTuning struct {
	Note  Note   `json:"note"`
	MIDI  int    `json:"midi"`
	Label string `json:"label"`
}

var standardTuning = map[GuitarString]StringTuning{
	LowEString:  {Note: E, MIDI: 40, Label: "Low E"},
	AString:     {Note: A, MIDI: 45, Label: "A"},
	DString:     {Note: D, MIDI: 50, Label: "D"},
	GString:     {Note: G, MIDI: 55, Label: "G"},
	BString:     {Note: B, MIDI: 59, Label: "B"},
	HighEString: {Note: E, MIDI: 64, Label: "High E"},
}

// Valid reports whether s names one of the six strings
func (s GuitarString) Valid() bool {
	return s >= HighEString && s <= LowEString
}

// ParseString validates an untrusted string number
func ParseString(n int) (GuitarString, error) {
	s := GuitarString(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d (expected 1-6)", ErrInvalidString, n)
	}
	return s, nil
}

// Tuning returns the standard-tuning open pitch of s. It panics on an invalid string.
func Tuning(s GuitarString) StringTuning {
	mustString(s)
	return standardTuning[s]
}

// StrumIndex is the position of s in Strings, low E first
func StrumIndex(s GuitarString) int {
	mustString(s)
	return int(LowEString - s)
}

// NoteAt returns the pitch class sounded by s at fret
func NoteAt(s GuitarString, fret int) Note {
	return Tuning(s).Note.Transpose(fret)
}

// FretFor returns the lowest non-negative fret on s that sounds target
func FretFor(s GuitarString, target Note) int {
	return Tuning(s).Note.DistanceTo(target)
}

// MIDIAt returns the absolute MIDI note number for s at fret
func MIDIAt(s GuitarString, fret int) int {
	return Tuning(s).MIDI + fret
}

// Frequency converts a MIDI note number to Hz with A4 at 440
func Frequency(midi int) float64 {
	return concertPitchHz * math.Pow(2, float64(midi-concertPitchMIDI)/NumNotes)
}

func mustString(s GuitarString) {
	if !s.Valid() {
		panic(fmt.Sprintf("theory: guitar string %d out of range 1-6", int(s)))
	}
}
