package theory

import (
	"errors"
	"fmt"
	"strings"
)

// NumNotes is the size of the chromatic pitch-class space
const NumNotes = 12

// Note is a pitch class. Enharmonic spellings share the same value.
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// ErrUnknownNote is returned when a note name cannot be parsed
var ErrUnknownNote = errors.New("unknown note")

var noteIDs = [NumNotes]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteLabels = [NumNotes]string{
	"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B",
}

// flat spellings accepted on input
var flatAliases = map[string]Note{
	"DB": CSharp,
	"EB": DSharp,
	"GB": FSharp,
	"AB": GSharp,
	"BB": ASharp,
	"CB": B,
	"FB": E,
	"E#": F,
	"B#": C,
}

// NoteOption describes a selectable note
type NoteOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Index int    `json:"index"`
}

// AllNotes returns the twelve pitch classes in chromatic order
func AllNotes() []Note {
	notes := make([]Note, NumNotes)
	for i := range notes {
		notes[i] = Note(i)
	}
	return notes
}

// NoteOptions returns display metadata for every note
func NoteOptions() []NoteOption {
	options := make([]NoteOption, 0, NumNotes)
	for _, n := range AllNotes() {
		options = append(options, NoteOption{ID: n.String(), Label: n.Label(), Index: int(n)})
	}
	return options
}

// ParseNote parses a note name such as "E", "f#" or "Bb"
func ParseNote(s string) (Note, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return 0, fmt.Errorf("%w: empty note name", ErrUnknownNote)
	}
	upper := strings.ToUpper(name[:1]) + name[1:]
	for i, id := range noteIDs {
		if id == upper {
			return Note(i), nil
		}
	}
	if n, ok := flatAliases[strings.ToUpper(name)]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
}

// Valid reports whether n is a pitch class in 0..11
func (n Note) Valid() bool {
	return n >= C && n <= B
}

// String returns the canonical sharp spelling
func (n Note) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Note(%d)", int(n))
	}
	return noteIDs[n]
}

// Label returns the display label with both spellings
func (n Note) Label() string {
	if !n.Valid() {
		return n.String()
	}
	return noteLabels[n]
}

// Transpose shifts the note by semitones, wrapping around the octave
func (n Note) Transpose(semitones int) Note {
	return Note(mod12(int(n) + semitones))
}

// DistanceTo returns the upward semitone distance from n to other
func (n Note) DistanceTo(other Note) int {
	return mod12(int(other) - int(n))
}

func (n Note) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNote, int(n))
	}
	return []byte(n.String()), nil
}

func (n *Note) UnmarshalText(text []byte) error {
	parsed, err := ParseNote(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func mod12(v int) int {
	return ((v % NumNotes) + NumNotes) % NumNotes
}
