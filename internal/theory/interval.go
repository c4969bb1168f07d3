package theory

import "fmt"

// Root is the interval symbol of a chord's root
const Root = "R"

var intervalSemitones = map[string]int{
	"R":   0,
	"b2":  1,
	"2":   2,
	"#2":  3,
	"b3":  3,
	"3":   4,
	"4":   5,
	"#4":  6,
	"b5":  6,
	"5":   7,
	"#5":  8,
	"b6":  8,
	"6":   9,
	"bb7": 9,
	"b7":  10,
	"7":   11,
	"9":   14,
	"11":  17,
	"13":  21,
}

// LookupInterval returns the semitone distance for an interval symbol
func LookupInterval(symbol string) (int, bool) {
	semitones, ok := intervalSemitones[symbol]
	return semitones, ok
}

// IntervalSemitones is LookupInterval for static data. Unknown symbols panic.
func IntervalSemitones(symbol string) int {
	semitones, ok := intervalSemitones[symbol]
	if !ok {
		panic(fmt.Sprintf("theory: unknown interval symbol %q", symbol))
	}
	return semitones
}

// NoteFromInterval returns the note an interval above root
func NoteFromInterval(root Note, symbol string) Note {
	return root.Transpose(IntervalSemitones(symbol))
}
