package shapes

import (
	"fmt"
	"sort"

	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
)

const (
	triadMaxFret = 12
	triadMaxSpan = 4
)

// TriadStringSets are the adjacent three-string groups, low strings first
var TriadStringSets = [][3]theory.GuitarString{
	{6, 5, 4},
	{5, 4, 3},
	{4, 3, 2},
	{3, 2, 1},
}

// TriadNote is one note of a triad voicing
type TriadNote struct {
	String   theory.GuitarString `json:"string"`
	Fret     int                 `json:"fret"`
	Interval string              `json:"interval"`
	Note     theory.Note         `json:"note"`
}

// TriadPosition is a three-note voicing on adjacent strings
type TriadPosition struct {
	ID        string                 `json:"id"`
	Notes     [3]TriadNote           `json:"notes"`
	MinFret   int                    `json:"minFret"`
	MaxFret   int                    `json:"maxFret"`
	Span      int                    `json:"span"`
	StringSet [3]theory.GuitarString `json:"stringSet"`
	setIndex  int
}

type triadTone struct {
	note     theory.Note
	interval string
}

var triadPermutations = [][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// Triads enumerates every voicing of the quality's first three chord tones on adjacent
// string sets within frets 0-12, each tone used once and a span of at most four frets.
// Results are ordered by lowest fret, then string set from low to high.
func Triads(root theory.Note, quality theory.QualityID) []TriadPosition {
	q := theory.MustQuality(quality)
	if len(q.Intervals) < 3 {
		return []TriadPosition{}
	}
	tones := make([]triadTone, 3)
	for i, symbol := range q.Intervals[:3] {
		tones[i] = triadTone{note: theory.NoteFromInterval(root, symbol), interval: symbol}
	}

	positions := make([]TriadPosition, 0)
	for setIndex, set := range TriadStringSets {
		for _, perm := range triadPermutations {
			candidates := [3][]int{}
			for i, s := range set {
				candidates[i] = fretsFor(s, tones[perm[i]].note)
			}
			for _, f0 := range candidates[0] {
				for _, f1 := range candidates[1] {
					for _, f2 := range candidates[2] {
						frets := [3]int{f0, f1, f2}
						pos, ok := buildTriad(set, setIndex, frets, tones, perm)
						if ok {
							positions = append(positions, pos)
						}
					}
				}
			}
		}
	}

	sort.SliceStable(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a.MinFret != b.MinFret {
			return a.MinFret < b.MinFret
		}
		if a.setIndex != b.setIndex {
			return a.setIndex < b.setIndex
		}
		return a.MaxFret < b.MaxFret
	})
	return positions
}

func fretsFor(s theory.GuitarString, note theory.Note) []int {
	var frets []int
	for f := theory.FretFor(s, note); f <= triadMaxFret; f += theory.NumNotes {
		frets = append(frets, f)
	}
	return frets
}

func buildTriad(set [3]theory.GuitarString, setIndex int, frets [3]int, tones []triadTone, perm [3]int) (TriadPosition, bool) {
	minFret, maxFret := frets[0], frets[0]
	for _, f := range frets[1:] {
		minFret = min(minFret, f)
		maxFret = max(maxFret, f)
	}
	if maxFret-minFret > triadMaxSpan {
		return TriadPosition{}, false
	}

	pos := TriadPosition{
		ID:        fmt.Sprintf("triad-%d%d%d-%d-%d-%d", set[0], set[1], set[2], frets[0], frets[1], frets[2]),
		MinFret:   minFret,
		MaxFret:   maxFret,
		Span:      maxFret - minFret,
		StringSet: set,
		setIndex:  setIndex,
	}
	for i, s := range set {
		tone := tones[perm[i]]
		pos.Notes[i] = TriadNote{String: s, Fret: frets[i], Interval: tone.interval, Note: tone.note}
	}
	return pos, true
}
