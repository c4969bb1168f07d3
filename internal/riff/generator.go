package riff

import (
	"fmt"
	"math/rand"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/Conceptual-Machines/fretlab-api/internal/util"
	"github.com/google/uuid"
)

const maxNoteBeats = 1.0

// Rand is the source of pattern and tone choices. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Generator builds riffs from progressions
type Generator struct {
	rand  Rand
	newID func() string
}

// NewGenerator returns a generator drawing choices from src
func NewGenerator(src Rand) *Generator {
	return &Generator{
		rand:  src,
		newID: uuid.NewString,
	}
}

// NewSeededGenerator returns a generator whose choices repeat for the same seed
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// GenerateChordRiff builds one measure over root and quality. next is the root of the
// following chord, used for approach tones; nil means the phrase ends here.
func (g *Generator) GenerateChordRiff(root theory.Note, quality theory.QualityID, degree string, next *theory.Note, style models.Style, beatsPerMeasure int) models.ChordRiff {
	if beatsPerMeasure <= 0 {
		beatsPerMeasure = models.DefaultBeatsPerMeasure
	}
	profile := Profile(style)
	intervals := theory.MustQuality(quality).Intervals
	chordTones := theory.ChordTones(root, quality)
	scaleTones := theory.ScaleNotes(root, quality)

	pattern := profile.Patterns[g.rand.Intn(len(profile.Patterns))]
	measureEnd := float64(beatsPerMeasure)

	notes := make([]models.RiffNote, 0, len(pattern))
	for index, beat := range pattern {
		if beat >= measureEnd {
			continue
		}

		var target theory.Note
		var interval string
		strong := beat == 0 || beat == 2
		last := beat >= measureEnd-1

		switch style {
		case models.StyleArpeggiated:
			toneIndex := index % len(chordTones)
			target, interval = chordTones[toneIndex], intervals[toneIndex]
		case models.StyleBassDriven:
			if strong {
				target, interval = root, theory.Root
			} else {
				target, interval = chordTones[0], "5"
				if len(chordTones) > 2 {
					target = chordTones[2]
				}
			}
		default:
			switch {
			case strong:
				toneIndex := g.rand.Intn(len(chordTones))
				target, interval = chordTones[toneIndex], intervals[toneIndex]
			case last && next != nil:
				target = next.Transpose(-1)
			default:
				target = scaleTones[g.rand.Intn(len(scaleTones))]
			}
		}

		pos, ok := FindNotePosition(target, profile.PreferredStrings, profile.FretRange)
		if !ok {
			continue
		}
		notes = append(notes, models.RiffNote{
			ID:        fmt.Sprintf("%s-%d", degree, index),
			String:    pos.String,
			Fret:      pos.Fret,
			Duration:  noteDuration(pattern, index, measureEnd),
			StartBeat: beat,
			Note:      target,
			Interval:  interval,
		})
	}

	return models.ChordRiff{
		ChordRoot:    root,
		ChordQuality: quality,
		ChordDegree:  degree,
		Notes:        notes,
		TotalBeats:   beatsPerMeasure,
	}
}

// noteDuration is the gap to the next pattern beat, or to the end of the measure when the
// pattern ends or turns back. It never exceeds one beat or runs past the measure.
func noteDuration(pattern Pattern, index int, measureEnd float64) float64 {
	beat := pattern[index]
	gap := measureEnd - beat
	if index < len(pattern)-1 && pattern[index+1] > beat {
		gap = pattern[index+1] - beat
	}
	return util.Clamp(gap, 0, min(maxNoteBeats, measureEnd-beat))
}

// GenerateProgressionRiff transposes p to root and builds one measure per chord. Each
// measure approaches the next chord's root, wrapping from the last chord to the first.
// It panics if p has no chords.
func (g *Generator) GenerateProgressionRiff(p theory.Progression, root theory.Note, style models.Style, bpm int) models.ProgressionRiff {
	if len(p.Chords) == 0 {
		panic("riff: progression has no chords")
	}
	transposed := p.Transpose(root)

	chordRiffs := make([]models.ChordRiff, len(transposed.Chords))
	for i, entry := range transposed.Chords {
		next := transposed.Chords[(i+1)%len(transposed.Chords)].Note
		chordRiffs[i] = g.GenerateChordRiff(entry.Note, entry.Quality, entry.Degree, &next, style, models.DefaultBeatsPerMeasure)
	}

	return models.ProgressionRiff{
		ID:         "riff-" + g.newID(),
		ChordRiffs: chordRiffs,
		BPM:        bpm,
		Style:      style,
	}
}
