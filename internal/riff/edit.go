package riff

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/google/uuid"
)

const addedNoteBeats = 0.5

var (
	// ErrMeasureOutOfRange is returned when a measure index does not exist in the riff
	ErrMeasureOutOfRange = errors.New("measure index out of range")
	// ErrInvalidRiff is returned by ValidateRiff
	ErrInvalidRiff = errors.New("invalid riff")
)

// CheckMeasure validates an untrusted measure index
func CheckMeasure(r models.ProgressionRiff, measure int) error {
	if measure < 0 || measure >= len(r.ChordRiffs) {
		return fmt.Errorf("%w: %d (riff has %d measures)", ErrMeasureOutOfRange, measure, len(r.ChordRiffs))
	}
	return nil
}

func mustMeasure(r models.ProgressionRiff, measure int) {
	if err := CheckMeasure(r, measure); err != nil {
		panic("riff: " + err.Error())
	}
}

// AddNote returns a copy of r with a half-beat note added to measure, keeping the measure
// ordered by start beat. A note added near the end of the measure is shortened to fit.
// It panics if measure is out of range.
func AddNote(r models.ProgressionRiff, measure int, s theory.GuitarString, fret int, startBeat float64, note theory.Note) models.ProgressionRiff {
	mustMeasure(r, measure)
	out := r.Clone()
	cr := &out.ChordRiffs[measure]

	added := models.RiffNote{
		ID:        fmt.Sprintf("%s-%s", cr.ChordDegree, uuid.NewString()),
		String:    s,
		Fret:      fret,
		Duration:  min(addedNoteBeats, float64(cr.TotalBeats)-startBeat),
		StartBeat: startBeat,
		Note:      note,
	}
	if interval, ok := theory.IntervalOf(cr.ChordRoot, cr.ChordQuality, note); ok {
		added.Interval = interval
	}

	cr.Notes = append(cr.Notes, added)
	sort.SliceStable(cr.Notes, func(i, j int) bool {
		return cr.Notes[i].StartBeat < cr.Notes[j].StartBeat
	})
	return out
}

// UpdateNote returns a copy of r with the note identified by id moved to a new string, fret
// and pitch. An unknown id leaves the measure unchanged. It panics if measure is out of range.
func UpdateNote(r models.ProgressionRiff, measure int, id string, s theory.GuitarString, fret int, note theory.Note) models.ProgressionRiff {
	mustMeasure(r, measure)
	out := r.Clone()
	cr := &out.ChordRiffs[measure]

	for i := range cr.Notes {
		if cr.Notes[i].ID != id {
			continue
		}
		cr.Notes[i].String = s
		cr.Notes[i].Fret = fret
		cr.Notes[i].Note = note
		cr.Notes[i].Interval, _ = theory.IntervalOf(cr.ChordRoot, cr.ChordQuality, note)
	}
	return out
}

// RemoveNote returns a copy of r without the note identified by id. It panics if measure
// is out of range.
func RemoveNote(r models.ProgressionRiff, measure int, id string) models.ProgressionRiff {
	mustMeasure(r, measure)
	out := r.Clone()
	cr := &out.ChordRiffs[measure]

	kept := make([]models.RiffNote, 0, len(cr.Notes))
	for _, n := range cr.Notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	cr.Notes = kept
	return out
}

// ValidateRiff checks a riff received from outside before it is edited or rendered. Every
// note must sit at or below maxFret and end inside its measure.
func ValidateRiff(r models.ProgressionRiff, maxFret int) error {
	if len(r.ChordRiffs) == 0 {
		return fmt.Errorf("%w: no measures", ErrInvalidRiff)
	}
	if r.BPM <= 0 {
		return fmt.Errorf("%w: bpm must be positive", ErrInvalidRiff)
	}
	for i, cr := range r.ChordRiffs {
		if _, err := theory.LookupQuality(cr.ChordQuality); err != nil {
			return fmt.Errorf("%w: measure %d: %w", ErrInvalidRiff, i, err)
		}
		if cr.TotalBeats <= 0 {
			return fmt.Errorf("%w: measure %d: total beats must be positive", ErrInvalidRiff, i)
		}
		for _, n := range cr.Notes {
			if !n.String.Valid() {
				return fmt.Errorf("%w: measure %d note %s: %w", ErrInvalidRiff, i, n.ID, theory.ErrInvalidString)
			}
			if n.Fret < 0 || n.Fret > maxFret {
				return fmt.Errorf("%w: measure %d note %s: fret %d (allowed 0-%d)", ErrInvalidRiff, i, n.ID, n.Fret, maxFret)
			}
			if n.StartBeat < 0 || n.StartBeat >= float64(cr.TotalBeats) {
				return fmt.Errorf("%w: measure %d note %s starts outside the measure", ErrInvalidRiff, i, n.ID)
			}
			if n.Duration <= 0 || n.StartBeat+n.Duration > float64(cr.TotalBeats) {
				return fmt.Errorf("%w: measure %d note %s: duration %g does not fit the measure", ErrInvalidRiff, i, n.ID, n.Duration)
			}
		}
	}
	return nil
}
