package riff

import (
	"sort"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/shapes"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
)

const secondsPerMinute = 60.0

// OrderForStrum sorts notes low string first, the order a downstroke sounds them
func OrderForStrum(notes []shapes.StringFret) []shapes.StringFret {
	out := append([]shapes.StringFret(nil), notes...)
	sort.SliceStable(out, func(i, j int) bool {
		return theory.StrumIndex(out[i].String) < theory.StrumIndex(out[j].String)
	})
	return out
}

func noteEvent(s theory.GuitarString, fret int) models.NoteEvent {
	midi := theory.MIDIAt(s, fret)
	return models.NoteEvent{
		String:         s,
		Fret:           fret,
		MidiNoteNumber: midi,
		Frequency:      theory.Frequency(midi),
	}
}

// BuildSchedule turns a riff into timed playback events. Each measure opens with a strum of
// the chord's first shape, followed by the riff's notes. Events are ordered by time.
func BuildSchedule(r models.ProgressionRiff) models.Schedule {
	bpm := r.BPM
	if bpm <= 0 {
		bpm = models.DefaultBPM
	}
	secondsPerBeat := secondsPerMinute / float64(bpm)
	schedule := models.Schedule{
		BPM:             bpm,
		SecondsPerBeat:  secondsPerBeat,
		BeatsPerMeasure: models.DefaultBeatsPerMeasure,
		Events:          make([]models.PlaybackEvent, 0),
	}

	measureStart := 0.0
	for i, cr := range r.ChordRiffs {
		beats := cr.TotalBeats
		if beats <= 0 {
			beats = models.DefaultBeatsPerMeasure
		}
		secondsPerMeasure := float64(beats) * secondsPerBeat

		if chord := shapes.Instantiate(cr.ChordRoot, cr.ChordQuality); len(chord) > 0 {
			strum := OrderForStrum(chord[0].NotesForAudio)
			event := models.PlaybackEvent{
				Kind:     models.EventChord,
				Measure:  i,
				Time:     measureStart,
				Duration: secondsPerMeasure,
				Notes:    make([]models.NoteEvent, len(strum)),
				Label:    theory.ChordName(cr.ChordRoot, cr.ChordQuality),
			}
			for j, sf := range strum {
				event.Notes[j] = noteEvent(sf.String, sf.Fret)
			}
			schedule.Events = append(schedule.Events, event)
		}

		for _, n := range cr.Notes {
			schedule.Events = append(schedule.Events, models.PlaybackEvent{
				Kind:     models.EventNote,
				Measure:  i,
				Time:     measureStart + n.StartBeat*secondsPerBeat,
				Duration: n.Duration * secondsPerBeat,
				Notes:    []models.NoteEvent{noteEvent(n.String, n.Fret)},
				Label:    n.Interval,
			})
		}
		measureStart += secondsPerMeasure
	}

	sort.SliceStable(schedule.Events, func(i, j int) bool {
		return schedule.Events[i].Time < schedule.Events[j].Time
	})
	schedule.TotalSeconds = measureStart
	return schedule
}
