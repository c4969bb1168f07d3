package riff

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/shapes"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 480

	chordChannel = 0
	riffChannel  = 1

	// General MIDI steel-string acoustic guitar
	guitarProgram = 25

	chordVelocity = 72
	rootVelocity  = 100
	noteVelocity  = 88

	maxMIDIKey = 127
)

type tickEvent struct {
	tick uint32
	off  bool
	msg  midi.Message
}

func beatsToTicks(beats float64) uint32 {
	return uint32(math.Round(beats * ticksPerQuarter))
}

// toTrack converts absolute-tick events into a closed track. Note-offs sort before
// note-ons on the same tick so repeated pitches retrigger.
func toTrack(name string, channel uint8, events []tickEvent) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	track.Add(0, midi.ProgramChange(channel, guitarProgram))

	var last uint32
	for _, ev := range events {
		track.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}
	track.Close(0)
	return track
}

func midiKey(s theory.GuitarString, fret int) (uint8, error) {
	key := theory.MIDIAt(s, fret)
	if key < 0 || key > maxMIDIKey {
		return 0, fmt.Errorf("%w: string %d fret %d is outside the MIDI range", ErrInvalidRiff, s, fret)
	}
	return uint8(key), nil
}

func noteOnOff(channel uint8, key uint8, velocity uint8, start, end uint32) []tickEvent {
	if end <= start {
		end = start + 1
	}
	return []tickEvent{
		{tick: start, msg: midi.NoteOn(channel, key, velocity)},
		{tick: end, off: true, msg: midi.NoteOff(channel, key)},
	}
}

// BuildSMF renders a riff as a format 1 Standard MIDI File with a tempo track, a chord
// track strumming the first shape of each measure's chord, and the riff itself.
func BuildSMF(r models.ProgressionRiff) (*smf.SMF, error) {
	bpm := r.BPM
	if bpm <= 0 {
		bpm = models.DefaultBPM
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("%s (%s)", r.ID, r.Style)))
	tempo.Add(0, smf.MetaMeter(models.DefaultBeatsPerMeasure, 4))
	tempo.Add(0, smf.MetaTempo(float64(bpm)))
	tempo.Close(0)

	var chordEvents, riffEvents []tickEvent
	measureStart := 0.0
	for _, cr := range r.ChordRiffs {
		beats := float64(cr.TotalBeats)
		if beats <= 0 {
			beats = models.DefaultBeatsPerMeasure
		}
		start := beatsToTicks(measureStart)
		end := beatsToTicks(measureStart + beats)

		if chord := shapes.Instantiate(cr.ChordRoot, cr.ChordQuality); len(chord) > 0 {
			for _, sf := range OrderForStrum(chord[0].NotesForAudio) {
				key, err := midiKey(sf.String, sf.Fret)
				if err != nil {
					return nil, err
				}
				chordEvents = append(chordEvents, noteOnOff(chordChannel, key, chordVelocity, start, end)...)
			}
		}

		for _, n := range cr.Notes {
			key, err := midiKey(n.String, n.Fret)
			if err != nil {
				return nil, err
			}
			if n.Duration <= 0 {
				return nil, fmt.Errorf("%w: note %s has duration %g", ErrInvalidRiff, n.ID, n.Duration)
			}
			velocity := uint8(noteVelocity)
			if n.Interval == theory.Root {
				velocity = rootVelocity
			}
			noteStart := beatsToTicks(measureStart + n.StartBeat)
			noteEnd := beatsToTicks(measureStart + n.StartBeat + n.Duration)
			riffEvents = append(riffEvents, noteOnOff(riffChannel, key, velocity, noteStart, noteEnd)...)
		}
		measureStart += beats
	}

	for _, track := range []smf.Track{
		tempo,
		toTrack("Chords", chordChannel, chordEvents),
		toTrack("Riff", riffChannel, riffEvents),
	} {
		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
	}
	return s, nil
}

// WriteMIDI writes the riff to w as a Standard MIDI File
func WriteMIDI(w io.Writer, r models.ProgressionRiff) error {
	s, err := BuildSMF(r)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write midi: %w", err)
	}
	return nil
}
