package riff

import (
	"bytes"
	"testing"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteMIDIRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMIDI(&buf, fixtureRiff()))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 3)
	assert.Equal(t, smf.MetricTicks(ticksPerQuarter), s.TimeFormat)

	var bpm float64
	for _, ev := range s.Tracks[0] {
		if ev.Message.GetMetaTempo(&bpm) {
			break
		}
	}
	assert.InDelta(t, 120, bpm, 0.01)

	var riffKeys []uint8
	var riffTicks []uint32
	var tick uint32
	for _, ev := range s.Tracks[2] {
		tick += ev.Delta
		var channel, key, velocity uint8
		if ev.Message.GetNoteOn(&channel, &key, &velocity) {
			assert.Equal(t, uint8(riffChannel), channel)
			riffKeys = append(riffKeys, key)
			riffTicks = append(riffTicks, tick)
		}
	}
	// C4 on the B string, E4 open, A4 on the fifth fret
	assert.Equal(t, []uint8{60, 64, 69}, riffKeys)
	assert.Equal(t, []uint32{0, 960, 1920}, riffTicks)

	var chordOns int
	for _, ev := range s.Tracks[1] {
		var channel, key, velocity uint8
		if ev.Message.GetNoteOn(&channel, &key, &velocity) {
			assert.Equal(t, uint8(chordChannel), channel)
			chordOns++
		}
	}
	assert.Greater(t, chordOns, 0)
}

func TestWriteMIDIGeneratedRiff(t *testing.T) {
	p := theory.Progression{
		ID:  "twelve-bar-start",
		Key: theory.E,
		Chords: []theory.ProgressionEntry{
			{Note: theory.E, Quality: theory.Dominant7, Degree: "I"},
			{Note: theory.A, Quality: theory.Dominant7, Degree: "IV"},
		},
	}
	r := NewSeededGenerator(11).GenerateProgressionRiff(p, theory.G, models.StyleBassDriven, 100)

	var buf bytes.Buffer
	require.NoError(t, WriteMIDI(&buf, r))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	var ons int
	for _, ev := range s.Tracks[2] {
		var channel, key, velocity uint8
		if ev.Message.GetNoteOn(&channel, &key, &velocity) {
			ons++
		}
	}
	var want int
	for _, cr := range r.ChordRiffs {
		want += len(cr.Notes)
	}
	assert.Equal(t, want, ons)
}

func TestWriteMIDIRejectsUnplayableNotes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *models.RiffNote)
	}{
		{"key above MIDI range", func(n *models.RiffNote) { n.Fret = 100 }},
		{"negative duration", func(n *models.RiffNote) { n.Duration = -3 }},
		{"zero duration", func(n *models.RiffNote) { n.Duration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fixtureRiff()
			tt.mutate(&r.ChordRiffs[0].Notes[0])

			var buf bytes.Buffer
			err := WriteMIDI(&buf, r)
			assert.ErrorIs(t, err, ErrInvalidRiff)
			assert.Zero(t, buf.Len())
		})
	}
}
