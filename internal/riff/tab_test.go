package riff

import (
	"testing"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledSlots(slots []*int) map[int]int {
	out := make(map[int]int)
	for i, fret := range slots {
		if fret != nil {
			out[i] = *fret
		}
	}
	return out
}

func TestBuildTabSheet(t *testing.T) {
	sheet := BuildTabSheet(fixtureRiff(), 8)

	assert.Equal(t, 120, sheet.BPM)
	assert.Equal(t, 4, sheet.BeatsPerMeasure)
	require.Len(t, sheet.Measures, 2)

	first := sheet.Measures[0]
	assert.Equal(t, "C", first.ChordName)
	assert.Equal(t, "I", first.ChordDegree)
	assert.Equal(t, 8, first.Subdivisions)
	require.Len(t, first.Positions, 6)
	for _, s := range theory.Strings {
		assert.Len(t, first.Positions[s], 8)
	}
	assert.Equal(t, map[int]int{0: 1}, filledSlots(first.Positions[theory.BString]))
	assert.Equal(t, map[int]int{4: 0}, filledSlots(first.Positions[theory.HighEString]))
	assert.Empty(t, filledSlots(first.Positions[theory.LowEString]))

	second := sheet.Measures[1]
	assert.Equal(t, "Am", second.ChordName)
	assert.Equal(t, map[int]int{0: 5}, filledSlots(second.Positions[theory.HighEString]))
}

func TestBuildTabSheetSlots(t *testing.T) {
	r := fixtureRiff()
	r.ChordRiffs[0].Notes = []models.RiffNote{
		{ID: "a", String: 3, Fret: 2, StartBeat: 0, Duration: 0.25},
		{ID: "b", String: 3, Fret: 4, StartBeat: 0.25, Duration: 0.25},
		{ID: "c", String: 3, Fret: 5, StartBeat: 3.5, Duration: 0.5},
		{ID: "d", String: 4, Fret: 7, StartBeat: 3.99, Duration: 0.01},
	}

	tests := []struct {
		name         string
		subdivisions int
		gString      map[int]int
		dString      map[int]int
	}{
		{"eighths, later note wins a shared slot", 8, map[int]int{0: 4, 7: 5}, map[int]int{7: 7}},
		{"sixteenths", 16, map[int]int{0: 2, 1: 4, 14: 5}, map[int]int{15: 7}},
		{"quarters", 4, map[int]int{0: 4, 3: 5}, map[int]int{3: 7}},
		{"default resolution", 0, map[int]int{0: 4, 7: 5}, map[int]int{7: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			measure := BuildTabSheet(r, tt.subdivisions).Measures[0]
			assert.Equal(t, tt.gString, filledSlots(measure.Positions[theory.GString]))
			assert.Equal(t, tt.dString, filledSlots(measure.Positions[theory.DString]))
		})
	}
}
