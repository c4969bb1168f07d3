package theory

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Note
		wantErr  bool
	}{
		{name: "natural", input: "E", expected: E},
		{name: "sharp", input: "F#", expected: FSharp},
		{name: "lowercase", input: "g#", expected: GSharp},
		{name: "flat", input: "Bb", expected: ASharp},
		{name: "flat lowercase", input: "db", expected: CSharp},
		{name: "enharmonic E sharp", input: "E#", expected: F},
		{name: "padded", input: " A ", expected: A},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "H", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNote(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownNote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestNoteTranspose(t *testing.T) {
	assert.Equal(t, C, B.Transpose(1))
	assert.Equal(t, B, C.Transpose(-1))
	assert.Equal(t, E, E.Transpose(24))
	assert.Equal(t, 3, E.DistanceTo(G))
	assert.Equal(t, 9, G.DistanceTo(E))
}

func TestNoteJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Root Note `json:"root"`
	}{Root: CSharp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":"C#"}`, string(data))

	var decoded struct {
		Root Note `json:"root"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"root":"Eb"}`), &decoded))
	assert.Equal(t, DSharp, decoded.Root)

	assert.Error(t, json.Unmarshal([]byte(`{"root":"X"}`), &decoded))
}

func TestTuning(t *testing.T) {
	assert.Equal(t, []GuitarString{6, 5, 4, 3, 2, 1}, Strings)
	assert.Equal(t, StringTuning{Note: E, MIDI: 40, Label: "Low E"}, Tuning(LowEString))
	assert.Equal(t, StringTuning{Note: E, MIDI: 64, Label: "High E"}, Tuning(HighEString))
	assert.Equal(t, 0, StrumIndex(LowEString))
	assert.Equal(t, 5, StrumIndex(HighEString))

	assert.Panics(t, func() { Tuning(0) })
	assert.Panics(t, func() { Tuning(7) })

	_, err := ParseString(7)
	assert.ErrorIs(t, err, ErrInvalidString)
	s, err := ParseString(3)
	require.NoError(t, err)
	assert.Equal(t, GString, s)
}

func TestFretArithmetic(t *testing.T) {
	for _, s := range Strings {
		for _, target := range AllNotes() {
			fret := FretFor(s, target)
			assert.GreaterOrEqual(t, fret, 0)
			assert.Less(t, fret, NumNotes)
			assert.Equal(t, target, NoteAt(s, fret), "string %d note %s", s, target)
		}
	}
	assert.Equal(t, 3, FretFor(LowEString, G))
	assert.Equal(t, 0, FretFor(AString, A))
}

func TestMIDIAndFrequency(t *testing.T) {
	assert.Equal(t, 45, MIDIAt(LowEString, 5))
	assert.Equal(t, 69, MIDIAt(HighEString, 5))
	assert.InDelta(t, 440.0, Frequency(69), 1e-9)
	assert.InDelta(t, 82.4069, Frequency(40), 1e-3)
	assert.InDelta(t, 880.0, Frequency(81), 1e-9)
	assert.False(t, math.IsNaN(Frequency(0)))
}

func TestIntervals(t *testing.T) {
	assert.Equal(t, G, NoteFromInterval(E, "b3"))
	assert.Equal(t, FSharp, NoteFromInterval(E, "9"))
	assert.Equal(t, C, NoteFromInterval(E, "#5"))
	assert.Panics(t, func() { NoteFromInterval(C, "b9") })

	_, ok := LookupInterval("x")
	assert.False(t, ok)
}

func TestQualityTable(t *testing.T) {
	qualities := Qualities()
	require.Len(t, qualities, 11)

	for _, q := range qualities {
		for _, symbol := range q.Intervals {
			_, ok := LookupInterval(symbol)
			assert.True(t, ok, "quality %s interval %s", q.ID, symbol)
		}
		if q.AliasOf != "" {
			_, err := LookupQuality(q.AliasOf)
			assert.NoError(t, err, "alias target of %s", q.ID)
		}
	}

	assert.Equal(t, Minor, ResolveAlias(FlatThird))
	assert.Equal(t, Major, ResolveAlias(Major))

	_, err := LookupQuality("power")
	assert.ErrorIs(t, err, ErrUnknownQuality)
	assert.Panics(t, func() { MustQuality("power") })
}

func TestChordNameAndTones(t *testing.T) {
	assert.Equal(t, "Em", ChordName(E, Minor))
	assert.Equal(t, "G7", ChordName(G, Dominant7))
	assert.Equal(t, "C(b3)", ChordName(C, FlatThird))
	assert.Equal(t, "F#", ChordName(FSharp, Major))

	assert.Equal(t, []Note{A, C, E, G}, ChordTones(A, Minor7))
	assert.Equal(t, []Note{C, E, G, D}, ChordTones(C, Add9))

	interval, ok := IntervalOf(A, Minor7, G)
	require.True(t, ok)
	assert.Equal(t, "b7", interval)
	_, ok = IntervalOf(A, Minor7, B)
	assert.False(t, ok)
}

func TestBestScaleForQuality(t *testing.T) {
	tests := []struct {
		quality  QualityID
		expected string
	}{
		{Major, "major"},
		{Minor, "naturalMinor"},
		{FlatThird, "naturalMinor"},
		{Sus2, "majorPentatonic"},
		{Sus4, "mixolydian"},
		{Dominant7, "mixolydian"},
		{Major7, "major"},
		{Minor7, "dorian"},
		{Add9, "major"},
		{Diminished, "locrian"},
		{Augmented, "wholeTone"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			scale, ok := BestScaleForQuality(tt.quality)
			require.True(t, ok)
			assert.Equal(t, tt.expected, scale.ID)
		})
	}
}

func TestScaleNotesContainChordTriad(t *testing.T) {
	for _, q := range Qualities() {
		scale := ScaleNotes(D, q.ID)
		tones := ChordTones(D, q.ID)
		for _, tone := range tones[:3] {
			assert.True(t, Contains(scale, tone), "quality %s tone %s", q.ID, tone)
		}
	}
	assert.Equal(t, []Note{A, B, C, D, E, F, G}, ScaleNotes(A, Minor))
}

func TestProgressionTranspose(t *testing.T) {
	p := Progression{
		ID:  "test",
		Key: C,
		Chords: []ProgressionEntry{
			{Note: C, Quality: Major, Degree: "I"},
			{Note: A, Quality: Minor, Degree: "vi"},
		},
	}

	out := p.Transpose(E)
	assert.Equal(t, E, out.Key)
	assert.Equal(t, E, out.Chords[0].Note)
	assert.Equal(t, CSharp, out.Chords[1].Note)
	assert.Equal(t, "vi", out.Chords[1].Degree)

	// input untouched
	assert.Equal(t, C, p.Chords[0].Note)
}

func TestProgressionValidate(t *testing.T) {
	assert.ErrorIs(t, Progression{ID: "empty"}.Validate(), ErrInvalidProgression)

	bad := Progression{ID: "bad", Chords: []ProgressionEntry{{Note: C, Quality: "power"}}}
	err := bad.Validate()
	assert.ErrorIs(t, err, ErrInvalidProgression)
	assert.ErrorIs(t, err, ErrUnknownQuality)
}

func TestLoadPresets(t *testing.T) {
	presets, err := LoadPresets()
	require.NoError(t, err)
	require.NotEmpty(t, presets)

	p, ok := FindPreset(presets, "pop-axis")
	require.True(t, ok)
	assert.Equal(t, C, p.Key)
	assert.Len(t, p.Chords, 4)

	_, ok = FindPreset(presets, "missing")
	assert.False(t, ok)
}

func TestParsePresetsRejectsDuplicates(t *testing.T) {
	data := []byte(`[
		{"id":"a","key":"C","chords":[{"note":"C","quality":"major","degree":"I"}]},
		{"id":"a","key":"C","chords":[{"note":"C","quality":"major","degree":"I"}]}
	]`)
	_, err := ParsePresets(data)
	assert.ErrorIs(t, err, ErrInvalidProgression)
}
