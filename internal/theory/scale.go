package theory

// Scale is an ordered interval pattern with the qualities it suits
type Scale struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Intervals []string    `json:"intervals"`
	Fits      []QualityID `json:"fits"`
}

// Table order decides which scale wins when several fit a quality.
var scaleTable = []Scale{
	{
		ID:        "major",
		Name:      "Major (Ionian)",
		Intervals: []string{"R", "2", "3", "4", "5", "6", "7"},
		Fits:      []QualityID{Major, Major7, Add9},
	},
	{
		ID:        "naturalMinor",
		Name:      "Natural Minor (Aeolian)",
		Intervals: []string{"R", "2", "b3", "4", "5", "b6", "b7"},
		Fits:      []QualityID{Minor},
	},
	{
		ID:        "dorian",
		Name:      "Dorian",
		Intervals: []string{"R", "2", "b3", "4", "5", "6", "b7"},
		Fits:      []QualityID{Minor7},
	},
	{
		ID:        "mixolydian",
		Name:      "Mixolydian",
		Intervals: []string{"R", "2", "3", "4", "5", "6", "b7"},
		Fits:      []QualityID{Dominant7, Sus4},
	},
	{
		ID:        "locrian",
		Name:      "Locrian",
		Intervals: []string{"R", "b2", "b3", "4", "b5", "b6", "b7"},
		Fits:      []QualityID{Diminished},
	},
	{
		ID:        "majorPentatonic",
		Name:      "Major Pentatonic",
		Intervals: []string{"R", "2", "3", "5", "6"},
		Fits:      []QualityID{Sus2, Major, Add9},
	},
	{
		ID:        "wholeTone",
		Name:      "Whole Tone",
		Intervals: []string{"R", "2", "3", "#4", "#5", "b7"},
		Fits:      []QualityID{Augmented},
	},
	{
		ID:        "harmonicMinor",
		Name:      "Harmonic Minor",
		Intervals: []string{"R", "2", "b3", "4", "5", "b6", "7"},
		Fits:      []QualityID{Minor, Diminished},
	},
	{
		ID:        "minorPentatonic",
		Name:      "Minor Pentatonic",
		Intervals: []string{"R", "b3", "4", "5", "b7"},
		Fits:      []QualityID{Minor, Minor7},
	},
	{
		ID:        "blues",
		Name:      "Blues",
		Intervals: []string{"R", "b3", "4", "b5", "5", "b7"},
		Fits:      []QualityID{Minor7, Dominant7},
	},
}

func (s Scale) fits(quality QualityID) bool {
	for _, q := range s.Fits {
		if q == quality {
			return true
		}
	}
	return false
}

// Notes spells the scale from root
func (s Scale) Notes(root Note) []Note {
	notes := make([]Note, len(s.Intervals))
	for i, symbol := range s.Intervals {
		notes[i] = NoteFromInterval(root, symbol)
	}
	return notes
}

// Scales returns a copy of the scale table
func Scales() []Scale {
	out := make([]Scale, len(scaleTable))
	copy(out, scaleTable)
	return out
}

// ScalesForQuality lists every scale that suits quality, best first
func ScalesForQuality(quality QualityID) []Scale {
	resolved := ResolveAlias(quality)
	var out []Scale
	for _, s := range scaleTable {
		if s.fits(resolved) {
			out = append(out, s)
		}
	}
	return out
}

// BestScaleForQuality returns the first scale in table order that suits quality
func BestScaleForQuality(quality QualityID) (Scale, bool) {
	candidates := ScalesForQuality(quality)
	if len(candidates) == 0 {
		return Scale{}, false
	}
	return candidates[0], true
}

// ScaleNotes returns the best-fit scale's notes, or the chord tones when no scale fits
func ScaleNotes(root Note, quality QualityID) []Note {
	if s, ok := BestScaleForQuality(quality); ok {
		return s.Notes(root)
	}
	return ChordTones(root, quality)
}

// Contains reports whether notes includes n
func Contains(notes []Note, n Note) bool {
	for _, candidate := range notes {
		if candidate == n {
			return true
		}
	}
	return false
}
