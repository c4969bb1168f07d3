package shapes

import "github.com/Conceptual-Machines/fretlab-api/internal/theory"

// Position is a fretted note of a template, relative to its anchor
type Position struct {
	String   theory.GuitarString `json:"string"`
	Fret     int                 `json:"fret"`
	Finger   int                 `json:"finger"`
	Interval string              `json:"interval"`
}

// OpenString is a string that rings open when the shape sits at the nut
type OpenString struct {
	String   theory.GuitarString `json:"string"`
	Interval string              `json:"interval"`
}

// Barre covers FromString..ToString at Fret once the shape is moved up the neck
type Barre struct {
	FromString      theory.GuitarString `json:"fromString"`
	ToString        theory.GuitarString `json:"toString"`
	Fret            int                 `json:"fret"`
	Finger          int                 `json:"finger"`
	EngagesFromFret int                 `json:"engagesFromFret"`
	ShowInOpen      bool                `json:"showInOpen"`
}

// Template is a fixed fretting pattern anchored at BaseRoot on AnchorString
type Template struct {
	ID           string                `json:"id"`
	Label        string                `json:"label"`
	Description  string                `json:"description"`
	Family       string                `json:"shapeFamily"`
	Qualities    []theory.QualityID    `json:"qualities"`
	AnchorString theory.GuitarString   `json:"rootString"`
	AnchorFret   int                   `json:"rootFret"`
	BaseRoot     theory.Note           `json:"baseRoot"`
	Movable      bool                  `json:"isMovable"`
	Positions    []Position            `json:"positions"`
	OpenStrings  []OpenString          `json:"openStrings,omitempty"`
	MutedStrings []theory.GuitarString `json:"mutedStrings,omitempty"`
	Barre        *Barre                `json:"barre,omitempty"`
}

const (
	familyE = "E-family"
	familyA = "A-family"
	familyD = "D-family"
)

var minorFamily = []theory.QualityID{theory.Minor, theory.FlatThird}

func eBarre() *Barre {
	return &Barre{FromString: 6, ToString: 1, Fret: 0, Finger: 1, EngagesFromFret: 1}
}

func aBarre() *Barre {
	return &Barre{FromString: 5, ToString: 1, Fret: 0, Finger: 1, EngagesFromFret: 1}
}

var catalog = []Template{
	{
		ID:           "e-major",
		Label:        "E Major shape",
		Description:  "Classic E-family barre with a bright third on the G string.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Major},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 2, "5"}, {4, 2, 3, "R"}, {3, 1, 1, "3"}},
		OpenStrings:  []OpenString{{6, "R"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-major",
		Label:        "A Major shape",
		Description:  "Compact A-family voicing that loves fifth-string roots.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Major},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 2, "5"}, {3, 2, 3, "R"}, {2, 2, 4, "3"}},
		OpenStrings:  []OpenString{{5, "R"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-minor",
		Label:        "E Minor shape",
		Description:  "Two-finger Em form that becomes a minor barre anywhere.",
		Family:       familyE,
		Qualities:    minorFamily,
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 2, "5"}, {4, 2, 3, "R"}},
		OpenStrings:  []OpenString{{6, "R"}, {3, "b3"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-minor",
		Label:        "A Minor shape",
		Description:  "The Am grip with the flattened third on the B string.",
		Family:       familyA,
		Qualities:    minorFamily,
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 3, "5"}, {3, 2, 4, "R"}, {2, 1, 2, "b3"}},
		OpenStrings:  []OpenString{{5, "R"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "d-minor-open",
		Label:        "D Minor open shape",
		Description:  "Focused D minor that highlights the flat third up top.",
		Family:       familyD,
		Qualities:    minorFamily,
		AnchorString: 4,
		BaseRoot:     theory.D,
		Movable:      false,
		Positions:    []Position{{3, 2, 3, "5"}, {2, 3, 4, "R"}, {1, 1, 2, "b3"}},
		OpenStrings:  []OpenString{{4, "R"}},
		MutedStrings: []theory.GuitarString{6, 5},
	},
	{
		ID:           "e-sus2",
		Label:        "E Sus2 shape",
		Description:  "E shape that swaps the third for a shimmering second.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Sus2},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 1, "5"}, {4, 4, 3, "9"}, {3, 4, 4, "5"}},
		OpenStrings:  []OpenString{{6, "R"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-sus2",
		Label:        "A Sus2 shape",
		Description:  "A sus2 that keeps the top two strings ringing.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Sus2},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 2, "5"}, {3, 2, 3, "R"}},
		OpenStrings:  []OpenString{{5, "R"}, {2, "9"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-sus4",
		Label:        "E Sus4 shape",
		Description:  "Percussive sus4 built on the E major frame.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Sus4},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 3, "5"}, {4, 2, 4, "R"}, {3, 2, 2, "4"}},
		OpenStrings:  []OpenString{{6, "R"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-sus4",
		Label:        "A Sus4 shape",
		Description:  "Suspended fourth built from the A major shell.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Sus4},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 2, "5"}, {3, 2, 3, "R"}, {2, 3, 4, "4"}},
		OpenStrings:  []OpenString{{5, "R"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-dom7",
		Label:        "E7 shape",
		Description:  "E-based dominant 7 with the open D string acting as b7.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Dominant7},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 2, "5"}, {3, 1, 1, "3"}},
		OpenStrings:  []OpenString{{6, "R"}, {4, "b7"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-dom7",
		Label:        "A7 shape",
		Description:  "Snappy A7 voicing with the open G as the flat seventh.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Dominant7},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 2, "5"}, {2, 2, 3, "3"}},
		OpenStrings:  []OpenString{{5, "R"}, {3, "b7"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-maj7",
		Label:        "E Maj7 shape",
		Description:  "Dreamy Emaj7 with stacked tones on strings 4 and 3.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Major7},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 3, "5"}, {4, 1, 2, "7"}, {3, 1, 1, "3"}},
		OpenStrings:  []OpenString{{6, "R"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-maj7",
		Label:        "A Maj7 shape",
		Description:  "Silky Amaj7 with the third on the B string.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Major7},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 3, "5"}, {3, 1, 2, "7"}, {2, 2, 4, "3"}},
		OpenStrings:  []OpenString{{5, "R"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-min7",
		Label:        "E Minor 7 shape",
		Description:  "E minor core with the flat seventh add on the B string.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Minor7},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 2, "5"}, {4, 2, 3, "R"}, {2, 3, 4, "b7"}},
		OpenStrings:  []OpenString{{6, "R"}, {3, "b3"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-min7",
		Label:        "A Minor 7 shape",
		Description:  "A minor grip plus the open G giving b7.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Minor7},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 2, "5"}, {2, 1, 1, "b3"}},
		OpenStrings:  []OpenString{{5, "R"}, {3, "b7"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-add9",
		Label:        "E Add9 shape",
		Description:  "Wide spread voicing with the ninth stacked on the D string.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Add9},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 2, 2, "5"}, {4, 4, 4, "9"}, {3, 1, 1, "3"}},
		OpenStrings:  []OpenString{{6, "R"}, {2, "5"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-add9",
		Label:        "A Add9 shape",
		Description:  "Floating add9 on the fifth-string root.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Add9},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 2, 2, "5"}, {3, 4, 4, "9"}},
		OpenStrings:  []OpenString{{5, "R"}, {2, "9"}, {1, "5"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
	{
		ID:           "e-diminished",
		Label:        "E Diminished shape",
		Description:  "Sparse E diminished triad with muted B string.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Diminished},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 1, 2, "b5"}, {4, 2, 3, "R"}},
		OpenStrings:  []OpenString{{6, "R"}, {3, "b3"}, {1, "R"}},
		MutedStrings: []theory.GuitarString{2},
		Barre:        eBarre(),
	},
	{
		ID:           "a-diminished",
		Label:        "A Diminished shape",
		Description:  "Fifth-string diminished voicing with tight upper chord tones.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Diminished},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 1, 2, "b5"}, {3, 2, 3, "R"}, {2, 1, 1, "b3"}},
		OpenStrings:  []OpenString{{5, "R"}},
		MutedStrings: []theory.GuitarString{6, 1},
		Barre:        &Barre{FromString: 5, ToString: 2, Fret: 0, Finger: 1, EngagesFromFret: 1},
	},
	{
		ID:           "e-augmented",
		Label:        "E Augmented shape",
		Description:  "Swapped-in sharp fifth for the sci-fi E aug color.",
		Family:       familyE,
		Qualities:    []theory.QualityID{theory.Augmented},
		AnchorString: 6,
		BaseRoot:     theory.E,
		Movable:      true,
		Positions:    []Position{{5, 3, 4, "#5"}, {4, 2, 3, "R"}, {3, 1, 1, "3"}, {2, 1, 2, "#5"}},
		OpenStrings:  []OpenString{{6, "R"}, {1, "R"}},
		Barre:        eBarre(),
	},
	{
		ID:           "a-augmented",
		Label:        "A Augmented shape",
		Description:  "Augmented extension of the A shape with stacked sharp fifths.",
		Family:       familyA,
		Qualities:    []theory.QualityID{theory.Augmented},
		AnchorString: 5,
		BaseRoot:     theory.A,
		Movable:      true,
		Positions:    []Position{{4, 3, 4, "#5"}, {3, 2, 3, "R"}, {2, 2, 2, "3"}, {1, 1, 1, "#5"}},
		OpenStrings:  []OpenString{{5, "R"}},
		MutedStrings: []theory.GuitarString{6},
		Barre:        aBarre(),
	},
}

// Templates returns the shape catalog
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTemplate finds a template by id
func LookupTemplate(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Supports reports whether the template voices quality directly or through its alias target
func (t Template) Supports(quality theory.QualityID) bool {
	resolved := theory.ResolveAlias(quality)
	for _, q := range t.Qualities {
		if q == quality || q == resolved {
			return true
		}
	}
	return false
}
