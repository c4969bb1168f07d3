package shapes

import (
	"fmt"

	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
)

const (
	minWindowFrets = 5
	windowPadding  = 2
	defaultFinger  = 1
)

// StringState is the resolved state of one string. Fret is nil when the string is muted
// or no template entry covers it.
type StringState struct {
	String   theory.GuitarString `json:"string"`
	Fret     *int                `json:"fret"`
	Interval string              `json:"interval,omitempty"`
	Finger   int                 `json:"finger,omitempty"`
	Open     bool                `json:"isOpen"`
	Muted    bool                `json:"isMuted"`
}

// Sounding reports whether the string is played
func (s StringState) Sounding() bool {
	return !s.Muted && s.Fret != nil
}

// FingerPlacement is a template position moved to its absolute fret
type FingerPlacement struct {
	String   theory.GuitarString `json:"string"`
	Fret     int                 `json:"fret"`
	Finger   int                 `json:"finger"`
	Interval string              `json:"interval"`
	IsRoot   bool                `json:"isRoot"`
}

// ActiveBarre is a barre at its absolute fret
type ActiveBarre struct {
	FromString theory.GuitarString `json:"fromString"`
	ToString   theory.GuitarString `json:"toString"`
	Fret       int                 `json:"fret"`
	Finger     int                 `json:"finger"`
}

// FretWindow is the inclusive fret range a diagram should show
type FretWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Frets returns the number of frets in the window
func (w FretWindow) Frets() int {
	return w.End - w.Start + 1
}

// StringFret is a single sounded note
type StringFret struct {
	String theory.GuitarString `json:"string"`
	Fret   int                 `json:"fret"`
}

// Shape is a template instantiated for a root and quality
type Shape struct {
	InstanceID       string            `json:"instanceId"`
	TemplateID       string            `json:"templateId"`
	TemplateLabel    string            `json:"templateLabel"`
	Description      string            `json:"description"`
	Quality          theory.QualityID  `json:"quality"`
	Root             theory.Note       `json:"root"`
	Offset           int               `json:"offset"`
	DisplayName      string            `json:"displayName"`
	AccentColor      string            `json:"accentColor"`
	FingerPlacements []FingerPlacement `json:"fingerPlacements"`
	OpenIndicators   []OpenString      `json:"openIndicators"`
	StringStates     []StringState     `json:"stringStates"`
	Barre            *ActiveBarre      `json:"barre"`
	FretWindow       FretWindow        `json:"fretWindow"`
	Instructions     []string          `json:"instructions"`
	NotesForAudio    []StringFret      `json:"notesForAudio"`
}

// State returns the resolved state of s
func (sh Shape) State(s theory.GuitarString) StringState {
	return sh.StringStates[theory.StrumIndex(s)]
}

// Offset returns how far a template must move up the neck to sound root.
// ok is false when the template cannot voice root.
func Offset(t Template, root theory.Note) (offset int, ok bool) {
	if !t.Movable {
		return 0, t.BaseRoot == root
	}
	offset = theory.FretFor(t.AnchorString, root) - t.AnchorFret
	return offset, offset >= 0
}

// Instantiate builds every playable shape for root and quality, in catalog order.
// It panics if quality is not a known quality id.
func Instantiate(root theory.Note, quality theory.QualityID) []Shape {
	q := theory.MustQuality(quality)

	shapes := make([]Shape, 0)
	for _, t := range catalog {
		if !t.Supports(quality) {
			continue
		}
		offset, ok := Offset(t, root)
		if !ok {
			continue
		}
		shape := instantiateTemplate(t, root, q, offset)
		shape.InstanceID = fmt.Sprintf("%s-%s-%s-%d", t.ID, root, quality, len(shapes))
		shapes = append(shapes, shape)
	}
	return shapes
}

func instantiateTemplate(t Template, root theory.Note, q theory.Quality, offset int) Shape {
	states := emptyStates()
	applyOpenStrings(t, offset, states)
	applyPositions(t, offset, states)
	applyMuted(t, states)

	barre := activeBarre(t, offset)

	openIndicators := []OpenString{}
	if offset == 0 {
		openIndicators = append(openIndicators, t.OpenStrings...)
	}

	return Shape{
		TemplateID:       t.ID,
		TemplateLabel:    t.Label,
		Description:      t.Description,
		Quality:          q.ID,
		Root:             root,
		Offset:           offset,
		DisplayName:      fmt.Sprintf("%s (%s)", theory.ChordName(root, q.ID), t.Label),
		AccentColor:      q.Color,
		FingerPlacements: fingerPlacements(t, offset),
		OpenIndicators:   openIndicators,
		StringStates:     states,
		Barre:            barre,
		FretWindow:       fretWindow(states, barre),
		Instructions:     instructions(states),
		NotesForAudio:    notesForAudio(states),
	}
}

func emptyStates() []StringState {
	states := make([]StringState, len(theory.Strings))
	for i, s := range theory.Strings {
		states[i] = StringState{String: s}
	}
	return states
}

// Open strings ring only at the nut. Once moved they sit under the barre finger.
func applyOpenStrings(t Template, offset int, states []StringState) {
	for _, open := range t.OpenStrings {
		isOpen := offset == 0
		fret := offset
		finger := 0
		if !isOpen {
			finger = defaultFinger
			if t.Barre != nil {
				finger = t.Barre.Finger
			}
		}
		states[theory.StrumIndex(open.String)] = StringState{
			String:   open.String,
			Fret:     &fret,
			Interval: open.Interval,
			Finger:   finger,
			Open:     isOpen,
		}
	}
}

func applyPositions(t Template, offset int, states []StringState) {
	for _, pos := range t.Positions {
		fret := pos.Fret + offset
		states[theory.StrumIndex(pos.String)] = StringState{
			String:   pos.String,
			Fret:     &fret,
			Interval: pos.Interval,
			Finger:   pos.Finger,
			Open:     pos.Fret == 0 && offset == 0,
		}
	}
}

func applyMuted(t Template, states []StringState) {
	for _, s := range t.MutedStrings {
		states[theory.StrumIndex(s)] = StringState{String: s, Muted: true}
	}
}

func activeBarre(t Template, offset int) *ActiveBarre {
	if t.Barre == nil {
		return nil
	}
	visible := offset > 0 || t.Barre.ShowInOpen
	if !visible || offset < t.Barre.EngagesFromFret {
		return nil
	}
	return &ActiveBarre{
		FromString: t.Barre.FromString,
		ToString:   t.Barre.ToString,
		Fret:       t.Barre.Fret + offset,
		Finger:     t.Barre.Finger,
	}
}

func fingerPlacements(t Template, offset int) []FingerPlacement {
	placements := make([]FingerPlacement, len(t.Positions))
	for i, pos := range t.Positions {
		placements[i] = FingerPlacement{
			String:   pos.String,
			Fret:     pos.Fret + offset,
			Finger:   pos.Finger,
			Interval: pos.Interval,
			IsRoot:   pos.Interval == theory.Root,
		}
	}
	return placements
}

func fretWindow(states []StringState, barre *ActiveBarre) FretWindow {
	var used []int
	for _, st := range states {
		if st.Sounding() {
			used = append(used, *st.Fret)
		}
	}
	if barre != nil {
		used = append(used, barre.Fret)
	}
	if len(used) == 0 {
		used = append(used, 0)
	}

	minPositive, maxFret := 0, used[0]
	for _, f := range used {
		if f > 0 && (minPositive == 0 || f < minPositive) {
			minPositive = f
		}
		if f > maxFret {
			maxFret = f
		}
	}

	start := 0
	if minPositive > 0 {
		start = max(0, minPositive-1)
	}
	span := max(minWindowFrets, maxFret-start+windowPadding)
	return FretWindow{Start: start, End: start + span - 1}
}

func instructions(states []StringState) []string {
	lines := make([]string, len(states))
	for i, st := range states {
		label := theory.Tuning(st.String).Label
		interval := ""
		if st.Interval != "" {
			interval = fmt.Sprintf(" (%s)", st.Interval)
		}
		switch {
		case !st.Sounding():
			lines[i] = label + ": mute"
		case *st.Fret == 0:
			lines[i] = fmt.Sprintf("%s: open%s", label, interval)
		default:
			lines[i] = fmt.Sprintf("%s: fret %d%s", label, *st.Fret, interval)
		}
	}
	return lines
}

func notesForAudio(states []StringState) []StringFret {
	notes := make([]StringFret, 0, len(states))
	for _, st := range states {
		if st.Sounding() {
			notes = append(notes, StringFret{String: st.String, Fret: *st.Fret})
		}
	}
	return notes
}
