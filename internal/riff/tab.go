package riff

import (
	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/Conceptual-Machines/fretlab-api/internal/util"
)

// DefaultSubdivisions is eighth-note resolution in 4/4
const DefaultSubdivisions = 8

// SpeedToBPM maps the playback speed presets to tempos
var SpeedToBPM = map[string]int{
	"slow":   80,
	"medium": 120,
	"fast":   160,
}

// BuildTabSheet lays each measure out as fret slots per string. A note lands in slot
// floor(startBeat * subdivisions / totalBeats); a later note in the same slot wins.
func BuildTabSheet(r models.ProgressionRiff, subdivisions int) models.TabSheet {
	if subdivisions <= 0 {
		subdivisions = DefaultSubdivisions
	}

	sheet := models.TabSheet{
		Measures:        make([]models.TabMeasure, len(r.ChordRiffs)),
		BPM:             r.BPM,
		BeatsPerMeasure: models.DefaultBeatsPerMeasure,
	}
	if len(r.ChordRiffs) > 0 && r.ChordRiffs[0].TotalBeats > 0 {
		sheet.BeatsPerMeasure = r.ChordRiffs[0].TotalBeats
	}

	for i, cr := range r.ChordRiffs {
		positions := make(map[theory.GuitarString][]*int, len(theory.Strings))
		for _, s := range theory.Strings {
			positions[s] = make([]*int, subdivisions)
		}

		totalBeats := cr.TotalBeats
		if totalBeats <= 0 {
			totalBeats = models.DefaultBeatsPerMeasure
		}
		for _, n := range cr.Notes {
			slots, ok := positions[n.String]
			if !ok {
				continue
			}
			slot := util.Clamp(int(n.StartBeat*float64(subdivisions)/float64(totalBeats)), 0, subdivisions-1)
			fret := n.Fret
			slots[slot] = &fret
		}

		sheet.Measures[i] = models.TabMeasure{
			ChordName:    theory.ChordName(cr.ChordRoot, cr.ChordQuality),
			ChordDegree:  cr.ChordDegree,
			Positions:    positions,
			Subdivisions: subdivisions,
		}
	}
	return sheet
}
