package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// TheoryHandler serves the static music theory tables
type TheoryHandler struct {
	presets []theory.Progression
}

func NewTheoryHandler(presets []theory.Progression) *TheoryHandler {
	return &TheoryHandler{presets: presets}
}

// TuningEntry is one open string of standard tuning
type TuningEntry struct {
	String theory.GuitarString `json:"string"`
	theory.StringTuning
}

type NotesResponse struct {
	Notes  []theory.NoteOption `json:"notes"`
	Tuning []TuningEntry       `json:"tuning"`
}

type ScaleResponse struct {
	Chord      string           `json:"chord"`
	Root       theory.Note      `json:"root"`
	Quality    theory.QualityID `json:"quality"`
	Scale      *theory.Scale    `json:"scale,omitempty"`
	Notes      []theory.Note    `json:"notes"`
	ChordTones []theory.Note    `json:"chordTones"`
	Candidates []theory.Scale   `json:"candidates"`
}

// Notes lists the selectable notes and the open strings, low E first
func (h *TheoryHandler) Notes(c *gin.Context) {
	tuning := make([]TuningEntry, len(theory.Strings))
	for i, s := range theory.Strings {
		tuning[i] = TuningEntry{String: s, StringTuning: theory.Tuning(s)}
	}
	c.JSON(http.StatusOK, NotesResponse{
		Notes:  theory.NoteOptions(),
		Tuning: tuning,
	})
}

// Qualities lists the chord quality table
func (h *TheoryHandler) Qualities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"qualities": theory.Qualities()})
}

// Scales returns the best-fit scale for a chord. Qualities no scale fits fall back to the
// chord tones.
func (h *TheoryHandler) Scales(c *gin.Context) {
	var query ChordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	root, quality, err := query.Parse()
	if err != nil {
		badRequest(c, err)
		return
	}

	resp := ScaleResponse{
		Chord:      theory.ChordName(root, quality),
		Root:       root,
		Quality:    quality,
		Notes:      theory.ScaleNotes(root, quality),
		ChordTones: theory.ChordTones(root, quality),
		Candidates: theory.ScalesForQuality(quality),
	}
	if best, ok := theory.BestScaleForQuality(quality); ok {
		resp.Scale = &best
	}
	c.JSON(http.StatusOK, resp)
}

// Progressions lists the preset progressions in their written key
func (h *TheoryHandler) Progressions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"progressions": h.presets})
}
