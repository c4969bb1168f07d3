package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/fretlab-api/internal/config"
	"github.com/Conceptual-Machines/fretlab-api/internal/logger"
	"github.com/Conceptual-Machines/fretlab-api/internal/metrics"
	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/riff"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

const (
	maxBeatsPerMeasure = 16
	midiContentType    = "audio/midi"
)

var (
	errMissingProgression = errors.New("either progression_id or progression is required")
	errMissingNoteID      = errors.New("note_id is required")
	errUnknownSpeed       = errors.New("unknown speed")
)

type RiffHandler struct {
	cfg        *config.Config
	presets    []theory.Progression
	cloudwatch *metrics.Client
}

func NewRiffHandler(cfg *config.Config, presets []theory.Progression, cloudwatch *metrics.Client) *RiffHandler {
	return &RiffHandler{
		cfg:        cfg,
		presets:    presets,
		cloudwatch: cloudwatch,
	}
}

type RiffResponse struct {
	Riff     models.ProgressionRiff `json:"riff"`
	Seed     int64                  `json:"seed"`
	Tab      *models.TabSheet       `json:"tab,omitempty"`
	Schedule *models.Schedule       `json:"schedule,omitempty"`
}

type ChordRiffResponse struct {
	Chord string           `json:"chord"`
	Riff  models.ChordRiff `json:"riff"`
	Seed  int64            `json:"seed"`
}

type EditResponse struct {
	Riff models.ProgressionRiff `json:"riff"`
}

// generator returns a generator for the requested seed, or a fresh seed when none was sent.
// The seed is echoed back so a riff can be regenerated.
func generator(seed *int64) (*riff.Generator, int64) {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return riff.NewSeededGenerator(s), s
}

func (h *RiffHandler) style(name string) (models.Style, error) {
	if name == "" {
		name = h.cfg.DefaultRiffStyle
	}
	return riff.ParseStyle(name)
}

func (h *RiffHandler) tempo(bpm int, speed string) (int, error) {
	if bpm > 0 {
		return bpm, nil
	}
	if speed == "" {
		return h.cfg.DefaultBPM, nil
	}
	preset, ok := riff.SpeedToBPM[speed]
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected slow, medium or fast)", errUnknownSpeed, speed)
	}
	return preset, nil
}

func (h *RiffHandler) progression(req models.RiffRequest) (theory.Progression, error) {
	if req.Progression != nil {
		if err := req.Progression.Validate(); err != nil {
			return theory.Progression{}, err
		}
		return *req.Progression, nil
	}
	if req.ProgressionID == "" {
		return theory.Progression{}, errMissingProgression
	}
	p, ok := theory.FindPreset(h.presets, req.ProgressionID)
	if !ok {
		return theory.Progression{}, fmt.Errorf("%w: no preset %q", theory.ErrInvalidProgression, req.ProgressionID)
	}
	return p, nil
}

func countNotes(r models.ProgressionRiff) int {
	total := 0
	for _, cr := range r.ChordRiffs {
		total += len(cr.Notes)
	}
	return total
}

// Generate builds a riff over a preset or inline progression transposed to the requested root
func (h *RiffHandler) Generate(c *gin.Context) {
	var req models.RiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.progression(req)
	if err != nil {
		badRequest(c, err)
		return
	}
	root, err := theory.ParseNote(req.Root)
	if err != nil {
		badRequest(c, err)
		return
	}
	style, err := h.style(req.Style)
	if err != nil {
		badRequest(c, err)
		return
	}
	bpm, err := h.tempo(req.BPM, req.Speed)
	if err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	g, seed := generator(req.Seed)
	result := g.GenerateProgressionRiff(p, root, style, bpm)
	duration := time.Since(start)

	notes := countNotes(result)
	fields := logger.WithContext(c)
	fields["progression"] = p.ID
	fields["root"] = root.String()
	fields["seed"] = seed
	logger.LogRiffGeneration(c.Request.Context(), string(style), len(result.ChordRiffs), notes, duration, fields)
	sentryMetrics.RecordRiffGeneration(c.Request.Context(), string(style), len(result.ChordRiffs), notes, duration, true)
	h.cloudwatch.RecordRiffGeneration(string(style), len(result.ChordRiffs), notes, duration, true)

	resp := RiffResponse{Riff: result, Seed: seed}
	if req.IncludeTab {
		tab := riff.BuildTabSheet(result, req.Subdivisions)
		resp.Tab = &tab
	}
	if req.IncludeSchedule {
		schedule := riff.BuildSchedule(result)
		resp.Schedule = &schedule
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateChord builds a single measure over one chord
func (h *RiffHandler) GenerateChord(c *gin.Context) {
	var req models.ChordRiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	root, quality, err := parseChord(req.Root, req.Quality)
	if err != nil {
		badRequest(c, err)
		return
	}
	style, err := h.style(req.Style)
	if err != nil {
		badRequest(c, err)
		return
	}

	var next *theory.Note
	if req.NextRoot != "" {
		n, err := theory.ParseNote(req.NextRoot)
		if err != nil {
			badRequest(c, err)
			return
		}
		next = &n
	}

	beats := req.BeatsPerMeasure
	if beats == 0 {
		beats = models.DefaultBeatsPerMeasure
	}
	if beats < 1 || beats > maxBeatsPerMeasure {
		badRequest(c, fmt.Errorf("beats_per_measure must be between 1 and %d", maxBeatsPerMeasure))
		return
	}
	degree := req.Degree
	if degree == "" {
		degree = "I"
	}

	g, seed := generator(req.Seed)
	c.JSON(http.StatusOK, ChordRiffResponse{
		Chord: theory.ChordName(root, quality),
		Riff:  g.GenerateChordRiff(root, quality, degree, next, style, beats),
		Seed:  seed,
	})
}

// editTarget validates the riff, measure, string and fret of an edit request and resolves
// the note, which defaults to the pitch sounded at that fret.
func (h *RiffHandler) editTarget(req models.RiffEditRequest) (theory.GuitarString, theory.Note, error) {
	if err := riff.ValidateRiff(req.Riff, h.cfg.MaxFret); err != nil {
		return 0, 0, err
	}
	if err := riff.CheckMeasure(req.Riff, req.MeasureIndex); err != nil {
		return 0, 0, err
	}
	s, err := theory.ParseString(req.String)
	if err != nil {
		return 0, 0, err
	}
	if req.Fret < 0 || req.Fret > h.cfg.MaxFret {
		return 0, 0, fmt.Errorf("%w: fret %d (allowed 0-%d)", ErrInvalidFretRange, req.Fret, h.cfg.MaxFret)
	}
	if req.Note == "" {
		return s, theory.NoteAt(s, req.Fret), nil
	}
	note, err := theory.ParseNote(req.Note)
	if err != nil {
		return 0, 0, err
	}
	return s, note, nil
}

// AddNote inserts a half-beat note into a measure
func (h *RiffHandler) AddNote(c *gin.Context) {
	var req models.RiffEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, note, err := h.editTarget(req)
	if err != nil {
		badRequest(c, err)
		return
	}
	total := float64(req.Riff.ChordRiffs[req.MeasureIndex].TotalBeats)
	if req.StartBeat < 0 || req.StartBeat >= total {
		badRequest(c, fmt.Errorf("start_beat must be within [0, %g)", total))
		return
	}

	c.JSON(http.StatusOK, EditResponse{
		Riff: riff.AddNote(req.Riff, req.MeasureIndex, s, req.Fret, req.StartBeat, note),
	})
}

// UpdateNote moves an existing note to another string, fret or pitch
func (h *RiffHandler) UpdateNote(c *gin.Context) {
	var req models.RiffEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.NoteID == "" {
		badRequest(c, errMissingNoteID)
		return
	}
	s, note, err := h.editTarget(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, EditResponse{
		Riff: riff.UpdateNote(req.Riff, req.MeasureIndex, req.NoteID, s, req.Fret, note),
	})
}

// RemoveNote deletes a note from a measure
func (h *RiffHandler) RemoveNote(c *gin.Context) {
	var req models.RiffEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.NoteID == "" {
		badRequest(c, errMissingNoteID)
		return
	}
	if err := riff.ValidateRiff(req.Riff, h.cfg.MaxFret); err != nil {
		badRequest(c, err)
		return
	}
	if err := riff.CheckMeasure(req.Riff, req.MeasureIndex); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, EditResponse{
		Riff: riff.RemoveNote(req.Riff, req.MeasureIndex, req.NoteID),
	})
}

func (h *RiffHandler) bindRiff(c *gin.Context) (models.RiffBodyRequest, bool) {
	var req models.RiffBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return req, false
	}
	if err := riff.ValidateRiff(req.Riff, h.cfg.MaxFret); err != nil {
		badRequest(c, err)
		return req, false
	}
	return req, true
}

// Tab renders a riff as tablature slots
func (h *RiffHandler) Tab(c *gin.Context) {
	req, ok := h.bindRiff(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, riff.BuildTabSheet(req.Riff, req.Subdivisions))
}

// Schedule renders a riff as timed playback events
func (h *RiffHandler) Schedule(c *gin.Context) {
	req, ok := h.bindRiff(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, riff.BuildSchedule(req.Riff))
}

// MIDI exports a riff as a Standard MIDI File attachment
func (h *RiffHandler) MIDI(c *gin.Context) {
	req, ok := h.bindRiff(c)
	if !ok {
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := riff.WriteMIDI(&buf, req.Riff); err != nil {
		logger.Error("MIDI export failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	sentryMetrics.RecordPerformanceMetric("riff.midi", time.Since(start), map[string]interface{}{
		"bytes":    buf.Len(),
		"measures": len(req.Riff.ChordRiffs),
	})

	name := req.Riff.ID
	if name == "" {
		name = "riff"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".mid"))
	c.Data(http.StatusOK, midiContentType, buf.Bytes())
}
