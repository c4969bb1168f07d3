package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretlab-api/internal/config"
	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/riff"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	cfg *config.Config
}

func NewPositionHandler(cfg *config.Config) *PositionHandler {
	return &PositionHandler{cfg: cfg}
}

// AvailableQuery selects a string and fret range for a chord
type AvailableQuery struct {
	ChordQuery
	String int  `form:"string" binding:"required"`
	Min    int  `form:"min"`
	Max    *int `form:"max"`
}

type FindPositionResponse struct {
	Note     theory.Note    `json:"note"`
	Found    bool           `json:"found"`
	Position *riff.Position `json:"position,omitempty"`
	Range    riff.FretRange `json:"range"`
}

type AvailableResponse struct {
	Chord   string              `json:"chord"`
	String  theory.GuitarString `json:"string"`
	Range   riff.FretRange      `json:"range"`
	Choices []riff.NoteChoice   `json:"choices"`
}

// Find returns the lowest playable position of a note, trying preferred strings first
func (h *PositionHandler) Find(c *gin.Context) {
	var req models.FindPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := theory.ParseNote(req.Note)
	if err != nil {
		badRequest(c, err)
		return
	}
	preferred := make([]theory.GuitarString, 0, len(req.PreferredStrings))
	for _, n := range req.PreferredStrings {
		s, err := theory.ParseString(n)
		if err != nil {
			badRequest(c, err)
			return
		}
		preferred = append(preferred, s)
	}
	r, err := parseFretRange(req.MinFret, req.MaxFret, h.cfg.MaxFret)
	if err != nil {
		badRequest(c, err)
		return
	}

	resp := FindPositionResponse{Note: note, Range: r}
	if pos, ok := riff.FindNotePosition(note, preferred, r); ok {
		resp.Found = true
		resp.Position = &pos
	}
	c.JSON(http.StatusOK, resp)
}

// Available lists the scale notes playable on one string over a chord
func (h *PositionHandler) Available(c *gin.Context) {
	var query AvailableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	root, quality, err := query.Parse()
	if err != nil {
		badRequest(c, err)
		return
	}
	s, err := theory.ParseString(query.String)
	if err != nil {
		badRequest(c, err)
		return
	}
	r, err := parseFretRange(query.Min, query.Max, h.cfg.MaxFret)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailableResponse{
		Chord:   theory.ChordName(root, quality),
		String:  s,
		Range:   r,
		Choices: riff.AvailableNotesAtPosition(root, quality, s, r),
	})
}
