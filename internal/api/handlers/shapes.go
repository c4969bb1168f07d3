package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretlab-api/internal/metrics"
	"github.com/Conceptual-Machines/fretlab-api/internal/shapes"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

var sentryMetrics = metrics.NewSentryMetrics()

type ShapesHandler struct {
	cloudwatch *metrics.Client
}

func NewShapesHandler(cloudwatch *metrics.Client) *ShapesHandler {
	return &ShapesHandler{cloudwatch: cloudwatch}
}

type ShapesResponse struct {
	Chord   string         `json:"chord"`
	Root    theory.Note    `json:"root"`
	Quality theory.Quality `json:"quality"`
	Shapes  []shapes.Shape `json:"shapes"`
}

type TriadsResponse struct {
	Chord  string                 `json:"chord"`
	Triads []shapes.TriadPosition `json:"triads"`
}

// Shapes instantiates every fingering template that supports the chord
func (h *ShapesHandler) Shapes(c *gin.Context) {
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

	chord := theory.ChordName(root, quality)
	found := shapes.Instantiate(root, quality)
	sentryMetrics.RecordShapeLookup(c.Request.Context(), chord, len(found))
	h.cloudwatch.RecordShapeLookup(string(quality), len(found))

	c.JSON(http.StatusOK, ShapesResponse{
		Chord:   chord,
		Root:    root,
		Quality: theory.MustQuality(quality),
		Shapes:  found,
	})
}

// Triads lists the closed three-string voicings of the chord
func (h *ShapesHandler) Triads(c *gin.Context) {
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

	c.JSON(http.StatusOK, TriadsResponse{
		Chord:  theory.ChordName(root, quality),
		Triads: shapes.Triads(root, quality),
	})
}
