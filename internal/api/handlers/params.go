package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Conceptual-Machines/fretlab-api/internal/riff"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// ChordQuery identifies a chord in a query string
type ChordQuery struct {
	Root    string `form:"root" binding:"required"`
	Quality string `form:"quality" binding:"required"`
}

// Parse validates the root and quality
func (q ChordQuery) Parse() (theory.Note, theory.QualityID, error) {
	return parseChord(q.Root, q.Quality)
}

func parseChord(root, quality string) (theory.Note, theory.QualityID, error) {
	note, err := theory.ParseNote(root)
	if err != nil {
		return 0, "", err
	}
	q, err := theory.LookupQuality(theory.QualityID(quality))
	if err != nil {
		return 0, "", err
	}
	return note, q.ID, nil
}

// ErrInvalidFretRange is returned when a requested fret range is empty or beyond MAX_FRET
var ErrInvalidFretRange = errors.New("invalid fret range")

func parseFretRange(lo int, hi *int, maxFret int) (riff.FretRange, error) {
	r := riff.FretRange{Min: lo, Max: maxFret}
	if hi != nil {
		r.Max = *hi
	}
	if r.Min < 0 || r.Max > maxFret || r.Min > r.Max {
		return riff.FretRange{}, fmt.Errorf("%w: %d-%d (allowed 0-%d)", ErrInvalidFretRange, r.Min, r.Max, maxFret)
	}
	return r, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
