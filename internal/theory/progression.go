package theory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/fretlab-api/pkg/embedded"
)

// ErrInvalidProgression is returned when a progression fails validation
var ErrInvalidProgression = errors.New("invalid progression")

// ProgressionEntry is one chord of a progression
type ProgressionEntry struct {
	Note    Note      `json:"note"`
	Quality QualityID `json:"quality"`
	Degree  string    `json:"degree"`
}

// Progression is an ordered list of chords written in Key
type Progression struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Key         Note               `json:"key"`
	Chords      []ProgressionEntry `json:"chords"`
}

// Validate checks that the progression is non-empty and every quality is known
func (p Progression) Validate() error {
	if len(p.Chords) == 0 {
		return fmt.Errorf("%w: no chords", ErrInvalidProgression)
	}
	if !p.Key.Valid() {
		return fmt.Errorf("%w: key %d", ErrInvalidProgression, int(p.Key))
	}
	for i, entry := range p.Chords {
		if !entry.Note.Valid() {
			return fmt.Errorf("%w: chord %d: %w", ErrInvalidProgression, i, ErrUnknownNote)
		}
		if _, err := LookupQuality(entry.Quality); err != nil {
			return fmt.Errorf("%w: chord %d: %w", ErrInvalidProgression, i, err)
		}
	}
	return nil
}

// Transpose moves every chord so that the progression's key becomes root.
// The input is not modified.
func (p Progression) Transpose(root Note) Progression {
	shift := p.Key.DistanceTo(root)
	out := p
	out.Key = root
	out.Chords = make([]ProgressionEntry, len(p.Chords))
	for i, entry := range p.Chords {
		entry.Note = entry.Note.Transpose(shift)
		out.Chords[i] = entry
	}
	return out
}

// ParsePresets decodes and validates a JSON list of progressions
func ParsePresets(data []byte) ([]Progression, error) {
	var presets []Progression
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse progressions: %w", err)
	}
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: missing id", ErrInvalidProgression)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidProgression, p.ID)
		}
		seen[p.ID] = true
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("progression %q: %w", p.ID, err)
		}
	}
	return presets, nil
}

// LoadPresets returns the bundled preset progressions
func LoadPresets() ([]Progression, error) {
	return ParsePresets(embedded.ProgressionsJSON)
}

// FindPreset looks up a progression by id
func FindPreset(presets []Progression, id string) (Progression, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Progression{}, false
}
