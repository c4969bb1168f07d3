package embedded

import (
	_ "embed"
)

// Preset chord progressions, each written in its own key
//
//go:embed data/progressions.json
var ProgressionsJSON []byte
