// Package render draws chord shapes, triads and riffs as terminal text for the CLI.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/shapes"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 3

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	rootStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var stringNames = map[theory.GuitarString]string{
	theory.HighEString: "e",
	theory.BString:     "B",
	theory.GString:     "G",
	theory.DString:     "D",
	theory.AString:     "A",
	theory.LowEString:  "E",
}

// tabOrder lists strings high E first, the way tablature is read
func tabOrder() []theory.GuitarString {
	out := make([]theory.GuitarString, len(theory.Strings))
	for i, s := range theory.Strings {
		out[len(out)-1-i] = s
	}
	return out
}

func cell(text string) string {
	return text + strings.Repeat("-", max(cellWidth-len(text), 0))
}

// Shape draws a fretboard diagram of sh over its fret window followed by its playing
// instructions. Fretted strings show the finger number; roots are highlighted.
func Shape(sh shapes.Shape) string {
	var b strings.Builder

	title := titleStyle
	if sh.AccentColor != "" {
		title = title.Foreground(lipgloss.Color(sh.AccentColor))
	}
	b.WriteString(title.Render(sh.DisplayName))
	b.WriteString("\n")

	b.WriteString("     ")
	for f := sh.FretWindow.Start; f <= sh.FretWindow.End; f++ {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-*d", cellWidth, f)))
	}
	b.WriteString("\n")

	for _, s := range tabOrder() {
		state := sh.State(s)
		marker := " "
		switch {
		case state.Muted:
			marker = mutedStyle.Render("x")
		case state.Fret != nil && *state.Fret == 0:
			marker = "o"
		}
		b.WriteString(fmt.Sprintf("%s %s |", stringNames[s], marker))

		for f := sh.FretWindow.Start; f <= sh.FretWindow.End; f++ {
			if !state.Sounding() || *state.Fret != f || f == 0 {
				b.WriteString(cell(""))
				continue
			}
			mark := "*"
			if state.Finger > 0 {
				mark = strconv.Itoa(state.Finger)
			}
			if state.Interval == theory.Root {
				b.WriteString(rootStyle.Render(cell(mark)))
			} else {
				b.WriteString(cell(mark))
			}
		}
		b.WriteString("\n")
	}

	for _, line := range sh.Instructions {
		b.WriteString(dimStyle.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

// Triads lists triad voicings one per line as string:fret(interval) triples
func Triads(chord string, triads []shapes.TriadPosition) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s triads (%d)", chord, len(triads))))
	b.WriteString("\n")
	for _, t := range triads {
		parts := make([]string, len(t.Notes))
		for i, n := range t.Notes {
			parts[i] = fmt.Sprintf("%d:%d(%s)", n.String, n.Fret, n.Interval)
		}
		b.WriteString(fmt.Sprintf("  frets %2d-%-2d  %s\n", t.MinFret, t.MaxFret, strings.Join(parts, " ")))
	}
	return b.String()
}

// Tab draws each measure of a tab sheet as six lines of fret slots, high E on top
func Tab(sheet models.TabSheet) string {
	var b strings.Builder
	for i, m := range sheet.Measures {
		if i > 0 {
			b.WriteString("\n")
		}
		heading := m.ChordName
		if m.ChordDegree != "" {
			heading = fmt.Sprintf("%s (%s)", m.ChordName, m.ChordDegree)
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("%d. %s", i+1, heading)))
		b.WriteString("\n")

		for _, s := range tabOrder() {
			b.WriteString(stringNames[s])
			b.WriteString("|")
			for _, fret := range m.Positions[s] {
				if fret == nil {
					b.WriteString(cell(""))
				} else {
					b.WriteString(cell(strconv.Itoa(*fret)))
				}
			}
			b.WriteString("|\n")
		}
	}
	return b.String()
}
