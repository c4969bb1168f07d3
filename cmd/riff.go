package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/render"
	"github.com/Conceptual-Machines/fretlab-api/internal/riff"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/spf13/cobra"
)

var riffFlags struct {
	progression  string
	root         string
	style        string
	bpm          int
	seed         int64
	subdivisions int
	midiPath     string
}

func init() {
	f := riffCmd.Flags()
	f.StringVarP(&riffFlags.progression, "progression", "p", "pop-axis", "preset progression id")
	f.StringVarP(&riffFlags.root, "root", "r", "", "key to transpose to (defaults to the preset's key)")
	f.StringVarP(&riffFlags.style, "style", "s", string(models.StyleMelodic), "melodic, arpeggiated or bass-driven")
	f.IntVar(&riffFlags.bpm, "bpm", models.DefaultBPM, "tempo in beats per minute")
	f.Int64Var(&riffFlags.seed, "seed", 0, "random seed, 0 picks one")
	f.IntVar(&riffFlags.subdivisions, "subdivisions", riff.DefaultSubdivisions, "tab slots per measure")
	f.StringVar(&riffFlags.midiPath, "midi", "", "also write the riff to this .mid file")
	rootCmd.AddCommand(riffCmd)
}

var riffCmd = &cobra.Command{
	Use:     "riff",
	Short:   "Generates a riff over a preset progression and prints it as tab",
	Example: "  fretlab riff --progression blues-turnaround --root E --style bass-driven --seed 7 --midi blues.mid",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := theory.LoadPresets()
		if err != nil {
			return err
		}
		p, ok := theory.FindPreset(presets, riffFlags.progression)
		if !ok {
			return fmt.Errorf("%w: no preset %q", theory.ErrInvalidProgression, riffFlags.progression)
		}

		root := p.Key
		if riffFlags.root != "" {
			if root, err = theory.ParseNote(riffFlags.root); err != nil {
				return err
			}
		}
		style, err := riff.ParseStyle(riffFlags.style)
		if err != nil {
			return err
		}
		if riffFlags.bpm <= 0 {
			return fmt.Errorf("bpm must be positive, got %d", riffFlags.bpm)
		}

		seed := riffFlags.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		result := riff.NewSeededGenerator(seed).GenerateProgressionRiff(p, root, style, riffFlags.bpm)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s in %s, %s at %d bpm (seed %d)\n\n", p.Name, root, style, result.BPM, seed)
		fmt.Fprint(out, render.Tab(riff.BuildTabSheet(result, riffFlags.subdivisions)))

		if riffFlags.midiPath == "" {
			return nil
		}
		f, err := os.Create(riffFlags.midiPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := riff.WriteMIDI(f, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nwrote %s\n", riffFlags.midiPath)
		return nil
	},
}
