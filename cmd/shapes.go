package cmd

import (
	"fmt"

	"github.com/Conceptual-Machines/fretlab-api/internal/render"
	"github.com/Conceptual-Machines/fretlab-api/internal/shapes"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(triadsCmd)
}

var shapesCmd = &cobra.Command{
	Use:     "shapes ROOT QUALITY",
	Short:   "Prints every fingering of a chord",
	Example: "  fretlab shapes G major\n  fretlab shapes F# minor7",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, quality, err := parseChordArgs(args)
		if err != nil {
			return err
		}
		found := shapes.Instantiate(root, quality)
		if len(found) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no shapes for %s\n", theory.ChordName(root, quality))
			return nil
		}
		for i, sh := range found {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Shape(sh))
		}
		return nil
	},
}

var triadsCmd = &cobra.Command{
	Use:     "triads ROOT QUALITY",
	Short:   "Lists three-string voicings of a chord",
	Example: "  fretlab triads C major",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, quality, err := parseChordArgs(args)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), render.Triads(theory.ChordName(root, quality), shapes.Triads(root, quality)))
		return nil
	},
}

func parseChordArgs(args []string) (theory.Note, theory.QualityID, error) {
	root, err := theory.ParseNote(args[0])
	if err != nil {
		return 0, "", err
	}
	q, err := theory.LookupQuality(theory.QualityID(args[1]))
	if err != nil {
		return 0, "", err
	}
	return root, q.ID, nil
}
