package cmd

import (
	"github.com/spf13/cobra"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

var rootCmd = &cobra.Command{
	Use:   "fretlab",
	Short: "Guitar chord shapes and riff generator",
	Long: `fretlab turns chord symbols into playable guitar fingerings and generates riffs over
chord progressions. Run "fretlab serve" for the HTTP API.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
