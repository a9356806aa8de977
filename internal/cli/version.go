package cli

import "github.com/spf13/cobra"

// Set at build time with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("resumescore version %s\ngit commit %s\nbuilt %s\n",
			Version, GitCommit, BuildDate)
	},
}
