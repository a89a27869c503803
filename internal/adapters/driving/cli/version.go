package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the paperchat version",
	Long: `Show the version this binary was built as.

Release builds stamp the version at link time; builds straight from
source report "dev".`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("paperchat version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
