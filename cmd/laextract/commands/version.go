package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radlab-hd/laextract/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Println(version.String())
			return
		}
		fmt.Println(version.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "print only the version number")
}
