// version.go implements the "tutor version" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorterm/tutor/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tutor version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tutor %s\n", version.Effective())
	},
}
