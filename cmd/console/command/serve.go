package command

import (
	"github.com/spf13/cobra"

	"github.com/medidesk/console/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web console",
	Long:  "The serve command starts the web console and blocks until it receives a termination signal",
	Run: func(cmd *cobra.Command, args []string) {
		api.MainLoop()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
