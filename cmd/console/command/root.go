package command

import (
	"fmt"
	"os"

	"github.com/DataDog/datadog-agent/pkg/util/fxutil"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/medidesk/console/api"
)

const tokenEnvKey = "MEDIDESK_API_TOKEN"

var logLevel string

// Run executes a given function with dependencies supplied by the console DI graph
// `f` must return an error or nothing
// `opts` can be used to supply additional arguments that are not provided by the console
func Run(f interface{}, opts ...fx.Option) error {
	deps := append(opts, api.Dependencies()...)
	return fxutil.OneShot(f, deps...)
}

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Patient management console",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Overwrite zap's log level, unless the environment sets it and the flag is not given
		if _, ok := os.LookupEnv("LOG_LEVEL"); ok && !cmd.Flags().Changed("log-level") {
			return nil
		}
		return os.Setenv("LOG_LEVEL", logLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "error", "Log Level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
