package main

import (
	"github.com/spf13/cobra"

	"github.com/signalsfoundry/space-traffic-simulator/internal/logging"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Space traffic simulation: scenario evaluation, orbit propagation, conjunction screening",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(propagateCmd)
	rootCmd.AddCommand(runCmd)
}

func newLogger() logging.Logger {
	return logging.New(logging.Config{Level: logLevel, Format: logFormat})
}

func loggingError(err error) logging.Field {
	return logging.String("error", err.Error())
}
