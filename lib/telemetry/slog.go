package telemetry

import (
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// InitSlog replaces the default slog handler with a human readable
// console one. verbose enables debug output.
func InitSlog(verbose bool) {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(logger))
}
