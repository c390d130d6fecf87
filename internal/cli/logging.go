package cli

import (
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger returns a stderr logger tagged with a fresh run id. Only
// warnings are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *charmlog.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Prefix:          "cimatrix",
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05",
	})
	return logger.With("run", newRunID())
}

func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
