// Package logging provides the single background structured logger used
// by a crack run. The TUI owns the terminal while a run is active, so
// nothing may write to stdout/stderr; every lifecycle event instead goes
// to a log file via github.com/charmbracelet/log, the logging library the
// retrieval pack's other long-running terminal tool
// (doismellburning-samoyed) uses for exactly this situation.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
)

// Open creates or appends to the log file at path (or, if path is empty,
// "zcrack.log" in os.TempDir()) and returns a logger writing structured
// entries to it. The caller owns the returned file and should Close it
// when the run ends.
func Open(path string) (*charmlog.Logger, *os.File, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "zcrack.log")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger := charmlog.NewWithOptions(f, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "zcrack",
	})
	logger.SetLevel(charmlog.InfoLevel)
	return logger, f, nil
}
