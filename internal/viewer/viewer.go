// Package viewer presents a rendered chart once it has been written to disk.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/report"
)

// Mode selects how results are shown.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeTUI    Mode = "tui"
	ModeNone   Mode = "none"
)

// ParseMode accepts system, tui or none (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSystem, ModeTUI, ModeNone:
		return m, nil
	case "":
		return ModeSystem, nil
	}
	return "", fmt.Errorf("unknown viewer %q (want system, tui or none)", s)
}

// openCommand allows tests to substitute the platform opener.
var openCommand = exec.Command

// runTable allows tests to skip the interactive program.
var runTable = RunTable

// OpenerCommand returns the program and arguments that open path in the
// platform's default image viewer.
func OpenerCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	}
	return "", nil, fmt.Errorf("no image viewer known for %s", goos)
}

// Open launches the platform viewer for path.
func Open(path string) error {
	name, args, err := OpenerCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	logging.LogCommand("view", name, args)
	if err := openCommand(name, args...).Run(); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, name, err)
	}
	return nil
}

// Show presents the chart according to mode. A viewer that cannot be
// launched is logged and otherwise ignored; the chart is already on disk.
func Show(mode Mode, chartPath string, rows []report.SummaryRow) error {
	switch mode {
	case ModeNone:
		return nil
	case ModeTUI:
		return runTable(chartPath, rows)
	default:
		if err := Open(chartPath); err != nil {
			logging.LogEvent("[VIEW] unable to display %s: %v", chartPath, err)
		}
		return nil
	}
}
