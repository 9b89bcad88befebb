package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout and, when logPath is set, to an
// append-mode log file as well.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches the log file opened by Init and points the standard logger
// back at stderr. It is safe to call when no file is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes one formatted line to every destination configured by Init.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogCommand records a subprocess invocation before it is started.
func LogCommand(step, name string, args []string) {
	log.Println(buildCommandMessage(step, name, args))
}

func buildCommandMessage(step, name string, args []string) string {
	stepValue := strings.ToUpper(strings.TrimSpace(step))
	if stepValue == "" {
		stepValue = "EXEC"
	}
	nameValue := strings.TrimSpace(name)
	if nameValue == "" {
		nameValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", stepValue)}
	parts = append(parts, fmt.Sprintf("cmd=%s", nameValue))
	parts = append(parts, fmt.Sprintf("args=%s", formatArgs(args)))
	return strings.Join(parts, " ")
}

func formatArgs(args []string) string {
	if len(args) == 0 {
		return "[]"
	}
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"") {
			quoted = append(quoted, strconv.Quote(arg))
			continue
		}
		quoted = append(quoted, arg)
	}
	return "[" + strings.Join(quoted, " ") + "]"
}
