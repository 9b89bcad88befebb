package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	baseDir, err := cfg.BaseDirPath()
	if err != nil {
		baseDir = fmt.Sprintf("<%v>", err)
	}
	width, height := cfg.ChartSize()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Base Dir:     %s\n", baseDir)
	fmt.Fprintf(out, "  Build Tool:   %s\n", cfg.BuildCommand())
	fmt.Fprintf(out, "  Build Mode:   %s\n", cfg.Mode())
	fmt.Fprintf(out, "  Arch:         %s\n", cfg.Architecture())
	fmt.Fprintf(out, "  Target:       %s\n", cfg.TargetName())
	fmt.Fprintf(out, "  Executable:   %s\n", cfg.ExecutableName())
	fmt.Fprintf(out, "  Repetitions:  %d\n", cfg.RepetitionCount())
	fmt.Fprintf(out, "  Report File:  %s\n", cfg.ReportPath(baseDir))
	fmt.Fprintf(out, "  Chart File:   %s\n", cfg.ChartPath(baseDir))
	fmt.Fprintf(out, "  Chart Size:   %.1fx%.1f in\n", width, height)
	fmt.Fprintf(out, "  Viewer:       %s\n", cfg.ViewerMode())
	fmt.Fprintf(out, "  Skip Build:   %v\n", cfg.SkipBuild)
	fmt.Fprintf(out, "  Debug:        %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:     %s\n", cfg.LogFilePath(baseDir))
}
