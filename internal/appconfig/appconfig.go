// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "benchchart.json"
	// defaultBuildTool is the build system used to configure and compile the benchmark target.
	defaultBuildTool = "xmake"
	// defaultBuildMode is the build profile passed to the configure step.
	defaultBuildMode = "release"
	// defaultArch is the target architecture passed to the configure step.
	defaultArch = "x64"
	// defaultTarget is the benchmark target built and executed.
	defaultTarget = "DelegateBenchmark"
	// defaultRepetitions is the number of repetitions requested from the benchmark executable.
	defaultRepetitions = 4
	defaultReportFile  = "results.json"
	defaultChartFile   = "benchmark_fig.png"
	// defaultChartWidth and defaultChartHeight are in inches.
	defaultChartWidth  = 6.4
	defaultChartHeight = 4.8
	defaultViewer      = "system"
	defaultLogFile     = "benchchart.log"
)

// Config represents the top-level application configuration.
type Config struct {
	BaseDir     string  `json:"baseDir,omitempty" mapstructure:"baseDir"`
	BuildTool   string  `json:"buildTool,omitempty" mapstructure:"buildTool"`
	BuildMode   string  `json:"buildMode,omitempty" mapstructure:"buildMode"`
	Arch        string  `json:"arch,omitempty" mapstructure:"arch"`
	Target      string  `json:"target,omitempty" mapstructure:"target"`
	Executable  string  `json:"executable,omitempty" mapstructure:"executable"`
	Repetitions int     `json:"repetitions,omitempty" mapstructure:"repetitions"`
	ReportFile  string  `json:"reportFile,omitempty" mapstructure:"reportFile"`
	ChartFile   string  `json:"chartFile,omitempty" mapstructure:"chartFile"`
	ChartWidth  float64 `json:"chartWidth,omitempty" mapstructure:"chartWidth"`
	ChartHeight float64 `json:"chartHeight,omitempty" mapstructure:"chartHeight"`
	Viewer      string  `json:"viewer,omitempty" mapstructure:"viewer"`
	SkipBuild   bool    `json:"skipBuild" mapstructure:"skipBuild"`
	Debug       bool    `json:"debug" mapstructure:"debug"`
	LogFile     string  `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath  string  `json:"-" mapstructure:"-"`
}

// BaseDirPath returns the absolute directory every relative path is resolved against.
// An empty BaseDir means the current working directory.
func (c Config) BaseDirPath() (string, error) {
	dir := strings.TrimSpace(c.BaseDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve base directory %q: %w", dir, err)
	}
	return abs, nil
}

// BuildCommand returns the build system executable.
func (c Config) BuildCommand() string {
	return orDefault(c.BuildTool, defaultBuildTool)
}

// Mode returns the build profile, defaulting to release.
func (c Config) Mode() string {
	return orDefault(c.BuildMode, defaultBuildMode)
}

// Architecture returns the build architecture, defaulting to x64.
func (c Config) Architecture() string {
	return orDefault(c.Arch, defaultArch)
}

// TargetName returns the build target for the benchmark binary.
func (c Config) TargetName() string {
	return orDefault(c.Target, defaultTarget)
}

// ExecutableName returns the benchmark binary name without any platform suffix.
// It falls back to the build target name.
func (c Config) ExecutableName() string {
	return orDefault(c.Executable, c.TargetName())
}

// RepetitionCount returns the number of benchmark repetitions.
func (c Config) RepetitionCount() int {
	if c.Repetitions <= 0 {
		return defaultRepetitions
	}
	return c.Repetitions
}

// ReportPath returns the report location under baseDir.
func (c Config) ReportPath(baseDir string) string {
	return resolve(baseDir, orDefault(c.ReportFile, defaultReportFile))
}

// ChartPath returns the chart image location under baseDir.
func (c Config) ChartPath(baseDir string) string {
	return resolve(baseDir, orDefault(c.ChartFile, defaultChartFile))
}

// ChartSize returns the chart width and height in inches.
func (c Config) ChartSize() (float64, float64) {
	w, h := c.ChartWidth, c.ChartHeight
	if w <= 0 {
		w = defaultChartWidth
	}
	if h <= 0 {
		h = defaultChartHeight
	}
	return w, h
}

// ViewerMode returns how the chart is presented after it is saved.
func (c Config) ViewerMode() string {
	return strings.ToLower(orDefault(c.Viewer, defaultViewer))
}

// LogFilePath returns the application log file location under baseDir,
// applying a default if not set.
func (c Config) LogFilePath(baseDir string) string {
	return resolve(baseDir, orDefault(c.LogFile, defaultLogFile))
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
