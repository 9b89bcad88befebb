// Package pipeline wires the build, benchmark, aggregation, chart and viewer
// stages together. Stages run strictly one after another.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/k0kubun/pp"
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/driver"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/report"
	"github.com/mwiater/benchchart/internal/viewer"
	"gonum.org/v1/plot/vg"
)

// benchDriver is the subset of *driver.Driver the pipeline needs.
type benchDriver interface {
	Configure(ctx context.Context, spec driver.BuildSpec) error
	Build(ctx context.Context, spec driver.BuildSpec) error
	RunBenchmark(ctx context.Context, executable string, options []string) error
}

var (
	newDriver = func(dir string, stdout, stderr io.Writer) benchDriver {
		return driver.New(dir, stdout, stderr)
	}
	resolveExecutable = driver.ResolveExecutable
	showChart         = viewer.Show
	goos              = runtime.GOOS
)

// Run checks that the benchmark executable exists, rebuilds and runs it, and
// charts the report it writes.
func Run(ctx context.Context, cfg *appconfig.Config, stdout, stderr io.Writer) error {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	mode, err := viewer.ParseMode(cfg.ViewerMode())
	if err != nil {
		return err
	}
	baseDir, err := cfg.BaseDirPath()
	if err != nil {
		return err
	}
	logging.LogEvent("[RUN] base dir %s", baseDir)
	if cfg.Debug {
		pp.Fprintln(stdout, cfg)
	}

	// Nothing is spawned unless the benchmark binary is already in place.
	executable, err := resolveExecutable(baseDir, goos, cfg.Architecture(), cfg.Mode(), cfg.ExecutableName())
	if err != nil {
		return err
	}

	d := newDriver(baseDir, stdout, stderr)
	if cfg.SkipBuild {
		logging.LogEvent("[BUILD] skipped")
	} else {
		spec := driver.BuildSpec{
			Tool:   cfg.BuildCommand(),
			Mode:   cfg.Mode(),
			Arch:   cfg.Architecture(),
			Target: cfg.TargetName(),
		}
		if err := d.Configure(ctx, spec); err != nil {
			return err
		}
		if err := d.Build(ctx, spec); err != nil {
			return err
		}
	}

	reportPath := cfg.ReportPath(baseDir)
	if err := d.RunBenchmark(ctx, executable, driver.BenchmarkOptions(cfg.RepetitionCount(), reportPath)); err != nil {
		return err
	}

	return present(cfg, baseDir, mode, stdout)
}

// Render charts an existing report without building or running anything.
func Render(ctx context.Context, cfg *appconfig.Config, stdout io.Writer) error {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	mode, err := viewer.ParseMode(cfg.ViewerMode())
	if err != nil {
		return err
	}
	baseDir, err := cfg.BaseDirPath()
	if err != nil {
		return err
	}
	return present(cfg, baseDir, mode, stdout)
}

func present(cfg *appconfig.Config, baseDir string, mode viewer.Mode, stdout io.Writer) error {
	reportPath := cfg.ReportPath(baseDir)
	rep, err := report.Load(reportPath)
	if err != nil {
		return err
	}
	logContext(rep.Context)

	results, err := report.Aggregate(rep.Benchmarks)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", reportPath, err)
	}
	logging.LogEvent("[REPORT] %d records, %d cases", len(rep.Benchmarks), results.Len())

	rows := report.Summary(results)
	fmt.Fprintln(stdout, renderSummary(rows))
	if cfg.Debug {
		pp.Fprintln(stdout, rows)
	}

	width, height := cfg.ChartSize()
	opts := chart.Options{Width: vg.Length(width) * vg.Inch, Height: vg.Length(height) * vg.Inch}
	p, err := chart.New(results, opts)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}
	chartPath := cfg.ChartPath(baseDir)
	if err := chart.Save(p, chartPath, opts); err != nil {
		return err
	}
	logging.LogEvent("[CHART] written to %s", chartPath)

	return showChart(mode, chartPath, rows)
}

func logContext(c report.Context) {
	if c.HostName == "" && c.Executable == "" && c.Date == "" {
		return
	}
	logging.LogEvent("[REPORT] host=%s cpus=%d mhz=%d build=%s date=%s executable=%s",
		c.HostName, c.NumCPUs, c.MHzPerCPU, c.LibraryBuildType, c.Date, c.Executable)
}
