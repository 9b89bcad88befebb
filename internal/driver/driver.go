// Package driver builds the benchmark target and runs the benchmark executable.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/fatih/color"
	"github.com/mwiater/benchchart/internal/logging"
)

// execCommand allows tests to substitute the subprocess.
var execCommand = exec.CommandContext

var successText = color.New(color.FgGreen).SprintFunc()

// BuildSpec describes how the benchmark target is configured and compiled.
type BuildSpec struct {
	Tool   string
	Mode   string
	Arch   string
	Target string
}

// ConfigureArgs returns the arguments of the configure step.
func (s BuildSpec) ConfigureArgs() []string {
	return []string{"f", "-m", s.Mode, "-a", s.Arch, "-y"}
}

// BuildArgs returns the arguments of the build step.
func (s BuildSpec) BuildArgs() []string {
	return []string{"build", s.Target}
}

// BuildError is returned when the configure or build step exits non-zero.
// Output holds the captured stderr of the failing step.
type BuildError struct {
	Step     string
	ExitCode int
	Output   string
	Err      error
}

func (e *BuildError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s step failed with exit code %d", e.Step, e.ExitCode)
}

func (e *BuildError) Unwrap() error { return e.Err }

// RunError is returned when the benchmark executable exits non-zero.
type RunError struct {
	ExitCode int
	Err      error
}

func (e *RunError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("subprocess failed: %v", e.Err)
	}
	return fmt.Sprintf("subprocess failed with exit code %d", e.ExitCode)
}

func (e *RunError) Unwrap() error { return e.Err }

// Driver runs build and benchmark subprocesses one at a time in Dir.
type Driver struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Driver rooted at dir.
func New(dir string, stdout, stderr io.Writer) *Driver {
	return &Driver{Dir: dir, Stdout: stdout, Stderr: stderr}
}

// Configure selects the build profile and architecture.
func (d *Driver) Configure(ctx context.Context, spec BuildSpec) error {
	return d.buildStep(ctx, "configure", spec.Tool, spec.ConfigureArgs())
}

// Build compiles the benchmark target.
func (d *Driver) Build(ctx context.Context, spec BuildSpec) error {
	return d.buildStep(ctx, "build", spec.Tool, spec.BuildArgs())
}

func (d *Driver) buildStep(ctx context.Context, step, name string, args []string) error {
	logging.LogCommand(step, name, args)

	var stderr bytes.Buffer
	cmd := execCommand(ctx, name, args...)
	cmd.Dir = d.Dir
	cmd.Stdout = d.Stdout
	cmd.Stderr = &stderr
	if d.Stderr != nil {
		// Warnings from a successful build still reach the console.
		cmd.Stderr = io.MultiWriter(d.Stderr, &stderr)
	}

	if err := cmd.Run(); err != nil {
		return &BuildError{Step: step, ExitCode: exitCode(err), Output: stderr.String(), Err: err}
	}
	return nil
}

// RunBenchmark executes the benchmark binary with options and waits for it to exit.
func (d *Driver) RunBenchmark(ctx context.Context, executable string, options []string) error {
	logging.LogCommand("benchmark", executable, options)

	cmd := execCommand(ctx, executable, options...)
	cmd.Dir = d.Dir
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr

	if err := cmd.Run(); err != nil {
		return &RunError{ExitCode: exitCode(err), Err: err}
	}
	fmt.Fprintln(d.Stdout, successText("Subprocess executed successfully"))
	return nil
}

// BenchmarkOptions returns the command line that makes the benchmark write a
// JSON report with the given number of repetitions to reportPath.
func BenchmarkOptions(repetitions int, reportPath string) []string {
	return []string{
		"--benchmark_repetitions=" + strconv.Itoa(repetitions),
		"--benchmark_format=json",
		"--benchmark_out=" + reportPath,
	}
}

// exitCode returns the process exit code, or -1 when the process never ran
// or was killed by a signal.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
