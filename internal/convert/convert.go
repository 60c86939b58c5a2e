package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/mdbundle/internal/output"
)

// Defaults for the converter program and its PDF engine.
const (
	DefaultProgram = "pandoc"
	DefaultEngine  = "xelatex"
)

// Converter assembles and runs converter invocations.
type Converter struct {
	Program string
	Engine  string

	// Dir is the working directory for the converter. Empty means the
	// current directory, which is what relative references resolve against.
	Dir string

	// Stdin is handed to the converter, which reads it when given no input
	// files. Nil means the null device.
	Stdin io.Reader

	// Stdout and Stderr receive the converter's output as it runs.
	// Nil discards it. Stderr is captured into the Result either way.
	Stdout io.Writer
	Stderr io.Writer

	// Announce is called with the full command line before the converter starts.
	Announce func(commandLine string)
}

// Result describes a finished converter run.
type Result struct {
	Args     []string      `json:"args"`
	ExitCode int           `json:"exit_code"`
	Stderr   string        `json:"stderr,omitempty"`
	Duration time.Duration `json:"duration"`

	// OutputExists and OutputSize describe the output file after the run.
	OutputExists bool  `json:"output_exists"`
	OutputSize   int64 `json:"output_size"`
}

// Succeeded reports whether the converter exited zero.
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}

// New creates a Converter for program using the given PDF engine.
func New(program, engine string) *Converter {
	return &Converter{Program: program, Engine: engine}
}

// Args returns the full argv, program first.
// Input files keep their order and the output designation always comes last.
func (c *Converter) Args(files []string, outputPath string) []string {
	args := make([]string, 0, len(files)+4)
	args = append(args, c.Program, "--pdf-engine="+c.Engine)
	args = append(args, files...)
	return append(args, "-o", outputPath)
}

// CommandLine returns the argv joined by single spaces, for display.
func (c *Converter) CommandLine(files []string, outputPath string) string {
	return strings.Join(c.Args(files, outputPath), " ")
}

// Combine runs the converter over files, writing outputPath, and waits for it
// to exit. The returned error is non-nil only when the converter could not be
// run at all; a nonzero exit is reported through Result.ExitCode.
func (c *Converter) Combine(ctx context.Context, files []string, outputPath string) (*Result, error) {
	argv := c.Args(files, outputPath)
	if c.Announce != nil {
		c.Announce(strings.Join(argv, " "))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = &stderr
	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, c.Stderr)
	}

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Args:     argv,
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}

	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, output.NewSystemErrorWithCause(
				c.Program+" not found: ensure the converter is installed and in PATH", err)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, output.NewSystemErrorWithCause("running "+c.Program+": "+err.Error(), err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	result.OutputExists, result.OutputSize = statOutput(c.Dir, outputPath)
	return result, nil
}

// statOutput reports whether the output file exists and its size.
func statOutput(dir, outputPath string) (bool, int64) {
	path := outputPath
	if dir != "" && !filepath.IsAbs(outputPath) {
		path = filepath.Join(dir, outputPath)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false, 0
	}
	return true, info.Size()
}
