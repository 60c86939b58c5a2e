// Package bundle runs the extract-then-convert pipeline.
package bundle

import (
	"context"
	"fmt"
	"io"

	"github.com/gorewood/mdbundle/internal/config"
	"github.com/gorewood/mdbundle/internal/convert"
	"github.com/gorewood/mdbundle/internal/output"
	"github.com/gorewood/mdbundle/internal/summary"
)

// Report is the outcome of one Build.
type Report struct {
	Summary     string          `json:"summary"`
	Output      string          `json:"output"`
	References  []string        `json:"references"`
	CommandLine string          `json:"command"`
	DryRun      bool            `json:"dry_run"`
	Result      *convert.Result `json:"result,omitempty"`
}

// Options carries the I/O wiring for a Build.
type Options struct {
	// Dir is the working directory for the summary and the converter.
	// Empty means the process working directory.
	Dir string
	// ConverterStdin is passed to the converter. Leave nil when stdin
	// belongs to something else, such as an MCP transport.
	ConverterStdin io.Reader
	// ConverterStdout and ConverterStderr receive the converter's own output.
	ConverterStdout io.Writer
	ConverterStderr io.Writer
}

// Build extracts references from cfg.Summary and combines them into
// cfg.Output. It prints "Command: ..." before the converter runs and the
// completion line after it, whatever the converter's exit status. A nonzero
// exit produces a warning, or a system error when cfg.Strict is set.
func Build(ctx context.Context, cfg config.Config, printer *output.Printer, opts Options) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	refs, err := summary.Extract(resolve(opts.Dir, cfg.Summary))
	if err != nil {
		return nil, err
	}

	conv := convert.New(cfg.Converter, cfg.PDFEngine)
	conv.Dir = opts.Dir
	conv.Stdin = opts.ConverterStdin
	conv.Stdout = opts.ConverterStdout
	conv.Stderr = opts.ConverterStderr
	conv.Announce = func(line string) {
		printer.Logf("Command: %s", line)
	}

	report := &Report{
		Summary:     cfg.Summary,
		Output:      cfg.Output,
		References:  refs,
		CommandLine: conv.CommandLine(refs, cfg.Output),
		DryRun:      cfg.DryRun,
	}

	if cfg.DryRun {
		conv.Announce(report.CommandLine)
		return report, nil
	}

	result, err := conv.Combine(ctx, refs, cfg.Output)
	if err != nil {
		return nil, err
	}
	report.Result = result

	if !printer.IsJSON() {
		_ = printer.Success(map[string]any{"message": "Combined markdown files into " + cfg.Output})
	}

	if !result.Succeeded() {
		msg := fmt.Sprintf("%s exited with status %d", cfg.Converter, result.ExitCode)
		if result.Stderr != "" {
			msg += ": " + lastLine(result.Stderr)
		}
		if cfg.Strict {
			return report, output.NewSystemError(msg)
		}
		if !printer.IsJSON() {
			printer.Warn("%s", msg)
		}
	} else if !result.OutputExists && !printer.IsJSON() {
		printer.Warn("%s exited successfully but %s was not written", cfg.Converter, cfg.Output)
	}

	return report, nil
}
