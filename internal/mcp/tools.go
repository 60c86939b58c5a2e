package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/mdbundle/internal/bundle"
	"github.com/gorewood/mdbundle/internal/config"
	"github.com/gorewood/mdbundle/internal/output"
	"github.com/gorewood/mdbundle/internal/summary"
)

// --- Extract tool ---

// ExtractInput is the input for the extract tool.
type ExtractInput struct {
	Summary string `json:"summary,omitempty" jsonschema:"summary file path (default from config, usually SUMMARY.md)"`
}

// ExtractOutput is the output for the extract tool.
type ExtractOutput struct {
	Summary    string   `json:"summary"    jsonschema:"summary file that was read"`
	Count      int      `json:"count"      jsonschema:"number of references found"`
	References []string `json:"references" jsonschema:"referenced markdown files in summary order"`
}

func handleExtract(base config.Config) mcp.ToolHandlerFor[ExtractInput, ExtractOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
		path := base.Summary
		if input.Summary != "" {
			path = input.Summary
		}

		refs, err := summary.Extract(path)
		if err != nil {
			return nil, ExtractOutput{}, fmt.Errorf("extracting references: %w", err)
		}

		return nil, ExtractOutput{
			Summary:    path,
			Count:      len(refs),
			References: refs,
		}, nil
	}
}

// --- Bundle tool ---

// BundleInput is the input for the bundle tool.
type BundleInput struct {
	Summary string `json:"summary,omitempty" jsonschema:"summary file path (default from config)"`
	Output  string `json:"output,omitempty"  jsonschema:"output document path (default from config)"`
	DryRun  bool   `json:"dry_run,omitempty" jsonschema:"return the converter command without running it"`
}

// BundleOutput is the output for the bundle tool.
type BundleOutput struct {
	Command      string   `json:"command"                 jsonschema:"converter command line"`
	References   []string `json:"references"              jsonschema:"markdown files passed to the converter"`
	Output       string   `json:"output"                  jsonschema:"output document path"`
	DryRun       bool     `json:"dry_run"                 jsonschema:"true if the converter was not run"`
	ExitCode     int      `json:"exit_code"               jsonschema:"converter exit status"`
	Stderr       string   `json:"stderr,omitempty"        jsonschema:"converter stderr"`
	OutputExists bool     `json:"output_exists"           jsonschema:"whether the output file exists after the run"`
	OutputSize   int64    `json:"output_size,omitempty"   jsonschema:"output file size in bytes"`
	Warning      string   `json:"warning,omitempty"       jsonschema:"non-fatal warning message"`
}

func handleBundle(base config.Config) mcp.ToolHandlerFor[BundleInput, BundleOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BundleInput) (*mcp.CallToolResult, BundleOutput, error) {
		cfg := base
		if input.Summary != "" {
			cfg.Summary = input.Summary
		}
		if input.Output != "" {
			cfg.Output = input.Output
		}
		cfg.DryRun = input.DryRun

		// stdout is the MCP transport; nothing may be printed to it.
		printer := output.NewPrinter(io.Discard, true, false)
		report, err := bundle.Build(ctx, cfg, printer, bundle.Options{})
		if err != nil {
			return nil, BundleOutput{}, fmt.Errorf("bundling: %w", err)
		}

		return nil, toBundleOutput(cfg, report), nil
	}
}

// toBundleOutput flattens a bundle report into the tool output.
func toBundleOutput(cfg config.Config, report *bundle.Report) BundleOutput {
	out := BundleOutput{
		Command:    report.CommandLine,
		References: report.References,
		Output:     report.Output,
		DryRun:     report.DryRun,
	}
	if report.Result == nil {
		return out
	}

	out.ExitCode = report.Result.ExitCode
	out.Stderr = report.Result.Stderr
	out.OutputExists = report.Result.OutputExists
	out.OutputSize = report.Result.OutputSize
	switch {
	case !report.Result.Succeeded():
		out.Warning = fmt.Sprintf("%s exited with status %d", cfg.Converter, report.Result.ExitCode)
	case !report.Result.OutputExists:
		out.Warning = fmt.Sprintf("%s exited successfully but %s was not written", cfg.Converter, cfg.Output)
	}
	return out
}
