package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gorewood/mdbundle/internal/bundle"
	"github.com/gorewood/mdbundle/internal/config"
	"github.com/gorewood/mdbundle/internal/output"
)

// buildFlags holds the flags shared by the root and build commands.
type buildFlags struct {
	summary   string
	output    string
	converter string
	pdfEngine string
	dryRun    bool
	strict    bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.summary, "summary", "s", "", "Summary file to read (default SUMMARY.md)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Combined document to write (default combined_documentation.docx)")
	cmd.Flags().StringVar(&f.converter, "converter", "", "Converter program (default pandoc)")
	cmd.Flags().StringVar(&f.pdfEngine, "pdf-engine", "", "Engine passed as --pdf-engine (default xelatex)")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "Print the converter command without running it")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail when the converter exits nonzero")
}

// apply overlays explicitly set flags onto cfg.
func (f *buildFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("summary") {
		cfg.Summary = f.summary
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("converter") {
		cfg.Converter = f.converter
	}
	if changed("pdf-engine") {
		cfg.PDFEngine = f.pdfEngine
	}
	if changed("strict") {
		cfg.Strict = f.strict
	}
	cfg.DryRun = f.dryRun
}

// newBuildCmd creates the build command.
func newBuildCmd() *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Combine the files referenced by the summary into one document",
		Long: `Combine the markdown files referenced by the summary into one document.

The converter is invoked as:
  <converter> --pdf-engine=<engine> <file1> ... <fileN> -o <output>

A converter that exits nonzero is reported as a warning; use --strict to
make it fail the command.

Examples:
  mdbundle build                               # SUMMARY.md -> combined_documentation.docx
  mdbundle build -s docs/SUMMARY.md -o book.pdf
  mdbundle build --pdf-engine lualatex --strict
  mdbundle build --dry-run                     # Show the pandoc command only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// runBuild resolves configuration and runs the bundle pipeline.
func runBuild(cmd *cobra.Command, flags buildFlags) error {
	printer := newPrinter(cmd)

	cfg, err := config.Load()
	if err != nil {
		printer.Error(err)
		return err
	}
	flags.apply(cmd, &cfg)

	report, err := bundle.Build(cmd.Context(), cfg, printer, bundle.Options{
		ConverterStdin:  cmd.InOrStdin(),
		ConverterStdout: converterStdout(cmd, printer),
		ConverterStderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(reportData(report))
	}
	return nil
}

// converterStdout keeps converter chatter off stdout in JSON mode.
func converterStdout(cmd *cobra.Command, printer *output.Printer) io.Writer {
	if printer.IsJSON() {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// reportData shapes a bundle report for JSON output.
func reportData(report *bundle.Report) map[string]any {
	data := map[string]any{
		"summary":    report.Summary,
		"output":     report.Output,
		"references": report.References,
		"command":    report.CommandLine,
		"dry_run":    report.DryRun,
	}
	if report.Result != nil {
		data["message"] = "Combined markdown files into " + report.Output
		data["exit_code"] = report.Result.ExitCode
		data["stderr"] = report.Result.Stderr
		data["output_exists"] = report.Result.OutputExists
		data["output_size"] = report.Result.OutputSize
		data["duration_ms"] = report.Result.Duration.Milliseconds()
	}
	return data
}
