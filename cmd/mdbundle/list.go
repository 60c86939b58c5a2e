package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/mdbundle/internal/config"
	"github.com/gorewood/mdbundle/internal/summary"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	var summaryFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files referenced by the summary",
		Long: `List the markdown files referenced by the summary, in the order they
would be passed to the converter. Only the first [label](file.md) link on a
line is used.

Examples:
  mdbundle list                       # References in SUMMARY.md
  mdbundle list -s docs/SUMMARY.md
  mdbundle list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, summaryFlag)
		},
	}
	cmd.Flags().StringVarP(&summaryFlag, "summary", "s", "", "Summary file to read (default SUMMARY.md)")
	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, summaryFlag string) error {
	printer := newPrinter(cmd)

	cfg, err := config.Load()
	if err != nil {
		printer.Error(err)
		return err
	}
	if cmd.Flags().Changed("summary") {
		cfg.Summary = summaryFlag
	}

	refs, err := summary.Extract(cfg.Summary)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"summary":    cfg.Summary,
			"count":      len(refs),
			"references": refs,
		})
	}

	if len(refs) == 0 {
		printer.Dim("No references found in " + cfg.Summary)
		return nil
	}
	for _, ref := range refs {
		printer.Println(ref)
	}
	return nil
}
