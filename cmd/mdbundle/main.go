// Package main provides the entry point for the mdbundle CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/mdbundle/internal/config"
	"github.com/gorewood/mdbundle/internal/envfile"
	"github.com/gorewood/mdbundle/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color flag against TTY detection on stdout.
func useColor(cmd *cobra.Command) bool {
	mode := output.ColorAuto
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Run without a subcommand it bundles
// using the configured summary and output.
func newRootCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "mdbundle",
		Short: "Combine the markdown files listed in a summary into one document",
		Long: `mdbundle reads a summary file (SUMMARY.md by default), collects every
[label](file.md) link in order, and hands the files to pandoc to produce a
single combined document.

Running mdbundle with no subcommand is the same as "mdbundle build".

Configuration is read from ~/.config/mdbundle/config.yaml, then
./.mdbundle.yaml, then MDBUNDLE_* environment variables, then flags.`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		colorFlag := cmd.Root().PersistentFlags().Lookup("color")
		if _, err := output.ParseColorMode(colorFlag.Value.String()); err != nil {
			newPrinter(cmd).Error(err)
			return err
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always, never")
	flags.register(cmd)

	lipgloss.SetHasDarkBackground(true)

	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	addGroupedCommand(cmd, newBuildCmd(), "core")
	addGroupedCommand(cmd, newListCmd(), "core")
	addGroupedCommand(cmd, newServeCmd(), "agent")

	return cmd
}

// loadEnvFiles loads env files in priority order. Environment variables
// already set always win.
//
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. ~/.config/mdbundle/env
func loadEnvFiles() {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	_ = envfile.Load(paths...)
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
