package mcp

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/mdbundle/internal/config"
)

// --- Test helpers ---

func makeTestConfig(t *testing.T, converterBody string) config.Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake converter needs /bin/sh")
	}
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "SUMMARY.md")
	content := "# Book\n- [Intro](intro.md)\n- [Setup](setup/install.md)\n"
	if err := os.WriteFile(summaryPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing summary: %v", err)
	}

	program := filepath.Join(dir, "fake-pandoc")
	if err := os.WriteFile(program, []byte("#!/bin/sh\n"+converterBody+"\n"), 0o700); err != nil {
		t.Fatalf("writing converter: %v", err)
	}

	cfg := config.Default()
	cfg.Summary = summaryPath
	cfg.Output = filepath.Join(dir, "book.pdf")
	cfg.Converter = program
	return cfg
}

// --- Extract handler tests ---

func TestHandleExtract_DefaultSummary(t *testing.T) {
	cfg := makeTestConfig(t, "exit 0")
	handler := handleExtract(cfg)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ExtractInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}
	want := []string{"intro.md", "setup/install.md"}
	if !reflect.DeepEqual(out.References, want) {
		t.Errorf("References = %v, want %v", out.References, want)
	}
	if out.Summary != cfg.Summary {
		t.Errorf("Summary = %q, want %q", out.Summary, cfg.Summary)
	}
}

func TestHandleExtract_ExplicitSummary(t *testing.T) {
	cfg := makeTestConfig(t, "exit 0")
	other := filepath.Join(t.TempDir(), "OTHER.md")
	if err := os.WriteFile(other, []byte("[Only](only.md)\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, out, err := handleExtract(cfg)(context.Background(), &mcp.CallToolRequest{}, ExtractInput{Summary: other})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out.References, []string{"only.md"}) {
		t.Errorf("References = %v", out.References)
	}
}

func TestHandleExtract_MissingSummary(t *testing.T) {
	cfg := config.Default()
	cfg.Summary = filepath.Join(t.TempDir(), "missing.md")

	_, _, err := handleExtract(cfg)(context.Background(), &mcp.CallToolRequest{}, ExtractInput{})
	if err == nil {
		t.Fatal("expected error for missing summary")
	}
}

// --- Bundle handler tests ---

func TestHandleBundle_DryRun(t *testing.T) {
	cfg := makeTestConfig(t, "exit 9")

	_, out, err := handleBundle(cfg)(context.Background(), &mcp.CallToolRequest{}, BundleInput{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.DryRun {
		t.Error("DryRun = false, want true")
	}
	want := cfg.Converter + " --pdf-engine=xelatex intro.md setup/install.md -o " + cfg.Output
	if out.Command != want {
		t.Errorf("Command = %q, want %q", out.Command, want)
	}
	if out.ExitCode != 0 || out.Warning != "" {
		t.Errorf("dry run should not report a converter result: %+v", out)
	}
}

func TestHandleBundle_Success(t *testing.T) {
	cfg := makeTestConfig(t, `for last; do :; done; printf 'pdf' > "$last"`)
	outPath := filepath.Join(t.TempDir(), "custom.pdf")

	_, out, err := handleBundle(cfg)(context.Background(), &mcp.CallToolRequest{}, BundleInput{Output: outPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Output != outPath {
		t.Errorf("Output = %q, want %q", out.Output, outPath)
	}
	if !out.OutputExists || out.OutputSize != 3 {
		t.Errorf("OutputExists = %v, OutputSize = %d", out.OutputExists, out.OutputSize)
	}
	if out.Warning != "" {
		t.Errorf("Warning = %q, want empty", out.Warning)
	}
}

func TestHandleBundle_ConverterFailure(t *testing.T) {
	cfg := makeTestConfig(t, "echo 'Error producing PDF.' >&2; exit 43")

	_, out, err := handleBundle(cfg)(context.Background(), &mcp.CallToolRequest{}, BundleInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 43 {
		t.Errorf("ExitCode = %d, want 43", out.ExitCode)
	}
	if out.Stderr != "Error producing PDF." {
		t.Errorf("Stderr = %q", out.Stderr)
	}
	if out.Warning == "" {
		t.Error("Warning should be set when the converter fails")
	}
}

func TestHandleBundle_StrictFailure(t *testing.T) {
	cfg := makeTestConfig(t, "exit 2")
	cfg.Strict = true

	_, _, err := handleBundle(cfg)(context.Background(), &mcp.CallToolRequest{}, BundleInput{})
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("test", config.Default()) == nil {
		t.Fatal("NewServer() returned nil")
	}
}
