package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.Success(map[string]any{
		"output":     "out.pdf",
		"references": []string{"intro.md"},
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["output"] != "out.pdf" {
		t.Errorf("output = %v, want %q", result["output"], "out.pdf")
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewSystemError("converter not found"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "converter not found" {
		t.Errorf("error = %v, want %q", result["error"], "converter not found")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitSystemError {
		t.Errorf("code = %v, want %d", result["code"], ExitSystemError)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "Combined markdown files into out.pdf"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if got := buf.String(); got != "Combined markdown files into out.pdf\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(NewUserError("bad flag"))

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if got := stderr.String(); got != "Error: bad flag\n" {
		t.Errorf("stderr = %q, want %q", got, "Error: bad flag\n")
	}
}

func TestPrinter_Logf(t *testing.T) {
	tests := []struct {
		name     string
		jsonMode bool
		want     string
	}{
		{name: "human mode prints", jsonMode: false, want: "Command: pandoc -o out.pdf\n"},
		{name: "json mode is silent", jsonMode: true, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer := NewPrinter(&buf, tt.jsonMode, false)
			printer.Logf("Command: %s", "pandoc -o out.pdf")
			if got := buf.String(); got != tt.want {
				t.Errorf("Logf() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("converter exited with status %d", 3)
	if got := buf.String(); got != "Warning: converter exited with status 3\n" {
		t.Errorf("Warn() wrote %q", got)
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Warn("converter exited with status %d", 3)
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if result["warning"] != "converter exited with status 3" {
		t.Errorf("warning = %v", result["warning"])
	}
}

func TestPrinter_Human_SuccessWithoutMessage(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"output": "out.pdf"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestErrorJSON_Format(t *testing.T) {
	got := string(ErrorJSON("boom", ExitSystemError))
	if !strings.Contains(got, `"error":"boom"`) || !strings.Contains(got, `"code":2`) {
		t.Errorf("ErrorJSON() = %s", got)
	}
}
