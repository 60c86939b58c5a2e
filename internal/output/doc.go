// Package output provides console output and exit-coded errors for mdbundle.
//
// # Printer
//
// All command output flows through a Printer, which switches between
// human-readable and JSON output:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Logf("Command: %s", line)
//	printer.Success(map[string]any{"message": "done", "output": path})
//	printer.Error(err)
//
// In JSON mode informational log lines are suppressed and results are
// written as a single JSON object. Errors become {"error": "...", "code": N}.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags or config values
//	output.ExitSystemError // 2: summary unreadable, converter missing
//
// Errors created with NewUserError, NewSystemError and
// NewSystemErrorWithCause carry their code to both the JSON error body and
// the process exit status (see GetExitCode).
package output
