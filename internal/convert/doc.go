// Package convert runs the external document converter that merges
// markdown files into a single output document.
//
// The converter is invoked as:
//
//	<program> --pdf-engine=<engine> <file1> ... <fileN> -o <output>
//
// Combine blocks until the converter exits. A converter that cannot be
// started (not installed, not on PATH) is an error; a converter that runs
// and exits nonzero is not. Its exit status and captured stderr are returned
// in the Result so callers decide what a failed conversion means:
//
//	conv := convert.New("pandoc", "xelatex")
//	conv.Announce = func(line string) { printer.Logf("Command: %s", line) }
//	result, err := conv.Combine(ctx, []string{"intro.md"}, "out.pdf")
//	if err != nil {
//	    return err // converter missing, exit code 2
//	}
//	if !result.Succeeded() {
//	    printer.Warn("converter exited with status %d", result.ExitCode)
//	}
package convert
