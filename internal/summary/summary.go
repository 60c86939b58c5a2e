// Package summary extracts document references from a summary (index) file.
//
// A reference is a markdown link whose target ends in ".md":
//
//   - [Intro](intro.md)
//   - [Install](setup/install.md)
//
// Only the first such link on each line is taken. References are returned in
// the order they appear and are not deduplicated.
package summary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gorewood/mdbundle/internal/output"
)

// DefaultFile is the summary file name used when none is configured.
const DefaultFile = "SUMMARY.md"

// linkPattern matches [label](target.md) and captures target without ".md".
var linkPattern = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\.md\)`)

// Extract reads the summary file at path and returns its references.
// Returns a system error wrapping the *fs.PathError if the file can't be read.
func Extract(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading summary: "+err.Error(), err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	refs, err := Parse(file)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading summary "+path+": "+err.Error(), err)
	}
	return refs, nil
}

// Parse scans r line by line and returns the references it contains.
// Lines end at \n, \r\n or a bare \r.
// The result is never nil.
func Parse(r io.Reader) ([]string, error) {
	refs := []string{}

	reader := bufio.NewReader(r)
	for {
		chunk, err := reader.ReadString('\n')
		// A bare \r also ends a line, so old Mac files split the same way.
		for _, line := range strings.Split(chunk, "\r") {
			if ref, ok := MatchLine(line); ok {
				refs = append(refs, ref)
			}
		}
		if err == io.EOF {
			return refs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading line: %w", err)
		}
	}
}

// MatchLine returns the reference on a single line, if any.
func MatchLine(line string) (string, bool) {
	match := linkPattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	return match[1] + ".md", true
}
