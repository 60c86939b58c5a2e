// Package envfile loads MDBUNDLE_* settings from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Var is one KEY=VALUE assignment from an env file.
type Var struct {
	Key   string
	Value string
}

// Load applies each file in order. The first file to define a variable wins,
// and variables already present in the environment are never replaced.
// Missing files are skipped.
func Load(paths ...string) error {
	for _, path := range paths {
		if err := loadFile(path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	vars, err := Parse(file)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for _, v := range vars {
		if _, set := os.LookupEnv(v.Key); set {
			continue
		}
		if err := os.Setenv(v.Key, v.Value); err != nil {
			return fmt.Errorf("setting %s: %w", v.Key, err)
		}
	}
	return nil
}

// Parse reads KEY=VALUE lines. Blank lines, # comments and lines without
// '=' are skipped. An "export " prefix and matching quotes are stripped.
func Parse(r io.Reader) ([]Var, error) {
	var vars []Var
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := parseLine(line); ok {
			vars = append(vars, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

func parseLine(line string) (Var, bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return Var{}, false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" {
		return Var{}, false
	}
	return Var{Key: key, Value: unquote(strings.TrimSpace(value))}, true
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
