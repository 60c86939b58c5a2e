package envfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# converter settings",
		"",
		"MDBUNDLE_CONVERTER=/usr/local/bin/pandoc",
		"export MDBUNDLE_PDF_ENGINE=lualatex",
		`MDBUNDLE_OUTPUT="book final.pdf"`,
		"MDBUNDLE_SUMMARY='docs/SUMMARY.md'",
		"not an assignment",
		"=novalue",
		"EMPTY=",
		`HALF="quoted`,
	}, "\n")

	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Var{
		{Key: "MDBUNDLE_CONVERTER", Value: "/usr/local/bin/pandoc"},
		{Key: "MDBUNDLE_PDF_ENGINE", Value: "lualatex"},
		{Key: "MDBUNDLE_OUTPUT", Value: "book final.pdf"},
		{Key: "MDBUNDLE_SUMMARY", Value: "docs/SUMMARY.md"},
		{Key: "EMPTY", Value: ""},
		{Key: "HALF", Value: `"quoted`},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestLoad_FirstFileWinsAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("MDBUNDLE_TEST_A=local\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shared, []byte("MDBUNDLE_TEST_A=shared\nMDBUNDLE_TEST_B=shared\nMDBUNDLE_TEST_C=shared\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MDBUNDLE_TEST_C", "from-env")
	// Registered so t.Setenv restores (unsets) them after the test.
	t.Setenv("MDBUNDLE_TEST_A", "")
	t.Setenv("MDBUNDLE_TEST_B", "")
	os.Unsetenv("MDBUNDLE_TEST_A") //nolint:errcheck // test setup
	os.Unsetenv("MDBUNDLE_TEST_B") //nolint:errcheck // test setup

	if err := Load(local, filepath.Join(dir, "missing"), shared); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	checks := map[string]string{
		"MDBUNDLE_TEST_A": "local",
		"MDBUNDLE_TEST_B": "shared",
		"MDBUNDLE_TEST_C": "from-env",
	}
	for key, want := range checks {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("Load(missing) error = %v", err)
	}
}
