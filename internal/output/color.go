package output

import (
	"fmt"
	"io"
	"os"
)

// Color modes accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(mode string) (string, error) {
	switch mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", NewUserError(fmt.Sprintf("--color must be one of auto, always, never (got %q)", mode))
	}
}

// ResolveColorMode determines whether styling is enabled given a color mode
// and the detected TTY state. Unknown modes behave like auto.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is an *os.File attached to a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
