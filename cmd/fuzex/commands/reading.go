package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readReading resolves a hex-encoded reading from the flag, a file, or
// stdin. A terminal prompt disables echo: readings are biometric secrets
// and should not land in scrollback.
func readReading(readingHex, readingFile string) ([]byte, error) {
	var raw string
	switch {
	case readingHex != "":
		raw = readingHex
	case readingFile != "":
		b, err := os.ReadFile(readingFile)
		if err != nil {
			return nil, err
		}
		raw = string(b)
	case term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Fprint(os.Stderr, "Reading (hex): ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		raw = string(b)
	default:
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		raw = string(b)
	}

	reading, err := hex.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("decode reading: %w", err)
	}
	return reading, nil
}
