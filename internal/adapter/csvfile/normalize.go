// Package csvfile reads station commuter-count exports from disk.
package csvfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/couchcryptid/tube-commuters/internal/domain"
)

// ErrFileNotFound is returned when the dataset path does not exist.
var ErrFileNotFound = errors.New("file not found")

// Normalize repairs a raw export in place so it can be parsed. It reports
// whether the file was rewritten; a file whose first line carries the
// copyright marker is already normalized and is left untouched.
func Normalize(path string, rules domain.NormalizeRules) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, openError("normalize", path, err)
	}

	out, ok := normalizeLines(data, rules)
	if !ok {
		return false, nil
	}

	// WriteFile truncates, so the shorter content replaces the original.
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, fmt.Errorf("normalize %s: %w", path, err)
	}
	return true, nil
}

// normalizeLines applies rules line by line. Line endings are preserved.
// It returns false when the input is already normalized.
func normalizeLines(data []byte, rules domain.NormalizeRules) ([]byte, bool) {
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) > 0 && bytes.Contains(trimEOL(lines[0]), []byte(rules.CopyrightMarker)) {
		return data, false
	}

	out := make([]byte, 0, len(data))
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		content := trimEOL(line)
		if dropLine(content, rules) {
			continue
		}
		if slices.Contains(rules.StripCommaLines, i+1) {
			eol := line[len(content):]
			out = append(out, bytes.ReplaceAll(content, []byte(","), nil)...)
			out = append(out, eol...)
			continue
		}
		out = append(out, line...)
	}
	return out, true
}

func dropLine(content []byte, rules domain.NormalizeRules) bool {
	if rules.SeparatorPrefix != "" && bytes.HasPrefix(content, []byte(rules.SeparatorPrefix)) {
		return true
	}
	return rules.SectionMarker != "" && bytes.Contains(content, []byte(rules.SectionMarker))
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

func openError(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %s: %w: %w", op, path, ErrFileNotFound, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
