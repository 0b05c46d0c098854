package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical returns the comparison form of a station name: surrounding
// whitespace removed and title-cased.
func Canonical(name string) string {
	return cases.Title(language.BritishEnglish).String(strings.TrimSpace(name))
}
