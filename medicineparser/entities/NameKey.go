package entities

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey folds a medicine name for case-insensitive matching
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
