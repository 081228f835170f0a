package templates

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateFolderName checks that name is usable as a module folder.
// Folder names may contain letters, digits, hyphens and underscores and
// must start with a letter or digit.
func ValidateFolderName(name string) error {
	if name == "" {
		return fmt.Errorf("folder name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid folder name %q: contains invalid character %q", name, r)
		}
	}

	first := []rune(name)[0]
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		return fmt.Errorf("invalid folder name %q: must start with a letter or digit", name)
	}

	return nil
}

// ValidateTitle checks that a module title is not blank.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("module title cannot be empty")
	}
	return nil
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes characters with special meaning in LaTeX text.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}
