package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format specifies how command results are written to stdout.
type Format string

const (
	// FormatText writes styled, human-readable text.
	FormatText Format = "text"

	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"

	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Valid checks if the format is known.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name. The second return is false for unknown
// names, in which case FormatText is returned.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return FormatText, false
	}
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}

// WriteStructured encodes v as JSON or YAML. FormatText is rejected.
func WriteStructured(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}
