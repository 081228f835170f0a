package module

import (
	"regexp"
	"strings"
)

var estimatedTimeRegex = regexp.MustCompile(`(\d+)\s*(hours?|hrs?|minutes?|mins?)`)

// Readme holds descriptive metadata mined from a module README.
// Extraction is heuristic: a missing section yields an empty value.
type Readme struct {
	Description        string   `json:"description"`
	LearningObjectives []string `json:"learningObjectives"`
	Prerequisites      []string `json:"prerequisites"`
	EstimatedTime      string   `json:"estimatedTime"`
	Resources          []string `json:"resources"`
}

// ParseReadme extracts descriptive metadata from README content.
func ParseReadme(content string) Readme {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	return Readme{
		Description:        extractDescription(lines),
		LearningObjectives: extractBullets(lines, "learning objectives"),
		Prerequisites:      extractBullets(lines, "prerequisites"),
		EstimatedTime:      extractTime(lines),
		Resources:          extractBullets(lines, "resources"),
	}
}

// extractDescription returns the line following the first line that
// mentions "description".
func extractDescription(lines []string) string {
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "description") && i+1 < len(lines) {
			return strings.TrimSpace(lines[i+1])
		}
	}
	return ""
}

// extractBullets collects "-" and "*" items after the first line mentioning
// keyword. The list ends at a heading or at unindented non-bullet text.
func extractBullets(lines []string, keyword string) []string {
	items := []string{}
	in := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !in {
			if strings.Contains(strings.ToLower(line), keyword) {
				in = true
			}
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			items = append(items, strings.TrimSpace(trimmed[1:]))
			continue
		}
		if strings.HasPrefix(trimmed, "#") || (trimmed != "" && !strings.HasPrefix(line, " ")) {
			break
		}
	}
	return items
}

// extractTime finds "<n> hours" style text on the "estimated time" line or
// the first non-blank line after it.
func extractTime(lines []string) string {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "estimated time") {
			continue
		}
		if t := matchTime(line); t != "" {
			return t
		}
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" {
				continue
			}
			return matchTime(next)
		}
	}
	return ""
}

func matchTime(line string) string {
	m := estimatedTimeRegex.FindStringSubmatch(strings.ToLower(line))
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}
