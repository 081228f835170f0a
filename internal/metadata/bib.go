package metadata

import (
	"bufio"
	"os"
	"strings"
)

// ParseBibKeys returns the citation keys of a bibliography in file order.
// An entry starts with a line beginning with "@"; its key is the text
// between the first "{" and the following ",".
func ParseBibKeys(content string) []string {
	keys := []string{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "@") {
			continue
		}
		_, rest, ok := strings.Cut(line, "{")
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(rest, ",")
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ReadBibKeys reads the bibliography at path. A missing file has no keys.
func ReadBibKeys(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return ParseBibKeys(string(data)), nil
}
