package yaml

import "strings"

// NormalizeYAMLIndentation strips the tab indentation shared by every
// non-blank line so YAML fixtures can be written inline in Go raw strings.
func NormalizeYAMLIndentation(content string) string {
	lines := strings.Split(content, "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs == -1 || tabs < minTabs {
			minTabs = tabs
		}
	}
	if minTabs <= 0 {
		return content
	}

	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			normalized = append(normalized, "")
			continue
		}
		normalized = append(normalized, line[minTabs:])
	}
	return strings.Join(normalized, "\n")
}
