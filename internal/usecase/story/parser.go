package story

import "strings"

// fallbackTitle is used when a completion contains no usable title line.
const fallbackTitle = "User Story"

// ExtractTitle pulls the story title out of a completion.
//
// The first markdown H1 ("# Something") or "Title: Something" line wins.
// Placeholders the model sometimes echoes back from the prompt, a bare
// "Title" heading or a "[bracketed description]", are rejected so they never
// become an issue title. When no line qualifies, the first non-empty line is
// used with its heading markers stripped, and an empty completion yields
// "User Story".
func ExtractTitle(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	for _, line := range lines {
		candidate, ok := titleCandidate(strings.TrimSpace(line))
		if ok && usableTitle(candidate) {
			return candidate
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		candidate := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if usableTitle(candidate) {
			return candidate
		}
	}

	return fallbackTitle
}

// ExtractBody returns the completion with its title line removed. When no
// title line is present, the whole completion is returned trimmed.
func ExtractBody(text string) string {
	trimmed := strings.TrimSpace(text)
	lines := strings.Split(trimmed, "\n")

	for i, line := range lines {
		if _, ok := titleCandidate(strings.TrimSpace(line)); ok {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}

	return trimmed
}

// titleCandidate reports whether a line is shaped like a title and returns
// the text it carries.
func titleCandidate(line string) (string, bool) {
	if strings.HasPrefix(line, "# ") {
		return strings.TrimSpace(line[2:]), true
	}
	if len(line) >= 6 && strings.EqualFold(line[:6], "title:") {
		return strings.TrimSpace(line[6:]), true
	}
	return "", false
}

// usableTitle rejects empty candidates and template placeholders.
func usableTitle(candidate string) bool {
	if candidate == "" {
		return false
	}
	if strings.EqualFold(candidate, "title") {
		return false
	}
	if strings.HasPrefix(candidate, "[") {
		return false
	}
	return true
}
