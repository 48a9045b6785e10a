package llmtext

import "regexp"

var placeholderRe = regexp.MustCompile(`\[[A-Z0-9_]+(?: [A-Z0-9_]+)*\]`)

// DetectPlaceholders returns unresolved template tokens such as [DATE] or
// [PARTY A] in first-occurrence order, without duplicates.
func DetectPlaceholders(doc string) []string {
	found := make([]string, 0)
	if doc == "" {
		return found
	}

	seen := make(map[string]struct{})
	for _, token := range placeholderRe.FindAllString(doc, -1) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		found = append(found, token)
	}

	return found
}
