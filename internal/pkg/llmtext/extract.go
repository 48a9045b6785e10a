package llmtext

import (
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

// maxCandidates bounds how many brace groups a scan tries, keeping
// pathological input linear in its length.
const maxCandidates = 256

var (
	singleQuotedRe = regexp.MustCompile(`'([^']+?)'`)
	jsonFenceRe    = regexp.MustCompile("(?i)```json\\s*(\\{[\\s\\S]+?\\})\\s*```")
)

// ExtractJSON recovers a JSON object from noisy model output. Strategies run
// strict first and tolerant last. Only a text that is itself one object may
// lack requiredKey; every object found inside surrounding text must hold it.
// An empty requiredKey accepts any object.
func ExtractJSON(text, requiredKey string) (map[string]any, bool) {
	if m, ok := parseBlock(text); ok {
		return m, true
	}

	if m, ok := scanBalanced(text, requiredKey); ok {
		return m, true
	}

	if requiredKey == "" {
		return nil, false
	}

	for _, m := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		if obj, ok := matchBlock(m[1], requiredKey); ok {
			return obj, true
		}
	}

	for _, block := range reverseObjects(text) {
		if obj, ok := matchBlock(block, requiredKey); ok {
			return obj, true
		}
	}

	return nil, false
}

func hasKey(m map[string]any, key string) bool {
	if key == "" {
		return true
	}
	_, ok := m[key]
	return ok
}

func matchBlock(block, key string) (map[string]any, bool) {
	if key != "" && !containsQuotedKey(block, key) {
		return nil, false
	}

	m, ok := parseBlock(block)
	if !ok || !hasKey(m, key) {
		return nil, false
	}

	return m, true
}

func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	var v any
	if err := sonic.UnmarshalString(s, &v); err != nil {
		return nil, false
	}

	m, ok := v.(map[string]any)
	return m, ok
}

// parseBlock tries a single candidate strictly, then quote-repaired, then as a literal.
func parseBlock(block string) (map[string]any, bool) {
	if m, ok := decodeObject(block); ok {
		return m, true
	}

	if m, ok := decodeObject(repairQuotes(block)); ok {
		return m, true
	}

	return evalLiteralObject(block)
}

func repairQuotes(s string) string {
	return singleQuotedRe.ReplaceAllString(s, `"$1"`)
}

func containsQuotedKey(block, key string) bool {
	return strings.Contains(block, `"`+key+`"`) || strings.Contains(block, `'`+key+`'`)
}

// scanBalanced walks {...} groups in order of appearance. A group that parses
// is skipped as a whole when it lacks key; a group that never closes or does
// not parse is retried from the next opening brace inside it.
func scanBalanced(text, key string) (map[string]any, bool) {
	start := strings.IndexByte(text, '{')

	for tries := 0; start >= 0 && tries < maxCandidates; tries++ {
		next := start + 1

		if end, closed := groupEnd(text, start); closed {
			if m, ok := parseBlock(text[start : end+1]); ok {
				if hasKey(m, key) {
					return m, true
				}
				next = end + 1
			}
		}

		idx := strings.IndexByte(text[next:], '{')
		if idx < 0 {
			break
		}
		start = next + idx
	}

	return nil, false
}

// groupEnd returns the index of the brace closing the group opened at start.
// Double-quoted strings are opaque, escapes included.
func groupEnd(text string, start int) (int, bool) {
	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// reverseObjects pairs braces by nesting in one pass, ignoring quotes so that
// broken quoting cannot hide a group, and yields the last-closed groups first.
func reverseObjects(text string) []string {
	var (
		opens  []int
		blocks []string
	)

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			opens = append(opens, i)
		case '}':
			if len(opens) == 0 {
				continue
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			blocks = append(blocks, text[open:i+1])
		}
	}

	// Most recent first, bounded.
	n := min(len(blocks), maxCandidates)
	last := make([]string, 0, n)
	for i := len(blocks) - 1; i >= len(blocks)-n; i-- {
		last = append(last, blocks[i])
	}

	return last
}
