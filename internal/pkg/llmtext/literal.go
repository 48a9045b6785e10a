package llmtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errLiteralSyntax = errors.New("literal syntax error")

// evalLiteralObject evaluates a Python-style literal (single or double quoted
// strings, dicts, lists, tuples, numbers, True/False/None) and returns it when
// the whole input is a single dict. Nothing is ever executed.
func evalLiteralObject(text string) (map[string]any, bool) {
	p := &literalParser{src: strings.TrimSpace(text)}
	if p.src == "" || p.src[0] != '{' {
		return nil, false
	}

	v, err := p.value()
	if err != nil {
		return nil, false
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, false
	}

	m, ok := v.(map[string]any)
	return m, ok
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()

	switch ch := p.peek(); {
	case ch == '{':
		return p.dict()
	case ch == '[':
		return p.sequence(']')
	case ch == '(':
		return p.sequence(')')
	case ch == '\'' || ch == '"':
		return p.str()
	case ch == '-' || ch == '+' || ch == '.' || (ch >= '0' && ch <= '9'):
		return p.number()
	case ch == 0:
		return nil, fmt.Errorf("%w: unexpected end of input", errLiteralSyntax)
	default:
		return p.keyword()
	}
}

func (p *literalParser) dict() (any, error) {
	p.pos++
	out := make(map[string]any)

	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}

		key, err := p.value()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.peek() != ':' {
			return nil, fmt.Errorf("%w: expected ':' at %d", errLiteralSyntax, p.pos)
		}
		p.pos++

		val, err := p.value()
		if err != nil {
			return nil, err
		}
		out[literalKey(key)] = val

		if err := p.separator('}'); err != nil {
			return nil, err
		}
	}
}

func (p *literalParser) sequence(closing byte) (any, error) {
	p.pos++
	out := make([]any, 0)

	for {
		p.skipSpace()
		if p.peek() == closing {
			p.pos++
			return out, nil
		}

		val, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, val)

		if err := p.separator(closing); err != nil {
			return nil, err
		}
	}
}

// separator consumes a comma or leaves the closing byte for the caller.
// Trailing commas are valid.
func (p *literalParser) separator(closing byte) error {
	p.skipSpace()

	switch p.peek() {
	case ',':
		p.pos++
		return nil
	case closing:
		return nil
	default:
		return fmt.Errorf("%w: expected ',' or '%c' at %d", errLiteralSyntax, closing, p.pos)
	}
}

func (p *literalParser) str() (any, error) {
	quote := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch {
		case ch == quote:
			p.pos++
			return b.String(), nil
		case ch == '\\':
			if err := p.escape(&b); err != nil {
				return nil, err
			}
		default:
			b.WriteByte(ch)
			p.pos++
		}
	}

	return nil, fmt.Errorf("%w: unterminated string", errLiteralSyntax)
}

func (p *literalParser) escape(b *strings.Builder) error {
	p.pos++
	if p.pos >= len(p.src) {
		return fmt.Errorf("%w: dangling escape", errLiteralSyntax)
	}

	ch := p.src[p.pos]
	p.pos++

	switch ch {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '\\', '\'', '"':
		b.WriteByte(ch)
	case '\n':
	case 'u':
		if p.pos+4 > len(p.src) {
			return fmt.Errorf("%w: short unicode escape", errLiteralSyntax)
		}
		code, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return fmt.Errorf("%w: bad unicode escape", errLiteralSyntax)
		}
		b.WriteRune(rune(code))
		p.pos += 4
	default:
		b.WriteByte('\\')
		b.WriteByte(ch)
	}

	return nil
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if (ch >= '0' && ch <= '9') || strings.IndexByte("+-.eE_", ch) >= 0 {
			p.pos++
			continue
		}
		break
	}

	raw := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return float64(n), nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", errLiteralSyntax, raw)
	}

	return f, nil
}

func (p *literalParser) keyword() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			break
		}
		p.pos += size
	}

	switch word := p.src[start:p.pos]; word {
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	case "None", "null":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %q at %d", errLiteralSyntax, word, start)
	}
}

func literalKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case bool:
		if k {
			return "True"
		}
		return "False"
	case nil:
		return "None"
	default:
		return fmt.Sprint(k)
	}
}
