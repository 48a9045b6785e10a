package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/pkg/llmtext"
)

type payloadKind int

const (
	payloadEmpty payloadKind = iota
	payloadMapping
	payloadPairList
	payloadInvalid
)

// fieldPayload is the shape update_needed_values arrived in.
type fieldPayload struct {
	kind    payloadKind
	mapping map[string]any
	pairs   []any
	raw     any
}

var pairKeyNames = []string{"field", "name", "key"}

func classifyFields(raw any) fieldPayload {
	switch v := raw.(type) {
	case nil:
		return fieldPayload{kind: payloadEmpty}
	case map[string]any:
		return fieldPayload{kind: payloadMapping, mapping: v}
	case []any:
		return fieldPayload{kind: payloadPairList, pairs: v}
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "NONE") || s == "{}" {
			return fieldPayload{kind: payloadEmpty}
		}
		// some models double-encode the mapping as a string
		if m, ok := llmtext.ExtractJSON(s, ""); ok {
			return fieldPayload{kind: payloadMapping, mapping: m}
		}
	}

	return fieldPayload{kind: payloadInvalid, raw: raw}
}

// normalizeFields turns any update_needed_values payload into a mapping of
// strings. Unusable shapes and entries are dropped with a warning.
func normalizeFields(ctx context.Context, raw any) map[string]string {
	out := make(map[string]string)
	payload := classifyFields(raw)

	switch payload.kind {
	case payloadMapping:
		for name, value := range payload.mapping {
			if text, ok := coerceText(value); ok {
				out[name] = text
			}
		}
	case payloadPairList:
		for i, item := range payload.pairs {
			name, value, ok := pairEntry(item)
			if !ok {
				ctxzap.Warn(ctx, "dropping malformed field pair", zap.Int("index", i), zap.Any("pair", item))
				continue
			}
			out[name] = value
		}
		ctxzap.Warn(ctx, "field values arrived as a pair list", zap.Int("pairs", len(payload.pairs)), zap.Int("kept", len(out)))
	case payloadInvalid:
		ctxzap.Warn(ctx, "dropping field values of unsupported shape", zap.String("type", fmt.Sprintf("%T", payload.raw)))
	}

	return out
}

func pairEntry(item any) (string, string, bool) {
	switch v := item.(type) {
	case []any:
		if len(v) != 2 {
			return "", "", false
		}
		name, ok := coerceText(v[0])
		if !ok || strings.TrimSpace(name) == "" {
			return "", "", false
		}
		value, ok := coerceText(v[1])
		return name, value, ok
	case map[string]any:
		value, ok := coerceText(v["value"])
		if !ok {
			return "", "", false
		}
		for _, key := range pairKeyNames {
			if name, has := v[key].(string); has && strings.TrimSpace(name) != "" {
				return name, value, true
			}
		}
	}

	return "", "", false
}

// coerceText serializes non-string values. nil yields false.
func coerceText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	}

	text, err := sonic.MarshalString(value)
	if err != nil {
		return fmt.Sprint(value), true
	}

	return text, true
}
