package agent

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
)

// parseCommand reads a conversational model reply. It never fails: missing or
// malformed members degrade to their zero value.
func parseCommand(ctx context.Context, raw map[string]any) entity.Command {
	reply, _ := coerceText(raw[entity.CommandKeyUserReply])

	return entity.Command{
		Actions:      parseActions(ctx, raw[entity.CommandKeyActions]),
		UserReply:    strings.TrimSpace(reply),
		DocumentType: optionalText(raw[entity.CommandKeyDocumentType]),
		NeededValues: normalizeFields(ctx, raw[entity.CommandKeyNeededValues]),
		Instruction:  optionalText(raw[entity.CommandKeyInstruction]),
	}
}

// parseActions keeps first occurrences only.
func parseActions(ctx context.Context, raw any) []entity.Action {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		items = v
	case string:
		items = []any{v}
	default:
		ctxzap.Warn(ctx, "ignoring actions of unsupported shape", zap.Any("actions", raw))
		return nil
	}

	actions := make([]entity.Action, 0, len(items))
	seen := make(map[entity.Action]struct{}, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			ctxzap.Warn(ctx, "ignoring non-string action", zap.Any("action", item))
			continue
		}

		action := entity.Action(strings.TrimSpace(name))
		if action == "" {
			continue
		}
		if _, dup := seen[action]; dup {
			continue
		}
		seen[action] = struct{}{}
		actions = append(actions, action)
	}

	return actions
}

// optionalText returns "" for absent values and the NONE sentinel.
func optionalText(raw any) string {
	text, ok := coerceText(raw)
	if !ok {
		return ""
	}

	text = strings.TrimSpace(text)
	if strings.EqualFold(text, entity.NoneValue) {
		return ""
	}

	return text
}
