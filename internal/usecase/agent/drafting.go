package agent

import (
	"context"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/llmtext"
)

type draftInput struct {
	state       *entity.ConversationState
	instruction string
	userInput   string
	history     []entity.Message
}

type draftOutcome struct {
	reply     string
	committed bool
	aborted   bool
}

// draft produces a new document and commits it only when nothing is missing.
func (o *Orchestrator) draft(ctx context.Context, in *draftInput) (draftOutcome, error) {
	state := in.state

	instruction := strings.TrimSpace(in.instruction)
	if instruction == "" {
		instruction = DefaultInstruction
	}

	fieldsJSON, err := sonic.MarshalString(state.NeededFields)
	if err != nil {
		fieldsJSON = "{}"
	}

	req := &entity.DraftRequest{
		DocumentType: state.DocumentType,
		FieldsJSON:   fieldsJSON,
		CurrentDraft: state.Draft,
		Instruction:  instruction,
		History:      in.history,
	}

	raw, err := o.invoker.Invoke(ctx, "draft", func(ctx context.Context) (any, error) {
		return o.drafting.Draft(ctx, req)
	})
	if err != nil {
		return draftOutcome{}, err
	}

	ctxzap.Debug(ctx, "raw drafting output", zap.String("output", raw))

	var text string
	if parsed, ok := llmtext.ExtractJSON(llmtext.Normalize(raw), entity.CommandKeyDraft); ok {
		if value, ok := coerceText(parsed[entity.CommandKeyDraft]); ok {
			text = llmtext.StripFluff(value)
		}
	}

	if text == "" {
		ctxzap.Error(ctx, "drafting model returned no usable draft")
		return draftOutcome{reply: ReplyDraftFailed, aborted: true}, nil
	}

	check, err := o.checkPlaceholders(ctx, text, in.history)
	if err != nil {
		return draftOutcome{}, err
	}

	if check.IsSuccess {
		state.CommitDraft(text)
		ctxzap.Info(ctx, "draft committed", zap.Int("length", len(text)))
		return draftOutcome{reply: ReplyDraftReady, committed: true}, nil
	}

	if !state.RegisterMissingPrompt(o.maxMissingPrompts) {
		ctxzap.Info(ctx, "missing-info prompt limit reached",
			zap.Int("count", state.MissingPromptCount),
			zap.String("missing", check.MissingDesc),
		)
		return draftOutcome{reply: StillMissingReply(check.MissingDesc)}, nil
	}

	ctxzap.Info(ctx, "draft is missing information, asking user",
		zap.Int("count", state.MissingPromptCount),
		zap.Strings("placeholders", check.Placeholders),
	)

	followUp := check.AskUser
	cmd, ok, err := o.converse(ctx, state, in.userInput, in.history, missingInfoNote(check.MissingDesc, check.AskUser))
	if err != nil {
		return draftOutcome{}, err
	}
	if ok {
		state.MergeFields(cmd.NeededValues)
		if cmd.UserReply != "" {
			followUp = cmd.UserReply
		}
	}

	return draftOutcome{reply: MissingInfoReply(check.MissingDesc, followUp)}, nil
}

// checkPlaceholders combines the local token scan with the checker model.
// Local tokens always veto a checker success.
func (o *Orchestrator) checkPlaceholders(ctx context.Context, draft string, history []entity.Message) (*entity.PlaceholderCheckResult, error) {
	local := llmtext.DetectPlaceholders(draft)
	req := &entity.PlaceholderCheckRequest{
		Draft:   draft,
		History: history,
	}

	raw, err := o.invoker.Invoke(ctx, "check_placeholders", func(ctx context.Context) (any, error) {
		return o.checker.CheckPlaceholders(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "raw placeholder check output", zap.String("output", raw))

	result := &entity.PlaceholderCheckResult{Placeholders: local}

	parsed, ok := llmtext.ExtractJSON(llmtext.Normalize(raw), entity.CommandKeyIsSuccess)
	if _, has := parsed[entity.CommandKeyIsSuccess]; ok && has {
		result.IsSuccess = boolValue(parsed[entity.CommandKeyIsSuccess]) && len(local) == 0
		result.MissingDesc = optionalText(parsed[entity.CommandKeyMissingDesc])
		result.AskUser = optionalText(parsed[entity.CommandKeyAskUser])
	} else {
		ctxzap.Warn(ctx, "placeholder checker output unparsable, using local detection")
		result.IsSuccess = len(local) == 0
	}

	if !result.IsSuccess && result.MissingDesc == "" {
		result.MissingDesc = unknownMissing
		if len(local) > 0 {
			result.MissingDesc = strings.Join(local, ", ")
		}
	}

	return result, nil
}

func boolValue(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}
