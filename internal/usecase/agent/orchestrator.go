package agent

import (
	"context"
	"slices"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/llmtext"
	"github.com/futig/legal-assistant/internal/pkg/logger"
)

// TurnInput is one user message against the state loaded by the caller.
type TurnInput struct {
	ConversationID string
	State          *entity.ConversationState
	UserInput      string
	History        []entity.Message
}

// RefineInput asks for a redraft of an existing document.
type RefineInput struct {
	ConversationID string
	State          *entity.ConversationState
	Instruction    string
	History        []entity.Message
}

// Orchestrator runs dialogue turns. It assumes the caller serializes turns
// of the same conversation.
type Orchestrator struct {
	conversational    ConversationalModel
	drafting          DraftingModel
	checker           PlaceholderCheckerModel
	invoker           Invoker
	maxMissingPrompts int
}

func NewOrchestrator(
	conversational ConversationalModel,
	drafting DraftingModel,
	checker PlaceholderCheckerModel,
	invoker Invoker,
	cfg config.AgentConfig,
) *Orchestrator {
	return &Orchestrator{
		conversational:    conversational,
		drafting:          drafting,
		checker:           checker,
		invoker:           invoker,
		maxMissingPrompts: max(cfg.MaxMissingPrompts, 0),
	}
}

// RunTurn applies one user message. The input state is never modified; the
// returned state is a new value. Only model infrastructure failures are
// returned as errors.
func (o *Orchestrator) RunTurn(ctx context.Context, in *TurnInput) (*entity.TurnResult, error) {
	ctx = logger.WithAction(ctx, "run_turn")
	ctx = logger.WithConversation(ctx, in.ConversationID)

	state := in.State.Clone()
	history := slices.Clone(in.History)

	cmd, ok, err := o.converse(ctx, state, in.UserInput, history, "")
	if err != nil {
		return nil, err
	}

	if !ok {
		ctxzap.Warn(ctx, "conversational output could not be parsed")
		return newTurnResult(state, ReplyGarbled, false), nil
	}

	reply := cmd.UserReply
	if reply == "" {
		ctxzap.Warn(ctx, "empty user_reply, substituting fallback")
		reply = ReplyNotCaught
	}

	// models often fill values without listing the matching action
	if cmd.DocumentType != "" && !state.SetDocumentType(cmd.DocumentType) {
		ctxzap.Warn(ctx, "document type change refused after drafting",
			zap.String("current", state.DocumentType),
			zap.String("requested", cmd.DocumentType),
		)
		reply = ReplyTypeLocked
	}
	state.MergeFields(cmd.NeededValues)

	updated := false

actions:
	for _, action := range cmd.Actions {
		switch action {
		case entity.ActionUpdateDocumentType:
			if cmd.DocumentType != "" && !state.SetDocumentType(cmd.DocumentType) {
				reply = ReplyTypeLocked
			}

		case entity.ActionUpdateNeededValues:
			state.MergeFields(cmd.NeededValues)

		case entity.ActionUpdateDocument:
			outcome, err := o.draft(ctx, &draftInput{
				state:       state,
				instruction: cmd.Instruction,
				userInput:   in.UserInput,
				history:     history,
			})
			if err != nil {
				return nil, err
			}

			reply = outcome.reply
			updated = updated || outcome.committed
			if outcome.aborted {
				break actions
			}

		default:
			ctxzap.Warn(ctx, "ignoring unknown action", zap.String("action", string(action)))
		}
	}

	ctxzap.Info(ctx, "turn completed",
		zap.Int("actions", len(cmd.Actions)),
		zap.Bool("document_updated", updated),
		zap.String("state", state.Summary()),
	)

	return newTurnResult(state, reply, updated), nil
}

// Refine redrafts an existing document following a direct user instruction,
// with the same commit rules as a drafting action inside a turn.
func (o *Orchestrator) Refine(ctx context.Context, in *RefineInput) (*entity.TurnResult, error) {
	ctx = logger.WithAction(ctx, "refine_document")
	ctx = logger.WithConversation(ctx, in.ConversationID)

	if in.State == nil || !in.State.IsDrafted {
		return nil, entity.ErrNoDraft
	}

	state := in.State.Clone()
	outcome, err := o.draft(ctx, &draftInput{
		state:       state,
		instruction: in.Instruction,
		userInput:   in.Instruction,
		history:     slices.Clone(in.History),
	})
	if err != nil {
		return nil, err
	}

	return newTurnResult(state, outcome.reply, outcome.committed), nil
}

// converse asks the conversational model and parses its command. ok is false
// when no JSON object could be recovered.
func (o *Orchestrator) converse(
	ctx context.Context,
	state *entity.ConversationState,
	userInput string,
	history []entity.Message,
	note string,
) (entity.Command, bool, error) {
	req := &entity.ConverseRequest{
		History:      history,
		UserInput:    userInput,
		StateSummary: state.Summary(),
		SystemNote:   note,
	}

	raw, err := o.invoker.Invoke(ctx, "converse", func(ctx context.Context) (any, error) {
		return o.conversational.Converse(ctx, req)
	})
	if err != nil {
		return entity.Command{}, false, err
	}

	ctxzap.Debug(ctx, "raw conversational output", zap.String("output", raw))

	parsed, ok := llmtext.ExtractJSON(llmtext.Normalize(raw), entity.CommandKeyUserReply)
	if !ok {
		return entity.Command{}, false, nil
	}

	return parseCommand(ctx, parsed), true, nil
}

func newTurnResult(state *entity.ConversationState, reply string, updated bool) *entity.TurnResult {
	result := &entity.TurnResult{
		Reply:           reply,
		State:           state,
		DocumentUpdated: updated,
	}

	if state.IsDrafted {
		draft := state.Draft
		result.DraftDocument = &draft
	}

	return result
}
