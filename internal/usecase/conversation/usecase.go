package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/logger"
	"github.com/futig/legal-assistant/internal/pkg/validator"
	"github.com/futig/legal-assistant/internal/repository"
	"github.com/futig/legal-assistant/internal/usecase/agent"
)

// ConversationUsecase owns conversations and runs dialogue turns against them
type ConversationUsecase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	documentRepo     repository.DocumentRepository
	turnRepo         repository.TurnRepository
	runner           TurnRunner
	locks            TurnLocker
	formatters       FormatterFactory
	validator        *validator.Validator
	historyLimit     int
	logger           *zap.Logger
}

// NewUsecase creates a new conversation use case
func NewUsecase(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	documentRepo repository.DocumentRepository,
	turnRepo repository.TurnRepository,
	runner TurnRunner,
	locks TurnLocker,
	formatters FormatterFactory,
	validator *validator.Validator,
	cfg config.AgentConfig,
	logger *zap.Logger,
) *ConversationUsecase {
	return &ConversationUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		documentRepo:     documentRepo,
		turnRepo:         turnRepo,
		runner:           runner,
		locks:            locks,
		formatters:       formatters,
		validator:        validator,
		historyLimit:     cfg.HistoryLimit,
		logger:           logger,
	}
}

// CreateConversation starts an empty conversation
func (uc *ConversationUsecase) CreateConversation(ctx context.Context) (*entity.Conversation, error) {
	return uc.create(ctx, nil)
}

func (uc *ConversationUsecase) ListConversations(
	ctx context.Context,
	req *entity.ListConversationsRequest,
) ([]*entity.Conversation, error) {
	req.Normalize()

	conversations, err := uc.conversationRepo.List(ctx, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, nil
}

// GetConversation returns the conversation with its full history
func (uc *ConversationUsecase) GetConversation(ctx context.Context, id string) (*entity.Conversation, []entity.Message, error) {
	conv, err := uc.conversationRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get conversation: %w", err)
	}

	messages, err := uc.messageRepo.List(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}

	return conv, messages, nil
}

func (uc *ConversationUsecase) DeleteConversation(ctx context.Context, id string) error {
	unlock, err := uc.locks.Lock(ctx, id)
	if err != nil {
		return fmt.Errorf("acquire turn lock: %w", err)
	}
	defer unlock()

	if err := uc.conversationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	ctxzap.Info(ctx, "conversation deleted", zap.String("conversation_id", id))
	return nil
}

func (uc *ConversationUsecase) ListMessages(ctx context.Context, id string) ([]entity.Message, error) {
	if _, err := uc.conversationRepo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	messages, err := uc.messageRepo.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}

func (uc *ConversationUsecase) GetDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// SendMessage runs one dialogue turn. The message pair, the new state and the
// document are stored together; a failed turn stores nothing.
func (uc *ConversationUsecase) SendMessage(ctx context.Context, id, content string) (*entity.SendMessageResponse, error) {
	if err := uc.validator.ValidateSendMessage(&entity.SendMessageRequest{Content: content}); err != nil {
		return nil, err
	}

	ctx = logger.WithConversation(ctx, id)

	return uc.withTurn(ctx, id, content, func(conv *entity.Conversation, history []entity.Message) (*entity.TurnResult, error) {
		return uc.runner.RunTurn(ctx, &agent.TurnInput{
			ConversationID: id,
			State:          conv.State,
			UserInput:      content,
			History:        history,
		})
	})
}

// EditDocument redrafts the committed document following instruction
func (uc *ConversationUsecase) EditDocument(ctx context.Context, id, instruction string) (*entity.SendMessageResponse, error) {
	if err := uc.validator.ValidateEditDocument(&entity.EditDocumentRequest{Instruction: instruction}); err != nil {
		return nil, err
	}

	ctx = logger.WithConversation(ctx, id)

	return uc.withTurn(ctx, id, instruction, func(conv *entity.Conversation, history []entity.Message) (*entity.TurnResult, error) {
		return uc.runner.Refine(ctx, &agent.RefineInput{
			ConversationID: id,
			State:          conv.State,
			Instruction:    instruction,
			History:        history,
		})
	})
}

// EnsureExternalConversation returns the conversation bound to ref, creating it on first use
func (uc *ConversationUsecase) EnsureExternalConversation(ctx context.Context, ref string) (*entity.Conversation, error) {
	conv, err := uc.conversationRepo.GetByExternalRef(ctx, ref)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, entity.ErrConversationNotFound) {
		return nil, fmt.Errorf("get conversation by external ref: %w", err)
	}

	conv, err = uc.create(ctx, &ref)
	if err != nil {
		// a concurrent caller may have bound ref first
		if existing, getErr := uc.conversationRepo.GetByExternalRef(ctx, ref); getErr == nil {
			return existing, nil
		}
		return nil, err
	}

	return conv, nil
}

// ResetExternalConversation unbinds ref so the next message starts over
func (uc *ConversationUsecase) ResetExternalConversation(ctx context.Context, ref string) error {
	if err := uc.conversationRepo.ClearExternalRef(ctx, ref); err != nil {
		return fmt.Errorf("reset conversation: %w", err)
	}

	return nil
}

func (uc *ConversationUsecase) create(ctx context.Context, externalRef *string) (*entity.Conversation, error) {
	conv, err := uc.conversationRepo.Create(ctx, &entity.Conversation{
		ID:          uuid.New().String(),
		ExternalRef: externalRef,
		State:       entity.NewConversationState(),
	})
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	ctxzap.Info(ctx, "conversation created", zap.String("conversation_id", conv.ID))
	return conv, nil
}

type turnFunc func(conv *entity.Conversation, history []entity.Message) (*entity.TurnResult, error)

func (uc *ConversationUsecase) withTurn(ctx context.Context, id, userMessage string, run turnFunc) (*entity.SendMessageResponse, error) {
	unlock, err := uc.locks.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("acquire turn lock: %w", err)
	}
	defer unlock()

	conv, err := uc.conversationRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	history, err := uc.messageRepo.ListRecent(ctx, id, uc.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	result, err := run(conv, history)
	if err != nil {
		return nil, fmt.Errorf("run turn: %w", err)
	}

	if err := uc.turnRepo.SaveTurn(ctx, toTurnRecord(id, userMessage, result)); err != nil {
		return nil, fmt.Errorf("save turn: %w", err)
	}

	return toSendMessageResponse(result), nil
}
