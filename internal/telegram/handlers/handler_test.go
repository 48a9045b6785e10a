package handlers

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/telegram/keyboard"
	"github.com/futig/legal-assistant/internal/telegram/render"
)

const chatID int64 = 100

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

func (f *fakeSender) documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []tgbotapi.DocumentConfig
	for _, c := range f.sent {
		if doc, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, doc)
		}
	}
	return out
}

type fakeUsecase struct {
	refs     []string
	resets   []string
	contents []string
	sendResp *entity.SendMessageResponse
	sendErr  error
	exported *entity.ExportedDocument
}

func (f *fakeUsecase) EnsureExternalConversation(_ context.Context, ref string) (*entity.Conversation, error) {
	f.refs = append(f.refs, ref)
	return &entity.Conversation{ID: "conv-1"}, nil
}

func (f *fakeUsecase) ResetExternalConversation(_ context.Context, ref string) error {
	f.resets = append(f.resets, ref)
	return nil
}

func (f *fakeUsecase) SendMessage(_ context.Context, id, content string) (*entity.SendMessageResponse, error) {
	f.contents = append(f.contents, id+":"+content)
	return f.sendResp, f.sendErr
}

func (f *fakeUsecase) ExportDocument(context.Context, string, entity.ResultFormat) (*entity.ExportedDocument, error) {
	if f.exported == nil {
		return nil, fmt.Errorf("get document: %w", entity.ErrDocumentNotFound)
	}
	return f.exported, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text + " (" + string(audio) + ")", nil
}

type fakeFiles struct{}

func (fakeFiles) Download(_ context.Context, fileID string) ([]byte, error) {
	return []byte(fileID), nil
}

func newTestHandler(uc *fakeUsecase) (*Handler, *fakeSender) {
	return newVoiceHandler(uc, nil)
}

func newVoiceHandler(uc *fakeUsecase, transcriber Transcriber) (*Handler, *fakeSender) {
	sender := &fakeSender{}
	voice := VoiceConfig{Files: fakeFiles{}, MaxDuration: 60}
	if transcriber != nil {
		voice.Transcriber = transcriber
	}
	return NewHandler(sender, uc, keyboard.NewBuilder(), entity.FormatDOCX, voice), sender
}

func voiceMessage(duration int) *tgbotapi.Message {
	msg := textMessage("")
	msg.Voice = &tgbotapi.Voice{FileID: "file-1", FileUniqueID: "u1", Duration: duration}
	return msg
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: 7},
	}
}

func commandMessage(command string) *tgbotapi.Message {
	msg := textMessage("/" + command)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command) + 1}}
	return msg
}

func TestStartCommand(t *testing.T) {
	uc := &fakeUsecase{}
	h, sender := newTestHandler(uc)

	require.NoError(t, h.HandleMessage(context.Background(), commandMessage("start")))

	assert.Equal(t, []string{"telegram:100"}, uc.refs)
	assert.Equal(t, []string{render.MsgWelcome}, sender.texts())
}

func TestNewCommandResetsConversation(t *testing.T) {
	uc := &fakeUsecase{}
	h, sender := newTestHandler(uc)

	require.NoError(t, h.HandleMessage(context.Background(), commandMessage("new")))

	assert.Equal(t, []string{"telegram:100"}, uc.resets)
	assert.Equal(t, []string{render.MsgNewConversation}, sender.texts())
}

func TestTextRunsTurnAndSendsDocument(t *testing.T) {
	uc := &fakeUsecase{
		sendResp: &entity.SendMessageResponse{AssistantReply: "✅ ready", DocumentUpdated: true},
		exported: &entity.ExportedDocument{Filename: "nda.docx", Data: []byte("doc")},
	}
	h, sender := newTestHandler(uc)

	require.NoError(t, h.HandleMessage(context.Background(), textMessage("  draft my NDA ")))

	assert.Equal(t, []string{"conv-1:draft my NDA"}, uc.contents)
	assert.Equal(t, []string{"✅ ready"}, sender.texts())

	docs := sender.documents()
	require.Len(t, docs, 1)
	assert.Equal(t, render.MsgDocumentCaption, docs[0].Caption)
}

func TestTextReportsModelUnavailable(t *testing.T) {
	uc := &fakeUsecase{sendErr: fmt.Errorf("run turn: %w", entity.ErrModelUnavailable)}
	h, sender := newTestHandler(uc)

	err := h.HandleMessage(context.Background(), textMessage("hello"))

	require.ErrorIs(t, err, entity.ErrModelUnavailable)
	assert.Equal(t, []string{render.ErrUnavailable}, sender.texts())
}

func TestDocumentCommandWithoutDraft(t *testing.T) {
	h, sender := newTestHandler(&fakeUsecase{})

	require.NoError(t, h.HandleMessage(context.Background(), commandMessage("document")))

	assert.Equal(t, []string{render.MsgNoDocument}, sender.texts())
	assert.Empty(t, sender.documents())
}

func TestNonTextMessage(t *testing.T) {
	uc := &fakeUsecase{}
	h, sender := newTestHandler(uc)

	require.NoError(t, h.HandleMessage(context.Background(), textMessage("")))

	assert.Empty(t, uc.contents)
	assert.Equal(t, []string{render.MsgTextOnly}, sender.texts())
}

func TestUnknownCommand(t *testing.T) {
	h, sender := newTestHandler(&fakeUsecase{})

	require.NoError(t, h.HandleMessage(context.Background(), commandMessage("foo")))

	assert.Equal(t, []string{render.MsgUnknownCommand}, sender.texts())
}

func TestVoiceRunsTranscribedTurn(t *testing.T) {
	uc := &fakeUsecase{sendResp: &entity.SendMessageResponse{AssistantReply: "Which date?"}}
	h, sender := newVoiceHandler(uc, &fakeTranscriber{text: "draft an NDA"})

	require.NoError(t, h.HandleMessage(context.Background(), voiceMessage(10)))

	assert.Equal(t, []string{"conv-1:draft an NDA (file-1)"}, uc.contents)
	assert.Equal(t, []string{
		fmt.Sprintf(render.MsgHeardFormat, "draft an NDA (file-1)"),
		"Which date?",
	}, sender.texts())
}

func TestVoiceDisabled(t *testing.T) {
	uc := &fakeUsecase{}
	h, sender := newTestHandler(uc)

	require.NoError(t, h.HandleMessage(context.Background(), voiceMessage(10)))

	assert.Empty(t, uc.contents)
	assert.Equal(t, []string{render.MsgTextOnly}, sender.texts())
}

func TestVoiceTooLong(t *testing.T) {
	uc := &fakeUsecase{}
	h, sender := newVoiceHandler(uc, &fakeTranscriber{text: "x"})

	require.NoError(t, h.HandleMessage(context.Background(), voiceMessage(61)))

	assert.Empty(t, uc.contents)
	assert.Equal(t, []string{fmt.Sprintf(render.ErrVoiceLong, 60)}, sender.texts())
}

func TestVoiceNoSpeech(t *testing.T) {
	uc := &fakeUsecase{}
	h, sender := newVoiceHandler(uc, &fakeTranscriber{err: entity.ErrEmptyTranscription})

	err := h.HandleMessage(context.Background(), voiceMessage(5))

	require.ErrorIs(t, err, entity.ErrEmptyTranscription)
	assert.Empty(t, uc.contents)
	assert.Equal(t, []string{render.MsgNoSpeech}, sender.texts())
}
