package agent

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/futig/legal-assistant/internal/entity"
)

type replyUsecase struct {
	resp *entity.SendMessageResponse
}

func (u *replyUsecase) SendMessage(context.Context, string, string) (*entity.SendMessageResponse, error) {
	return u.resp, nil
}

// brokenWriter fails every write after the first okWrites.
type brokenWriter struct {
	*httptest.ResponseRecorder
	okWrites int
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	if w.okWrites == 0 {
		return 0, errors.New("connection reset")
	}
	w.okWrites--
	return w.ResponseRecorder.Write(p)
}

func TestStreamLogsEveryFailedWrite(t *testing.T) {
	// one chunk, the document, then the end marker
	for okWrites := range 3 {
		core, logs := observer.New(zapcore.WarnLevel)
		ctx := ctxzap.ToContext(context.Background(), zap.New(core))

		h := NewHandler(&replyUsecase{resp: &entity.SendMessageResponse{AssistantReply: "Hi"}})
		w := &brokenWriter{ResponseRecorder: httptest.NewRecorder(), okWrites: okWrites}
		r := httptest.NewRequest(http.MethodPost, "/agent/c1/stream", strings.NewReader(`{"content": "hello"}`)).WithContext(ctx)

		h.StreamMessage(w, r)

		require.Equal(t, 1, logs.FilterMessage("client went away during stream").Len(), "writes before failure: %d", okWrites)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestStreamCompleteWritesNoWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	h := NewHandler(&replyUsecase{resp: &entity.SendMessageResponse{AssistantReply: "Hi"}})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/agent/c1/stream", strings.NewReader(`{"content": "hello"}`)).WithContext(ctx)

	h.StreamMessage(w, r)

	assert.Zero(t, logs.Len())
	assert.Equal(t, "data: Hi\n\nevent: document\ndata: \n\nevent: done\ndata: END\n\n", w.Body.String())
}
