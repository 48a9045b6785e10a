package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futig/legal-assistant/internal/entity"
)

func TestUsecaseErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("get conversation: %w", entity.ErrConversationNotFound), http.StatusNotFound},
		{entity.ErrDocumentNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: content", entity.ErrMissingField), http.StatusBadRequest},
		{entity.ErrInvalidFormat, http.StatusBadRequest},
		{fmt.Errorf("run turn: %w", entity.ErrNoDraft), http.StatusConflict},
		{fmt.Errorf("run turn: converse: %w: boom", entity.ErrModelUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("run turn: draft: %w: boom", entity.ErrModelFailure), http.StatusBadGateway},
		{errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			UsecaseError(context.Background(), rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body entity.ErrorResponse
			require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tc.status), body.Error)
			assert.NotContains(t, rec.Body.String(), tc.err.Error())
		})
	}
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
