package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/futig/legal-assistant/internal/entity"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"short"}, Split("short", 10))

	parts := Split("line one\nline two\nline three", 12)
	assert.Equal(t, []string{"line one\n", "line two\n", "line three"}, parts)

	long := strings.Repeat("ж", 25)
	parts = Split(long, 10)
	assert.Equal(t, []string{strings.Repeat("ж", 10), strings.Repeat("ж", 10), strings.Repeat("ж", 5)}, parts)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, ErrUnavailable, ErrorText(fmt.Errorf("x: %w", entity.ErrModelUnavailable)))
	assert.Equal(t, ErrModel, ErrorText(entity.ErrModelFailure))
	assert.Equal(t, MsgNoDocument, ErrorText(entity.ErrNoDraft))
	assert.Equal(t, ErrTooLong, ErrorText(entity.ErrInvalidParameter))
	assert.Equal(t, ErrGeneric, ErrorText(errors.New("boom")))
}
