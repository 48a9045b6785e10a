package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/futig/legal-assistant/internal/entity"
)

func TestParseCommand(t *testing.T) {
	cmd := parseCommand(context.Background(), map[string]any{
		"actions":                     []any{"update_document", " update_document ", 3, "update_needed_values"},
		"user_reply":                  "  Hi  ",
		"update_document_type":        "none",
		"update_needed_values":        map[string]any{"Party A": "Alice", "Fee": 1500.5, "Gone": nil},
		"update_document_instruction": "make it mutual",
	})

	assert.Equal(t, []entity.Action{entity.ActionUpdateDocument, entity.ActionUpdateNeededValues}, cmd.Actions)
	assert.Equal(t, "Hi", cmd.UserReply)
	assert.Empty(t, cmd.DocumentType)
	assert.Equal(t, map[string]string{"Party A": "Alice", "Fee": "1500.5"}, cmd.NeededValues)
	assert.Equal(t, "make it mutual", cmd.Instruction)
}

func TestParseCommandSingleActionString(t *testing.T) {
	cmd := parseCommand(context.Background(), map[string]any{"actions": "update_document"})

	assert.Equal(t, []entity.Action{entity.ActionUpdateDocument}, cmd.Actions)
	assert.Empty(t, cmd.NeededValues)
}

func TestNormalizeFields(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want map[string]string
	}{
		{"nil", nil, map[string]string{}},
		{"mapping", map[string]any{"a": "1", "b": true, "c": map[string]any{"x": "y"}}, map[string]string{"a": "1", "b": "true", "c": `{"x":"y"}`}},
		{"pair arrays", []any{[]any{"a", "1"}, []any{"b"}}, map[string]string{"a": "1"}},
		{"pair objects", []any{
			map[string]any{"field": "a", "value": "1"},
			map[string]any{"name": "b", "value": 2.0},
			map[string]any{"key": "c", "value": "3"},
			map[string]any{"value": "orphan"},
		}, map[string]string{"a": "1", "b": "2", "c": "3"}},
		{"encoded mapping", `{"a": "1"}`, map[string]string{"a": "1"}},
		{"none sentinel", "NONE", map[string]string{}},
		{"invalid scalar", 42.0, map[string]string{}},
		{"invalid text", "Alice is party A", map[string]string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeFields(context.Background(), tc.raw))
		})
	}
}

func TestClassifyFields(t *testing.T) {
	assert.Equal(t, payloadMapping, classifyFields(map[string]any{}).kind)
	assert.Equal(t, payloadPairList, classifyFields([]any{}).kind)
	assert.Equal(t, payloadEmpty, classifyFields("").kind)
	assert.Equal(t, payloadInvalid, classifyFields(true).kind)
}

func TestBoolValue(t *testing.T) {
	assert.True(t, boolValue(true))
	assert.True(t, boolValue("True"))
	assert.False(t, boolValue("nope"))
	assert.False(t, boolValue(1.0))
	assert.False(t, boolValue(nil))
}
