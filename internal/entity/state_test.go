package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStateCloneIsDeep(t *testing.T) {
	state := NewConversationState()
	state.DocumentType = "NDA"
	state.NeededFields["Party A"] = "Alice LLC"

	clone := state.Clone()
	clone.NeededFields["Party A"] = "Bob Inc"
	clone.DocumentType = "Lease"

	assert.Equal(t, "Alice LLC", state.NeededFields["Party A"])
	assert.Equal(t, "NDA", state.DocumentType)
}

func TestConversationStateCloneNil(t *testing.T) {
	var state *ConversationState
	clone := state.Clone()

	require.NotNil(t, clone)
	assert.NotNil(t, clone.NeededFields)
}

func TestSetDocumentTypeAfterDraft(t *testing.T) {
	state := NewConversationState()
	assert.True(t, state.SetDocumentType("NDA"))
	assert.True(t, state.SetDocumentType("Lease"))

	state.CommitDraft("draft text")

	assert.False(t, state.SetDocumentType("NDA"))
	assert.Equal(t, "Lease", state.DocumentType)
	assert.True(t, state.SetDocumentType("Lease"))
}

func TestMergeFieldsIsIdempotent(t *testing.T) {
	values := map[string]string{"Party A": "Alice", " ": "ignored", "Date": "2025-07-09"}

	once := NewConversationState()
	once.MergeFields(values)

	twice := NewConversationState()
	twice.MergeFields(values)
	twice.MergeFields(values)

	assert.Equal(t, once.NeededFields, twice.NeededFields)
	assert.Len(t, once.NeededFields, 2)
}

func TestRegisterMissingPromptBound(t *testing.T) {
	state := NewConversationState()

	assert.True(t, state.RegisterMissingPrompt(2))
	assert.True(t, state.RegisterMissingPrompt(2))
	assert.False(t, state.RegisterMissingPrompt(2))
	assert.Equal(t, 2, state.MissingPromptCount)

	state.CommitDraft("final")
	assert.Equal(t, 0, state.MissingPromptCount)
	assert.True(t, state.IsDrafted)
}

func TestSummary(t *testing.T) {
	state := NewConversationState()
	assert.Equal(t, "type=—, drafted=no, fields=[]", state.Summary())

	state.DocumentType = "NDA"
	state.MergeFields(map[string]string{"b": "2", "a": "1"})
	state.CommitDraft("x")
	assert.Equal(t, "type=NDA, drafted=yes, fields=[a, b]", state.Summary())
}
