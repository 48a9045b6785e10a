package entity

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// NoneValue is the sentinel models emit for "no value this turn".
const NoneValue = "NONE"

// ConversationState is the mutable drafting state of one conversation.
// It is persisted as JSON after every turn.
type ConversationState struct {
	DocumentType       string            `json:"document_type"`
	NeededFields       map[string]string `json:"needed_fields"`
	Draft              string            `json:"draft"`
	IsDrafted          bool              `json:"is_drafted"`
	MissingPromptCount int               `json:"missing_prompt_count"`
}

func NewConversationState() *ConversationState {
	return &ConversationState{
		NeededFields: make(map[string]string),
	}
}

// Clone returns a deep copy so a turn can mutate state without touching the caller's value.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return NewConversationState()
	}

	clone := *s
	clone.NeededFields = make(map[string]string, len(s.NeededFields))
	maps.Copy(clone.NeededFields, s.NeededFields)

	return &clone
}

// Summary is the compact one-liner injected into model prompts.
func (s *ConversationState) Summary() string {
	docType := s.DocumentType
	if docType == "" {
		docType = "—"
	}

	drafted := "no"
	if s.IsDrafted {
		drafted = "yes"
	}

	return fmt.Sprintf("type=%s, drafted=%s, fields=[%s]", docType, drafted, strings.Join(s.FieldNames(), ", "))
}

// FieldNames returns collected field names in lexical order.
func (s *ConversationState) FieldNames() []string {
	return slices.Sorted(maps.Keys(s.NeededFields))
}

// CanSetDocumentType reports whether docType may be applied.
// Once drafted, only the same type is accepted.
func (s *ConversationState) CanSetDocumentType(docType string) bool {
	return !s.IsDrafted || docType == s.DocumentType
}

// SetDocumentType applies docType and reports false when the change is refused.
func (s *ConversationState) SetDocumentType(docType string) bool {
	if !s.CanSetDocumentType(docType) {
		return false
	}

	s.DocumentType = docType
	return true
}

// MergeFields merges values into NeededFields. Blank field names are ignored.
func (s *ConversationState) MergeFields(values map[string]string) int {
	if s.NeededFields == nil {
		s.NeededFields = make(map[string]string, len(values))
	}

	merged := 0
	for name, value := range values {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s.NeededFields[name] = value
		merged++
	}

	return merged
}

// CommitDraft stores a fully checked draft and resets the missing-info counter.
func (s *ConversationState) CommitDraft(draft string) {
	s.Draft = draft
	s.IsDrafted = true
	s.MissingPromptCount = 0
}

// RegisterMissingPrompt increments the missing-info counter unless limit is reached.
// It returns false when the user has already been re-prompted limit times.
func (s *ConversationState) RegisterMissingPrompt(limit int) bool {
	if s.MissingPromptCount >= limit {
		return false
	}

	s.MissingPromptCount++
	return true
}
