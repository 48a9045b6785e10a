package llm

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/llmtext"
)

// MockConnector is a deterministic stand-in for the language model. It reads
// "field: value" lines from the user, drafts when asked to and checks drafts
// for bracketed placeholders.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockDocumentTypes = []struct {
	keyword string
	docType string
}{
	{"non-disclosure", "NDA"},
	{"nda", "NDA"},
	{"lease", "Lease Agreement"},
	{"employment", "Employment Agreement"},
	{"service", "Service Agreement"},
}

func (m *MockConnector) Converse(ctx context.Context, req *entity.ConverseRequest) (any, error) {
	ctxzap.Info(ctx, "[MOCK] conversational model call")

	if req.SystemNote != "" {
		return sonic.MarshalString(map[string]any{
			"actions":    []string{},
			"user_reply": "Could you share the remaining details so I can finish the document?",
		})
	}

	docType, fields := parseMockInput(req.UserInput)

	actions := make([]entity.Action, 0, 3)
	replyParts := make([]string, 0, 3)

	if docType != "" {
		actions = append(actions, entity.ActionUpdateDocumentType)
		replyParts = append(replyParts, fmt.Sprintf("We are preparing a %s.", docType))
	}

	if len(fields) > 0 {
		actions = append(actions, entity.ActionUpdateNeededValues)
		replyParts = append(replyParts, fmt.Sprintf("Noted %d detail(s).", len(fields)))
	}

	if strings.Contains(strings.ToLower(req.UserInput), "draft") {
		actions = append(actions, entity.ActionUpdateDocument)
		replyParts = append(replyParts, "Drafting now.")
	}

	if len(replyParts) == 0 {
		replyParts = append(replyParts, `Tell me the document type and its details as "field: value" lines, then ask me to draft.`)
	}

	if docType == "" {
		docType = entity.NoneValue
	}

	return sonic.MarshalString(map[string]any{
		"actions":                     actions,
		"user_reply":                  strings.Join(replyParts, " "),
		"update_document_type":        docType,
		"update_needed_values":        fields,
		"update_document_instruction": entity.NoneValue,
	})
}

func (m *MockConnector) Draft(ctx context.Context, req *entity.DraftRequest) (any, error) {
	ctxzap.Info(ctx, "[MOCK] drafting model call", zap.String("document_type", req.DocumentType))

	fields := make(map[string]string)
	if req.FieldsJSON != "" {
		if err := sonic.UnmarshalString(req.FieldsJSON, &fields); err != nil {
			return nil, fmt.Errorf("mock draft: decode fields: %w", err)
		}
	}

	docType := req.DocumentType
	if docType == "" {
		docType = "Agreement"
	}

	names := slices.Sorted(maps.Keys(fields))

	effective := "[DATE]"
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), "date") {
			effective = fields[name]
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", strings.ToUpper(docType))
	fmt.Fprintf(&b, "This %s is entered into as of %s.\n\n", docType, effective)

	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, name, fields[name])
	}

	if req.Instruction != "" && req.Instruction != "create fresh draft" {
		fmt.Fprintf(&b, "\nRevision: %s\n", req.Instruction)
	}

	return sonic.MarshalString(map[string]any{
		"draft":      b.String(),
		"is_drafted": true,
	})
}

func (m *MockConnector) CheckPlaceholders(ctx context.Context, req *entity.PlaceholderCheckRequest) (any, error) {
	ctxzap.Info(ctx, "[MOCK] placeholder checker call")

	tokens := llmtext.DetectPlaceholders(req.Draft)
	if len(tokens) == 0 {
		return `{"is_success": true, "missing_desc": "", "ask_user": ""}`, nil
	}

	missing := strings.Join(tokens, ", ")
	return sonic.MarshalString(map[string]any{
		"is_success":   false,
		"missing_desc": missing,
		"ask_user":     fmt.Sprintf("Please provide values for %s.", missing),
	})
}

// parseMockInput reads "field: value" lines; a "type" field names the document.
func parseMockInput(input string) (string, map[string]string) {
	docType := ""
	fields := make(map[string]string)

	for _, line := range strings.Split(input, "\n") {
		name, value, ok := strings.Cut(line, ":")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			continue
		}

		switch strings.ToLower(name) {
		case "type", "document type":
			docType = value
		default:
			fields[name] = value
		}
	}

	if docType == "" {
		lower := strings.ToLower(input)
		for _, known := range mockDocumentTypes {
			if strings.Contains(lower, known.keyword) {
				docType = known.docType
				break
			}
		}
	}

	return docType, fields
}
