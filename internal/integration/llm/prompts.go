package llm

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/futig/legal-assistant/internal/entity"
)

// Templates use FString formatting, literal braces are doubled.

const conversationalSystemPrompt = `Act as an empathetic legal assistant that helps the user prepare a legal document.

Current state (read-only summary): {state}
{system_note}

Each turn:
1. Carry on a natural dialogue. Explain, clarify and warn politely when input looks wrong or contradictory.
2. Decide which atomic actions to take this turn:
   - update_document_type: the document type was learned or corrected
   - update_needed_values: one or more field values are known
   - update_document: enough is known to draft or revise the document
   Several actions may be listed at once.
3. Put your reply to the user in user_reply.
4. Return ONLY compact JSON, no markdown and no commentary:
{{"actions": [], "user_reply": "<reply>", "update_document_type": "<type|NONE>", "update_needed_values": {{"<field>": "<value>"}}, "update_document_instruction": "<instruction|NONE>"}}

Rules:
- When the state says drafted=yes, changing the document type is forbidden. Offer to refine the existing draft instead.
- Never invent field values the user did not provide.`

const draftingSystemPrompt = `You are a veteran legal drafter.

Document type: {document_type}
Field values (JSON): {filled_fields_json}
Existing draft:
<<<START>>>
{current_draft}
<<<END>>>
Instruction: {instruction}

Produce a clean, professional draft in plain text.
Substitute the actual field values and consult the conversation for details. Do not leave placeholders like [DATE].
No boilerplate such as "Here is your draft".
Return ONLY compact JSON: {{"draft": "<the complete draft>", "is_drafted": true}}`

const placeholderCheckerSystemPrompt = `Refer to the conversation history to cross-check missing details, then scan the draft below.

If no placeholders like [DATE], [NAME] or [PARTY A] remain and nothing essential is missing, return:
{{"is_success": true, "missing_desc": "", "ask_user": ""}}
Otherwise return:
{{"is_success": false, "missing_desc": "<short list of what is missing>", "ask_user": "<one concise question to collect all missing info>"}}

Return ONLY that JSON.

Draft:
{draft}`

const historyKey = "history"

var (
	conversationalTemplate = prompt.FromMessages(schema.FString,
		schema.SystemMessage(conversationalSystemPrompt),
		schema.MessagesPlaceholder(historyKey, true),
		schema.UserMessage("{user_input}"),
	)

	draftingTemplate = prompt.FromMessages(schema.FString,
		schema.SystemMessage(draftingSystemPrompt),
		schema.MessagesPlaceholder(historyKey, true),
		schema.UserMessage("Return the draft JSON now."),
	)

	placeholderCheckerTemplate = prompt.FromMessages(schema.FString,
		schema.SystemMessage(placeholderCheckerSystemPrompt),
		schema.MessagesPlaceholder(historyKey, true),
		schema.UserMessage("Return the check JSON now."),
	)
)

func conversationalVars(req *entity.ConverseRequest) map[string]any {
	note := ""
	if req.SystemNote != "" {
		note = "Internal note: " + req.SystemNote
	}

	return map[string]any{
		"state":       req.StateSummary,
		"system_note": note,
		"user_input":  req.UserInput,
		historyKey:    historyMessages(req.History),
	}
}

func draftingVars(req *entity.DraftRequest) map[string]any {
	return map[string]any{
		"document_type":      req.DocumentType,
		"filled_fields_json": req.FieldsJSON,
		"current_draft":      req.CurrentDraft,
		"instruction":        req.Instruction,
		historyKey:           historyMessages(req.History),
	}
}

func placeholderCheckerVars(req *entity.PlaceholderCheckRequest) map[string]any {
	return map[string]any{
		"draft":    req.Draft,
		historyKey: historyMessages(req.History),
	}
}

func historyMessages(history []entity.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Sender {
		case entity.SenderUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case entity.SenderAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return messages
}
