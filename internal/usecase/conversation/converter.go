package conversation

import "github.com/futig/legal-assistant/internal/entity"

const unknownDocType = "unknown"

// toTurnRecord keeps the document only when the turn produced one.
func toTurnRecord(id, userMessage string, result *entity.TurnResult) *entity.TurnRecord {
	record := &entity.TurnRecord{
		ConversationID: id,
		UserMessage:    userMessage,
		Reply:          result.Reply,
		State:          result.State,
	}

	if result.DraftDocument != nil {
		docType := result.State.DocumentType
		if docType == "" {
			docType = unknownDocType
		}

		record.Document = &entity.Document{
			ConversationID: id,
			DocType:        docType,
			Content:        *result.DraftDocument,
		}
	}

	return record
}

func toSendMessageResponse(result *entity.TurnResult) *entity.SendMessageResponse {
	return &entity.SendMessageResponse{
		AssistantReply:  result.Reply,
		Document:        result.DraftDocument,
		DocumentUpdated: result.DocumentUpdated,
	}
}
