package conversation

import "github.com/futig/legal-assistant/internal/entity"

// toConversationDTO converts Conversation entity to ConversationDTO
func toConversationDTO(conv *entity.Conversation) entity.ConversationDTO {
	dto := entity.ConversationDTO{
		ID:        conv.ID,
		Fields:    []string{},
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}

	if conv.State != nil {
		dto.DocumentType = conv.State.DocumentType
		dto.IsDrafted = conv.State.IsDrafted
		dto.Fields = conv.State.FieldNames()
	}

	return dto
}

func toConversationDetailDTO(conv *entity.Conversation, messages []entity.Message) *entity.ConversationDetailDTO {
	return &entity.ConversationDetailDTO{
		ConversationDTO: toConversationDTO(conv),
		State:           conv.State,
		Messages:        toMessageDTOs(messages),
	}
}

func toMessageDTOs(messages []entity.Message) []entity.MessageDTO {
	dtos := make([]entity.MessageDTO, 0, len(messages))
	for _, msg := range messages {
		dtos = append(dtos, entity.MessageDTO{
			Sender:    msg.Sender,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	return dtos
}
