package entity

// Action is a state mutation requested by the conversational model.
type Action string

const (
	ActionUpdateDocumentType Action = "update_document_type"
	ActionUpdateNeededValues Action = "update_needed_values"
	ActionUpdateDocument     Action = "update_document"
)

// Command keys as they appear in model output.
const (
	CommandKeyActions      = "actions"
	CommandKeyUserReply    = "user_reply"
	CommandKeyDocumentType = "update_document_type"
	CommandKeyNeededValues = "update_needed_values"
	CommandKeyInstruction  = "update_document_instruction"
	CommandKeyDraft        = "draft"
	CommandKeyIsSuccess    = "is_success"
	CommandKeyMissingDesc  = "missing_desc"
	CommandKeyAskUser      = "ask_user"
)

// Command is the structured action set parsed from one conversational model reply.
// DocumentType and Instruction are empty when the model sent "NONE".
type Command struct {
	Actions      []Action
	UserReply    string
	DocumentType string
	NeededValues map[string]string
	Instruction  string
}

// PlaceholderCheckResult is the verdict on a freshly drafted document.
type PlaceholderCheckResult struct {
	IsSuccess    bool
	MissingDesc  string
	AskUser      string
	Placeholders []string
}

// TurnResult is what one orchestrated turn hands back to its caller.
type TurnResult struct {
	Reply           string
	State           *ConversationState
	DraftDocument   *string
	DocumentUpdated bool
}
