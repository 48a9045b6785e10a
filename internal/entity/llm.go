package entity

type ConverseRequest struct {
	History      []Message `json:"history"`
	UserInput    string    `json:"user_input"`
	StateSummary string    `json:"state"`
	SystemNote   string    `json:"system_note,omitempty"`
}

type DraftRequest struct {
	DocumentType string    `json:"document_type"`
	FieldsJSON   string    `json:"filled_fields_json"`
	CurrentDraft string    `json:"current_draft"`
	Instruction  string    `json:"instruction"`
	History      []Message `json:"history"`
}

type PlaceholderCheckRequest struct {
	Draft   string    `json:"draft"`
	History []Message `json:"history"`
}
