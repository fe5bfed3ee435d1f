package models

// Turn roles used in chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single utterance in a chat history window.
type Turn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the relay request contract.
type ChatRequest struct {
	Message     string `json:"message" validate:"required,max=4000"`
	History     []Turn `json:"history" validate:"max=6,dive"`
	Lang        string `json:"lang" default:"fr"`
	PageContext string `json:"page_context" validate:"max=512"`
}

// ChatResponse is the relay response contract.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatStrings holds the localized widget copy.
type ChatStrings struct {
	Welcome     string   `json:"welcome"`
	Chips       []string `json:"chips"`
	Placeholder string   `json:"placeholder"`
	Disclaimer  string   `json:"disclaimer"`
	Subtitle    string   `json:"subtitle"`
	Send        string   `json:"send"`
	Responded   string   `json:"responded"`
}

// ChatStringsRequest selects the widget copy language.
type ChatStringsRequest struct {
	Lang string `query:"lang" default:"fr"`
}
