package models

// ChatTurn represents a single prior message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the payload sent to the chat endpoint. History is the
// client-held transcript, oldest first. Message is a pointer so an absent
// field stays absent when forwarded.
type ChatRequest struct {
	Message *string    `json:"message,omitempty"`
	History []ChatTurn `json:"history,omitempty"`
}

// ShimChatRequest is the body forwarded to the shim's /chat endpoint.
// The transcript itself never leaves the gateway.
type ShimChatRequest struct {
	Message *string `json:"message,omitempty"`
	Reset   bool    `json:"reset"`
}

// ChatResponse is the reply from the conversational agent.
type ChatResponse struct {
	Reply string `json:"reply"`
}
