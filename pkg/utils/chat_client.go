package utils

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClientInterface produces the next assistant reply for a conversation history.
// The last message in history is the user turn being answered.
type ChatClientInterface interface {
	Complete(ctx context.Context, history []ChatMessage) (string, error)
	Name() string
}
