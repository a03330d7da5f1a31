package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChatClient answers conversations with a Gemini model. System messages become
// the model's system instruction; earlier turns are replayed as chat history.
type GeminiChatClient struct {
	client *genai.Client
	model  string
}

func NewGeminiChatClient(ctx context.Context, apiKey, model string) (ChatClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiChatClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiChatClient) Name() string { return "gemini" }

func (c *GeminiChatClient) Complete(ctx context.Context, history []ChatMessage) (string, error) {
	if len(history) == 0 || history[len(history)-1].Role != ChatRoleUser {
		return "", fmt.Errorf("gemini: history must end with a user message")
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(1024)

	var system []string
	var turns []*genai.Content
	for _, msg := range history[:len(history)-1] {
		switch msg.Role {
		case ChatRoleSystem:
			system = append(system, msg.Content)
		case ChatRoleAssistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}
	if len(system) > 0 {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))}}
	}

	cs := m.StartChat()
	cs.History = turns

	resp, err := cs.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrUnexpectedBehaviorOfAI
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}
	if strings.TrimSpace(reply.String()) == "" {
		return "", ErrUnexpectedBehaviorOfAI
	}
	return reply.String(), nil
}

func (c *GeminiChatClient) Close() error {
	return c.client.Close()
}
