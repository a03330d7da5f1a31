package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"tripzy/internal/models/response_models"
	"tripzy/internal/models/trip_models"
	mem "tripzy/pkg/memcache"
	"tripzy/pkg/utils"

	"github.com/google/uuid"
)

type ChatServiceInterface interface {
	StartConversation(ctx context.Context, profile trip_models.TripProfile) (response_models.ConversationResponse, error)
	SendMessage(ctx context.Context, conversationID string, message string) (response_models.ChatReplyResponse, error)
	HasConversation(conversationID string) bool
}

type conversation struct {
	mu      sync.Mutex
	history []utils.ChatMessage
}

// ChatService relays a finished trip profile and later user messages to the
// configured chat model. A nil client means no model is configured.
type ChatService struct {
	client        utils.ChatClientInterface
	conversations mem.SessionStore[*conversation]
}

// NewChatService keeps conversation history for ttl after the last message.
func NewChatService(client utils.ChatClientInterface, ttl time.Duration) ChatServiceInterface {
	return &ChatService{
		client:        client,
		conversations: mem.NewTTLSessions[*conversation](ttl),
	}
}

func (c *ChatService) StartConversation(ctx context.Context, profile trip_models.TripProfile) (response_models.ConversationResponse, error) {
	if c.client == nil {
		return response_models.ConversationResponse{}, utils.ErrChatUnavailable
	}

	conv := &conversation{
		history: []utils.ChatMessage{
			{Role: utils.ChatRoleSystem, Content: plannerSystemPrompt},
			{Role: utils.ChatRoleUser, Content: DescribeProfile(profile)},
		},
	}
	reply, err := c.client.Complete(ctx, conv.history)
	if err != nil {
		return response_models.ConversationResponse{}, fmt.Errorf("start conversation: %w", err)
	}
	conv.history = append(conv.history, utils.ChatMessage{Role: utils.ChatRoleAssistant, Content: reply})

	id := uuid.New().String()
	c.conversations.Set(id, conv)
	log.Printf("Conversation %s started with %s", id, c.client.Name())

	return response_models.ConversationResponse{ConversationID: id, Reply: reply}, nil
}

func (c *ChatService) SendMessage(ctx context.Context, conversationID string, message string) (response_models.ChatReplyResponse, error) {
	if c.client == nil {
		return response_models.ChatReplyResponse{}, utils.ErrChatUnavailable
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return response_models.ChatReplyResponse{}, utils.ErrInvalidInput
	}
	conv, ok := c.conversations.Get(conversationID)
	if !ok {
		return response_models.ChatReplyResponse{}, utils.ErrConversationNotFound
	}

	// one message at a time per conversation
	conv.mu.Lock()
	defer conv.mu.Unlock()

	history := append(conv.history, utils.ChatMessage{Role: utils.ChatRoleUser, Content: message})
	reply, err := c.client.Complete(ctx, history)
	if err != nil {
		return response_models.ChatReplyResponse{}, fmt.Errorf("send message: %w", err)
	}
	conv.history = append(history, utils.ChatMessage{Role: utils.ChatRoleAssistant, Content: reply})

	return response_models.ChatReplyResponse{ConversationID: conversationID, Reply: reply}, nil
}

func (c *ChatService) HasConversation(conversationID string) bool {
	_, ok := c.conversations.Get(conversationID)
	return ok
}

const plannerSystemPrompt = `You are Tripzy AI, a travel assistant for the Nilgiris (Ooty, Coonoor, Kotagiri and around).
The user has filled in a trip questionnaire; their answers follow. Greet them briefly, acknowledge the
key preferences, then ask one question at a time to plan dates and an itinerary. Respect health
conditions, food preferences and budget shares. Amounts are in Indian rupees.`

// DescribeProfile renders a profile as the opening user turn of a conversation.
func DescribeProfile(p trip_models.TripProfile) string {
	var b strings.Builder
	b.WriteString("My trip preferences:\n")

	if p.FromLocation != "" {
		fmt.Fprintf(&b, "- Traveling from: %s\n", p.FromLocation)
	}

	fmt.Fprintf(&b, "- Total budget: %s\n", utils.FormatRupees(p.BudgetTotal))
	amounts := DeriveAmounts(p.BudgetTotal, p.BudgetBreakdown)
	for _, c := range trip_models.BudgetCategories {
		fmt.Fprintf(&b, "  - %s: %d%% (%s)\n", c, p.BudgetBreakdown.Get(c), utils.FormatRupees(amounts.Get(c)))
	}

	switch p.TripType {
	case trip_models.TripTypeUnset:
		b.WriteString("- Trip type: not specified\n")
	case trip_models.TripTypeFriends:
		if p.GroupSize != nil {
			fmt.Fprintf(&b, "- Trip type: friends, %d people\n", *p.GroupSize)
		} else {
			b.WriteString("- Trip type: friends\n")
		}
	case trip_models.TripTypeFamily:
		adults, children := 0, 0
		if p.Adults != nil {
			adults = *p.Adults
		}
		if p.Children != nil {
			children = *p.Children
		}
		fmt.Fprintf(&b, "- Trip type: family, %d adults and %d children\n", adults, children)
	default:
		fmt.Fprintf(&b, "- Trip type: %s\n", p.TripType)
	}

	if p.TravelingWithPets {
		b.WriteString("- Traveling with pets\n")
	}
	writeList(&b, "Health conditions", appendNonEmpty(p.HealthConditions, p.CustomHealthCondition))
	writeList(&b, "Food preferences", p.FoodPreferences)
	writeList(&b, "Travel modes", p.TravelMode)
	writeList(&b, "Interests", append(append([]string{}, p.Interests...), p.CustomInterests...))

	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(items, ", "))
}

func appendNonEmpty(items []string, extra string) []string {
	out := append([]string{}, items...)
	if strings.TrimSpace(extra) != "" {
		out = append(out, strings.TrimSpace(extra))
	}
	return out
}
