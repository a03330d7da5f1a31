package chat_fx

import (
	"context"
	"fmt"
	"io"
	"log"
	"tripzy/internal/infra"
	"tripzy/internal/services"
	"tripzy/pkg/utils"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	ProvideChatClient,
	ProvideChatService,
)

// ProvideChatClient creates a chat client for the configured provider. The "none"
// provider yields a nil client and the trip assistant reports itself unavailable.
func ProvideChatClient(lc fx.Lifecycle, cfg infra.Config) (utils.ChatClientInterface, error) {
	chat := cfg.Chat

	switch chat.Provider {
	case "none", "":
		log.Println("No chat provider configured, trip assistant disabled")
		return nil, nil
	case "openai":
		if chat.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		log.Printf("Initializing openai chat client with model: %s", chat.Model)
		return utils.NewOpenAIChatClient(chat.APIKey, chat.Model), nil
	case "gemini":
		if chat.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		log.Printf("Initializing gemini chat client with model: %s", chat.Model)
		client, err := utils.NewGeminiChatClient(context.Background(), chat.APIKey, chat.Model)
		if err != nil {
			return nil, err
		}
		if closer, ok := client.(io.Closer); ok {
			lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { return closer.Close() }})
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s. Use 'none', 'openai' or 'gemini'", chat.Provider)
	}
}

func ProvideChatService(client utils.ChatClientInterface, cfg infra.Config) services.ChatServiceInterface {
	return services.NewChatService(client, cfg.SessionTTL)
}
