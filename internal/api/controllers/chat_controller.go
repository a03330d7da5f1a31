package controllers

import (
	"log"
	"net/http"
	"strings"
	"tripzy/internal/models/request_models"
	"tripzy/internal/services"
	"tripzy/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatController struct {
	chatService services.ChatServiceInterface
	upgrader    websocket.Upgrader
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
		upgrader: websocket.Upgrader{
			// CORS middleware already guards the HTTP routes
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SendMessageHandler godoc
// @Summary Send a message to the trip assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Param request body request_models.ChatMessageRequest true "Message"
// @Success 200 {object} response_models.ChatReplyResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /chat/{conversationId}/messages [post]
func (cc *ChatController) SendMessageHandler(c *gin.Context) {
	var req request_models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := cc.chatService.SendMessage(c.Request.Context(), c.Param("conversationId"), req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, reply, "Reply received")
}

// StreamHandler relays text frames between a websocket client and the trip
// assistant. Each inbound frame is one user message; each reply goes back as one frame.
func (cc *ChatController) StreamHandler(c *gin.Context) {
	conversationID := c.Param("conversationId")
	if !cc.chatService.HasConversation(conversationID) {
		utils.HandleServiceError(c, utils.ErrConversationNotFound)
		return
	}

	conn, err := cc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade conversation %s to websocket: %v", conversationID, err)
		return
	}
	defer conn.Close()
	log.Printf("Websocket opened for conversation %s", conversationID)

	ctx := c.Request.Context()
ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading from conversation %s: %v", conversationID, err)
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage || strings.TrimSpace(string(message)) == "" {
			continue
		}

		reply, err := cc.chatService.SendMessage(ctx, conversationID, string(message))
		if err != nil {
			log.Printf("Conversation %s failed: %v", conversationID, err)
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "assistant unavailable"))
			break ReadLoop
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply.Reply)); err != nil {
			log.Printf("Error writing to conversation %s: %v", conversationID, err)
			break ReadLoop
		}
	}
	log.Printf("Websocket closed for conversation %s", conversationID)
}
