package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devikaharshey/pybot-backend/internal/http/response"
	"github.com/devikaharshey/pybot-backend/internal/services"
)

type ChatHandler struct {
	assistant services.AssistantService
}

func NewChatHandler(assistant services.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// POST /api/chat
// body: { "question": "...", "user_id": "...", "session_id": "..."? }
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Question  string `json:"question"`
		SessionID string `json:"session_id"`
		UserID    string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.UserID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", fmt.Errorf("Missing user_id"))
		return
	}

	answer, sessionID := h.assistant.Ask(c.Request.Context(), req.UserID, req.SessionID, req.Question)
	response.RespondOK(c, gin.H{
		"answer":     answer,
		"session_id": sessionID,
	})
}
