package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devikaharshey/pybot-backend/internal/http/response"
	"github.com/devikaharshey/pybot-backend/internal/services"
)

type SessionHandler struct {
	sessions services.SessionService
}

func NewSessionHandler(sessions services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// GET /api/chats?user_id=...
func (h *SessionHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", fmt.Errorf("Missing user_id"))
		return
	}
	response.RespondOK(c, h.sessions.LoadAll(c.Request.Context(), userID))
}

// PATCH /api/chats/:session_id
// body: { "name": "..." }
func (h *SessionHandler) Rename(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.sessions.Rename(c.Request.Context(), c.Param("session_id"), req.Name); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Chat renamed successfully"})
}

// DELETE /api/chats/:session_id?user_id=...
func (h *SessionHandler) Delete(c *gin.Context) {
	h.sessions.Delete(c.Request.Context(), c.Param("session_id"), c.Query("user_id"))
	response.RespondOK(c, gin.H{"message": "Chat and all related data deleted."})
}

// POST /api/save-transcript
// body: { "session_id": "...", "transcript": "...", "user_id": "..." }
func (h *SessionHandler) SaveTranscript(c *gin.Context) {
	var req struct {
		SessionID  string `json:"session_id"`
		Transcript string `json:"transcript"`
		UserID     string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.SessionID == "" || req.Transcript == "" || req.UserID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_data", fmt.Errorf("Missing data"))
		return
	}

	h.sessions.AppendTranscript(c.Request.Context(), req.SessionID, req.UserID, req.Transcript)
	response.RespondOK(c, gin.H{"message": "Transcript saved successfully"})
}
