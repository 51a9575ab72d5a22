package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devikaharshey/pybot-backend/internal/http/response"
	"github.com/devikaharshey/pybot-backend/internal/quizformat"
	"github.com/devikaharshey/pybot-backend/internal/services"
)

type QuizHandler struct {
	quiz services.QuizService
}

func NewQuizHandler(quiz services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// GET /api/generate-quiz?user_id=...
// A missing user id is not an error here: the frontend polls this endpoint
// before login and expects an empty quiz back.
func (h *QuizHandler) Generate(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondOK(c, gin.H{"questions": []quizformat.Question{}})
		return
	}

	questions, err := h.quiz.Generate(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if questions == nil {
		questions = []quizformat.Question{}
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

// POST /api/submit-quiz
// body: { "user_id": "...", "answers": { "0": "A", ... } }
func (h *QuizHandler) Submit(c *gin.Context) {
	var req struct {
		UserID  string            `json:"user_id"`
		Answers map[string]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.UserID == "" || len(req.Answers) == 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_data", fmt.Errorf("Missing data"))
		return
	}

	score, _, err := h.quiz.Grade(c.Request.Context(), req.UserID, req.Answers)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"score": score})
}

// POST /api/reset-quiz
// Server-side quiz state is left alone; regeneration overwrites it anyway.
func (h *QuizHandler) Reset(c *gin.Context) {
	response.RespondOK(c, gin.H{"message": "Frontend reset complete"})
}
