package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devikaharshey/pybot-backend/internal/http/response"
	"github.com/devikaharshey/pybot-backend/internal/services"
)

type ProgressHandler struct {
	progress services.ProgressService
}

func NewProgressHandler(progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GET /api/progress-chart?user_id=...
// Always 200: an unknown or missing user renders an empty chart.
func (h *ProgressHandler) Chart(c *gin.Context) {
	correct, incorrect := h.progress.Aggregate(c.Request.Context(), c.Query("user_id"))
	response.RespondOK(c, gin.H{
		"labels": []string{"Correct", "Incorrect"},
		"values": []int{correct, incorrect},
	})
}
