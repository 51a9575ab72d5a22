package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devikaharshey/pybot-backend/internal/http/response"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
	"github.com/devikaharshey/pybot-backend/internal/platform/pdftext"
	"github.com/devikaharshey/pybot-backend/internal/services"
)

type InsightsHandler struct {
	log      *logger.Logger
	insights services.InsightsService
}

func NewInsightsHandler(baseLog *logger.Logger, insights services.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		log:      baseLog.With("handler", "InsightsHandler"),
		insights: insights,
	}
}

// GET /api/dashboard?user_id=...
func (h *InsightsHandler) Dashboard(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", fmt.Errorf("Missing user_id"))
		return
	}

	markdown, hasData, err := h.insights.Dashboard(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "dashboard_failed", fmt.Errorf("Failed to generate dashboard data."))
		return
	}
	if !hasData {
		response.RespondOK(c, gin.H{
			"resources": []string{},
			"questions": []string{},
			"analysis":  "Not enough data to analyze.",
		})
		return
	}
	response.RespondOK(c, gin.H{"markdown": markdown})
}

// POST /api/analyze-resume
// multipart form: "resume" (PDF file) + "user_id"
func (h *InsightsHandler) AnalyzeResume(c *gin.Context) {
	header, err := c.FormFile("resume")
	userID := c.PostForm("user_id")
	if err != nil || userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_data", fmt.Errorf("Missing file or user_id"))
		return
	}
	if !strings.EqualFold(fileExt(header.Filename), "pdf") {
		response.RespondError(c, http.StatusBadRequest, "unsupported_file_type", fmt.Errorf("Only PDF resumes are supported."))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.log.Error("Resume analysis error", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "resume_analysis_failed", fmt.Errorf("Failed to analyze resume."))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Resume analysis error", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "resume_analysis_failed", fmt.Errorf("Failed to analyze resume."))
		return
	}
	text, err := pdftext.Extract(raw)
	if err != nil {
		h.log.Error("Resume text extraction failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "resume_analysis_failed", fmt.Errorf("Failed to analyze resume."))
		return
	}

	feedback, err := h.insights.AnalyzeResume(c.Request.Context(), text)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "resume_analysis_failed", fmt.Errorf("Failed to analyze resume."))
		return
	}
	response.RespondOK(c, gin.H{"feedback": feedback})
}

func fileExt(name string) string {
	parts := strings.Split(name, ".")
	return parts[len(parts)-1]
}
