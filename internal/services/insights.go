package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/devikaharshey/pybot-backend/internal/platform/apierr"
	"github.com/devikaharshey/pybot-backend/internal/platform/gemini"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

// dashboardContextTurns caps how much chat history feeds the dashboard analysis.
const dashboardContextTurns = 20

const dashboardPromptTemplate = `
You're an AI analyst. Given this conversation history from a user learning Python:

"""
%s
"""

### Tasks:
1. Personalized DSA Questions: Suggest 3-5 personalized DSA questions from Leetcode or GFG (titles only).
2. Trusted Resources: List trusted resources for their weak areas (YouTube, docs, RealPython, etc.).
3. Analysis: Summarize their Python knowledge level briefly.

Use markdown format. Provide spaces between above mentioned tasks but don't print the <br> tag or # within response. Use emojis. Do give the links.

`

const resumePromptTemplate = `
You are an ATS resume analyzer for Python developer roles.

Analyze this resume text and:
1. Score it out of 100 for ATS compatibility.
2. Highlight missing key sections (skills, experience, links).
3. Suggest 3 improvements.
4. Mention if it matches DSA + Python job expectations.

### Resume Text:
%s
`

// InsightsService produces the model-written study dashboard and the resume
// feedback report.
type InsightsService interface {
	// Dashboard summarizes the user's learning so far as markdown. When
	// the user has no chat history, hasData is false and markdown empty.
	Dashboard(ctx context.Context, userID string) (markdown string, hasData bool, err error)

	// AnalyzeResume runs extracted resume text through the ATS reviewer.
	AnalyzeResume(ctx context.Context, text string) (string, error)
}

type insightsService struct {
	log      *logger.Logger
	sessions SessionService
	llm      gemini.Client
}

func NewInsightsService(baseLog *logger.Logger, sessions SessionService, llm gemini.Client) InsightsService {
	return &insightsService{
		log:      baseLog.With("service", "InsightsService"),
		sessions: sessions,
		llm:      llm,
	}
}

func (s *insightsService) Dashboard(ctx context.Context, userID string) (string, bool, error) {
	chats := s.sessions.LoadAll(ctx, userID)

	var userMessages []string
	for _, chat := range chats {
		for _, turn := range chat.Turns {
			if turn.Sender == "user" {
				userMessages = append(userMessages, turn.Text)
			}
		}
	}
	if len(userMessages) == 0 {
		return "", false, nil
	}
	if len(userMessages) > dashboardContextTurns {
		userMessages = userMessages[len(userMessages)-dashboardContextTurns:]
	}
	summary := strings.Join(userMessages, "\n")

	markdown, err := s.llm.GenerateText(ctx, fmt.Sprintf(dashboardPromptTemplate, summary))
	if err != nil {
		s.log.Error("Dashboard generation error", "user_id", userID, "error", err)
		return "", true, apierr.New(http.StatusInternalServerError, "dashboard_failed", err)
	}
	return strings.TrimSpace(markdown), true, nil
}

func (s *insightsService) AnalyzeResume(ctx context.Context, text string) (string, error) {
	feedback, err := s.llm.GenerateText(ctx, fmt.Sprintf(resumePromptTemplate, text))
	if err != nil {
		s.log.Error("Resume analysis error", "error", err)
		return "", apierr.New(http.StatusInternalServerError, "resume_analysis_failed", err)
	}
	return strings.TrimSpace(feedback), nil
}
