package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/gemini"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
	"github.com/devikaharshey/pybot-backend/internal/platform/websearch"
)

// Resource lookups only go out to the web when the user is asking for
// learning material about the subject. Both gates must hold.
var resourceKeywords = []string{
	"resource", "documentation", "docs", "tutorial", "learn",
	"guide", "reference", "link", "channel", "youtube",
}

// Only links on these sites survive result filtering, even if the provider
// ignores the site-scoped query.
var trustedSites = []string{
	"docs.python.org",
	"realpython.com",
	"youtube.com",
	"stackoverflow.com/questions/tagged/python",
}

const (
	searchResultLimit = 10

	noResultsSentinel  = "No trusted Python resource results found."
	searchFailReply    = "Failed to fetch search results."
	completionFallback = "Sorry, there was an error getting a response from Gemini."
)

const personaPrompt = `
You are PyBot, a helpful and knowledgeable assistant focused on teaching Python programming in a fun, clear, and engaging way.

You were created by Devika Harshey, who is learning Python and wants to help others learn too.

### Responsibilities:
- Help users understand Python programming concepts.
- Support users with Python-related tools, documentation, and tutorials.
- Provide assistance with resume writing for tech roles (Python-focused).

### Real-time Data:
- If search results are provided, ALWAYS use and reference them when answering questions about external resources (e.g., YouTube channels, documentation, or tools).
- These are real-time results and MUST be treated as factual references.
- Do not say you lack access to real-time information when such results are provided.

### Response Formatting Rules:
- Use **markdown** for all responses.
- Always use **bullet points** (` + "`-` or `*`" + `) for lists.
- Use **headings** (` + "`###`" + `) to organize sections.
- Wrap all code examples in proper markdown code blocks (` + "```python" + `).
- Use **bold** for important terms and concepts.
- Keep answers **beginner-friendly**, **concise**, and **clearly structured**.
- Break down explanations into **short paragraphs**.
- Add **emojis** to enhance engagement (avoid slang).
- Include **clickable links** to official Python documentation or trusted resources when helpful.
- Never respond with large blocks of unformatted text.

### Personality & Rules:
- Only greet the user (e.g., "Hi there!") if they begin the conversation with a greeting like "hi", "hello", "hey", etc.
- When greeting, include the line:
  "Devika Harshey is my creator, who is learning Python and wants to help others learn too."
- Do **not** include greetings or the creator line in other responses.
- Never repeat greetings after the first one.
- Always refer to Devika Harshey as:
  "Devika Harshey is my creator, who is learning Python and wants to help others learn too."
- If the user asks about non-Python or non-resume topics, politely say:
  "I can only assist with Python programming and resume writing."
`

// AssistantService runs one conversational turn: resolve the session, build
// the provider prompt (with optional search augmentation), call the
// completion provider, and persist the extended transcript.
type AssistantService interface {
	Ask(ctx context.Context, userID, sessionID, question string) (answer string, resolvedSessionID string)
}

type assistantService struct {
	log      *logger.Logger
	sessions SessionService
	llm      gemini.Client
	search   websearch.Client
}

func NewAssistantService(baseLog *logger.Logger, sessions SessionService, llm gemini.Client, search websearch.Client) AssistantService {
	return &assistantService{
		log:      baseLog.With("service", "AssistantService"),
		sessions: sessions,
		llm:      llm,
		search:   search,
	}
}

func (s *assistantService) Ask(ctx context.Context, userID, sessionID, question string) (string, string) {
	chats := s.sessions.LoadAll(ctx, userID)

	var turns []domain.ChatTurn
	name := ""
	existing, known := "", false
	if sessionID != "" {
		if data, ok := chats[sessionID]; ok {
			existing, known = sessionID, true
			turns = data.Turns
			name = data.Name
		}
	}
	if !known {
		existing = NewSessionID()
		turns = []domain.ChatTurn{}
	}

	turns = append(turns, domain.ChatTurn{Sender: "user", Text: question})

	prompt := s.buildPrompt(ctx, turns)
	answer, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		s.log.Error("Gemini error", "session_id", existing, "error", err)
		answer = completionFallback
	}

	turns = append(turns, domain.ChatTurn{Sender: "bot", Text: answer})

	if known {
		s.sessions.Save(ctx, existing, userID, name, turns)
	} else {
		s.sessions.Create(ctx, existing, userID, name, turns)
	}
	return answer, existing
}

// buildPrompt linearizes the transcript into one provider-ready prompt:
// persona contract, optional search-results section, prior turns as
// role-labeled lines, and the latest user message last.
func (s *assistantService) buildPrompt(ctx context.Context, turns []domain.ChatTurn) string {
	latest := turns[len(turns)-1].Text

	var sb strings.Builder
	sb.WriteString(personaPrompt)

	if results := s.searchIfResourceQuery(ctx, latest); results != "" {
		sb.WriteString("\n\n### 🔎 Real-time Search Results (from Google CSE):\n")
		sb.WriteString(results)
		sb.WriteString("\n\nYou MUST use these results to help answer the user's question above.\n")
	}

	for _, turn := range turns[:len(turns)-1] {
		role := "Assistant"
		if turn.Sender == "user" {
			role = "User"
		}
		sb.WriteString("\n\n")
		sb.WriteString(role)
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
	}

	sb.WriteString("\n\nUser: ")
	sb.WriteString(latest)
	return sb.String()
}

// searchIfResourceQuery returns a rendered search-results section, or ""
// when the keyword gate does not fire. The gate is binary: the lower-cased
// message must mention python and ask for some kind of learning resource.
func (s *assistantService) searchIfResourceQuery(ctx context.Context, message string) string {
	lowered := strings.ToLower(message)
	if !strings.Contains(lowered, "python") {
		return ""
	}
	keywordHit := false
	for _, kw := range resourceKeywords {
		if strings.Contains(lowered, kw) {
			keywordHit = true
			break
		}
	}
	if !keywordHit {
		return ""
	}
	return s.trustedSearch(ctx, message)
}

// trustedSearch queries the provider scoped to the allow-listed sites and
// re-filters the links locally. It always yields prompt content: hits as
// markdown links, or a sentinel line on empty/failed lookups.
func (s *assistantService) trustedSearch(ctx context.Context, query string) string {
	siteFilters := make([]string, 0, len(trustedSites))
	for _, site := range trustedSites {
		siteFilters = append(siteFilters, "site:"+site)
	}
	fullQuery := query + " " + strings.Join(siteFilters, " OR ")

	results, err := s.search.Search(ctx, fullQuery, searchResultLimit)
	if err != nil {
		s.log.Error("Google Search Error", "error", err)
		return searchFailReply
	}

	var links []string
	for _, result := range results {
		for _, site := range trustedSites {
			if strings.Contains(result.Link, site) {
				links = append(links, fmt.Sprintf("- [%s](%s)", result.Title, result.Link))
				break
			}
		}
	}
	if len(links) == 0 {
		return noResultsSentinel
	}
	return strings.Join(links, "\n")
}
