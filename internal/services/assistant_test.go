package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/devikaharshey/pybot-backend/internal/data/repos/testutil"
	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/websearch"
)

func newAssistantFixture(tb testing.TB) (*assistantService, *fakeSessionService, *fakeGemini, *fakeSearch) {
	sessions := newFakeSessionService()
	llm := &fakeGemini{reply: "Here you go!"}
	search := &fakeSearch{}
	svc := NewAssistantService(testutil.Logger(tb), sessions, llm, search).(*assistantService)
	return svc, sessions, llm, search
}

func TestAskMintsSessionAndPersistsBothTurns(t *testing.T) {
	svc, sessions, _, _ := newAssistantFixture(t)

	answer, sessionID := svc.Ask(context.Background(), "user-1", "", "what is a list?")
	if answer != "Here you go!" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if sessionID == "" {
		t.Fatal("expected a minted session id")
	}

	saved, ok := sessions.sessions[sessionID]
	if !ok {
		t.Fatalf("session %s was not persisted", sessionID)
	}
	if len(saved.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(saved.Turns))
	}
	if saved.Turns[0].Sender != "user" || saved.Turns[1].Sender != "bot" {
		t.Fatalf("unexpected turn senders: %+v", saved.Turns)
	}
}

func TestAskReusesKnownSession(t *testing.T) {
	svc, sessions, _, _ := newAssistantFixture(t)
	sessions.Save(context.Background(), "sess-1", "user-1", "Lists", []domain.ChatTurn{
		{Sender: "user", Text: "what is a list?"},
		{Sender: "bot", Text: "A list is..."},
	})

	_, sessionID := svc.Ask(context.Background(), "user-1", "sess-1", "and a tuple?")
	if sessionID != "sess-1" {
		t.Fatalf("expected session reuse, got %s", sessionID)
	}
	saved := sessions.sessions["sess-1"]
	if len(saved.Turns) != 4 {
		t.Fatalf("expected 4 turns after the second exchange, got %d", len(saved.Turns))
	}
	if saved.Name != "Lists" {
		t.Fatalf("session name was not preserved: %q", saved.Name)
	}
}

func TestAskUnknownSessionIDMintsFreshSession(t *testing.T) {
	svc, sessions, _, _ := newAssistantFixture(t)

	_, sessionID := svc.Ask(context.Background(), "user-1", "ghost", "what is a dict?")
	if sessionID == "ghost" {
		t.Fatal("stale session id must not be reused")
	}
	if _, ok := sessions.sessions[sessionID]; !ok {
		t.Fatalf("fresh session %s was not persisted", sessionID)
	}
}

func TestSearchGateRequiresBothTopicAndResourceIntent(t *testing.T) {
	cases := []struct {
		question string
		fires    bool
	}{
		{"show me python tutorials", true},
		{"Where can I LEARN Python?", true},
		{"show me tutorials", false},
		{"python is fun", false},
		{"hello there", false},
	}
	for _, tc := range cases {
		svc, _, _, search := newAssistantFixture(t)
		search.results = []websearch.Result{{Title: "Docs", Link: "https://docs.python.org/3/"}}

		svc.Ask(context.Background(), "user-1", "", tc.question)

		fired := len(search.queries) > 0
		if fired != tc.fires {
			t.Errorf("question %q: search fired=%v, want %v", tc.question, fired, tc.fires)
		}
	}
}

func TestSearchQueryIsSiteScoped(t *testing.T) {
	svc, _, _, search := newAssistantFixture(t)

	svc.Ask(context.Background(), "user-1", "", "best python tutorial")

	if len(search.queries) != 1 {
		t.Fatalf("expected one search call, got %d", len(search.queries))
	}
	query := search.queries[0]
	for _, site := range trustedSites {
		if !strings.Contains(query, "site:"+site) {
			t.Errorf("query missing site filter %q: %s", site, query)
		}
	}
}

func TestUntrustedLinksAreFilteredOut(t *testing.T) {
	svc, _, llm, search := newAssistantFixture(t)
	search.results = []websearch.Result{
		{Title: "Spam", Link: "https://example.com/python"},
		{Title: "Real Python", Link: "https://realpython.com/lists"},
	}

	svc.Ask(context.Background(), "user-1", "", "python list tutorial")

	prompt := llm.prompts[0]
	if strings.Contains(prompt, "example.com") {
		t.Error("untrusted link leaked into the prompt")
	}
	if !strings.Contains(prompt, "- [Real Python](https://realpython.com/lists)") {
		t.Errorf("trusted link missing from prompt:\n%s", prompt)
	}
}

func TestAllUntrustedYieldsSentinel(t *testing.T) {
	svc, _, llm, search := newAssistantFixture(t)
	search.results = []websearch.Result{
		{Title: "Spam", Link: "https://example.com/python"},
	}

	svc.Ask(context.Background(), "user-1", "", "python list tutorial")

	if !strings.Contains(llm.prompts[0], noResultsSentinel) {
		t.Error("expected no-results sentinel in prompt")
	}
}

func TestSearchFailureStillProducesPrompt(t *testing.T) {
	svc, _, llm, search := newAssistantFixture(t)
	search.err = errors.New("quota exceeded")

	answer, _ := svc.Ask(context.Background(), "user-1", "", "python list tutorial")

	if answer != "Here you go!" {
		t.Fatalf("search failure must not fail the turn, got %q", answer)
	}
	if !strings.Contains(llm.prompts[0], searchFailReply) {
		t.Error("expected search failure sentinel in prompt")
	}
}

func TestPromptSectionOrdering(t *testing.T) {
	svc, sessions, llm, search := newAssistantFixture(t)
	sessions.Save(context.Background(), "sess-1", "user-1", "", []domain.ChatTurn{
		{Sender: "user", Text: "earlier question"},
		{Sender: "bot", Text: "earlier answer"},
	})
	search.results = []websearch.Result{{Title: "Docs", Link: "https://docs.python.org/3/"}}

	svc.Ask(context.Background(), "user-1", "sess-1", "python docs link please")

	prompt := llm.prompts[0]
	persona := strings.Index(prompt, "You are PyBot")
	results := strings.Index(prompt, "Real-time Search Results")
	prior := strings.Index(prompt, "User: earlier question")
	latest := strings.LastIndex(prompt, "User: python docs link please")
	if !(persona >= 0 && persona < results && results < prior && prior < latest) {
		t.Fatalf("prompt sections out of order: persona=%d results=%d prior=%d latest=%d", persona, results, prior, latest)
	}
	if !strings.Contains(prompt, "Assistant: earlier answer") {
		t.Error("bot turns must be rendered with the Assistant role")
	}
}

func TestProviderErrorYieldsApologyAndStillPersists(t *testing.T) {
	svc, sessions, llm, _ := newAssistantFixture(t)
	llm.err = errors.New("model overloaded")

	answer, sessionID := svc.Ask(context.Background(), "user-1", "", "what is a set?")
	if answer != completionFallback {
		t.Fatalf("expected apology fallback, got %q", answer)
	}
	saved := sessions.sessions[sessionID]
	if len(saved.Turns) != 2 || saved.Turns[1].Text != completionFallback {
		t.Fatalf("apology turn was not persisted: %+v", saved.Turns)
	}
}
