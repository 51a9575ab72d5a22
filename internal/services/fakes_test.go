package services

import (
	"context"
	"errors"

	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/websearch"
)

// fakeSessionService keeps sessions in a map so assistant tests can run
// without a database.
type fakeSessionService struct {
	sessions map[string]SessionData
	owners   map[string]string
	deleted  []string
}

func newFakeSessionService() *fakeSessionService {
	return &fakeSessionService{
		sessions: map[string]SessionData{},
		owners:   map[string]string{},
	}
}

func (f *fakeSessionService) LoadAll(ctx context.Context, userID string) map[string]SessionData {
	out := map[string]SessionData{}
	for id, data := range f.sessions {
		if userID != "" && f.owners[id] != userID {
			continue
		}
		out[id] = data
	}
	return out
}

func (f *fakeSessionService) Save(ctx context.Context, sessionID, userID, name string, turns []domain.ChatTurn) {
	f.sessions[sessionID] = SessionData{Name: name, Turns: turns}
	f.owners[sessionID] = userID
}

func (f *fakeSessionService) Create(ctx context.Context, sessionID, userID, name string, turns []domain.ChatTurn) {
	f.Save(ctx, sessionID, userID, name, turns)
}

func (f *fakeSessionService) Rename(ctx context.Context, sessionID, newName string) error {
	data, ok := f.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	data.Name = newName
	f.sessions[sessionID] = data
	return nil
}

func (f *fakeSessionService) Delete(ctx context.Context, sessionID, userID string) {
	delete(f.sessions, sessionID)
	delete(f.owners, sessionID)
	f.deleted = append(f.deleted, sessionID)
}

func (f *fakeSessionService) AppendTranscript(ctx context.Context, sessionID, userID, transcript string) {
	data := f.sessions[sessionID]
	data.Turns = append(data.Turns, domain.ChatTurn{Sender: "user", Text: transcript})
	f.sessions[sessionID] = data
	f.owners[sessionID] = userID
}

// fakeGemini records every prompt and replies with a canned completion.
type fakeGemini struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeSearch records queries and replies with canned results.
type fakeSearch struct {
	queries []string
	results []websearch.Result
	err     error
}

func (f *fakeSearch) Search(ctx context.Context, query string, numResults int) ([]websearch.Result, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}
