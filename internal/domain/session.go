package domain

import (
	"encoding/json"
	"time"
)

// ChatTurn is one message in a session transcript. Append order is the
// conversation timeline and must survive storage round trips.
type ChatTurn struct {
	Sender string `json:"sender"` // "user" | "bot"
	Text   string `json:"text"`
}

// ChatSession holds one persisted transcript owned by a single user. The
// transcript is stored as a JSON string in the Turns column, matching the
// document shape the frontend was built against.
type ChatSession struct {
	ID     string `gorm:"type:text;primaryKey" json:"id"`
	UserID string `gorm:"not null;index;column:user_id" json:"user_id"`
	Name   string `gorm:"not null;default:'';column:name" json:"name"`
	Turns  string `gorm:"type:text;not null;default:'[]';column:chat" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChatSession) TableName() string { return "chat_session" }

// EncodeTurns serializes a transcript to its storage string form.
func EncodeTurns(turns []ChatTurn) (string, error) {
	if turns == nil {
		turns = []ChatTurn{}
	}
	raw, err := json.Marshal(turns)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeTurns parses the stored transcript string back into ordered turns.
func DecodeTurns(raw string) ([]ChatTurn, error) {
	if raw == "" {
		return []ChatTurn{}, nil
	}
	var turns []ChatTurn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}
