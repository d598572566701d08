package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one exchanged chat message within a session.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Checkpoint is a labelled snapshot of a prior document source, recorded
// before the source is replaced so the user can roll back.
type Checkpoint struct {
	Label     string    `json:"label"`
	Latex     string    `json:"latex"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the per-session conversation state. Latex is always the most
// recently successfully generated or modified source; failed generation
// attempts never overwrite it.
type Session struct {
	ID          string       `json:"id"`
	Messages    []Message    `json:"messages"`
	Latex       string       `json:"latex"`
	Checkpoints []Checkpoint `json:"checkpoints"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		Messages:    []Message{},
		Checkpoints: []Checkpoint{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Append records one exchanged message.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

// SetLatex replaces the current document source, checkpointing the previous
// one under the given label when it was non-empty.
func (s *Session) SetLatex(source, checkpointLabel string) {
	if s.Latex != "" {
		s.Checkpoints = append(s.Checkpoints, Checkpoint{
			Label:     checkpointLabel,
			Latex:     s.Latex,
			CreatedAt: time.Now(),
		})
	}
	s.Latex = source
	s.UpdatedAt = time.Now()
}
