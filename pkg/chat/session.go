// Package chat holds a conversation with a hosted language model on behalf of
// the portfolio page.
package chat

import (
	"context"
	"log"
	"strings"
	"sync"
)

// FallbackMessage is shown in place of a reply when the model call fails.
const FallbackMessage = "I'm having trouble connecting."

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in the conversation.
type Turn struct {
	Role Role
	Text string
}

// Model generates a reply to text given the system instruction and the
// turns that came before it.
type Model interface {
	Generate(ctx context.Context, system string, history []Turn, text string) (string, error)
}

// Session is a conversation with a fixed system instruction.
//
// Send is safe to call from multiple goroutines; calls are serialized so the
// history stays in order.
type Session struct {
	model  Model
	system string

	mu      sync.Mutex
	history []Turn
}

// NewSession starts an empty conversation.
func NewSession(model Model, system string) *Session {
	return &Session{model: model, system: system}
}

// Send asks the model for a reply to text.
//
// Blank input is ignored and reports ok=false. A failed model call is logged
// and answered with FallbackMessage; neither side of that exchange is kept in
// the history.
func (s *Session) Send(ctx context.Context, text string) (reply string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Turn, len(s.history))
	copy(history, s.history)

	reply, err := s.model.Generate(ctx, s.system, history, text)
	if err != nil {
		log.Printf("[Chat] Gemini error: %v", err)
		return FallbackMessage, true
	}

	s.history = append(s.history,
		Turn{Role: RoleUser, Text: text},
		Turn{Role: RoleModel, Text: reply},
	)
	return reply, true
}

// History returns a copy of the turns exchanged so far.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Reset forgets the conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}
