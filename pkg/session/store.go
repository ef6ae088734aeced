package session

import (
	"context"
	"sync"

	"osinbot/pkg/tone"
)

// Chat is the opaque conversational handle owned by a session. The provider
// keeps the accumulated turn history behind it; this package never inspects
// that history, it only sends new turns through.
type Chat interface {
	Send(ctx context.Context, text string) (string, error)
}

// Key identifies one conversation: a user talking in a channel.
type Key struct {
	ChannelID string
	UserID    string
}

// Session couples the provider chat handle with the tone level it was seeded
// with, so staleness detection is a plain field comparison.
type Session struct {
	Key  Key
	Tone tone.Level
	Chat Chat
}

// Store maps conversation keys to sessions. Safe for concurrent use;
// discordgo dispatches events on separate goroutines.
type Store struct {
	mu       sync.Mutex
	sessions map[Key]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[Key]*Session),
	}
}

func (s *Store) Get(key Key) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	return sess, ok
}

// Put stores a session, replacing any existing one for the key.
func (s *Store) Put(key Key, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = sess
}

// Remove deletes a session and reports whether one was present.
func (s *Store) Remove(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[key]; !ok {
		return false
	}
	delete(s.sessions, key)
	return true
}

// RemoveWhere deletes every session whose key matches the predicate and
// returns how many were removed. The whole sweep runs under one lock so a
// concurrent Put cannot interleave with the scan.
func (s *Store) RemoveWhere(match func(Key) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doomed []Key
	for key := range s.sessions {
		if match(key) {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		delete(s.sessions, key)
	}
	return len(doomed)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
