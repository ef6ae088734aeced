package chat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"osinbot/pkg/session"
	"osinbot/pkg/tone"
)

// Provider starts a conversation with the generative-AI service, seeded with
// a system prompt as a hidden first turn.
type Provider interface {
	StartChat(ctx context.Context, systemPrompt string) (session.Chat, error)
}

// GuildResolver maps a channel ID to its guild ID. Ownership of that lookup
// stays with the platform layer; the manager only applies it.
type GuildResolver func(channelID string) (guildID string, ok bool)

// Manager orchestrates the session store, tone registry and provider: it
// resolves (creating or re-seeding as needed) the session for an inbound
// message and forwards the message through it.
type Manager struct {
	provider Provider
	store    *session.Store
	tones    *tone.Registry
	timeout  time.Duration

	// Per-key locks serialize sends for the same (channel, user) pair so two
	// near-simultaneous messages cannot race session creation. Entries are
	// never removed; the map is bounded by the number of active pairs.
	keyMu sync.Mutex
	keys  map[session.Key]*sync.Mutex
}

func NewManager(p Provider, store *session.Store, tones *tone.Registry, timeout time.Duration) *Manager {
	return &Manager{
		provider: p,
		store:    store,
		tones:    tones,
		timeout:  timeout,
		keys:     make(map[session.Key]*sync.Mutex),
	}
}

func (m *Manager) lockKey(key session.Key) func() {
	m.keyMu.Lock()
	mu, ok := m.keys[key]
	if !ok {
		mu = &sync.Mutex{}
		m.keys[key] = mu
	}
	m.keyMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// Send handles one inbound message. The session for (channelID, userID) is
// created on first use and recreated whenever the guild's configured tone no
// longer matches the tone the session was seeded with. The reply is returned
// verbatim; truncation to platform limits is the caller's concern.
func (m *Manager) Send(ctx context.Context, guildID, channelID, userID, displayName, text string) (string, error) {
	key := session.Key{ChannelID: channelID, UserID: userID}

	unlock := m.lockKey(key)
	defer unlock()

	level := m.tones.Level(guildID)

	sess, ok := m.store.Get(key)
	if !ok || sess.Tone != level {
		handle, err := m.startChat(ctx, level)
		if err != nil {
			return "", err
		}
		sess = &session.Session{Key: key, Tone: level, Chat: handle}
		m.store.Put(key, sess)
		log.Printf("Created chat session for %s/%s with tone %d (%s)", channelID, userID, level, level)
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	// The attribution tag lets the model address the author by name inside a
	// shared session. Tone prompts rely on this exact format.
	reply, err := sess.Chat.Send(sendCtx, fmt.Sprintf("[Tin nhắn từ %s]: %s", displayName, text))
	if err != nil {
		return "", classify(err)
	}
	return reply, nil
}

func (m *Manager) startChat(ctx context.Context, level tone.Level) (session.Chat, error) {
	startCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	handle, err := m.provider.StartChat(startCtx, tone.GetStrategy(level).SystemPrompt)
	if err != nil {
		return nil, classify(err)
	}
	return handle, nil
}

// Clear drops the session for a (channel, user) pair. Returns false when
// there was nothing to clear; that is a normal outcome, not an error.
func (m *Manager) Clear(channelID, userID string) bool {
	key := session.Key{ChannelID: channelID, UserID: userID}

	unlock := m.lockKey(key)
	defer unlock()

	return m.store.Remove(key)
}

// SetTone updates a guild's tone level. The permission gate is enforced here
// so no caller can reach the registry without it; invalid levels are rejected
// before any state changes. Returns the previously effective level.
func (m *Manager) SetTone(guildID string, level int, actorIsAdmin bool) (tone.Level, error) {
	if !actorIsAdmin {
		return 0, ErrPermissionDenied
	}

	l := tone.Level(level)
	if !l.Valid() {
		return 0, ErrInvalidLevel
	}

	return m.tones.SetLevel(guildID, l), nil
}

// InvalidateGuild proactively removes every session whose channel resolves to
// the guild, forcing a re-seed with the new tone on next use. Channels the
// resolver cannot place are left alone; the lazy mismatch check in Send still
// covers them. Returns the number of sessions removed.
func (m *Manager) InvalidateGuild(guildID string, resolve GuildResolver) int {
	removed := m.store.RemoveWhere(func(k session.Key) bool {
		g, ok := resolve(k.ChannelID)
		return ok && g == guildID
	})
	if removed > 0 {
		log.Printf("Invalidated %d session(s) for guild %s after tone change", removed, guildID)
	}
	return removed
}
