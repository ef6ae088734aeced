package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osinbot/pkg/tone"
)

type nopChat struct{}

func (nopChat) Send(ctx context.Context, text string) (string, error) { return "", nil }

func newSession(channelID, userID string, level tone.Level) *Session {
	return &Session{
		Key:  Key{ChannelID: channelID, UserID: userID},
		Tone: level,
		Chat: nopChat{},
	}
}

func TestStore_GetPut(t *testing.T) {
	store := NewStore()
	key := Key{ChannelID: "c1", UserID: "u1"}

	_, ok := store.Get(key)
	assert.False(t, ok)

	sess := newSession("c1", "u1", tone.LevelNeuter)
	store.Put(key, sess)

	got, ok := store.Get(key)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, store.Len())
}

func TestStore_PutOverwrites(t *testing.T) {
	store := NewStore()
	key := Key{ChannelID: "c1", UserID: "u1"}

	store.Put(key, newSession("c1", "u1", tone.LevelNeuter))
	replacement := newSession("c1", "u1", tone.LevelNoble)
	store.Put(key, replacement)

	got, ok := store.Get(key)
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Remove(t *testing.T) {
	store := NewStore()
	key := Key{ChannelID: "c1", UserID: "u1"}

	assert.False(t, store.Remove(key))

	store.Put(key, newSession("c1", "u1", tone.LevelNeuter))
	assert.True(t, store.Remove(key))
	assert.False(t, store.Remove(key))
	assert.Equal(t, 0, store.Len())
}

func TestStore_RemoveWhere(t *testing.T) {
	store := NewStore()

	// Channel→guild mapping lives with the caller, not the store.
	channelGuild := map[string]string{
		"c1": "g1",
		"c2": "g1",
		"c3": "g2",
	}

	store.Put(Key{ChannelID: "c1", UserID: "u1"}, newSession("c1", "u1", tone.LevelNeuter))
	store.Put(Key{ChannelID: "c1", UserID: "u2"}, newSession("c1", "u2", tone.LevelNeuter))
	store.Put(Key{ChannelID: "c2", UserID: "u1"}, newSession("c2", "u1", tone.LevelNeuter))
	store.Put(Key{ChannelID: "c3", UserID: "u1"}, newSession("c3", "u1", tone.LevelNeuter))

	removed := store.RemoveWhere(func(k Key) bool {
		return channelGuild[k.ChannelID] == "g1"
	})
	assert.Equal(t, 3, removed)

	// Only the g2 session survives.
	_, ok := store.Get(Key{ChannelID: "c3", UserID: "u1"})
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestStore_RemoveWhere_NoMatches(t *testing.T) {
	store := NewStore()
	store.Put(Key{ChannelID: "c1", UserID: "u1"}, newSession("c1", "u1", tone.LevelNeuter))

	removed := store.RemoveWhere(func(k Key) bool { return false })
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, store.Len())
}
