package tone

import "sync"

// Registry holds the selected tone level per guild. State is in-memory for
// the process lifetime; a restart resets every guild to the default.
type Registry struct {
	mu     sync.RWMutex
	levels map[string]Level
}

func NewRegistry() *Registry {
	return &Registry{
		levels: make(map[string]Level),
	}
}

// Level returns the configured level for a guild. Unknown guilds and the
// empty guild ID (DM context) get the default level.
func (r *Registry) Level(guildID string) Level {
	if guildID == "" {
		return DefaultLevel
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok := r.levels[guildID]; ok {
		return l
	}
	return DefaultLevel
}

// SetLevel stores the level for a guild and returns the previously effective
// level so the caller can decide whether sessions need invalidating.
// Callers validate the level before calling.
func (r *Registry) SetLevel(guildID string, l Level) Level {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.levels[guildID]
	if !ok {
		prev = DefaultLevel
	}
	r.levels[guildID] = l
	return prev
}
