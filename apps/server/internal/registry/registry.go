package registry

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"superego/apps/server/internal/session"
	"superego/game"
)

const (
	defaultIdleTTL         = 30 * time.Minute
	defaultCleanupInterval = time.Minute
)

// entry pairs a running session with the timestamp of its last observed
// activity, used for idle reaping.
type entry struct {
	sess       *session.Session
	lastActive time.Time
}

// Registry tracks every running session by address, offering lazy
// creation, lookup for the gateway, and idle-session reaping -- the same
// role apps/server/internal/lobby.Lobby plays for poker tables, minus the
// NPC auto-fill and story-chapter wiring that only made sense for poker.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	done     chan struct{}
	stopOnce sync.Once

	idleTTL         time.Duration
	cleanupInterval time.Duration

	onBroadcastFor func(id string) func(game.GameState)
}

// New builds a Registry. onBroadcastFor supplies the per-session broadcast
// callback (normally gateway.Gateway.BroadcasterFor) wired into every
// session at creation time.
func New(onBroadcastFor func(id string) func(game.GameState)) *Registry {
	r := &Registry{
		sessions:        make(map[string]*entry),
		done:            make(chan struct{}),
		idleTTL:         defaultIdleTTL,
		cleanupInterval: defaultCleanupInterval,
		onBroadcastFor:  onBroadcastFor,
	}
	go r.cleanupLoop()
	return r
}

// StartGame constructs a new session over the given lobby and registers it
// under a fresh address.
func (r *Registry) StartGame(lobby *game.Lobby) *session.Session {
	id := uuid.NewString()
	sess := session.New(id, lobby, r.onBroadcastFor(id))

	r.mu.Lock()
	r.sessions[id] = &entry{sess: sess, lastActive: time.Now()}
	r.mu.Unlock()

	log.Printf("[Registry] started session %s", id)
	return sess
}

// Lookup resolves a session by address, touching its last-active time.
func (r *Registry) Lookup(id string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastActive = time.Now()
	return e.sess, true
}

// StopGame stops and removes a session.
func (r *Registry) StopGame(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	e.sess.Stop()
	log.Printf("[Registry] stopped session %s", id)
	return nil
}

// List returns every currently registered session address.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(r.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.reapIdle()
		case <-r.done:
			return
		}
	}
}

func (r *Registry) reapIdle() {
	now := time.Now()
	var stale []*entry
	var staleIDs []string

	r.mu.Lock()
	for id, e := range r.sessions {
		if e.sess.Over() || now.Sub(e.lastActive) > r.idleTTL {
			stale = append(stale, e)
			staleIDs = append(staleIDs, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for i, e := range stale {
		e.sess.Stop()
		log.Printf("[Registry] reaped idle/finished session %s", staleIDs[i])
	}
}

// Stop halts the cleanup loop and every registered session.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.mu.Lock()
		defer r.mu.Unlock()
		for id, e := range r.sessions {
			e.sess.Stop()
			delete(r.sessions, id)
		}
	})
}
