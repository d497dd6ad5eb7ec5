package game

import "github.com/google/uuid"

// GameSettings bundles the deck and round-length multiplier a lobby will
// start a game with.
type GameSettings struct {
	Deck             *Deck
	MaxRoundsFactor  int
}

// Lobby is the pre-game roster: a host plus whoever has joined, together
// with the settings a game built from this lobby will use. MaxRounds is
// computed from the live member count whenever it's read here, but a
// Session freezes its own copy at construction time (see NewGame) -- the
// spec is explicit that the round ceiling does not change mid-game even if
// the original lobby type would recompute it as a live property.
type Lobby struct {
	ID       uuid.UUID
	Host     LobbyMember
	Settings GameSettings

	members map[uuid.UUID]LobbyMember
	order   []uuid.UUID
}

// NewLobby creates a lobby seeded with its host as the first member.
func NewLobby(id uuid.UUID, host LobbyMember, settings GameSettings) *Lobby {
	l := &Lobby{
		ID:       id,
		Host:     host,
		Settings: settings,
		members:  make(map[uuid.UUID]LobbyMember),
		order:    []uuid.UUID{host.ID},
	}
	l.members[host.ID] = host
	return l
}

// AddMember adds a person to the lobby roster.
func (l *Lobby) AddMember(m LobbyMember) {
	if _, ok := l.members[m.ID]; ok {
		return
	}
	l.members[m.ID] = m
	l.order = append(l.order, m.ID)
}

// RemoveMember removes a person from the lobby roster.
func (l *Lobby) RemoveMember(id uuid.UUID) {
	if _, ok := l.members[id]; !ok {
		return
	}
	delete(l.members, id)
	for i, mid := range l.order {
		if mid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// ChangeDeck swaps the deck a game started from this lobby will use.
func (l *Lobby) ChangeDeck(d *Deck) {
	l.Settings.Deck = d
}

// Members returns the roster in join order.
func (l *Lobby) Members() []LobbyMember {
	out := make([]LobbyMember, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.members[id])
	}
	return out
}

// MembersCount returns how many people have joined.
func (l *Lobby) MembersCount() int {
	return len(l.order)
}

// MaxRounds returns the round ceiling for a game started right now.
func (l *Lobby) MaxRounds() int {
	return l.Settings.MaxRoundsFactor * l.MembersCount()
}
