package game

import "github.com/google/uuid"

// InitialPlayerPoints is the points balance every player starts a game with.
const InitialPlayerPoints = 10

// LobbyMember is a person who has joined a lobby but hasn't yet been turned
// into an in-game Player; it only carries identity.
type LobbyMember struct {
	ID   uuid.UUID
	Name string
}

// Player is a LobbyMember plus the mutable points balance tracked across a
// game. Equality is by ID, matching the original Player.__eq__.
type Player struct {
	ID     uuid.UUID
	Name   string
	points int
}

// NewPlayer builds a Player seeded with the initial points balance.
func NewPlayer(member LobbyMember) *Player {
	return &Player{ID: member.ID, Name: member.Name, points: InitialPlayerPoints}
}

// Equal reports whether two players are the same person.
func (p Player) Equal(other Player) bool {
	return p.ID == other.ID
}

// Points returns the player's current balance.
func (p *Player) Points() int {
	return p.points
}

// HasPoints reports whether the player still has a positive balance.
func (p *Player) HasPoints() bool {
	return p.points > 0
}

// CanBet reports whether the player can afford the given bet.
func (p *Player) CanBet(amount int) bool {
	return p.points >= amount
}

// TakePoints decreases the player's balance by amount, failing without
// effect if that would drive the balance negative, matching spec.md §3's
// `take(n)` contract.
func (p *Player) TakePoints(amount int) error {
	if p.points < amount {
		return ErrInsufficientPoints
	}
	p.points -= amount
	return nil
}

// GivePoints increases the player's balance by amount.
func (p *Player) GivePoints(amount int) {
	p.points += amount
}

// playerNode is one link in the player carousel, grounded in the teacher's
// PlayerNode/WalkOnce ring used to rotate table position.
type playerNode struct {
	player *Player
	next   *playerNode
}
