package game

// PointsBank holds the points not currently owned by a live player. It is
// seeded once, at construction, from the initial player count and is never
// reseeded afterward -- even if a player is later eliminated the bank's
// conservation target still refers to the original headcount. This mirrors
// the original PointsBank exactly and is preserved rather than "fixed".
type PointsBank struct {
	points int
}

// NewPointsBank seeds a bank for the given initial player count.
func NewPointsBank(initialPlayerCount int) *PointsBank {
	return &PointsBank{points: InitialPlayerPoints * initialPlayerCount}
}

// GivePoints moves points from the bank to a player (a winning bet).
func (b *PointsBank) GivePoints(p *Player, amount int) {
	b.points -= amount
	p.GivePoints(amount)
}

// TakePoints moves points from a player into the bank (a losing bet). The
// player's balance is validated first; a failure leaves both the player
// and the bank untouched, matching spec.md §4.3's ordering requirement.
func (b *PointsBank) TakePoints(p *Player, amount int) error {
	if err := p.TakePoints(amount); err != nil {
		return err
	}
	b.points += amount
	return nil
}

// PointsLeftInBank returns the bank's current balance.
func (b *PointsBank) PointsLeftInBank() int {
	return b.points
}
