package game

import "github.com/google/uuid"

// PlayersPool is the carousel of in-game players: one "current player" slot
// that rotates forward, with support for removing an eliminated player
// without disturbing the rotation order of the rest.
type PlayersPool struct {
	byID    map[uuid.UUID]*playerNode
	current *playerNode
	count   int
}

// NewPlayersPool builds a pool over players in the given seating order.
func NewPlayersPool(players []*Player) *PlayersPool {
	pool := &PlayersPool{byID: make(map[uuid.UUID]*playerNode, len(players))}
	if len(players) == 0 {
		return pool
	}
	nodes := make([]*playerNode, len(players))
	for i, p := range players {
		n := &playerNode{player: p}
		nodes[i] = n
		pool.byID[p.ID] = n
	}
	for i, n := range nodes {
		n.next = nodes[(i+1)%len(nodes)]
	}
	pool.current = nodes[0]
	pool.count = len(nodes)
	return pool
}

// Len reports how many players remain in the pool.
func (pp *PlayersPool) Len() int {
	return pp.count
}

// CurrentPlayer returns the player whose turn it currently is.
func (pp *PlayersPool) CurrentPlayer() *Player {
	if pp.current == nil {
		return nil
	}
	return pp.current.player
}

// AdvancePlayer rotates the current-player slot forward one seat.
func (pp *PlayersPool) AdvancePlayer() *Player {
	if pp.current == nil {
		return nil
	}
	pp.current = pp.current.next
	return pp.current.player
}

// AllPlayers returns every remaining player, starting from the current one,
// in rotation order.
func (pp *PlayersPool) AllPlayers() []*Player {
	out := make([]*Player, 0, pp.count)
	if pp.current == nil {
		return out
	}
	n := pp.current
	for i := 0; i < pp.count; i++ {
		out = append(out, n.player)
		n = n.next
	}
	return out
}

// KickPlayer removes a player from the rotation. If the eliminated player
// was the current player, the slot advances to whoever is next.
func (pp *PlayersPool) KickPlayer(target *Player) {
	node, ok := pp.byID[target.ID]
	if !ok {
		return
	}
	delete(pp.byID, target.ID)
	pp.count--

	if pp.count == 0 {
		pp.current = nil
		return
	}

	var prev *playerNode
	n := node
	for {
		if n.next == node {
			prev = n
			break
		}
		n = n.next
	}
	prev.next = node.next

	if pp.current == node {
		pp.current = node.next
	}
}
