package holdem

import (
	"headsupholdem-server/pkg/deck"
)

// Player is one of the two contestants in a match.
// All mutation happens inside the match that owns it.
type Player struct {
	ID   string
	Name string

	chips          int
	hole           []*deck.Card
	streetBet      int
	totalCommitted int
	folded         bool
	allIn          bool
	hasActed       bool
}

func newPlayer(id, name string, chips int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		chips: chips,
	}
}

// Chips returns the player's current chip count
func (p *Player) Chips() int {
	return p.chips
}

// Hole returns the player's hole cards
func (p *Player) Hole() []*deck.Card {
	return p.hole
}

// newHand resets all per-hand state
func (p *Player) newHand() {
	p.hole = nil
	p.streetBet = 0
	p.totalCommitted = 0
	p.folded = false
	p.allIn = false
	p.hasActed = false
}

// newStreet resets the per-street betting state
func (p *Player) newStreet() {
	p.streetBet = 0
	p.hasActed = false
}

// commit moves up to amount chips into the pot, returning what was actually
// paid. A player whose stack is exhausted becomes all-in even if the paid
// amount fell short of the requested one.
func (p *Player) commit(amount int) int {
	if amount > p.chips {
		amount = p.chips
	}

	p.chips -= amount
	p.streetBet += amount
	p.totalCommitted += amount

	if p.chips == 0 {
		p.allIn = true
	}

	return amount
}

// canAct returns true if the player may take a betting action
func (p *Player) canAct() bool {
	return !p.folded && !p.allIn
}
