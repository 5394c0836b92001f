package holdem

import (
	"headsupholdem-server/pkg/deck"
)

// PlayerView is one player as seen in a snapshot
type PlayerView struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Chips  int          `json:"chips"`
	Bet    int          `json:"bet"`
	Folded bool         `json:"folded"`
	AllIn  bool         `json:"allIn"`
	Dealer bool         `json:"dealer"`
	Hole   []*deck.Card `json:"hole,omitempty"`
}

// Snapshot is the match as seen by one player. The opponent's hole cards are
// present only once a hand reached showdown.
type Snapshot struct {
	MatchID    string       `json:"matchId"`
	Hand       int          `json:"hand"`
	Street     Street       `json:"street"`
	Pot        int          `json:"pot"`
	CurrentBet int          `json:"currentBet"`
	Community  []*deck.Card `json:"community"`
	Turn       string       `json:"turn,omitempty"`

	// ToCall is what the viewing player must pay to call, capped at their stack
	ToCall int `json:"toCall"`

	You          *PlayerView  `json:"you"`
	Opponent     *PlayerView  `json:"opponent"`
	ShowOpponent bool         `json:"showOpponent"`
	LastHand     *HandOutcome `json:"lastHand,omitempty"`
	Result       *MatchResult `json:"result,omitempty"`
}

// Snapshot returns the match state visible to playerID
func (m *Match) Snapshot(playerID string) *Snapshot {
	idx := m.playerIndex(playerID)
	if idx < 0 {
		return nil
	}

	show := m.showOpponentHole()

	s := &Snapshot{
		MatchID:      m.ID,
		Hand:         m.handNum,
		Street:       m.street,
		Pot:          m.pot,
		CurrentBet:   m.streetBet,
		Community:    m.community,
		You:          m.playerView(idx, true),
		Opponent:     m.playerView(1-idx, show),
		ShowOpponent: show,
		LastHand:     m.lastHand,
		Result:       m.result,
	}

	if you := m.players[idx]; m.street.isBetting() {
		toCall := m.streetBet - you.streetBet
		if toCall > you.chips {
			toCall = you.chips
		}

		s.ToCall = toCall
	}

	if turn := m.Turn(); turn != nil {
		s.Turn = turn.ID
	}

	return s
}

// showOpponentHole reports whether hole cards are public. Hands won by a fold
// are never revealed.
func (m *Match) showOpponentHole() bool {
	if m.street != StreetShowdown && m.street != StreetSettled {
		return false
	}

	return m.lastHand != nil && !m.lastHand.WonByFold
}

func (m *Match) playerView(idx int, withHole bool) *PlayerView {
	p := m.players[idx]

	view := &PlayerView{
		ID:     p.ID,
		Name:   p.Name,
		Chips:  p.chips,
		Bet:    p.streetBet,
		Folded: p.folded,
		AllIn:  p.allIn,
		Dealer: idx == m.dealerIdx,
	}

	if withHole {
		view.Hole = p.hole
	}

	return view
}
