package holdem

import (
	"github.com/sirupsen/logrus"

	"headsupholdem-server/pkg/deck"
)

// Apply validates and executes a player action. A returned error is a
// rejection: the match state is exactly as it was before the call.
func (m *Match) Apply(playerID string, action Action) error {
	if m.result != nil {
		return ErrMatchOver
	}

	if !m.street.isBetting() {
		return ErrNotBettingRound
	}

	idx := m.playerIndex(playerID)
	if idx < 0 || idx != m.turnIdx {
		return ErrNotYourTurn
	}

	p := m.players[idx]
	if !p.canAct() {
		return ErrCannotAct
	}

	switch action.Type {
	case ActionFold:
		return m.fold(idx)
	case ActionCall:
		return m.call(idx)
	case ActionRaise:
		return m.raise(idx, action.Amount)
	}

	return ErrInvalidAction
}

// fold ends the hand immediately: the opponent takes the pot uncontested
func (m *Match) fold(idx int) error {
	p := m.players[idx]
	p.folded = true
	p.hasActed = true

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"player": p.ID,
	}).Debug("fold")

	m.settleFold(1 - idx)
	return nil
}

// call matches the current bet, or checks when there is nothing to match.
// A player who cannot cover the bet calls all-in for less.
func (m *Match) call(idx int) error {
	p := m.players[idx]

	m.pot += p.commit(m.streetBet - p.streetBet)
	p.hasActed = true

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"player": p.ID,
		"bet":    p.streetBet,
	}).Debug("call")

	m.afterAction(idx)
	return nil
}

// raise increases the current bet by amount. The raise must be at least one
// big blind unless it puts the raiser all-in, and the raiser must be able to
// cover the full target bet.
func (m *Match) raise(idx, amount int) error {
	if amount <= 0 {
		return ErrInvalidAction
	}

	p := m.players[idx]
	required := m.streetBet + amount - p.streetBet

	if required > p.chips {
		return ErrInsufficientChips
	}

	if amount < m.opts.BigBlind && required != p.chips {
		return ErrRaiseBelowMinimum
	}

	m.pot += p.commit(required)
	m.streetBet = p.streetBet
	p.hasActed = true

	// the opponent now faces a bigger bet and must respond again
	m.players[1-idx].hasActed = false

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"player": p.ID,
		"bet":    p.streetBet,
	}).Debug("raise")

	m.afterAction(idx)
	return nil
}

// afterAction moves the turn or closes the street after a call or raise
func (m *Match) afterAction(idx int) {
	m.assertConservation()

	if !m.streetFinished() {
		m.turnIdx = 1 - idx
		if !m.Turn().canAct() {
			m.turnIdx = idx
		}

		return
	}

	m.turnIdx = -1

	if m.street == StreetRiver {
		if err := m.finishShowdown(); err != nil {
			panic(err)
		}

		return
	}

	if m.players[0].allIn || m.players[1].allIn {
		// no more betting is possible; run out the board on a timer
		m.setPending(pendingRunout, m.opts.RunoutDelay)
		return
	}

	if err := m.advanceStreet(true); err != nil {
		panic(err)
	}
}

// streetFinished reports whether the betting round is complete: every player
// has either acted or is all-in, and the bets are level (an all-in for less
// counts as level once it is covered).
func (m *Match) streetFinished() bool {
	p0, p1 := m.players[0], m.players[1]

	if !(p0.hasActed || p0.allIn) || !(p1.hasActed || p1.allIn) {
		return false
	}

	if p0.streetBet == p1.streetBet {
		return true
	}

	if p0.allIn && p1.streetBet >= p0.streetBet {
		return true
	}

	if p1.allIn && p0.streetBet >= p1.streetBet {
		return true
	}

	return false
}

// advanceStreet burns a card, deals the next community cards, and resets
// street bets. When live, action on the new street starts with the non-dealer;
// during an all-in runout nobody acts.
func (m *Match) advanceStreet(live bool) error {
	var count int
	switch m.street {
	case StreetPreflop:
		count = 3
	case StreetFlop, StreetTurn:
		count = 1
	default:
		return ErrNotBettingRound
	}

	cards, err := m.deck.BurnAndDraw(count)
	if err != nil {
		return err
	}

	m.community = append(m.community, cards...)
	m.street++
	m.streetBet = 0

	for _, p := range m.players {
		p.newStreet()
	}

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"street": m.street.String(),
		"board":  deck.CardsToString(m.community),
	}).Debug("street dealt")

	if live {
		m.turnIdx = 1 - m.dealerIdx
	} else {
		m.turnIdx = -1
	}

	return nil
}
