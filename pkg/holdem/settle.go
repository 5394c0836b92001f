package holdem

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// HandOutcome describes how a hand's pot was distributed. Awards holds pot
// winnings only; uncalled chips returned to the over-committed player are
// reported separately in Refunds.
type HandOutcome struct {
	WinnerID  string                 `json:"winnerId,omitempty"`
	Draw      bool                   `json:"draw"`
	WonByFold bool                   `json:"wonByFold"`
	MainPot   int                    `json:"mainPot"`
	Awards    map[string]int         `json:"awards"`
	Refunds   map[string]int         `json:"refunds,omitempty"`
	BestHands map[string]*HandResult `json:"bestHands,omitempty"`
}

// finishShowdown reveals both hands, awards the pot, and schedules the next
// hand. The board must be complete.
func (m *Match) finishShowdown() error {
	if len(m.community) != 5 {
		panic(fmt.Sprintf("showdown with %d community cards", len(m.community)))
	}

	p0, p1 := m.players[0], m.players[1]

	best := map[string]*HandResult{
		p0.ID: BestHand(p0.hole, m.community),
		p1.ID: BestHand(p1.hole, m.community),
	}

	var winnerIdx int
	switch best[p0.ID].Score.Compare(best[p1.ID].Score) {
	case 1:
		winnerIdx = 0
	case -1:
		winnerIdx = 1
	default:
		winnerIdx = -1
	}

	outcome := m.settlePot(winnerIdx)
	outcome.BestHands = best

	m.street = StreetShowdown
	m.turnIdx = -1
	m.lastHand = outcome
	m.setPending(pendingNextHand, m.opts.SettleDelay)

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"winner": outcome.WinnerID,
		"draw":   outcome.Draw,
		"pot":    outcome.MainPot,
	}).Debug("showdown")

	return nil
}

// settleFold awards the pot to the remaining player without a showdown
func (m *Match) settleFold(winnerIdx int) {
	outcome := m.settlePot(winnerIdx)
	outcome.WonByFold = true

	m.street = StreetSettled
	m.turnIdx = -1
	m.lastHand = outcome
	m.setPending(pendingNextHand, m.opts.SettleDelay)

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"winner": outcome.WinnerID,
		"pot":    outcome.MainPot,
	}).Debug("hand folded out")
}

// settlePot distributes the pot. For a single winner the main pot is twice
// the smaller total commitment; anything a player committed beyond that was
// never matched and goes back to them as a refund. A winnerIdx of -1 splits
// the whole pot in half, with the odd chip going to the dealer.
func (m *Match) settlePot(winnerIdx int) *HandOutcome {
	p0, p1 := m.players[0], m.players[1]

	if m.pot != p0.totalCommitted+p1.totalCommitted {
		panic(fmt.Sprintf("pot %d does not match commitments %d+%d",
			m.pot, p0.totalCommitted, p1.totalCommitted))
	}

	outcome := &HandOutcome{
		Awards: make(map[string]int),
	}

	if winnerIdx >= 0 {
		effective := p0.totalCommitted
		if p1.totalCommitted < effective {
			effective = p1.totalCommitted
		}

		for _, p := range m.players {
			if excess := p.totalCommitted - effective; excess > 0 {
				p.chips += excess
				m.pot -= excess

				if outcome.Refunds == nil {
					outcome.Refunds = make(map[string]int)
				}
				outcome.Refunds[p.ID] = excess
			}
		}

		mainPot := effective * 2
		winner := m.players[winnerIdx]
		winner.chips += mainPot
		m.pot -= mainPot
		outcome.MainPot = mainPot
		outcome.WinnerID = winner.ID
		outcome.Awards[winner.ID] = mainPot
	} else {
		// split pot: the dealer takes the odd chip
		dealer := m.players[m.dealerIdx]
		other := m.players[1-m.dealerIdx]

		pot := m.pot
		half := pot / 2
		dealer.chips += pot - half
		other.chips += half
		m.pot = 0

		outcome.Draw = true
		outcome.MainPot = pot
		outcome.Awards[dealer.ID] = pot - half
		outcome.Awards[other.ID] = half
	}

	if m.pot != 0 {
		panic(fmt.Sprintf("pot has %d chips left after settlement", m.pot))
	}

	m.assertConservation()
	return outcome
}
