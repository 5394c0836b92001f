package holdem

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"headsupholdem-server/pkg/deck"
)

// Options configures a heads-up match
type Options struct {
	// StartingStack is each player's chip count at the start of the match
	StartingStack int

	// BigBlind is the forced opening bet and the minimum raise increment.
	// The dealer posts half of it as the small blind.
	BigBlind int

	// FirstDealer is the seat index (0 or 1) that deals the first hand
	FirstDealer int

	// ShuffleSeed seeds each hand's shuffle; 0 uses a time-based seed
	ShuffleSeed int64

	// RunoutDelay paces community cards dealt during an all-in runout
	RunoutDelay time.Duration

	// SettleDelay is the pause between a settled hand and the next one
	SettleDelay time.Duration
}

// DefaultOptions returns the default match options
func DefaultOptions() Options {
	return Options{
		StartingStack: 1000,
		BigBlind:      20,
		RunoutDelay:   time.Millisecond * 800,
		SettleDelay:   time.Second * 3,
	}
}

func validateOptions(opts Options) error {
	if opts.StartingStack <= 0 {
		return errors.New("starting stack must be > 0")
	}

	if opts.BigBlind <= 0 || opts.BigBlind%2 != 0 {
		return errors.New("big blind must be a positive even number")
	}

	if opts.FirstDealer < 0 || opts.FirstDealer > 1 {
		return errors.New("first dealer must be seat 0 or 1")
	}

	return nil
}

// Seat identifies one contestant when creating a match
type Seat struct {
	ID   string
	Name string
}

// EndReason says why a match ended
type EndReason string

// match end reasons
const (
	EndReasonBankrupt   EndReason = "bankrupt"
	EndReasonDisconnect EndReason = "disconnect"
	EndReasonDraw       EndReason = "draw"
)

// MatchResult is the terminal outcome of a match
type MatchResult struct {
	WinnerID   string         `json:"winnerId,omitempty"`
	Draw       bool           `json:"draw"`
	Reason     EndReason      `json:"reason"`
	FinalChips map[string]int `json:"finalChips"`
}

type pendingStep int

const (
	// deal the next community street of an all-in runout
	pendingRunout pendingStep = iota
	// reveal hands and settle the pot
	pendingShowdown
	// start the next hand, or end the match if a stack is empty
	pendingNextHand
)

// pendingAdvance is a scheduled continuation for the match. It is executed by
// Tick once due and is dropped wholesale when the match resolves early, so a
// disconnect never races a delayed state change.
type pendingAdvance struct {
	step pendingStep
	at   time.Time
}

// Match is a heads-up hold'em match: two players, a sequence of hands, one
// winner (or a mutual bust). A match is owned by a single run loop; its
// methods are not safe for concurrent use.
type Match struct {
	ID string

	log        logrus.FieldLogger
	opts       Options
	players    [2]*Player
	deck       *deck.Deck
	community  []*deck.Card
	pot        int
	streetBet  int
	street     Street
	dealerIdx  int
	turnIdx    int
	handNum    int
	pending    *pendingAdvance
	lastHand   *HandOutcome
	result     *MatchResult
	totalChips int

	// nextDeck, when set, replaces the shuffled deck for the next hand. Tests
	// use it to rig deals.
	nextDeck *deck.Deck
}

// NewMatch creates a match between the two seated players. No cards are dealt
// until StartHand is called.
func NewMatch(logger logrus.FieldLogger, id string, seats [2]Seat, opts Options) (*Match, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if seats[0].ID == "" || seats[1].ID == "" || seats[0].ID == seats[1].ID {
		return nil, errors.New("seats must have two distinct player ids")
	}

	m := &Match{
		ID:         id,
		log:        logger.WithField("match", id),
		opts:       opts,
		dealerIdx:  opts.FirstDealer,
		turnIdx:    -1,
		street:     StreetSettled,
		totalChips: opts.StartingStack * 2,
	}

	m.players[0] = newPlayer(seats[0].ID, seats[0].Name, opts.StartingStack)
	m.players[1] = newPlayer(seats[1].ID, seats[1].Name, opts.StartingStack)

	return m, nil
}

// Interval returns how often Tick() should be called
func (m *Match) Interval() time.Duration {
	return time.Millisecond * 200
}

// Street returns the current street
func (m *Match) Street() Street {
	return m.street
}

// HandNumber returns the number of hands started, including the current one
func (m *Match) HandNumber() int {
	return m.handNum
}

// Result returns the terminal match outcome, or nil if the match is live
func (m *Match) Result() *MatchResult {
	return m.result
}

// LastHand returns the most recent hand settlement, or nil
func (m *Match) LastHand() *HandOutcome {
	return m.lastHand
}

// Dealer returns the player currently holding the dealer button
func (m *Match) Dealer() *Player {
	return m.players[m.dealerIdx]
}

// Turn returns the player expected to act, or nil if no action is expected
func (m *Match) Turn() *Player {
	if m.turnIdx < 0 {
		return nil
	}

	return m.players[m.turnIdx]
}

func (m *Match) playerIndex(playerID string) int {
	for i, p := range m.players {
		if p.ID == playerID {
			return i
		}
	}

	return -1
}

// StartHand begins a new hand: fresh shuffled deck, cleared bets, two hole
// cards each, blinds posted, dealer to act. The dealer button alternates on
// every hand after the first.
func (m *Match) StartHand() error {
	if m.result != nil {
		return ErrMatchOver
	}

	if m.street != StreetSettled {
		return fmt.Errorf("cannot start a hand from street %s", m.street)
	}

	if m.handNum > 0 {
		m.dealerIdx = 1 - m.dealerIdx
	}

	m.handNum++
	m.pending = nil
	m.lastHand = nil
	m.community = nil
	m.pot = 0
	m.streetBet = 0
	m.street = StreetPreflop

	if m.nextDeck != nil {
		m.deck = m.nextDeck
		m.nextDeck = nil
	} else {
		m.deck = deck.New()
		m.deck.Shuffle(m.opts.ShuffleSeed)
	}

	for _, p := range m.players {
		p.newHand()
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			card, err := m.deck.Draw()
			if err != nil {
				return err
			}

			p := m.players[(m.dealerIdx+j)%2]
			p.hole = append(p.hole, card)
		}
	}

	m.postBlinds()

	m.log.WithFields(logrus.Fields{
		"hand":   m.handNum,
		"dealer": m.Dealer().ID,
	}).Debug("hand started")

	// a blind may have put a short stack all-in before anyone acts
	if m.streetFinished() {
		m.turnIdx = -1
		m.setPending(pendingRunout, m.opts.RunoutDelay)
		return nil
	}

	m.turnIdx = m.dealerIdx
	if !m.Turn().canAct() {
		m.turnIdx = 1 - m.turnIdx
	}

	return nil
}

// postBlinds takes the small blind from the dealer and the big blind from the
// other player. Either is capped at the payer's stack and may force an all-in.
func (m *Match) postBlinds() {
	dealer := m.players[m.dealerIdx]
	other := m.players[1-m.dealerIdx]

	m.pot += dealer.commit(m.opts.BigBlind / 2)
	m.pot += other.commit(m.opts.BigBlind)

	m.streetBet = dealer.streetBet
	if other.streetBet > m.streetBet {
		m.streetBet = other.streetBet
	}
}

func (m *Match) setPending(step pendingStep, after time.Duration) {
	if m.pending != nil {
		panic("cannot schedule a pending advance while one is present")
	}

	m.pending = &pendingAdvance{
		step: step,
		at:   time.Now().Add(after),
	}
}

// Tick executes any due scheduled continuation. It returns true if the match
// state changed and observers should be updated.
func (m *Match) Tick() (bool, error) {
	if m.pending == nil || time.Now().Before(m.pending.at) {
		return false, nil
	}

	step := m.pending.step
	m.pending = nil

	switch step {
	case pendingRunout:
		if err := m.advanceStreet(false); err != nil {
			return false, err
		}

		if m.street == StreetRiver {
			m.setPending(pendingShowdown, m.opts.RunoutDelay)
		} else {
			m.setPending(pendingRunout, m.opts.RunoutDelay)
		}

		return true, nil

	case pendingShowdown:
		if err := m.finishShowdown(); err != nil {
			return false, err
		}

		return true, nil

	case pendingNextHand:
		m.street = StreetSettled

		if m.checkMatchEnd() {
			return true, nil
		}

		if err := m.StartHand(); err != nil {
			return false, err
		}

		return true, nil
	}

	panic(fmt.Sprintf("unknown pending step %d", step))
}

// Disconnect resolves the match immediately in favor of the remaining player
// and aborts any scheduled continuation. It is a no-op once the match ended.
func (m *Match) Disconnect(playerID string) {
	if m.result != nil {
		return
	}

	idx := m.playerIndex(playerID)
	if idx < 0 {
		return
	}

	m.pending = nil
	m.turnIdx = -1

	// return the live pot so final chip counts stay meaningful
	if m.pot > 0 {
		m.players[1-idx].chips += m.pot
		m.pot = 0
	}

	m.street = StreetSettled
	m.result = &MatchResult{
		WinnerID:   m.players[1-idx].ID,
		Reason:     EndReasonDisconnect,
		FinalChips: m.finalChips(),
	}

	m.log.WithField("player", playerID).Info("player disconnected, match resolved")
}

// checkMatchEnd ends the match if either stack is empty. It returns true if
// the match ended.
func (m *Match) checkMatchEnd() bool {
	p0, p1 := m.players[0], m.players[1]

	switch {
	case p0.chips <= 0 && p1.chips <= 0:
		m.result = &MatchResult{
			Draw:       true,
			Reason:     EndReasonDraw,
			FinalChips: m.finalChips(),
		}
	case p0.chips <= 0:
		m.result = &MatchResult{
			WinnerID:   p1.ID,
			Reason:     EndReasonBankrupt,
			FinalChips: m.finalChips(),
		}
	case p1.chips <= 0:
		m.result = &MatchResult{
			WinnerID:   p0.ID,
			Reason:     EndReasonBankrupt,
			FinalChips: m.finalChips(),
		}
	default:
		return false
	}

	m.turnIdx = -1
	m.log.WithField("reason", m.result.Reason).Info("match ended")
	return true
}

func (m *Match) finalChips() map[string]int {
	return map[string]int{
		m.players[0].ID: m.players[0].chips,
		m.players[1].ID: m.players[1].chips,
	}
}

// assertConservation panics if chips were created or destroyed. The sum of
// both stacks and the pot must equal both players' starting stacks at every
// observable point.
func (m *Match) assertConservation() {
	sum := m.players[0].chips + m.players[1].chips + m.pot
	if sum != m.totalChips {
		panic(fmt.Sprintf("chip conservation violated: have %d, want %d", sum, m.totalChips))
	}
}
