package lobby

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"headsupholdem-server/pkg/holdem"
)

// ErrNotAtTable is sent to a client that acts before being seated
var ErrNotAtTable = errors.New("you are not seated at a table")

// Table runs a single heads-up match. All match access happens inside the
// table's run loop.
type Table struct {
	lobby *Lobby
	match *holdem.Match
	log   logrus.FieldLogger

	lock    sync.RWMutex
	clients map[string]*Client

	execInRunLoop chan func()
	close         chan bool

	finished bool
}

// newTable seats the two clients at a new table. This is called from a
// blocking state, so it needs to return quickly.
func newTable(lobby *Lobby, match *holdem.Match, clients [2]*Client) *Table {
	t := &Table{
		lobby:         lobby,
		match:         match,
		log:           logrus.WithField("match", match.ID),
		clients:       make(map[string]*Client),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	for _, client := range clients {
		t.clients[client.PlayerID] = client
		client.setTable(t)
	}

	return t
}

// Clients will return a slice of connected (at the time) clients
func (t *Table) Clients() []*Client {
	t.lock.RLock()
	defer t.lock.RUnlock()

	clients := make([]*Client, 0, len(t.clients))
	for _, client := range t.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop and deals the first hand
func (t *Table) StartShift() {
	go t.runLoop()

	t.execInRunLoop <- func() {
		if err := t.match.StartHand(); err != nil {
			t.log.WithError(err).Error("could not start the first hand")
			return
		}

		t.broadcastState()
	}
}

// EndShift is called when the table is no longer needed
func (t *Table) EndShift() {
	close(t.close)
}

func (t *Table) runLoop() {
	t.log.Debug("creating table run loop")

	ticker := time.NewTicker(t.match.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			updated, err := t.match.Tick()
			if err != nil {
				t.log.WithError(err).Error("tick failed")
				continue
			}

			if updated {
				t.broadcastState()
				t.checkMatchOver()
			}
		case fn := <-t.execInRunLoop:
			fn()
		case <-t.close:
			t.log.Debug("terminating table run loop")
			return
		}
	}
}

// ReceivedMessage is called when a client sends a message to the server
// This method must return quickly
func (t *Table) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "state":
		t.execInRunLoop <- func() {
			c.Send(t.stateResponse(c.PlayerID))
		}
	default:
		actionType, err := holdem.ActionTypeFromString(msg.Action)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		t.execInRunLoop <- func() {
			action := holdem.Action{Type: actionType, Amount: msg.Amount}
			if err := t.match.Apply(c.PlayerID, action); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			t.broadcastState()
			t.checkMatchOver()
		}
	}
}

// ClientDisconnected resolves the match in favor of the remaining player
// This method must return quickly
func (t *Table) ClientDisconnected(c *Client) {
	t.execInRunLoop <- func() {
		t.lock.Lock()
		delete(t.clients, c.PlayerID)
		t.lock.Unlock()

		if t.finished {
			return
		}

		t.match.Disconnect(c.PlayerID)
		t.broadcastState()
		t.checkMatchOver()
	}
}

// NOTE: must only be called from the run loop
func (t *Table) broadcastState() {
	for _, client := range t.Clients() {
		client.Send(t.stateResponse(client.PlayerID))
	}
}

func (t *Table) stateResponse(playerID string) *Response {
	return &Response{
		Key:  "match",
		Data: t.match.Snapshot(playerID),
	}
}

// checkMatchOver retires the table once the match has a result
// NOTE: must only be called from the run loop
func (t *Table) checkMatchOver() {
	if t.finished || t.match.Result() == nil {
		return
	}

	t.finished = true
	t.log.WithField("result", t.match.Result().Reason).Debug("match over, retiring table")

	for _, client := range t.Clients() {
		client.Send(&Response{
			Key:  "matchEnded",
			Data: t.match.Result(),
		})
	}

	t.lobby.tableFinished(t)
}
