package lobby

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/pkg/holdem"
)

func testLobbyOptions() holdem.Options {
	opts := holdem.DefaultOptions()
	opts.RunoutDelay = time.Minute
	opts.SettleDelay = time.Minute
	return opts
}

func nextResponse(t *testing.T, c *Client) *Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		res, ok := msg.(*Response)
		if !ok {
			t.Fatalf("expected *Response, got %T", msg)
		}

		return res
	case <-time.After(time.Second * 2):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

// waitForKey reads messages until one with the given key arrives
func waitForKey(t *testing.T, c *Client, key string) *Response {
	t.Helper()

	for i := 0; i < 10; i++ {
		if res := nextResponse(t, c); res.Key == key {
			return res
		}
	}

	t.Fatalf("never received a %q message", key)
	return nil
}

func snapshotFrom(t *testing.T, res *Response) *holdem.Snapshot {
	t.Helper()

	snapshot, ok := res.Data.(*holdem.Snapshot)
	if !ok {
		t.Fatalf("expected *holdem.Snapshot, got %T", res.Data)
	}

	return snapshot
}

func TestLobby_matchmaking(t *testing.T) {
	a := assert.New(t)

	l := New(testLobbyOptions())
	l.Open()

	c1 := NewClient(nil, "p1", "Alice")
	c2 := NewClient(nil, "p2", "Bob")

	l.ClientConnected(c1)
	a.Equal("queued", nextResponse(t, c1).Key)

	l.ClientConnected(c2)
	a.Equal("queued", nextResponse(t, c2).Key)

	s1 := snapshotFrom(t, waitForKey(t, c1, "match"))
	s2 := snapshotFrom(t, waitForKey(t, c2, "match"))

	a.Equal(s1.MatchID, s2.MatchID)
	a.Equal(1, s1.Hand)
	a.Equal(holdem.StreetPreflop, s1.Street)

	// each player sees their own hole cards only
	a.Len(s1.You.Hole, 2)
	a.Nil(s1.Opponent.Hole)

	a.NotNil(c1.Table())
	a.Equal(c1.Table(), c2.Table())
}

func TestLobby_duplicateSessionCannotQueueTwice(t *testing.T) {
	a := assert.New(t)

	l := New(testLobbyOptions())
	l.Open()

	c1 := NewClient(nil, "p1", "Alice")
	c2 := NewClient(nil, "p1", "Alice again")

	l.ClientConnected(c1)
	a.Equal("queued", nextResponse(t, c1).Key)

	l.ClientConnected(c2)
	res := nextResponse(t, c2)
	a.Equal("error", res.Key)
	a.Equal(ErrAlreadyQueued.Error(), res.Value)
}

func TestLobby_actionsRouteToTheMatch(t *testing.T) {
	a := assert.New(t)

	l := New(testLobbyOptions())
	l.Open()

	c1 := NewClient(nil, "p1", "Alice")
	c2 := NewClient(nil, "p2", "Bob")
	l.ClientConnected(c1)
	l.ClientConnected(c2)

	s1 := snapshotFrom(t, waitForKey(t, c1, "match"))
	waitForKey(t, c2, "match")

	actor, other := c1, c2
	if s1.Turn != "p1" {
		actor, other = c2, c1
	}

	// acting out of turn is rejected without changing anything
	other.ReceivedMessage(&PayloadIn{Action: "call", Context: "t1"})
	res := waitForKey(t, other, "error")
	a.Equal(holdem.ErrNotYourTurn.Error(), res.Value)
	a.Equal("t1", res.Context)

	// garbage actions are rejected up front
	actor.ReceivedMessage(&PayloadIn{Action: "levitate", Context: "t2"})
	res = waitForKey(t, actor, "error")
	a.Equal("t2", res.Context)

	// a fold is acknowledged and settles the hand for everyone
	actor.ReceivedMessage(&PayloadIn{Action: "fold", Context: "t3"})
	res = waitForKey(t, actor, "status")
	a.Equal("OK", res.Value)
	a.Equal("t3", res.Context)

	settled := snapshotFrom(t, waitForKey(t, other, "match"))
	a.Equal(holdem.StreetSettled, settled.Street)
	a.True(settled.LastHand.WonByFold)
	a.Equal(other.PlayerID, settled.LastHand.WinnerID)
}

func TestLobby_disconnectEndsTheMatch(t *testing.T) {
	a := assert.New(t)

	l := New(testLobbyOptions())
	l.Open()

	c1 := NewClient(nil, "p1", "Alice")
	c2 := NewClient(nil, "p2", "Bob")
	l.ClientConnected(c1)
	l.ClientConnected(c2)

	waitForKey(t, c1, "match")
	waitForKey(t, c2, "match")

	l.ClientDisconnected(c1)

	res := waitForKey(t, c2, "matchEnded")
	result, ok := res.Data.(*holdem.MatchResult)
	if !ok {
		t.Fatalf("expected *holdem.MatchResult, got %T", res.Data)
	}

	a.Equal("p2", result.WinnerID)
	a.Equal(holdem.EndReasonDisconnect, result.Reason)

	// the survivor is released from the table
	deadline := time.Now().Add(time.Second * 2)
	for c2.Table() != nil {
		if time.Now().After(deadline) {
			t.Fatal("client was never released from the table")
		}
		time.Sleep(time.Millisecond * 10)
	}
}

func TestLobby_disconnectWhileQueuedLeavesTheQueue(t *testing.T) {
	a := assert.New(t)

	l := New(testLobbyOptions())
	l.Open()

	c1 := NewClient(nil, "p1", "Alice")
	l.ClientConnected(c1)
	a.Equal("queued", nextResponse(t, c1).Key)

	l.ClientDisconnected(c1)

	// the departed client must not be matched with the next arrival
	c2 := NewClient(nil, "p2", "Bob")
	c3 := NewClient(nil, "p3", "Carol")
	l.ClientConnected(c2)
	l.ClientConnected(c3)

	s2 := snapshotFrom(t, waitForKey(t, c2, "match"))
	a.Equal("p3", s2.Opponent.ID)
	a.Nil(c1.Table())
}
