package mux

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"headsupholdem-server/internal/jwt"
)

func dialWS(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?access_token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}

	return conn
}

// readUntilKey reads messages until one arrives with the wanted key
func readUntilKey(t *testing.T, conn *websocket.Conn, key string) map[string]interface{} {
	t.Helper()

	for i := 0; i < 20; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))

		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read failed waiting for %q: %v", key, err)
		}

		if msg["key"] == key {
			return msg
		}
	}

	t.Fatalf("never received a %q message", key)
	return nil
}

func snapshotData(t *testing.T, msg map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := msg["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected snapshot data, got %T", msg["data"])
	}

	return data
}

func TestWebSocket_playAHand(t *testing.T) {
	a := assert.New(t)

	setupJWT(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	token1, err := jwt.Sign("ws-p1", "Alice")
	a.NoError(err)
	token2, err := jwt.Sign("ws-p2", "Bob")
	a.NoError(err)

	conn1 := dialWS(t, ts, token1)
	defer conn1.Close()
	readUntilKey(t, conn1, "queued")

	conn2 := dialWS(t, ts, token2)
	defer conn2.Close()

	s1 := snapshotData(t, readUntilKey(t, conn1, "match"))
	s2 := snapshotData(t, readUntilKey(t, conn2, "match"))
	a.Equal(s1["matchId"], s2["matchId"])

	// the turn-holder folds the first hand
	actor, other := conn1, conn2
	otherID := "ws-p2"
	if s1["turn"] == "ws-p2" {
		actor, other = conn2, conn1
		otherID = "ws-p1"
	}

	a.NoError(actor.WriteJSON(map[string]interface{}{"action": "fold", "context": ".1"}))

	ack := readUntilKey(t, actor, "status")
	a.Equal("OK", ack["value"])
	a.Equal(".1", ack["context"])

	for {
		settled := snapshotData(t, readUntilKey(t, other, "match"))
		if settled["street"].(map[string]interface{})["name"] != "settled" {
			continue
		}

		lastHand := settled["lastHand"].(map[string]interface{})
		a.Equal(true, lastHand["wonByFold"])
		a.Equal(otherID, lastHand["winnerId"])
		break
	}
}

func TestWebSocket_disconnectResolvesMatch(t *testing.T) {
	a := assert.New(t)

	setupJWT(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	token1, err := jwt.Sign("ws-d1", "Alice")
	a.NoError(err)
	token2, err := jwt.Sign("ws-d2", "Bob")
	a.NoError(err)

	conn1 := dialWS(t, ts, token1)
	defer conn1.Close()
	conn2 := dialWS(t, ts, token2)

	readUntilKey(t, conn1, "match")
	readUntilKey(t, conn2, "match")

	conn2.Close()

	ended := readUntilKey(t, conn1, "matchEnded")
	result := ended["data"].(map[string]interface{})
	a.Equal("ws-d1", result["winnerId"])
	a.Equal("disconnect", result["reason"])
}

func TestWebSocket_requiresAuth(t *testing.T) {
	setupJWT(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, 401, resp.StatusCode)
	}
}
