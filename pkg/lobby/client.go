package lobby

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a player connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// PlayerID identifies the session the client connected with
	PlayerID string

	// Name is the player's display name
	Name string

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	send chan interface{}

	lock  sync.RWMutex
	table *Table
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID, name string) *Client {
	return &Client{
		Conn:     conn,
		PlayerID: playerID,
		Name:     name,
		Close:    make(chan string),
		send:     make(chan interface{}, 256),
	}
}

// Send queues a message for the web client. It returns false if the client's
// send buffer is full.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outgoing messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.PlayerID, c.Name)
}

// Table returns the table the client is seated at, or nil
func (c *Client) Table() *Table {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.table
}

func (c *Client) setTable(table *Table) {
	c.lock.Lock()
	c.table = table
	c.lock.Unlock()
}

// ReceivedMessage is called when the server receives a message from a
// connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	table := c.Table()
	if table == nil {
		logrus.WithField("msg", msg).Warn("received message, but client is not at a table")
		c.Send(newErrorResponse(msg.Context, ErrNotAtTable))
		return
	}

	table.ReceivedMessage(c, msg)
}
