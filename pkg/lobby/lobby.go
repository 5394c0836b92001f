package lobby

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"headsupholdem-server/internal/rng"
	"headsupholdem-server/pkg/holdem"
)

// ErrAlreadyQueued is sent to a client whose session is already waiting for
// an opponent
var ErrAlreadyQueued = errors.New("you are already waiting for an opponent")

// Lobby pairs connected players into heads-up matches
type Lobby struct {
	opts   holdem.Options
	random rng.Generator

	tables  map[string]*Table
	waiting []*Client

	connect    chan *Client
	disconnect chan *Client
	finished   chan *Table
}

// New returns a new lobby. The options are used for every match except the
// dealer button, which is assigned randomly per match.
func New(opts holdem.Options) *Lobby {
	return &Lobby{
		opts:       opts,
		random:     rng.Crypto{},
		tables:     make(map[string]*Table),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		finished:   make(chan *Table, 256),
	}
}

// Open starts the lobby run loop
func (l *Lobby) Open() {
	go l.runLoop()
}

func (l *Lobby) runLoop() {
	for {
		select {
		case client := <-l.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			l.enqueue(client)
		case client := <-l.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			l.clientDisconnected(client)
		case table := <-l.finished:
			delete(l.tables, table.match.ID)

			for _, client := range table.Clients() {
				client.setTable(nil)
			}

			table.EndShift()
		}
	}
}

// ClientConnected is called when a client connects to the server
func (l *Lobby) ClientConnected(client *Client) {
	l.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (l *Lobby) ClientDisconnected(client *Client) {
	l.disconnect <- client
}

// tableFinished retires a table once its match has resolved
func (l *Lobby) tableFinished(table *Table) {
	l.finished <- table
}

// NOTE: must only be called from the run loop
func (l *Lobby) enqueue(client *Client) {
	for _, waiting := range l.waiting {
		if waiting.PlayerID == client.PlayerID {
			client.Send(newErrorResponse("", ErrAlreadyQueued))
			return
		}
	}

	l.waiting = append(l.waiting, client)
	client.Send(&Response{Key: "queued"})

	for len(l.waiting) >= 2 {
		a, b := l.waiting[0], l.waiting[1]
		l.waiting = l.waiting[2:]
		l.seat(a, b)
	}
}

// NOTE: must only be called from the run loop
func (l *Lobby) seat(a, b *Client) {
	opts := l.opts
	opts.FirstDealer = l.random.Intn(2)

	id := uuid.New().String()
	match, err := holdem.NewMatch(logrus.StandardLogger(), id, [2]holdem.Seat{
		{ID: a.PlayerID, Name: a.Name},
		{ID: b.PlayerID, Name: b.Name},
	}, opts)

	if err != nil {
		logrus.WithError(err).Error("could not create match")
		a.Send(newErrorResponse("", err))
		b.Send(newErrorResponse("", err))
		return
	}

	table := newTable(l, match, [2]*Client{a, b})
	l.tables[id] = table
	table.StartShift()

	logrus.WithFields(logrus.Fields{
		"match":   id,
		"players": []string{a.String(), b.String()},
	}).Info("match created")
}

// NOTE: must only be called from the run loop
func (l *Lobby) clientDisconnected(client *Client) {
	for i, waiting := range l.waiting {
		if waiting == client {
			l.waiting = append(l.waiting[:i], l.waiting[i+1:]...)
			return
		}
	}

	if table := client.Table(); table != nil {
		table.ClientDisconnected(client)
	}
}
