package mux

import (
	"context"
	"net/http"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"

	"headsupholdem-server/internal/config"
	"headsupholdem-server/internal/jwt"
	"headsupholdem-server/pkg/holdem"
	"headsupholdem-server/pkg/lobby"
)

type ctxKey int

const ctxSessionKey ctxKey = iota

// session is the authenticated identity attached to a request
type session struct {
	PlayerID string
	Name     string
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	lobby   *lobby.Lobby

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	l := lobby.New(gameOptions(config.Instance()))
	l.Open()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		lobby:   l,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/session").Handler(this.postSession())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
	}

	return this
}

func gameOptions(cfg config.Config) holdem.Options {
	opts := holdem.DefaultOptions()

	if cfg.Game.StartingStack > 0 {
		opts.StartingStack = cfg.Game.StartingStack
	}

	if cfg.Game.BigBlind > 0 {
		opts.BigBlind = cfg.Game.BigBlind
	}

	if cfg.Game.RunoutDelayMs > 0 {
		opts.RunoutDelay = time.Duration(cfg.Game.RunoutDelayMs) * time.Millisecond
	}

	if cfg.Game.SettleDelayMs > 0 {
		opts.SettleDelay = time.Duration(cfg.Game.SettleDelayMs) * time.Millisecond
	}

	return opts
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		playerID, name, err := jwt.ValidSession(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSessionKey, session{PlayerID: playerID, Name: name})
		w.Header().Set("HeadsUpHoldem-PlayerID", playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
