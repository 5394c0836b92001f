package mux

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"headsupholdem-server/internal/jwt"
	"headsupholdem-server/internal/util"
)

const maxNameLength = 32

type postSessionRequest struct {
	Name string `json:"name"`
}

type postSessionResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// postSession mints an anonymous player session. A display name may be
// supplied; otherwise one is generated.
func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postSessionRequest
		if r.ContentLength > 0 {
			if !decodeRequest(w, r, &payload) {
				return
			}
		}

		name := strings.TrimSpace(payload.Name)
		if name == "" {
			name = util.GetRandomName()
		}

		if len(name) > maxNameLength {
			writeJSONError(w, http.StatusBadRequest, errors.New("name is too long"))
			return
		}

		playerID := uuid.New().String()
		signed, err := jwt.Sign(playerID, name)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postSessionResponse{
			Token: signed,
			ID:    playerID,
			Name:  name,
		})
	}
}
