package mux

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/internal/jwt"
)

func Test_postSession(t *testing.T) {
	a := assert.New(t)

	setupJWT(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	// no body: a random display name is assigned
	var session postSessionResponse
	assertPost(t, ts, "/session", nil, &session, 201)
	a.NotEmpty(session.Token)
	a.NotEmpty(session.ID)
	a.Len(strings.Split(session.Name, " "), 2)

	playerID, name, err := jwt.ValidSession(session.Token)
	a.NoError(err)
	a.Equal(session.ID, playerID)
	a.Equal(session.Name, name)

	// a supplied name is kept
	var named postSessionResponse
	assertPost(t, ts, "/session", postSessionRequest{Name: "Doyle"}, &named, 201)
	a.Equal("Doyle", named.Name)
	a.NotEqual(session.ID, named.ID)

	// names have a length limit
	var errObj errorResponse
	assertPost(t, ts, "/session", postSessionRequest{Name: strings.Repeat("x", 33)}, &errObj, 400)
	a.Equal("name is too long", errObj.Message)

	// malformed JSON
	assertPost(t, ts, "/session", "{bad json", &errObj, 400)
}
