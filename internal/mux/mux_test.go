package mux

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/internal/jwt"
)

func Test_authRouter(t *testing.T) {
	setupJWT(t)
	m := NewMux("")

	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	token, err := jwt.Sign("player-1", "Alice")
	assert.NoError(t, err)

	// test using auth header
	var str string
	resp := assertGetWithResp(t, ts, "/test", &str, 200, token)
	assert.Equal(t, "OK", str)
	assert.Equal(t, "player-1", resp.Header.Get("HeadsUpHoldem-PlayerID"))
	_ = resp.Body.Close()

	// test using query parameter
	resp = assertGetWithResp(t, ts, "/test?access_token="+url.QueryEscape(token), &str, 200)
	assert.Equal(t, "OK", str)
	assert.Equal(t, "player-1", resp.Header.Get("HeadsUpHoldem-PlayerID"))
	_ = resp.Body.Close()

	// garbage token
	assertGet(t, ts, "/test?access_token=garbage", &errObj, 401)
}
