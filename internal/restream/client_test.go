package restream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/amani-hq/amani/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()
	cfg := config.Config{
		Restream: config.RestreamConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "https://app.example.com/callback",
			Scopes:       []string{"profile.read", "channels.read"},
			AuthURL:      "https://api.restream.io/login",
			TokenURL:     upstream.URL + "/oauth/token",
			APIBaseURL:   upstream.URL + "/v2",
		},
	}
	return New(cfg, zap.NewNop())
}

func TestAuthorizeURLGeneratesState(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	client := newTestClient(t, srv)

	raw, state, err := client.AuthorizeURL("")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://app.example.com/callback", q.Get("redirect_uri"))
	assert.Equal(t, "profile.read channels.read", q.Get("scope"))
	assert.Equal(t, state, q.Get("state"))
}

func TestAuthorizeURLKeepsCallerState(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	client := newTestClient(t, srv)

	raw, state, err := client.AuthorizeURL("caller-state")
	require.NoError(t, err)
	assert.Equal(t, "caller-state", state)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "caller-state", parsed.Query().Get("state"))
}

func TestExchangeSendsFormAndDecodesToken(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()
	client := newTestClient(t, srv)

	token, err := client.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "at-1", token.AccessToken)
	assert.Equal(t, "rt-1", token.RefreshToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "auth-code", gotForm.Get("code"))
	assert.Equal(t, "client-id", gotForm.Get("client_id"))
	assert.Equal(t, "client-secret", gotForm.Get("client_secret"))
}

func TestExchangeForwardsUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()
	client := newTestClient(t, srv)

	_, err := client.Exchange(context.Background(), "expired-code")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
}

func TestDoAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		assert.Equal(t, "/v2/user/channel/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"active":true}]`))
	}))
	defer srv.Close()
	client := newTestClient(t, srv)

	payload, err := client.Do(context.Background(), "at-1", http.MethodGet, "/user/channel/all")
	require.NoError(t, err)

	items, ok := payload.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
}

func TestDoRequiresToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	client := newTestClient(t, srv)

	_, err := client.Do(context.Background(), "", http.MethodGet, "/user/channel/all")
	require.Error(t, err)
}
