package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_FetchToken(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth2/token", r.URL.Path)

		id, secret, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "app-client", id)
		assert.Equal(t, "app-secret", secret)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Empty(t, r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"eyJ.test.token","token_type":"Bearer","expires_in":3600}`)
	}))
	defer mockServer.Close()

	p := NewProvider(&Config{Timeout: 5 * time.Second, Logger: hclog.NewNullLogger()})
	tok, err := p.FetchToken(context.Background(), Credentials{
		ClientID:     "app-client",
		ClientSecret: "app-secret",
		AuthURL:      mockServer.URL,
	})
	require.NoError(t, err)

	assert.Equal(t, "eyJ.test.token", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.False(t, tok.ObtainedAt.IsZero())
	assert.True(t, tok.Expiry.After(tok.ObtainedAt))
	assert.NotContains(t, tok.String(), "eyJ.test.token")
}

func TestProvider_FetchToken_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "unauthorized client",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"error":"invalid_client"}`)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid_client"}`,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = io.WriteString(w, "maintenance")
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "maintenance",
		},
		{
			name: "no access token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"token_type":"Bearer"}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(tt.handler)
			defer mockServer.Close()

			p := NewProvider(nil)
			tok, err := p.FetchToken(context.Background(), Credentials{
				ClientID:     "id",
				ClientSecret: "secret",
				AuthURL:      mockServer.URL,
			})
			require.Error(t, err)
			assert.Nil(t, tok)
			assert.ErrorIs(t, err, ErrAuth)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, mockServer.URL+"/oauth2/token", authErr.URL)
			assert.Equal(t, tt.wantStatus, authErr.StatusCode)
			assert.Equal(t, tt.wantBody, string(authErr.Body))
			assert.NotContains(t, err.Error(), "secret")
		})
	}
}

func TestProvider_FetchToken_Unreachable(t *testing.T) {
	mockServer := httptest.NewServer(http.NotFoundHandler())
	url := mockServer.URL
	mockServer.Close()

	p := NewProvider(&Config{Timeout: 2 * time.Second})
	_, err := p.FetchToken(context.Background(), Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthURL:      url,
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, authErr.StatusCode)
	assert.Error(t, authErr.Err)
}

func TestProvider_FetchToken_InvalidCredentialsSkipNetwork(t *testing.T) {
	called := false
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer mockServer.Close()

	p := NewProvider(nil)
	_, err := p.FetchToken(context.Background(), Credentials{ClientID: "id", AuthURL: mockServer.URL})
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorContains(t, err, "ClientSecret")
	assert.False(t, called)
}

func TestCredentials_Validate(t *testing.T) {
	valid := Credentials{ClientID: "id", ClientSecret: "s", AuthURL: "https://auth.example.com"}

	tests := []struct {
		name    string
		modify  func(*Credentials)
		wantErr bool
	}{
		{name: "valid", modify: func(*Credentials) {}},
		{name: "missing id", modify: func(c *Credentials) { c.ClientID = "" }, wantErr: true},
		{name: "missing secret", modify: func(c *Credentials) { c.ClientSecret = "" }, wantErr: true},
		{name: "missing url", modify: func(c *Credentials) { c.AuthURL = "" }, wantErr: true},
		{name: "relative url", modify: func(c *Credentials) { c.AuthURL = "auth.example.com" }, wantErr: true},
		{name: "bad scheme", modify: func(c *Credentials) { c.AuthURL = "ftp://auth.example.com" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentials_TokenURL(t *testing.T) {
	tests := []struct {
		authURL  string
		expected string
	}{
		{"https://vectara-prod-1.auth.us-west-2.amazoncognito.com", "https://vectara-prod-1.auth.us-west-2.amazoncognito.com/oauth2/token"},
		{"https://auth.example.com/", "https://auth.example.com/oauth2/token"},
		{"https://auth.example.com/oauth2/token", "https://auth.example.com/oauth2/token"},
		{"https://auth.example.com/custom/token", "https://auth.example.com/custom/token"},
	}

	for _, tt := range tests {
		t.Run(tt.authURL, func(t *testing.T) {
			got, err := Credentials{AuthURL: tt.authURL}.TokenURL()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCredentials_StringHidesSecret(t *testing.T) {
	c := Credentials{ClientID: "id", ClientSecret: "hunter2", AuthURL: "https://a"}
	assert.NotContains(t, c.String(), "hunter2")
}
