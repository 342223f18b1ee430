package integrationtests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/auth"
	market "github.com/gkrishna247/lendit-p2p-market/internal/marketService"
	"github.com/gkrishna247/lendit-p2p-market/internal/repository"
	"github.com/gkrishna247/lendit-p2p-market/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testPassword = "integration-pass-1"

// TestApp bundles a router over an in-memory store with its backing repo
type TestApp struct {
	Router *gin.Engine
	Repo   *repository.MemoryRepo
}

// SetupTestApp initializes the full router with in-memory stores for integration testing.
// now fixes the clock used for booking date checks.
func SetupTestApp(t *testing.T, now time.Time) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	issuer, err := auth.NewTokenIssuer("integration-secret", time.Hour)
	require.NoError(t, err)
	authSvc := auth.NewService(repo, issuer, auth.NewMemoryRevocations())
	marketSvc := market.NewMarketService(repo, market.WithClock(func() time.Time { return now }))

	return &TestApp{
		Router: server.SetupRouter(marketSvc, authSvc, authSvc),
		Repo:   repo,
	}
}

// Response is the decoded JSON envelope
type Response struct {
	Status  int             `json:"status"`
	Level   string          `json:"level"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Do executes an HTTP request with an optional bearer token and parses the envelope
func (a *TestApp) Do(t *testing.T, method, url, token string, body any) (Response, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var resp Response
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// DecodeData unmarshals the envelope's data into out
func DecodeData(t *testing.T, resp Response, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, out), "data: %s", string(resp.Data))
}

// SignUp registers and logs in a user, returning the session token and user ID
func (a *TestApp) SignUp(t *testing.T, username string) (string, string) {
	t.Helper()

	resp, w := a.Do(t, http.MethodPost, "/register", "", map[string]string{
		"username":         username,
		"email":            fmt.Sprintf("%s@example.com", username),
		"password":         testPassword,
		"password_confirm": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)

	resp, w = a.Do(t, http.MethodPost, "/login", "", map[string]string{"username": username, "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, resp.Message)

	var session struct {
		Token string `json:"token"`
		User  struct {
			UserID string `json:"user_id"`
		} `json:"user"`
	}
	DecodeData(t, resp, &session)
	return session.Token, session.User.UserID
}

// ListItem creates an item as the token's user and returns its ID
func (a *TestApp) ListItem(t *testing.T, token, title, price string) string {
	t.Helper()

	resp, w := a.Do(t, http.MethodPost, "/items", token, map[string]string{
		"title":       title,
		"description": "integration test item",
		"category":    "tools",
		"daily_price": price,
	})
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)

	var item struct {
		ItemID string `json:"item_id"`
	}
	DecodeData(t, resp, &item)
	return item.ItemID
}
