package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaking-practice/backend/internal/database"
	"github.com/speaking-practice/backend/internal/models"
)

func newTestRouter(t *testing.T) (*mux.Router, *Tokens) {
	t.Helper()
	db, err := database.OpenMigrated(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens := NewTokens("test-secret", time.Hour)
	h := NewHandler(NewStore(db), tokens, nil)

	r := mux.NewRouter()
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	protected := r.PathPrefix("").Subrouter()
	protected.Use(Middleware(tokens))
	protected.HandleFunc("/auth/me", h.GetCurrentUser).Methods("GET")
	return r, tokens
}

func do(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginMe(t *testing.T) {
	r, tokens := newTestRouter(t)

	rec := do(r, "POST", "/auth/register", models.RegisterRequest{
		Email: "  Learner@Example.com ", Username: "learner", Password: "correct-horse",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registered))
	assert.Equal(t, "learner@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.SessionID)

	rec = do(r, "POST", "/auth/login", models.LoginRequest{Email: "learner@example.com", Password: "correct-horse"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))
	assert.NotEqual(t, registered.SessionID, login.SessionID, "each login starts a new session")

	claims, err := tokens.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, claims.UserID)
	assert.Equal(t, login.SessionID, claims.SessionID)

	rec = do(r, "GET", "/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_Duplicate(t *testing.T) {
	r, _ := newTestRouter(t)
	req := models.RegisterRequest{Email: "a@b.co", Username: "ab", Password: "12345678"}

	require.Equal(t, http.StatusCreated, do(r, "POST", "/auth/register", req, "").Code)
	assert.Equal(t, http.StatusConflict, do(r, "POST", "/auth/register", req, "").Code)
}

func TestRegister_Invalid(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, "POST", "/auth/register", models.RegisterRequest{Email: "not-an-email", Username: "x", Password: "short"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, "POST", "/auth/register", models.RegisterRequest{Email: "a@b.co", Username: "ab", Password: "12345678"}, "")

	assert.Equal(t, http.StatusUnauthorized,
		do(r, "POST", "/auth/login", models.LoginRequest{Email: "a@b.co", Password: "87654321"}, "").Code)
	assert.Equal(t, http.StatusUnauthorized,
		do(r, "POST", "/auth/login", models.LoginRequest{Email: "nobody@b.co", Password: "12345678"}, "").Code)
}

func TestMiddleware(t *testing.T) {
	r, tokens := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/auth/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/auth/me", nil, "garbage").Code)

	other := NewTokens("other-secret", time.Hour)
	forged, err := other.Issue(1, "s")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/auth/me", nil, forged).Code)

	// Valid token for a user that does not exist.
	ghost, err := tokens.Issue(999, "s")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, do(r, "GET", "/auth/me", nil, ghost).Code)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	tokens.ttl = -time.Minute
	raw, err := tokens.Issue(1, "s")
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	ctx := WithIdentity(context.Background(), 42, "sess")
	uid, ok := UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), uid)
	assert.Equal(t, "sess", SessionID(ctx))

	_, ok = UserID(context.Background())
	assert.False(t, ok)
	assert.Empty(t, SessionID(context.Background()))
}
