package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/auratask-go/auth"
	"github.com/user/auratask-go/config"
	"github.com/user/auratask-go/suggest"
)

// newTaskRouter assembles the task routes exactly as main.go does: the
// token middleware in front of the handlers, backed by the fake repo.
func newTaskRouter(repo Repository, tokens auth.TokenService) http.Handler {
	handlers := NewHandlers(NewService(repo))
	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(auth.Middleware(tokens))
		handlers.RegisterRoutes(r)
	})
	return r
}

func newTestTokens(t *testing.T) auth.TokenService {
	t.Helper()
	return auth.NewJWTTokenService(&config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenDuration: time.Hour,
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTaskRoutes_RequireToken(t *testing.T) {
	router := newTaskRouter(newFakeRepo(), newTestTokens(t))

	rec := doRequest(t, router, http.MethodGet, "/api/tasks/", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tasks/", "bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateThenList_RoundTrip(t *testing.T) {
	tokens := newTestTokens(t)
	router := newTaskRouter(newFakeRepo(), tokens)

	tok, err := tokens.Issue("user-a")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/tasks/", tok,
		`{"title":"T","priority":"High"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-a", created.UserID)
	assert.Equal(t, PriorityHigh, created.Priority)
	assert.False(t, created.Completed)
	assert.False(t, created.CreatedAt.IsZero())

	rec = doRequest(t, router, http.MethodGet, "/api/tasks/", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, PriorityHigh, list[0].Priority)
	assert.False(t, list[0].Completed)
}

func TestCreate_ClientSuppliedOwnerIgnored(t *testing.T) {
	tokens := newTestTokens(t)
	router := newTaskRouter(newFakeRepo(), tokens)

	tok, err := tokens.Issue("user-a")
	require.NoError(t, err)

	// A user_id in the payload must not override the requester.
	rec := doRequest(t, router, http.MethodPost, "/api/tasks/", tok,
		`{"title":"T","user_id":"user-b"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "user-a", created.UserID)
}

func TestUpdateAndDelete_CrossUserIsolation(t *testing.T) {
	tokens := newTestTokens(t)
	repo := newFakeRepo()
	router := newTaskRouter(repo, tokens)

	tokA, err := tokens.Issue("user-a")
	require.NoError(t, err)
	tokB, err := tokens.Issue("user-b")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/tasks/", tokB, `{"title":"B's task"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var bTask Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bTask))

	// A's token can never touch B's task.
	rec = doRequest(t, router, http.MethodPatch, "/api/tasks/"+bTask.ID, tokA, `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+bTask.ID, tokA, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	// B still sees the task untouched.
	rec = doRequest(t, router, http.MethodGet, "/api/tasks/", tokB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.False(t, list[0].Completed)
}

func TestPatch_UpdatesFields(t *testing.T) {
	tokens := newTestTokens(t)
	router := newTaskRouter(newFakeRepo(), tokens)

	tok, err := tokens.Issue("user-a")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/tasks/", tok, `{"title":"T"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(t, router, http.MethodPatch, "/api/tasks/"+created.ID, tok,
		`{"completed":true,"remarks":"waiting on review"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "waiting on review", updated.Remarks)
	assert.Equal(t, "T", updated.Title, "untouched fields keep their values")
}

func TestDelete_NonexistentIsIdempotent(t *testing.T) {
	tokens := newTestTokens(t)
	router := newTaskRouter(newFakeRepo(), tokens)

	tok, err := tokens.Issue("user-a")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, router, http.MethodDelete, "/api/tasks/no-such-id", tok, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	}
}

func TestInsightsEndpoint(t *testing.T) {
	tokens := newTestTokens(t)
	router := newTaskRouter(newFakeRepo(), tokens)

	tok, err := tokens.Issue("user-a")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/tasks/", tok, `{"title":"A","priority":"High"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/api/tasks/", tok, `{"title":"B","priority":"Low"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tasks/insights", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var insight suggest.Insight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insight))
	assert.Equal(t, 0, insight.Percent)
	assert.Contains(t, insight.Message, `"A"`)
}
