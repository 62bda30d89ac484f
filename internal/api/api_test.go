package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/store"
)

type testEnv struct {
	srv   *httptest.Server
	store *store.Memory
	games *Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemory()
	svc, err := auth.NewService(st, auth.Options{Secret: []byte("s3cret"), BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	games := NewRegistry(st, game.Options{
		Generator: problemgen.NewSeeded(11),
		Debounce:  5 * time.Millisecond,
		Persist:   persist.Options{SavedRevert: time.Hour},
	})
	reg := prometheus.NewRegistry()
	server := NewServer(svc, games, Options{Metrics: true, Registerer: reg, Gatherer: reg})

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(func() {
		ts.Close()
		games.Close(context.Background())
	})
	return &testEnv{srv: ts, store: st, games: games}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func (e *testEnv) signUp(t *testing.T, email string) string {
	t.Helper()
	code, body := e.do(t, "POST", "/api/auth/signup", "", map[string]string{"email": email, "password": "wizard1"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "signed_in", body["result"])
	sess := body["session"].(map[string]any)
	return sess["token"].(string)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	code, body := e.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "kid@example.com")

	code, body := e.do(t, "POST", "/api/auth/signup", "", map[string]string{"email": "kid@example.com", "password": "again12"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "already_registered", body["result"])

	code, _ = e.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "kid@example.com", "password": "nope123"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = e.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "kid@example.com", "password": "wizard1"})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])

	code, body = e.do(t, "GET", "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "kid@example.com", body["email"])

	code, _ = e.do(t, "POST", "/api/auth/signup", "", map[string]string{"email": "bad", "password": "wizard1"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRequiresAuth(t *testing.T) {
	e := newTestEnv(t)
	for _, path := range []string{"/api/home", "/api/profile", "/api/practice", "/api/save-status"} {
		code, _ := e.do(t, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		code, _ = e.do(t, "GET", path, "forged.token.value", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestPracticeFlow(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "kid@example.com")

	code, _ := e.do(t, "GET", "/api/practice", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = e.do(t, "POST", "/api/practice", token, map[string]string{"skill": "tellingTime"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = e.do(t, "POST", "/api/practice", token, map[string]string{"skill": "division"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := e.do(t, "POST", "/api/practice", token, map[string]string{"skill": "addition"})
	require.Equal(t, http.StatusCreated, code)
	prob := body["problem"].(map[string]any)
	assert.Len(t, prob["choices"], 4)
	assert.NotContains(t, prob, "answer", "answer is never sent to the client")

	code, _ = e.do(t, "POST", "/api/practice/answer", token, map[string]string{"answer": "abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// Find the answer server side; the client never sees it.
	g, err := e.games.Get(context.Background(), identityOf(t, e, token))
	require.NoError(t, err)
	v, ok := g.Practice()
	require.True(t, ok)

	code, body = e.do(t, "POST", "/api/practice/answer", token, map[string]string{"answer": v.Problem.Answer})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, true, body["star"])
	assert.EqualValues(t, 3, body["xp_gained"])

	code, _ = e.do(t, "POST", "/api/practice/claim", token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, body = e.do(t, "POST", "/api/practice/end", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total_correct"])

	require.Eventually(t, func() bool {
		code, body := e.do(t, "GET", "/api/profile", token, nil)
		return code == http.StatusOK && body["total_stars"] == float64(1)
	}, time.Second, 10*time.Millisecond)
}

func TestBossGatedAndNameReset(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "kid@example.com")

	code, _ := e.do(t, "POST", "/api/boss", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = e.do(t, "POST", "/api/boss/fight", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = e.do(t, "PUT", "/api/profile/name", token, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := e.do(t, "PUT", "/api/profile/name", token, map[string]string{"name": "Rowan"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Rowan", body["name"])

	code, body = e.do(t, "GET", "/api/home", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Rowan", body["name"])
	assert.Equal(t, "Apprentice", body["rank"])
	assert.Equal(t, false, body["boss_available"])
	assert.Len(t, body["skills"], 5)

	code, body = e.do(t, "GET", "/api/save-status", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "saved", body["status"])

	code, body = e.do(t, "POST", "/api/profile/reset", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "", body["name"])
}

func TestBossFight(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "kid@example.com")
	id := identityOf(t, e, token)
	require.NoError(t, e.store.UpsertProfile(context.Background(), &store.ProfileRecord{
		ID:          id,
		SkillLevels: map[string]int{"addition": 2},
	}))
	// Drop the cached game so the seeded record is loaded.
	require.NoError(t, e.games.Close(context.Background()))

	code, body := e.do(t, "POST", "/api/boss", token, nil)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "intro", body["phase"])
	assert.EqualValues(t, 2500, body["intro_delay_ms"])

	code, body = e.do(t, "POST", "/api/boss/fight", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fight", body["phase"])

	g, err := e.games.Get(context.Background(), id)
	require.NoError(t, err)
	for {
		v, ok := g.Boss()
		require.True(t, ok)
		if v.Phase != "fight" {
			break
		}
		code, body = e.do(t, "POST", "/api/boss/answer", token, map[string]string{"answer": v.Problem.Answer})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["hit"])
	}
	assert.Equal(t, true, body["won"])

	rec, err := e.store.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, rec.BossDefeats["mathDragon"])
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, "GET", "/health", "", nil)

	resp, err := http.Get(e.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), `mathforest_http_requests_total{code="200",route="/health"}`)
}

func identityOf(t *testing.T, e *testEnv, token string) string {
	t.Helper()
	code, body := e.do(t, "GET", "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	return body["id"].(string)
}
