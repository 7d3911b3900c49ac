package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/catalog"
	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/game"
	"github.com/alienwaste/alienwaste-backend/pkg/gate"
	"github.com/alienwaste/alienwaste-backend/pkg/service"
	"github.com/alienwaste/alienwaste-backend/pkg/state"
	"github.com/alienwaste/alienwaste-backend/pkg/telegram"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:TEST-TOKEN"

var apiStart = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	api     *API
	handler http.Handler
	clock   *clock.Fake
	redis   *redis.Client
}

type apiSetup struct {
	policy gate.Policy
	opts   NewAPIOptions
}

type apiOption func(s *apiSetup)

func withPolicy(mutate func(p *gate.Policy)) apiOption {
	return func(s *apiSetup) { mutate(&s.policy) }
}

func withBot(bot UpdateHandler) apiOption {
	return func(s *apiSetup) { s.opts.Bot = bot }
}

func withHealth(health state.Checker) apiOption {
	return func(s *apiSetup) { s.opts.Health = health }
}

// setupTestAPI builds the API over a miniredis-backed state store
func setupTestAPI(t *testing.T, options ...apiOption) *testAPI {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)

	setup := apiSetup{
		policy: gate.DefaultPolicy(),
		opts:   NewAPIOptions{Health: state.NewHealthChecker(client)},
	}
	setup.policy.Location = time.UTC
	for _, o := range options {
		o(&setup)
	}

	clk := clock.NewFake(apiStart)
	store := service.NewRedisGameStateStore(client, game.NewStateFactory(cat), clk, service.RedisGameStateStoreConfig{})
	setup.opts.Game = game.NewService(store, gate.New(setup.policy), clk, cat, game.Config{BotToken: testBotToken})

	api := NewAPI(setup.opts)
	return &testAPI{api: api, handler: api.Handler(), clock: clk, redis: client}
}

func (ta *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

// login authenticates a Telegram user and returns its user id
func (ta *testAPI) login(t *testing.T, id int64) string {
	t.Helper()

	user := telegram.User{ID: id, FirstName: "Ada", Username: "ada_l"}
	raw, err := json.Marshal(user)
	require.NoError(t, err)

	initData := telegram.SignInitData(map[string]string{
		"auth_date": "1700000000",
		"user":      string(raw),
	}, testBotToken)

	rec := ta.do(t, http.MethodPost, "/api/auth", map[string]string{"initData": initData})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return user.IDString()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func gameStateOf(t *testing.T, rec *httptest.ResponseRecorder) *state.GameState {
	t.Helper()
	var body struct {
		GameState *state.GameState `json:"gameState"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.GameState, rec.Body.String())
	return body.GameState
}

type failingChecker struct{}

func (failingChecker) Check(context.Context) error {
	return context.DeadlineExceeded
}
