package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-chatbot/internal/domain/auth"
	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
	"github.com/yanqian/faq-chatbot/internal/infra/config"
	"github.com/yanqian/faq-chatbot/internal/infra/faqstats"
	"github.com/yanqian/faq-chatbot/internal/infra/historyrepo"
	"github.com/yanqian/faq-chatbot/internal/infra/userrepo"
)

func TestRouter_ChatMatched(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	recorder := performRequest(server, http.MethodPost, "/api/chat", `{"message":"what are your hours"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chat.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "9am-5pm", got.Response)
	require.Equal(t, faq.OutcomeMatched, got.Outcome)
	require.Equal(t, "What are your hours?", got.MatchedQuestion)
	require.NotEmpty(t, got.SessionID)
}

func TestRouter_ChatNotFoundStillSucceeds(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	recorder := performRequest(server, http.MethodPost, "/api/chat/", `{"message":"asdkjasdkj","session_id":"s-1"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chat.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, faq.MessageNotFound, got.Response)
	require.Equal(t, "s-1", got.SessionID)
}

func TestRouter_ChatEmptyCatalog(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{catalog: &mutableSource{}})

	recorder := performRequest(server, http.MethodPost, "/api/chat", `{"message":"what are your hours"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chat.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, faq.MessageUnavailable, got.Response)
}

func TestRouter_ChatInvalidBody(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	for _, body := range []string{`{"message":123}`, `not json`, `{"message":["a"]}`} {
		recorder := performRequest(server, http.MethodPost, "/api/chat", body)
		require.Equal(t, http.StatusBadRequest, recorder.Code, body)

		errBody := decodeErrorBody(t, recorder.Body.Bytes())
		require.Equal(t, "invalid_request", errBody["error"]["code"])
		require.Equal(t, "invalid request body", errBody["error"]["message"])
	}
}

func TestRouter_ChatBlankMessageIsAnswered(t *testing.T) {
	cases := map[string]struct {
		catalog faq.CatalogSource
		want    string
	}{
		"loaded catalog": {want: faq.MessageNotFound},
		"empty catalog":  {catalog: &mutableSource{}, want: faq.MessageUnavailable},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			server := newRouterUnderTest(t, routerOptions{catalog: tc.catalog})

			for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`} {
				recorder := performRequest(server, http.MethodPost, "/api/chat", body)
				require.Equal(t, http.StatusOK, recorder.Code, body)

				var got chat.Response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				require.Equal(t, tc.want, got.Response, body)
				require.NotEmpty(t, got.SessionID)
			}
		})
	}
}

func TestRouter_ChatHistoryAndAdminListing(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	performRequest(server, http.MethodPost, "/api/chat", `{"message":"what are your hours","session_id":"abc"}`)
	performRequest(server, http.MethodPost, "/api/chat", `{"message":"where are you located","session_id":"other"}`)

	recorder := performRequest(server, http.MethodGet, "/api/chat/history/abc", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var history struct {
		SessionID string         `json:"session_id"`
		Messages  []chat.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &history))
	require.Equal(t, "abc", history.SessionID)
	require.Len(t, history.Messages, 2)
	require.Equal(t, chat.SenderUser, history.Messages[0].Sender)
	require.Equal(t, "9am-5pm", history.Messages[1].Message)

	recorder = performRequest(server, http.MethodGet, "/api/admin/chat_history", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var recent []chat.Message
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &recent))
	require.Len(t, recent, 4)
	require.Equal(t, "123 Main St", recent[0].Message)

	recorder = performRequest(server, http.MethodGet, "/api/admin/chat_history?limit=abc", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_Feedback(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	recorder := performRequest(server, http.MethodPost, "/api/feedback", `{"session_id":"abc","message_id":2,"rating":"up","comment":"thanks"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/feedback", `{"session_id":"abc","rating":"meh"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = performRequest(server, http.MethodGet, "/api/admin/feedback", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var items []feedback.Feedback
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, feedback.RatingUp, items[0].Rating)
	require.NotNil(t, items[0].MessageID)
}

func TestRouter_Health(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	for _, path := range []string{"/health", "/api/health"} {
		recorder := performRequest(server, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.Equal(t, "healthy", body["status"])
		require.Equal(t, "API is running successfully", body["message"])
	}
}

func TestRouter_IndexFallback(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{staticDir: filepath.Join(t.TempDir(), "missing")})

	recorder := performRequest(server, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "Static frontend not found", body["message"])
	require.Equal(t, "API is running", body["info"])
}

func TestRouter_IndexAndStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>FAQ bot</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0o600))
	server := newRouterUnderTest(t, routerOptions{staticDir: dir})

	recorder := performRequest(server, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "FAQ bot")

	recorder = performRequest(server, http.MethodGet, "/static/app.js", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "console.log")
}

func TestRouter_CatalogReload(t *testing.T) {
	source := &mutableSource{entries: []faq.Entry{{Question: "old question", Answer: "old"}}}
	server := newRouterUnderTest(t, routerOptions{catalog: source})

	source.set([]faq.Entry{
		{Question: "What are your hours?", Answer: "9am-5pm"},
		{Question: "Where are you located?", Answer: "123 Main St"},
	})
	recorder := performRequest(server, http.MethodPost, "/api/admin/catalog/reload", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"entries":2}`, recorder.Body.String())

	source.set(nil)
	recorder = performRequest(server, http.MethodPost, "/api/admin/catalog/reload", "")
	require.Equal(t, http.StatusConflict, recorder.Code)
	require.Equal(t, "catalog_reload_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_Trending(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	performRequest(server, http.MethodPost, "/api/chat", `{"message":"What are your hours?"}`)
	performRequest(server, http.MethodPost, "/api/chat", `{"message":"what are your hours"}`)
	performRequest(server, http.MethodPost, "/api/chat", `{"message":"asdkjasdkj"}`)

	recorder := performRequest(server, http.MethodGet, "/api/faq/trending", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Recommendations []faq.TrendingQuery `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Recommendations, 2)
	require.Equal(t, int64(2), body.Recommendations[0].Count)
	require.Equal(t, int64(2), body.Recommendations[0].Matched)
}

func TestRouter_AuthFlow(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	recorder := performRequest(server, http.MethodPost, "/api/auth/register", `{"email":"user@example.com","password":"pass1234"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/auth/register", `{"email":"user@example.com","password":"pass1234"}`)
	require.Equal(t, http.StatusConflict, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"wrong-pass"}`)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"pass1234"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	var login auth.Session
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var me auth.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "user@example.com", me.Email)

	recorder = performRequest(server, http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_token", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	recorder = performRequest(server, http.MethodPost, "/api/auth/login", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid request body", decodeErrorBody(t, recorder.Body.Bytes())["error"]["message"])

	recorder = performRequest(server, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{rateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}})

	recorder := performRequest(server, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(server, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_RetriesTransientReadFailures(t *testing.T) {
	repo := &flakyHistory{MemoryStore: historyrepo.NewMemoryStore(), failures: 1}
	server := newRouterUnderTest(t, routerOptions{
		history: repo,
		retry:   config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond},
	})

	recorder := performRequest(server, http.MethodGet, "/api/admin/chat_history", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, int32(2), repo.calls.Load())
	require.JSONEq(t, `[]`, recorder.Body.String())
}

func TestRouter_RetryGivesUp(t *testing.T) {
	repo := &flakyHistory{MemoryStore: historyrepo.NewMemoryStore(), failures: 10}
	server := newRouterUnderTest(t, routerOptions{
		history: repo,
		retry:   config.RetryConfig{Enabled: true, MaxAttempts: 2, BaseBackoff: time.Millisecond},
	})

	recorder := performRequest(server, http.MethodGet, "/api/admin/chat_history", "")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, int32(2), repo.calls.Load())
	require.Equal(t, "chat_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, routerOptions{})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

type routerOptions struct {
	catalog   faq.CatalogSource
	history   chat.Repository
	staticDir string
	rateLimit config.RateLimitConfig
	retry     config.RetryConfig
}

func newRouterUnderTest(t *testing.T, opts routerOptions) *http.Server {
	t.Helper()
	logger := newTestLogger()

	source := opts.catalog
	if source == nil {
		source = &mutableSource{entries: []faq.Entry{
			{Question: "What are your hours?", Answer: "9am-5pm"},
			{Question: "Where are you located?", Answer: "123 Main St"},
		}}
	}
	catalog := faq.NewCatalog(source, true, logger)
	faqSvc := faq.NewService(faq.Config{TopRecommendations: 5}, catalog, faqstats.NewMemoryStore(), logger)

	store := historyrepo.NewMemoryStore()
	var history chat.Repository = store
	if opts.history != nil {
		history = opts.history
	}
	chatSvc := chat.NewService(chat.Config{}, faqSvc, history, logger)
	feedbackSvc := feedback.NewService(store, logger)
	authSvc := auth.NewService(auth.Config{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	}, userrepo.NewMemoryRepository(), logger)

	staticDir := opts.staticDir
	if staticDir == "" {
		staticDir = filepath.Join(t.TempDir(), "static")
	}
	handler := NewHandler(chatSvc, feedbackSvc, faqSvc, catalog, authSvc, StaticDir(staticDir), logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit:    opts.rateLimit,
			Retry:        opts.retry,
		},
	}
	return NewRouter(cfg, handler, authSvc)
}

func performRequest(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type mutableSource struct {
	entries []faq.Entry
}

func (s *mutableSource) Entries(context.Context) []faq.Entry {
	return s.entries
}

func (s *mutableSource) set(entries []faq.Entry) {
	s.entries = entries
}

type flakyHistory struct {
	*historyrepo.MemoryStore
	failures int32
	calls    atomic.Int32
}

func (f *flakyHistory) ListRecentMessages(ctx context.Context, limit int) ([]chat.Message, error) {
	if f.calls.Add(1) <= f.failures {
		return nil, errors.New("database is locked")
	}
	return f.MemoryStore.ListRecentMessages(ctx, limit)
}
