package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"studyplanner/internal/catalog"
	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/schedule"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeModel struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	ids      []string
}

func (f *fakeModel) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithSchema(ctx, prompt, nil)
}

func (f *fakeModel) CompleteWithSchema(ctx context.Context, prompt string, _ *llm.Schema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.ids = append(f.ids, llm.RequestIDFromContext(ctx))
	return f.response, f.err
}

func (f *fakeModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newTestServer(model *fakeModel) *Server {
	svc := schedule.NewService(model, schedule.WithLogger(zap.NewNop().Sugar()))
	return New(svc, catalog.Default(), Options{
		Server:     config.ServerConfig{Addr: "127.0.0.1:0", ShutdownGrace: "1s"},
		LLMTimeout: 5 * time.Second,
		Logger:     zap.NewNop().Sugar(),
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSchedule_Success(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"Monday: Algebra"}`}
	s := newTestServer(model)

	w := do(t, s, http.MethodPost, "/api/schedule", `{"courses":"Algebra, Physics","availableHours":10}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Monday: Algebra", decode(t, w)["scheduleText"])
	require.Equal(t, 1, model.calls())
	assert.Contains(t, model.prompts[0], "Courses: Algebra, Physics\n")
	assert.Contains(t, model.prompts[0], "Available Time: 10 hours per week")
}

func TestSchedule_AcceptsArrayAndStringHours(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"ok"}`}
	s := newTestServer(model)

	w := do(t, s, http.MethodPost, "/api/schedule", `{"courses":["Algebra, Part 2"," "],"availableHours":"7.5"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 1, model.calls())
	assert.Contains(t, model.prompts[0], "Courses: Algebra, Part 2\n")
	assert.Contains(t, model.prompts[0], "Available Time: 7.5 hours per week")
}

func TestSchedule_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty courses", `{"courses":" , ","availableHours":10}`, schedule.FieldCourses},
		{"missing courses", `{"availableHours":10}`, schedule.FieldCourses},
		{"empty array", `{"courses":[],"availableHours":10}`, schedule.FieldCourses},
		{"hours too high", `{"courses":"Algebra","availableHours":150}`, schedule.FieldAvailableHours},
		{"hours zero", `{"courses":"Algebra","availableHours":0}`, schedule.FieldAvailableHours},
		{"hours missing", `{"courses":"Algebra"}`, schedule.FieldAvailableHours},
		{"hours not numeric", `{"courses":"Algebra","availableHours":"lots"}`, schedule.FieldAvailableHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{response: `{"schedule":"x"}`}
			s := newTestServer(model)

			w := do(t, s, http.MethodPost, "/api/schedule", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			got := decode(t, w)
			assert.Equal(t, tt.field, got["field"])
			assert.NotEmpty(t, got["error"])
			assert.Zero(t, model.calls(), "model must not be called on invalid input")
		})
	}
}

func TestSchedule_MalformedBody(t *testing.T) {
	model := &fakeModel{}
	s := newTestServer(model)

	for _, body := range []string{`{"courses":`, `{"courses":42,"availableHours":1}`, `{"courses":"A","availableHours":true}`} {
		w := do(t, s, http.MethodPost, "/api/schedule", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "invalid request body", decode(t, w)["error"])
	}
	assert.Zero(t, model.calls())
}

func TestSchedule_GenerationFailureIsGeneric(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeModel
	}{
		{"provider error", &fakeModel{err: errors.New("401 invalid api key sk-secret")}},
		{"malformed output", &fakeModel{response: "not json"}},
		{"blank schedule", &fakeModel{response: `{"schedule":"   "}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.model)
			w := do(t, s, http.MethodPost, "/api/schedule", `{"courses":"Algebra","availableHours":4}`)
			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, schedule.GenerationUnavailableMessage, decode(t, w)["error"])
			assert.NotContains(t, w.Body.String(), "sk-secret")
			assert.Equal(t, 1, tt.model.calls())
		})
	}
}

func TestSchedule_GenerationFailureLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	model := &fakeModel{err: errors.New("upstream 500")}
	svc := schedule.NewService(model, schedule.WithLogger(zap.NewNop().Sugar()))
	s := New(svc, catalog.Default(), Options{Logger: zap.New(core).Sugar()})

	w := do(t, s, http.MethodPost, "/api/schedule", `{"courses":"Algebra","availableHours":4}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	entries := logs.FilterMessage("schedule generation failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, fmt.Sprint(entries[0].ContextMap()["error"]), "upstream 500")
}

func TestRequestID(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"ok"}`}
	s := newTestServer(model)

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(`{"courses":"A","availableHours":2}`))
	req.Header.Set(RequestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(RequestIDHeader))
	require.Equal(t, 1, model.calls())
	assert.Equal(t, "trace-123", model.ids[0])

	w = do(t, s, http.MethodGet, "/healthz", "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36, "minted IDs are UUIDs")
}

func TestCourses(t *testing.T) {
	s := newTestServer(&fakeModel{})

	w := do(t, s, http.MethodGet, "/api/courses", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode(t, w)
	assert.EqualValues(t, len(catalog.Default().All()), all["count"])

	w = do(t, s, http.MethodGet, "/api/courses?category=all&level=Beginner", "")
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decode(t, w)
	want := catalog.Default().Filter(catalog.Query{Level: "beginner"})
	assert.EqualValues(t, len(want), filtered["count"])

	w = do(t, s, http.MethodGet, "/api/courses?search=zzzz-nothing", "")
	assert.EqualValues(t, 0, decode(t, w)["count"])
	assert.Contains(t, w.Body.String(), `"courses":[]`)
}

func TestCourseByID(t *testing.T) {
	s := newTestServer(&fakeModel{})

	w := do(t, s, http.MethodGet, "/api/courses/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", decode(t, w)["id"])

	w = do(t, s, http.MethodGet, "/api/courses/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "course not found", decode(t, w)["error"])
}

func TestFacets(t *testing.T) {
	s := newTestServer(&fakeModel{})
	w := do(t, s, http.MethodGet, "/api/catalog/facets", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.NotEmpty(t, got["categories"])
	assert.NotEmpty(t, got["skillLevels"])
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(&fakeModel{response: `{"schedule":"ok"}`})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{}}
	defer client.CloseIdleConnections()

	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	client.CloseIdleConnections()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
