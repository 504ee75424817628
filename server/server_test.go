package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxdemo/components"
	"github.com/pthm/hxdemo/lib/config"
	"github.com/pthm/hxdemo/lib/logging"
	"github.com/pthm/hxdemo/lib/todos"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	remote := httptest.NewServer(StubHandler())
	t.Cleanup(remote.Close)

	cfg := config.Default()
	cfg.Key = "server-test-key"
	cfg.Todos.BaseURL = remote.URL + "/api"
	cfg.Todos.Timeout = 2 * time.Second

	s, err := New(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	app := httptest.NewServer(s.Handler())
	t.Cleanup(app.Close)
	return s, app
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := get(t, app.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestPages(t *testing.T) {
	_, app := newTestServer(t)

	for _, r := range components.Routes {
		resp, body := get(t, app.URL+r.Path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, r.Path)
		assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"), r.Path)
	}

	resp, body := get(t, app.URL+"/does/not/exist")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "PAGE NOT FOUND")
}

func TestStubTodos(t *testing.T) {
	srv := httptest.NewServer(StubHandler())
	defer srv.Close()

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", http.StatusOK, todos.DefaultLimit},
		{"?limit=3", http.StatusOK, 3},
		{"?limit=100", http.StatusOK, stubSize},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := get(t, srv.URL+"/api/todos"+tt.query)
			require.Equal(t, tt.status, resp.StatusCode, body)
			if tt.status != http.StatusOK {
				return
			}
			var got []todos.TodoRecord
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.Len(t, got, tt.count)
			assert.Equal(t, "1", got[0].ID)
		})
	}
}

func TestLoadTodosThroughComponent(t *testing.T) {
	s, app := newTestServer(t)

	load := s.components.TodoList.Call("load", components.TodoProps{}).URL
	req, err := http.NewRequest(http.MethodPost, app.URL+load, nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `data-status="loading"`)

	require.Eventually(t, func() bool {
		return s.Todos().CurrentStatus() == todos.StatusIdle
	}, 3*time.Second, 10*time.Millisecond)
	assert.Len(t, s.Todos().CurrentList(), todos.DefaultLimit)
	_, failed := s.Todos().CurrentError()
	assert.False(t, failed)
}

func TestComponentPostRequiresHTMX(t *testing.T) {
	s, app := newTestServer(t)

	load := s.components.TodoList.Call("load", components.TodoProps{}).URL
	resp, err := http.Post(app.URL+load, "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, todos.StatusIdle, s.Todos().CurrentStatus())
}

func TestMetricsEndpoint(t *testing.T) {
	_, app := newTestServer(t)
	get(t, app.URL+"/healthz")

	resp, body := get(t, app.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "hxdemo_todo_fetch_started_total")
	assert.Contains(t, body, `hxdemo_http_requests_total{code="200",method="GET",route="/healthz"} 1`)
}

func TestStreamSendsStateChanges(t *testing.T) {
	s, app := newTestServer(t)

	url := "ws" + strings.TrimPrefix(app.URL, "http") + "/ws/todos"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var st todos.State
	require.NoError(t, conn.ReadJSON(&st))
	assert.Equal(t, todos.StatusIdle, st.Status)
	assert.Empty(t, st.List)

	s.Todos().Dispatch(todos.Started{Limit: 1})
	require.NoError(t, conn.ReadJSON(&st))
	assert.Equal(t, todos.StatusLoading, st.Status)

	s.Todos().Dispatch(todos.Failed{Message: todos.FailureMessage})
	require.NoError(t, conn.ReadJSON(&st))
	assert.Equal(t, todos.StatusIdle, st.Status)
	require.NotNil(t, st.Error)
	assert.Equal(t, todos.FailureMessage, *st.Error)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownGrace + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	cfg := config.Default()
	cfg.Todos.BaseURL = "ftp://nowhere"
	_, err := New(cfg, logging.Discard())
	assert.Error(t, err)
}
