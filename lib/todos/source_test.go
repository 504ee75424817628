package todos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TodoRecord
	}{
		{"string id", `{"id":"7","title":"a","completed":true}`, rec("7", "a", true)},
		{"numeric id", `{"id":12,"title":"b","completed":false}`, rec("12", "b", false)},
		{"missing id", `{"title":"c"}`, rec("", "c", false)},
		{"null id", `{"id":null,"title":"d"}`, rec("", "d", false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TodoRecord
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordUnmarshalRejectsBadID(t *testing.T) {
	var got TodoRecord
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &got))
}

func TestHTTPSourceRequest(t *testing.T) {
	var gotPath, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","title":"a","completed":false}]`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	got, err := src.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "/api/todos", gotPath)
	assert.Equal(t, "3", gotLimit)
	assert.Equal(t, []TodoRecord{rec("1", "a", false)}, got)
}

func TestHTTPSourceRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = src.List(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteRejected))

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusInternalServerError, rejected.StatusCode)
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = src.List(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRemoteRejected))
}

func TestHTTPSourceNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, srv.Client())
	require.NoError(t, err)

	got, err := src.List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewHTTPSourceValidatesURL(t *testing.T) {
	_, err := NewHTTPSource("ftp://example.com", nil)
	assert.Error(t, err)

	src, err := NewHTTPSource("http://example.com/api/", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api/todos?limit=10", src.URL(10))
}
