package todos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// ErrRemoteRejected matches every *RejectedError.
var ErrRemoteRejected = errors.New("todos: remote rejected request")

// RejectedError reports a non-200 response from the remote source.
type RejectedError struct {
	StatusCode int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("todos: remote responded with status %d", e.StatusCode)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRemoteRejected
}

// Source returns up to limit todo records.
type Source interface {
	List(ctx context.Context, limit int) ([]TodoRecord, error)
}

// HTTPSource reads todos from GET {base}/todos?limit=N.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source rooted at baseURL. A nil client uses
// http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// URL returns the request URL for limit.
func (s *HTTPSource) URL(limit int) string {
	u := s.base.JoinPath("todos")
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String()
}

// List fetches up to limit records. Any status other than 200 is returned as
// a *RejectedError.
func (s *HTTPSource) List(ctx context.Context, limit int) ([]TodoRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(limit), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &RejectedError{StatusCode: resp.StatusCode}
	}

	var records []TodoRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	if records == nil {
		records = []TodoRecord{}
	}
	return records, nil
}
