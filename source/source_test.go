package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/registrations", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"2023":{}},"indicator":"registrations"}`))
	})
	mux.HandleFunc("/exam_results", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		_, _ = w.Write([]byte(`{"data":{"2023":[]},"indicator":"exam_results"}`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newServer(t)
	f := New(Config{BaseURL: srv.URL + "/", Headers: map[string]string{"X-Token": "secret"}}, quietLogger())

	body, err := f.Fetch(context.Background(), "registrations")
	require.NoError(t, err)
	assert.Contains(t, string(body), `"indicator":"registrations"`)

	_, err = f.Fetch(context.Background(), "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchTimeout(t *testing.T) {
	srv := newServer(t)
	f := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, quietLogger())

	_, err := f.Fetch(context.Background(), "slow")
	require.Error(t, err)
}

func TestFetchAll(t *testing.T) {
	srv := newServer(t)
	f := New(Config{BaseURL: srv.URL, Headers: map[string]string{"X-Token": "secret"}}, quietLogger())

	t.Run("all succeed", func(t *testing.T) {
		got, err := f.FetchAll(context.Background(), []string{"registrations", "exam_results"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Contains(t, string(got["exam_results"]), "exam_results")
	})

	t.Run("one failure fails the batch", func(t *testing.T) {
		got, err := f.FetchAll(context.Background(), []string{"registrations", "broken"})
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "indicator broken")
	})

	t.Run("empty", func(t *testing.T) {
		got, err := f.FetchAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestURL(t *testing.T) {
	f := New(Config{BaseURL: "https://example.org/api/"}, nil)
	assert.Equal(t, "https://example.org/api/exam_results", f.URL("exam_results"))
	assert.Equal(t, "https://example.org/api/a%2Fb", f.URL("a/b"))
}

func TestLatest(t *testing.T) {
	t.Run("stale response is dropped", func(t *testing.T) {
		var l Latest[string]
		first := l.Begin()
		second := l.Begin()

		assert.True(t, l.Commit(second, "new"))
		assert.False(t, l.Commit(first, "old"))

		v, ok := l.Current()
		assert.True(t, ok)
		assert.Equal(t, "new", v)
	})

	t.Run("superseded before arriving", func(t *testing.T) {
		var l Latest[int]
		first := l.Begin()
		_ = l.Begin()
		assert.False(t, l.Commit(first, 1))
		_, ok := l.Current()
		assert.False(t, ok)
	})

	t.Run("double commit", func(t *testing.T) {
		var l Latest[int]
		tok := l.Begin()
		assert.True(t, l.Commit(tok, 1))
		assert.False(t, l.Commit(tok, 2))
		v, _ := l.Current()
		assert.Equal(t, 1, v)
	})

	t.Run("concurrent commits keep the newest", func(t *testing.T) {
		var l Latest[uint64]
		tokens := make([]uint64, 50)
		for i := range tokens {
			tokens[i] = l.Begin()
		}
		var wg sync.WaitGroup
		for _, tok := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.Commit(tok, tok)
			}()
		}
		wg.Wait()
		v, ok := l.Current()
		assert.True(t, ok)
		assert.Equal(t, tokens[len(tokens)-1], v)
	})
}
