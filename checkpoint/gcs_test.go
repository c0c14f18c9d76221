package checkpoint

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type bucket struct {
	sync.Mutex
	objects map[string]string
	uploads []string
}

func (b *bucket) ServeHTTP(w http.ResponseWriter, rq *http.Request) {
	b.Lock()
	defer b.Unlock()

	switch {
	case rq.Method == http.MethodGet && strings.HasPrefix(rq.URL.Path, "/storage/v1/b/checkpoints/o/"):
		name := strings.TrimPrefix(rq.URL.Path, "/storage/v1/b/checkpoints/o/")
		if v, ok := b.objects[name]; !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"code":404,"message":"No such object"}}`)
		} else {
			w.Header().Set("Content-Type", "text/plain")
			io.WriteString(w, v)
		}

	case rq.Method == http.MethodPost && strings.HasSuffix(rq.URL.Path, "/b/checkpoints/o"):
		body, _ := io.ReadAll(rq.Body)
		b.uploads = append(b.uploads, string(body))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"bucket":"checkpoints","name":"last_checked.txt"}`)

	default:
		http.Error(w, "unexpected request", http.StatusBadRequest)
	}
}

func newGCS(t *testing.T, handler http.Handler) *GCS {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewGCS(context.Background(),
		"checkpoints",
		"last_checked.txt",
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return store
}

func TestNewGCSValidation(t *testing.T) {
	_, err := NewGCS(context.Background(), "", "last_checked.txt", option.WithoutAuthentication())
	assert.Error(t, err)

	_, err = NewGCS(context.Background(), "checkpoints", " ", option.WithoutAuthentication())
	assert.Error(t, err)
}

func TestGCSLoadNotFound(t *testing.T) {
	store := newGCS(t, &bucket{objects: map[string]string{}})

	v, err := store.Load(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Epoch, v)
}

func TestGCSLoad(t *testing.T) {
	store := newGCS(t, &bucket{
		objects: map[string]string{
			"last_checked.txt": "2024-03-01T12:34:56.789Z",
		},
	})

	v, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:34:56.789Z", Format(v))
}

func TestGCSLoadServerError(t *testing.T) {
	store := newGCS(t, http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))

	v, err := store.Load(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Epoch, v)
}

func TestGCSSave(t *testing.T) {
	b := bucket{objects: map[string]string{}}
	store := newGCS(t, &b)

	err := store.Save(context.Background(), time.Date(2024, time.March, 1, 12, 34, 56, 789_000_000, time.UTC))

	require.NoError(t, err)
	require.Len(t, b.uploads, 1)
	assert.Contains(t, b.uploads[0], "2024-03-01T12:34:56.789Z")
	assert.Contains(t, b.uploads[0], "last_checked.txt")
}

func TestGCSSaveError(t *testing.T) {
	store := newGCS(t, http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))

	err := store.Save(context.Background(), time.Now())

	assert.Error(t, err)
}
