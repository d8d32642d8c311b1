package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-time-tracker/internal/app"
	"mini-time-tracker/internal/client"
	"mini-time-tracker/internal/config"
	"mini-time-tracker/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var cfg config.Config
	cfg.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "tracker.db")
	a, err := app.New(context.Background(), discardLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(a.HTTPServer("").Handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CreateAndList(t *testing.T) {
	srv := newServer(t)
	c := client.NewClient(srv.URL+"/", discardLogger())
	ctx := context.Background()

	created, err := c.CreateEntry(ctx, domain.NewEntry{Date: "2024-01-01", Project: "Internal", Hours: 1.75, Description: "planning"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1.75, created.Hours)

	entries, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)
	assert.True(t, created.CreatedAt.Equal(entries[0].CreatedAt))
}

func TestClient_RejectionCarriesServerMessage(t *testing.T) {
	srv := newServer(t)
	c := client.NewClient(srv.URL, discardLogger())
	ctx := context.Background()

	_, err := c.CreateEntry(ctx, domain.NewEntry{Date: "2024-01-01", Project: "P", Hours: 25, Description: "x"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrDailyLimit.Message, err.Error())
	assert.True(t, client.IsRejection(err))
}

func TestClient_FallbackMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()
	c := client.NewClient(srv.URL, discardLogger())
	ctx := context.Background()

	_, err := c.ListEntries(ctx)
	assert.EqualError(t, err, "Failed to load entries")
	assert.False(t, client.IsRejection(err))

	_, err = c.CreateEntry(ctx, domain.NewEntry{Date: "2024-01-01", Project: "P", Hours: 1, Description: "x"})
	assert.EqualError(t, err, "Failed to create entry")
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.NewClient(url, discardLogger()).ListEntries(context.Background())
	assert.ErrorContains(t, err, "Failed to load entries")
}
