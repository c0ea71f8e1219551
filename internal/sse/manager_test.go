package sse

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlife/recommender/internal/navigation"
)

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.EventChan:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_BroadcastAndSessionFilter(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	page, err := m.Connect("")
	require.NoError(t, err)
	trailer, err := m.Connect("trl-aaaa")
	require.NoError(t, err)
	other, err := m.Connect("trl-bbbb")
	require.NoError(t, err)
	assert.Equal(t, 3, m.ClientCount())

	m.Emit(NewTrailerStoppedEvent("trl-aaaa", "rec-1"))
	m.Emit(NewNavigationChangedEvent(navigation.State{View: navigation.ViewTeam, Revision: 4}))

	got := receive(t, trailer)
	assert.Equal(t, EventTrailerStopped, got.Type)
	assert.Equal(t, EventNavigationChanged, receive(t, trailer).Type)

	// The page without a session only sees the broadcast.
	assert.Equal(t, EventNavigationChanged, receive(t, page).Type)
	assert.Equal(t, EventNavigationChanged, receive(t, other).Type)
}

func TestManager_DisconnectIsIdempotent(t *testing.T) {
	m := NewManager(nil)

	c, err := m.Connect("")
	require.NoError(t, err)

	m.Disconnect(c.ID)
	m.Disconnect(c.ID)

	assert.Zero(t, m.ClientCount())
	_, open := <-c.Done
	assert.False(t, open)
}

func TestManager_ShutdownDrainsAndClosesClients(t *testing.T) {
	m := NewManager(nil)
	c, err := m.Connect("")
	require.NoError(t, err)

	m.Emit(NewAppQuitEvent())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))
	require.NoError(t, m.Shutdown(ctx))

	assert.Equal(t, EventAppQuit, receive(t, c).Type)
	assert.Zero(t, m.ClientCount())

	// Emitting after shutdown must not panic.
	assert.NotPanics(t, func() { m.Emit(NewAppQuitEvent()) })
}

func TestHandler_StreamsEvents(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	srv := httptest.NewServer(NewHandler(m, slog.New(slog.DiscardHandler)))
	defer srv.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?session=trl-aaaa", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "retry: 2000\n", line)

	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	m.Emit(NewTrailerStoppedEvent("trl-aaaa", "rec-1"))

	var sawStop bool
	for range 6 {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: trailer.stopped") {
			sawStop = true
			break
		}
	}
	assert.True(t, sawStop)
}

func TestHandler_RejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(NewManager(nil), slog.New(slog.DiscardHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_NilLogger(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	srv := httptest.NewServer(NewHandler(m, nil))
	defer srv.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for range 2 {
		_, err = reader.ReadString('\n')
		require.NoError(t, err)
	}
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)
}
