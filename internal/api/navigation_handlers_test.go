package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlife/recommender/internal/domain"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/sse"
)

func TestGetNavigation_StartsHome(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/navigation")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[NavigationResponse](t, resp)
	assert.Equal(t, navigation.ViewHome, env.Data.State.View)
	assert.False(t, env.Data.State.SidebarVisible)
	assert.Equal(t, []string{"Movies", "Books", "Anime", "Courses", "Games"}, env.Data.Categories)
}

func TestNavigation_CategoryThenGenre(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/navigation/category", map[string]any{"category": "anime"})
	require.Equal(t, http.StatusOK, resp.Code)
	env := decode[NavigationResponse](t, resp)
	assert.Equal(t, navigation.ViewCategory, env.Data.State.View)
	assert.Equal(t, domain.CategoryAnime, env.Data.State.Category)
	assert.Contains(t, env.Data.Genres, "Slice of Life")

	resp = ts.api.Post("/api/v1/navigation/genre", map[string]any{"genre": "slice-of-life"})
	require.Equal(t, http.StatusOK, resp.Code)
	env = decode[NavigationResponse](t, resp)
	assert.Equal(t, navigation.ViewGenre, env.Data.State.View)
	assert.Equal(t, "Slice of Life", env.Data.State.Genre)
	assert.Len(t, env.Data.Recommendations, 8)
	assert.Greater(t, env.Data.State.Revision, uint64(1))
}

func TestNavigation_GenreWithoutCategoryIsEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/navigation/genre", map[string]any{"genre": "Action"})
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[NavigationResponse](t, resp)
	assert.Equal(t, navigation.ViewGenre, env.Data.State.View)
	assert.Equal(t, domain.CategoryNone, env.Data.State.Category)
	assert.Empty(t, env.Data.Recommendations)
}

func TestNavigation_UnknownCategory(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/navigation/category", map[string]any{"category": "podcasts"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// State is untouched.
	env := decode[NavigationResponse](t, ts.api.Get("/api/v1/navigation"))
	assert.Equal(t, navigation.ViewHome, env.Data.State.View)
	assert.Zero(t, env.Data.State.Revision)
}

func TestNavigation_OpenJumpsToGenre(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/navigation/open", map[string]any{"category": "Movies", "genre": "sci-fi"})
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[NavigationResponse](t, resp)
	assert.Equal(t, navigation.ViewGenre, env.Data.State.View)
	assert.Equal(t, "Sci-Fi", env.Data.State.Genre)
	assert.Len(t, env.Data.Recommendations, 8)
}

func TestNavigation_HomeAndTeamClearSelection(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/api/v1/navigation/open", map[string]any{"category": "books", "genre": "mystery"})

	env := decode[NavigationResponse](t, ts.api.Post("/api/v1/navigation/team"))
	assert.Equal(t, navigation.ViewTeam, env.Data.State.View)
	assert.Equal(t, domain.CategoryNone, env.Data.State.Category)
	assert.Empty(t, env.Data.State.Genre)

	env = decode[NavigationResponse](t, ts.api.Post("/api/v1/navigation/home"))
	assert.Equal(t, navigation.ViewHome, env.Data.State.View)
	assert.NotEmpty(t, env.Data.Categories)
}

func TestNavigation_ToggleSidebarKeepsView(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/api/v1/navigation/category", map[string]any{"category": "games"})

	env := decode[NavigationResponse](t, ts.api.Post("/api/v1/navigation/sidebar"))
	assert.True(t, env.Data.State.SidebarVisible)
	assert.Equal(t, navigation.ViewCategory, env.Data.State.View)
	assert.Equal(t, domain.CategoryGames, env.Data.State.Category)

	env = decode[NavigationResponse](t, ts.api.Post("/api/v1/navigation/sidebar"))
	assert.False(t, env.Data.State.SidebarVisible)
}

func TestNavigation_BroadcastsChanges(t *testing.T) {
	ts := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ts.sseManager.Start(ctx)

	client, err := ts.sseManager.Connect("")
	require.NoError(t, err)

	ts.api.Post("/api/v1/navigation/category", map[string]any{"category": "courses"})

	select {
	case ev := <-client.EventChan:
		assert.Equal(t, sse.EventNavigationChanged, ev.Type)
		data, ok := ev.Data.(sse.NavigationEventData)
		require.True(t, ok)
		assert.Equal(t, domain.CategoryCourses, data.State.Category)
	case <-time.After(2 * time.Second):
		t.Fatal("no navigation event received")
	}
}
