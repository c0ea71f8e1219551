package api

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/launcher"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/ratelimit"
	"github.com/smartlife/recommender/internal/search"
	"github.com/smartlife/recommender/internal/service"
	"github.com/smartlife/recommender/internal/sse"
	"github.com/smartlife/recommender/internal/trailer"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api    humatest.TestAPI
	store  *catalog.Store
	opener *recordingOpener
	assets string
	quits  atomic.Int32
}

type recordingOpener struct {
	mu     sync.Mutex
	opened []string
}

func (o *recordingOpener) Open(u string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, u)
	return nil
}

func (o *recordingOpener) urls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

type testEnvelope[T any] struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

// setupTestServer builds a server over the embedded catalog and an assets
// dir holding a single poster and an intro video.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	seed, err := catalog.DefaultSeed()
	require.NoError(t, err)
	store := catalog.New(logger, nil)
	require.NoError(t, store.Initialize(seed))

	index, err := search.NewIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	require.NoError(t, index.IndexRecommendations(store.All()))

	assets := t.TempDir()
	writePNG(t, assets, "images/movies/action/john_wick.png", 200, 300)
	require.NoError(t, os.WriteFile(filepath.Join(assets, "intro.mp4"), []byte("not really a video"), 0o600))

	resolver, err := images.NewResolver(assets)
	require.NoError(t, err)
	processor := images.NewProcessor(resolver, logger)

	opener := &recordingOpener{}
	links := launcher.New(opener, ratelimit.PerMinute(600, 100), logger)
	t.Cleanup(links.Close)

	services := &Services{
		Catalog: service.NewCatalogService(store, index, processor, logger),
		Links:   service.NewLinkService(store, links, logger),
	}

	controller := navigation.New(store, logger, true)
	player := trailer.NewPlayer(logger)
	sseManager := sse.NewManager(logger)

	media := &Media{
		Resolver:   resolver,
		Processor:  processor,
		AssetsDir:  assets,
		IntroVideo: "intro.mp4",
	}

	srv := NewServer(services, controller, player, sseManager, media, Options{Version: "test"}, logger)

	ts := &testServer{
		Server: srv,
		store:  store,
		opener: opener,
		assets: assets,
	}
	srv.SetOnQuit(func() { ts.quits.Add(1) })
	ts.api = humatest.Wrap(t, srv.API())
	return ts
}

func writePNG(t *testing.T, root, rel string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 220, G: uint8(y * 255 / h), B: 60, A: 255})
		}
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	f, err := os.Create(full)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), "body: %s", resp.Body.String())
	return env
}

// get issues a plain request against the router, bypassing huma.
func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

func TestServer_UnknownAPIPathUsesEnvelope(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.get("/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, 1, env.V)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestServer_UnknownPageRendersNotice(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "Page Not Found")
}

func TestServer_CORSAllowsLoopbackOnly(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://127.0.0.1:8765")
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	assert.Equal(t, "http://127.0.0.1:8765", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_OpenAPIDocument(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.get("/api/openapi.json")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/api/v1/navigation/category")
	assert.Contains(t, resp.Body.String(), "SmartLife Recommender API")
}
