package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/api"
	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/logger"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/service"
)

// Version is reported by /api/v1/app and the OpenAPI document.
var Version = "1.0.0"

// HTTPServerHandle wraps http.Server with Shutdownable. Quit is closed when
// the user quits from the UI.
type HTTPServerHandle struct {
	*http.Server
	URL  string
	Quit <-chan struct{}

	sse *SSEManagerHandle
}

// Shutdown implements do.Shutdownable. Event streams never go idle, so the
// SSE manager is drained first to release them.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := h.sse.Manager.Shutdown(ctx); err != nil {
		return err
	}
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer binds the loopback listener and starts serving.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	playerHandle := do.MustInvoke[*TrailerPlayerHandle](i)
	controller := do.MustInvoke[*navigation.Controller](i)
	resolver := do.MustInvoke[*images.Resolver](i)
	processor := do.MustInvoke[*images.Processor](i)

	services := &api.Services{
		Catalog: do.MustInvoke[*service.CatalogService](i),
		Links:   do.MustInvoke[*service.LinkService](i),
	}

	media := &api.Media{
		Resolver:   resolver,
		Processor:  processor,
		AssetsDir:  cfg.Assets.Dir,
		IntroVideo: cfg.Assets.IntroVideo,
	}

	handler := api.NewServer(services, controller, playerHandle.Player, sseHandle.Manager, media, api.Options{
		Origin:       cfg.BaseURL(),
		LoadingDelay: cfg.UI.LoadingDelay,
		Version:      Version,
	}, log.Logger)

	quit := make(chan struct{})
	var quitOnce sync.Once
	handler.SetOnQuit(func() {
		quitOnce.Do(func() { close(quit) })
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind before returning so a busy port fails bootstrap.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "url", cfg.BaseURL())

	return &HTTPServerHandle{Server: srv, URL: cfg.BaseURL(), Quit: quit, sse: sseHandle}, nil
}
