package providers

import (
	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/launcher"
	"github.com/smartlife/recommender/internal/logger"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/media/intro"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/ratelimit"
	"github.com/smartlife/recommender/internal/service"
	"github.com/smartlife/recommender/internal/sse"
	"github.com/smartlife/recommender/internal/trailer"
)

// ProvideNavigation provides the navigation controller. The intro video is
// due on the first home render only when the file exists at startup.
func ProvideNavigation(i do.Injector) (*navigation.Controller, error) {
	cfg := do.MustInvoke[*config.Config](i)
	store := do.MustInvoke[*catalog.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	introAvailable := cfg.Assets.IntroVideo != "" && intro.Available(cfg.Assets.Dir, cfg.Assets.IntroVideo)
	if !introAvailable {
		log.Info("Intro video not found, skipping intro", "file", cfg.Assets.IntroVideo)
	}

	return navigation.New(store, log.Component("navigation"), introAvailable), nil
}

// TrailerPlayerHandle wraps the trailer player with shutdown capability.
type TrailerPlayerHandle struct {
	*trailer.Player
}

// Shutdown implements do.Shutdownable.
func (h *TrailerPlayerHandle) Shutdown() error {
	return h.Player.Shutdown()
}

// ProvideTrailerPlayer provides the trailer player. Stopped sessions are
// announced to the pages showing them.
func ProvideTrailerPlayer(i do.Injector) (*TrailerPlayerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	player := trailer.NewPlayer(log.Component("trailer"))
	player.OnStop(func(s *trailer.Session) {
		sseHandle.Emit(sse.NewTrailerStoppedEvent(s.ID, s.RecommendationID))
	})

	return &TrailerPlayerHandle{Player: player}, nil
}

// LauncherHandle wraps the external link launcher with shutdown capability.
type LauncherHandle struct {
	*launcher.Launcher
}

// Shutdown implements do.Shutdownable.
func (h *LauncherHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideLauncher provides the system browser launcher, throttled per host.
func ProvideLauncher(i do.Injector) (*LauncherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	limiter := ratelimit.PerMinute(cfg.Links.RatePerMinute, cfg.Links.Burst)
	l := launcher.New(launcher.Browser(), limiter, log.Component("launcher"))

	return &LauncherHandle{Launcher: l}, nil
}

// ProvideCatalogService provides the catalog read service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	store := do.MustInvoke[*catalog.Store](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(store, indexHandle.Index, processor, log.Logger), nil
}

// ProvideLinkService provides the external link service.
func ProvideLinkService(i do.Injector) (*service.LinkService, error) {
	store := do.MustInvoke[*catalog.Store](i)
	launcherHandle := do.MustInvoke[*LauncherHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLinkService(store, launcherHandle.Launcher, log.Logger), nil
}
