// Package di provides dependency injection configuration for the recommender.
package di

import (
	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/di/providers"
	"github.com/smartlife/recommender/internal/logger"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/service"
	"github.com/smartlife/recommender/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideSSEManager)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Media layer
	do.Provide(injector, providers.ProvideImageResolver)
	do.Provide(injector, providers.ProvideImageProcessor)
	do.Provide(injector, providers.ProvideAssetWatcher)

	// Presentation state
	do.Provide(injector, providers.ProvideNavigation)
	do.Provide(injector, providers.ProvideTrailerPlayer)
	do.Provide(injector, providers.ProvideLauncher)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideLinkService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. Seed validation and the listener bind
// happen here, so a broken catalog or busy port fails startup.
func Bootstrap(injector *do.RootScope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*catalog.Store](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*images.Resolver](injector)
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*providers.AssetWatcherHandle](injector)
	_ = do.MustInvoke[*navigation.Controller](injector)
	_ = do.MustInvoke[*providers.TrailerPlayerHandle](injector)
	_ = do.MustInvoke[*providers.LauncherHandle](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.LinkService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
