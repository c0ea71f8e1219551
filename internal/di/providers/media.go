package providers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/logger"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/sse"
	"github.com/smartlife/recommender/internal/watcher"
)

// ProvideImageResolver provides the artwork resolver rooted at the assets dir.
func ProvideImageResolver(i do.Injector) (*images.Resolver, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	resolver, err := images.NewResolver(cfg.Assets.Dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(resolver.Root()); err != nil {
		// Missing artwork is rendered as placeholders, so this is not fatal.
		log.Warn("Assets directory not found", "dir", resolver.Root())
	}
	return resolver, nil
}

// ProvideImageProcessor provides the thumbnail and BlurHash generator.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	resolver := do.MustInvoke[*images.Resolver](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(resolver, log.Component("images")), nil
}

// AssetWatcherHandle wraps the assets watcher with shutdown capability.
// Watcher is nil when watching is disabled or the dir cannot be watched.
type AssetWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *AssetWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideAssetWatcher watches the assets dir so replaced artwork shows up
// without a restart.
func ProvideAssetWatcher(i do.Injector) (*AssetWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	resolver := do.MustInvoke[*images.Resolver](i)
	processor := do.MustInvoke[*images.Processor](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	if !cfg.Assets.Watch {
		log.Info("Asset watching disabled by configuration")
		return &AssetWatcherHandle{}, nil
	}

	wlog := log.Component("watcher")
	exts := images.Extensions()
	if ext := filepath.Ext(cfg.Assets.IntroVideo); ext != "" {
		exts = append(exts, ext)
	}
	w, err := watcher.New(wlog, watcher.Options{Extensions: exts})
	if err != nil {
		return nil, err
	}
	if err := w.Watch(resolver.Root()); err != nil {
		// Non-fatal: the app works from whatever is on disk at startup.
		log.Warn("Asset watching unavailable", "dir", resolver.Root(), "error", err)
		_ = w.Stop()
		return &AssetWatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil {
			wlog.Error("Asset watcher error", "error", err)
		}
	}()

	go func() {
		for {
			select {
			case event, ok := <-w.Events():
				if !ok {
					return
				}
				resolver.Invalidate()
				processor.Invalidate()

				rel, ok := resolver.Rel(event.Path)
				if !ok {
					rel = event.Path
				}
				wlog.Debug("asset changed", "type", event.Type.String(), "path", rel)
				sseHandle.Emit(sse.NewAssetsChangedEvent([]string{rel}))
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				wlog.Warn("asset watcher error", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Asset watcher started", "dir", resolver.Root())

	return &AssetWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}
