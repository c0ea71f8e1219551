package providers

import (
	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/logger"
	"github.com/smartlife/recommender/internal/search"
	"github.com/smartlife/recommender/internal/validation"
)

// ProvideCatalog loads the seed data into the in-memory catalog store.
func ProvideCatalog(i do.Injector) (*catalog.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	var (
		seed *catalog.Seed
		err  error
	)
	if cfg.Catalog.Path != "" {
		seed, err = catalog.LoadSeed(cfg.Catalog.Path)
	} else {
		seed, err = catalog.DefaultSeed()
	}
	if err != nil {
		return nil, err
	}

	store := catalog.New(log.Component("catalog"), v)
	if err := store.Initialize(seed); err != nil {
		return nil, err
	}
	return store, nil
}

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex builds the in-memory title index over the catalog.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	store := do.MustInvoke[*catalog.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(log.Logger)
	if err != nil {
		return nil, err
	}
	if err := index.IndexRecommendations(store.All()); err != nil {
		_ = index.Close()
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}
