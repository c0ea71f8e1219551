package api

import (
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/service"
)

// Services groups the business services the handlers call.
type Services struct {
	Catalog *service.CatalogService
	Links   *service.LinkService
}

// Media locates files under the assets directory.
type Media struct {
	Resolver   *images.Resolver
	Processor  *images.Processor
	AssetsDir  string
	IntroVideo string // relative to AssetsDir
}
