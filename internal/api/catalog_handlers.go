package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns every category with its genres, in display order",
		Tags:        []string{"Catalog"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{category}",
		Summary:     "Get category",
		Description: "Returns one category by name or slug",
		Tags:        []string{"Catalog"},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{category}/genres",
		Summary:     "List genres",
		Description: "Returns the genres of a category in registry order",
		Tags:        []string{"Catalog"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{category}/genres/{genre}/recommendations",
		Summary:     "List recommendations",
		Description: "Returns the recommendations of a genre in catalog order",
		Tags:        []string{"Catalog"},
	}, s.handleListRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendation",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/{id}",
		Summary:     "Get recommendation",
		Description: "Returns a single recommendation",
		Tags:        []string{"Catalog"},
	}, s.handleGetRecommendation)

	huma.Register(s.api, huma.Operation{
		OperationID: "openRecommendation",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations/{id}/open",
		Summary:     "Open external page",
		Description: "Opens the recommendation's website in the default browser",
		Tags:        []string{"Catalog"},
	}, s.handleOpenRecommendation)
}

// === DTOs ===

type ListCategoriesOutput struct {
	Body struct {
		Categories []service.CategorySummary `json:"categories" doc:"Categories in display order"`
	}
}

type CategoryInput struct {
	Category string `path:"category" doc:"Category name or slug, e.g. movies"`
}

type CategoryOutput struct {
	Body service.CategorySummary
}

type ListGenresOutput struct {
	Body struct {
		Category string                 `json:"category" doc:"Category display name"`
		Genres   []service.GenreSummary `json:"genres" doc:"Genres in registry order"`
	}
}

type ListRecommendationsInput struct {
	Category string `path:"category" doc:"Category name or slug"`
	Genre    string `path:"genre" doc:"Genre name or slug, e.g. sci-fi"`
}

type ListRecommendationsOutput struct {
	Body struct {
		Category        string         `json:"category" doc:"Category display name"`
		Genre           string         `json:"genre" doc:"Genre name"`
		Recommendations []service.Card `json:"recommendations" doc:"Recommendations in catalog order"`
	}
}

type RecommendationInput struct {
	ID string `path:"id" doc:"Recommendation ID"`
}

type RecommendationOutput struct {
	Body service.Card
}

type OpenLinkOutput struct {
	Body struct {
		Opened bool   `json:"opened" doc:"Whether the browser was asked to open the page"`
		URL    string `json:"url" doc:"The URL that was opened"`
	}
}

// === Handlers ===

func (s *Server) handleListCategories(_ context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	out := &ListCategoriesOutput{}
	out.Body.Categories = s.services.Catalog.Categories()
	return out, nil
}

func (s *Server) handleGetCategory(_ context.Context, input *CategoryInput) (*CategoryOutput, error) {
	summary, err := s.services.Catalog.Category(input.Category)
	if err != nil {
		return nil, handleError(err)
	}
	return &CategoryOutput{Body: summary}, nil
}

func (s *Server) handleListGenres(_ context.Context, input *CategoryInput) (*ListGenresOutput, error) {
	summary, err := s.services.Catalog.Category(input.Category)
	if err != nil {
		return nil, handleError(err)
	}
	out := &ListGenresOutput{}
	out.Body.Category = summary.Name
	out.Body.Genres = summary.Genres
	return out, nil
}

func (s *Server) handleListRecommendations(_ context.Context, input *ListRecommendationsInput) (*ListRecommendationsOutput, error) {
	category, err := s.services.Catalog.ParseCategory(input.Category)
	if err != nil {
		return nil, handleError(err)
	}
	genre := s.services.Catalog.ResolveGenre(category, input.Genre)
	cards, err := s.services.Catalog.Recommendations(category.Slug(), genre)
	if err != nil {
		return nil, handleError(err)
	}

	out := &ListRecommendationsOutput{}
	out.Body.Category = category.String()
	out.Body.Genre = genre
	out.Body.Recommendations = cards
	return out, nil
}

func (s *Server) handleGetRecommendation(_ context.Context, input *RecommendationInput) (*RecommendationOutput, error) {
	card, err := s.services.Catalog.Recommendation(input.ID)
	if err != nil {
		return nil, handleError(err)
	}
	return &RecommendationOutput{Body: card}, nil
}

func (s *Server) handleOpenRecommendation(_ context.Context, input *RecommendationInput) (*OpenLinkOutput, error) {
	rec, err := s.services.Links.OpenExternal(input.ID)
	if err != nil {
		return nil, handleError(err)
	}
	out := &OpenLinkOutput{}
	out.Body.Opened = true
	out.Body.URL = rec.ExternalLink
	return out, nil
}
