package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search recommendations",
		Description: "Full-text title search, optionally within one category",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

type SearchInput struct {
	Query    string `query:"q" doc:"Search text"`
	Category string `query:"category" doc:"Restrict to a category (name or slug)"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" default:"20" doc:"Maximum results"`
}

type SearchOutput struct {
	Body *service.SearchResults
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	res, err := s.services.Catalog.Search(ctx, input.Query, input.Category, input.Limit)
	if err != nil {
		return nil, handleError(err)
	}
	return &SearchOutput{Body: res}, nil
}
