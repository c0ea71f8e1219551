package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/service"
	"github.com/smartlife/recommender/internal/sse"
)

func (s *Server) registerNavigationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getNavigation",
		Method:      http.MethodGet,
		Path:        "/api/v1/navigation",
		Summary:     "Get navigation state",
		Description: "Returns the current view and the catalog slice it shows",
		Tags:        []string{"Navigation"},
	}, s.handleGetNavigation)

	huma.Register(s.api, huma.Operation{
		OperationID: "navigateHome",
		Method:      http.MethodPost,
		Path:        "/api/v1/navigation/home",
		Summary:     "Go home",
		Description: "Shows the home view and clears the selection",
		Tags:        []string{"Navigation"},
	}, s.handleNavigateHome)

	huma.Register(s.api, huma.Operation{
		OperationID: "navigateTeam",
		Method:      http.MethodPost,
		Path:        "/api/v1/navigation/team",
		Summary:     "Show team",
		Description: "Shows the team view and clears the selection",
		Tags:        []string{"Navigation"},
	}, s.handleNavigateTeam)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSidebar",
		Method:      http.MethodPost,
		Path:        "/api/v1/navigation/sidebar",
		Summary:     "Toggle sidebar",
		Description: "Flips sidebar visibility without changing the view",
		Tags:        []string{"Navigation"},
	}, s.handleToggleSidebar)

	huma.Register(s.api, huma.Operation{
		OperationID: "selectCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/navigation/category",
		Summary:     "Select category",
		Description: "Shows the genre list of a category",
		Tags:        []string{"Navigation"},
	}, s.handleSelectCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "selectGenre",
		Method:      http.MethodPost,
		Path:        "/api/v1/navigation/genre",
		Summary:     "Select genre",
		Description: "Shows the recommendations of a genre within the current category",
		Tags:        []string{"Navigation"},
	}, s.handleSelectGenre)

	huma.Register(s.api, huma.Operation{
		OperationID: "openSelection",
		Method:      http.MethodPost,
		Path:        "/api/v1/navigation/open",
		Summary:     "Open selection",
		Description: "Jumps straight to a category and genre",
		Tags:        []string{"Navigation"},
	}, s.handleOpenSelection)
}

// NavigationResponse is the state plus the catalog slice it renders.
type NavigationResponse struct {
	State           navigation.State `json:"state" doc:"Current navigation state"`
	Categories      []string         `json:"categories,omitempty" doc:"Categories shown on the home view"`
	Genres          []string         `json:"genres,omitempty" doc:"Genres shown on the category view"`
	Recommendations []service.Card   `json:"recommendations,omitempty" doc:"Cards shown on the genre view"`
}

type NavigationOutput struct {
	Body NavigationResponse
}

type SelectCategoryInput struct {
	Body struct {
		Category string `json:"category" minLength:"1" doc:"Category name or slug"`
	}
}

type SelectGenreInput struct {
	Body struct {
		Genre string `json:"genre" doc:"Genre name or slug"`
	}
}

type OpenSelectionInput struct {
	Body struct {
		Category string `json:"category" minLength:"1" doc:"Category name or slug"`
		Genre    string `json:"genre,omitempty" doc:"Genre name or slug; empty opens the category"`
	}
}

func (s *Server) handleGetNavigation(_ context.Context, _ *struct{}) (*NavigationOutput, error) {
	return &NavigationOutput{Body: s.navigationResponse(s.controller.State())}, nil
}

func (s *Server) handleNavigateHome(_ context.Context, _ *struct{}) (*NavigationOutput, error) {
	return s.navigated(s.controller.GoHome()), nil
}

func (s *Server) handleNavigateTeam(_ context.Context, _ *struct{}) (*NavigationOutput, error) {
	return s.navigated(s.controller.GoTeam()), nil
}

func (s *Server) handleToggleSidebar(_ context.Context, _ *struct{}) (*NavigationOutput, error) {
	return s.navigated(s.controller.ToggleSidebar()), nil
}

func (s *Server) handleSelectCategory(_ context.Context, input *SelectCategoryInput) (*NavigationOutput, error) {
	category, err := s.services.Catalog.ParseCategory(input.Body.Category)
	if err != nil {
		return nil, handleError(err)
	}
	return s.navigated(s.controller.SelectCategory(category)), nil
}

func (s *Server) handleSelectGenre(_ context.Context, input *SelectGenreInput) (*NavigationOutput, error) {
	return s.navigated(s.controller.SelectGenre(input.Body.Genre)), nil
}

func (s *Server) handleOpenSelection(_ context.Context, input *OpenSelectionInput) (*NavigationOutput, error) {
	category, err := s.services.Catalog.ParseCategory(input.Body.Category)
	if err != nil {
		return nil, handleError(err)
	}
	return s.navigated(s.controller.Open(category, input.Body.Genre)), nil
}

// navigated broadcasts the new state and renders it.
func (s *Server) navigated(state navigation.State) *NavigationOutput {
	if s.sseManager != nil {
		s.sseManager.Emit(sse.NewNavigationChangedEvent(state))
	}
	return &NavigationOutput{Body: s.navigationResponse(state)}
}

func (s *Server) navigationResponse(state navigation.State) NavigationResponse {
	render := s.controller.RenderState(state)

	resp := NavigationResponse{
		State:  render.State,
		Genres: render.Genres,
	}
	for _, c := range render.Categories {
		resp.Categories = append(resp.Categories, c.String())
	}
	if render.State.View == navigation.ViewGenre {
		resp.Recommendations = s.services.Catalog.Cards(render.Recommendations)
	}
	return resp
}
