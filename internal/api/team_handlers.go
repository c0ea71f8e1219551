package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/service"
)

func (s *Server) registerTeamRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTeam",
		Method:      http.MethodGet,
		Path:        "/api/v1/team",
		Summary:     "List team",
		Description: "Returns the people behind the app",
		Tags:        []string{"Team"},
	}, s.handleListTeam)

	huma.Register(s.api, huma.Operation{
		OperationID: "openProfile",
		Method:      http.MethodPost,
		Path:        "/api/v1/team/open",
		Summary:     "Open profile",
		Description: "Opens a team member's profile in the default browser",
		Tags:        []string{"Team"},
	}, s.handleOpenProfile)
}

type ListTeamOutput struct {
	Body struct {
		Members []service.MemberCard `json:"members" doc:"Team members, lead first"`
	}
}

type OpenProfileInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" doc:"Member name as listed"`
	}
}

func (s *Server) handleListTeam(_ context.Context, _ *struct{}) (*ListTeamOutput, error) {
	out := &ListTeamOutput{}
	out.Body.Members = s.services.Catalog.Team()
	return out, nil
}

func (s *Server) handleOpenProfile(_ context.Context, input *OpenProfileInput) (*OpenLinkOutput, error) {
	member, err := s.services.Links.OpenProfile(input.Body.Name)
	if err != nil {
		return nil, handleError(err)
	}
	out := &OpenLinkOutput{}
	out.Body.Opened = true
	out.Body.URL = member.ProfileURL
	return out, nil
}
