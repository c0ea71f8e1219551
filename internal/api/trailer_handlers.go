package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/trailer"
)

func (s *Server) registerTrailerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "openTrailer",
		Method:        http.MethodPost,
		Path:          "/api/v1/trailers",
		Summary:       "Open trailer",
		Description:   "Starts a trailer session for a recommendation",
		Tags:          []string{"Trailers"},
		DefaultStatus: http.StatusCreated,
	}, s.handleOpenTrailer)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTrailers",
		Method:      http.MethodGet,
		Path:        "/api/v1/trailers",
		Summary:     "List trailer sessions",
		Description: "Returns open trailer sessions, oldest first",
		Tags:        []string{"Trailers"},
	}, s.handleListTrailers)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveTrailer",
		Method:      http.MethodGet,
		Path:        "/api/v1/trailers/resolve",
		Summary:     "Resolve embed URL",
		Description: "Converts a YouTube watch or short link to its autoplay embed URL",
		Tags:        []string{"Trailers"},
	}, s.handleResolveTrailer)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTrailer",
		Method:      http.MethodGet,
		Path:        "/api/v1/trailers/{id}",
		Summary:     "Get trailer session",
		Description: "Returns an open trailer session",
		Tags:        []string{"Trailers"},
	}, s.handleGetTrailer)

	huma.Register(s.api, huma.Operation{
		OperationID: "closeTrailer",
		Method:      http.MethodPost,
		Path:        "/api/v1/trailers/{id}/close",
		Summary:     "Close trailer",
		Description: "Stops playback, then forgets the session. Closing twice is harmless.",
		Tags:        []string{"Trailers"},
	}, s.handleCloseTrailer)
}

// TrailerResponse describes a trailer session.
type TrailerResponse struct {
	ID               string    `json:"id" doc:"Session ID"`
	RecommendationID string    `json:"recommendation_id" doc:"Recommendation being played"`
	Title            string    `json:"title" doc:"Recommendation title"`
	EmbedURL         string    `json:"embed_url" doc:"URL loaded in the player frame"`
	PageURL          string    `json:"page_url" doc:"Page hosting the player"`
	OpenedAt         time.Time `json:"opened_at" doc:"When the session started"`
}

type OpenTrailerInput struct {
	Body struct {
		RecommendationID string `json:"recommendation_id" minLength:"1" doc:"Recommendation ID"`
	}
}

type TrailerOutput struct {
	Body TrailerResponse
}

type ListTrailersOutput struct {
	Body struct {
		Sessions []TrailerResponse `json:"sessions" doc:"Open sessions, oldest first"`
	}
}

type TrailerIDInput struct {
	ID string `path:"id" doc:"Session ID"`
}

type CloseTrailerOutput struct {
	Body struct {
		Closed bool `json:"closed" doc:"False when the session was already closed"`
	}
}

type ResolveTrailerInput struct {
	URL string `query:"url" doc:"Trailer URL"`
}

type ResolveTrailerOutput struct {
	Body struct {
		URL        string `json:"url" doc:"The URL as given"`
		EmbedURL   string `json:"embed_url" doc:"Embed URL, or the input unchanged"`
		VideoID    string `json:"video_id,omitempty" doc:"YouTube video ID when recognised"`
		Embeddable bool   `json:"embeddable" doc:"Whether the result can be loaded in the player frame"`
	}
}

func trailerResponse(sess *trailer.Session) TrailerResponse {
	return TrailerResponse{
		ID:               sess.ID,
		RecommendationID: sess.RecommendationID,
		Title:            sess.Title,
		EmbedURL:         sess.EmbedURL,
		PageURL:          "/trailers/" + sess.ID,
		OpenedAt:         sess.OpenedAt,
	}
}

func (s *Server) handleOpenTrailer(_ context.Context, input *OpenTrailerInput) (*TrailerOutput, error) {
	card, err := s.services.Catalog.Recommendation(input.Body.RecommendationID)
	if err != nil {
		return nil, handleError(err)
	}
	sess, err := s.player.Open(card.Recommendation)
	if err != nil {
		return nil, handleError(err)
	}
	return &TrailerOutput{Body: trailerResponse(sess)}, nil
}

func (s *Server) handleListTrailers(_ context.Context, _ *struct{}) (*ListTrailersOutput, error) {
	active := s.player.Active()
	out := &ListTrailersOutput{}
	out.Body.Sessions = make([]TrailerResponse, 0, len(active))
	for _, sess := range active {
		out.Body.Sessions = append(out.Body.Sessions, trailerResponse(sess))
	}
	return out, nil
}

func (s *Server) handleGetTrailer(_ context.Context, input *TrailerIDInput) (*TrailerOutput, error) {
	sess, err := s.player.Get(input.ID)
	if err != nil {
		return nil, handleError(err)
	}
	return &TrailerOutput{Body: trailerResponse(sess)}, nil
}

func (s *Server) handleCloseTrailer(_ context.Context, input *TrailerIDInput) (*CloseTrailerOutput, error) {
	out := &CloseTrailerOutput{}
	out.Body.Closed = s.player.Close(input.ID)
	return out, nil
}

func (s *Server) handleResolveTrailer(_ context.Context, input *ResolveTrailerInput) (*ResolveTrailerOutput, error) {
	out := &ResolveTrailerOutput{}
	out.Body.URL = input.URL
	out.Body.EmbedURL = trailer.ResolveEmbedURL(input.URL)
	if id, ok := trailer.VideoID(input.URL); ok {
		out.Body.VideoID = id
	}
	out.Body.Embeddable = trailer.IsEmbeddable(out.Body.EmbedURL)
	return out, nil
}
