package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/media/intro"
	"github.com/smartlife/recommender/internal/sse"
)

func (s *Server) registerAppRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getApp",
		Method:      http.MethodGet,
		Path:        "/api/v1/app",
		Summary:     "App info",
		Description: "Returns presentation settings the pages need",
		Tags:        []string{"App"},
	}, s.handleGetApp)

	huma.Register(s.api, huma.Operation{
		OperationID:   "quitApp",
		Method:        http.MethodPost,
		Path:          "/api/v1/app/quit",
		Summary:       "Quit",
		Description:   "Closes every trailer and stops the process. Equivalent to closing the window.",
		Tags:          []string{"App"},
		DefaultStatus: http.StatusAccepted,
	}, s.handleQuit)
}

type AppInfoOutput struct {
	Body struct {
		Name           string `json:"name" doc:"Application name"`
		Version        string `json:"version" doc:"Application version"`
		IntroAvailable bool   `json:"intro_available" doc:"Whether an intro video is present"`
		LoadingDelayMs int64  `json:"loading_delay_ms" doc:"Cosmetic loading overlay duration"`
	}
}

type QuitOutput struct {
	Body struct {
		Quitting bool `json:"quitting" doc:"Always true"`
	}
}

func (s *Server) handleGetApp(_ context.Context, _ *struct{}) (*AppInfoOutput, error) {
	out := &AppInfoOutput{}
	out.Body.Name = "Smart Life Recommender"
	out.Body.Version = s.opts.Version
	out.Body.IntroAvailable = s.introAvailable()
	out.Body.LoadingDelayMs = s.opts.LoadingDelay.Milliseconds()
	return out, nil
}

func (s *Server) handleQuit(_ context.Context, _ *struct{}) (*QuitOutput, error) {
	s.quit()
	out := &QuitOutput{}
	out.Body.Quitting = true
	return out, nil
}

// quit stops every trailer, tells open pages, then runs the quit callback.
// Only the first call has any effect.
func (s *Server) quit() {
	s.quitOnce.Do(func() {
		s.logger.Info("quit requested")
		if s.player != nil {
			if err := s.player.Shutdown(); err != nil {
				s.logger.Warn("failed to stop trailers", "error", err)
			}
		}
		if s.sseManager != nil {
			s.sseManager.Emit(sse.NewAppQuitEvent())
		}
		if s.onQuit != nil {
			s.onQuit()
		}
	})
}

func (s *Server) introAvailable() bool {
	if s.media == nil || s.media.IntroVideo == "" {
		return false
	}
	return intro.Available(s.media.AssetsDir, s.media.IntroVideo)
}
