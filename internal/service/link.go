package service

import (
	"log/slog"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/domain"
	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/launcher"
)

// LinkService opens catalog and team links in the external browser.
type LinkService struct {
	store    *catalog.Store
	launcher *launcher.Launcher
	logger   *slog.Logger
}

// NewLinkService creates a link service.
func NewLinkService(store *catalog.Store, l *launcher.Launcher, logger *slog.Logger) *LinkService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LinkService{store: store, launcher: l, logger: logger}
}

// OpenExternal opens the recommendation's external page. An item without a
// link yields the "No Link Available" notice.
func (s *LinkService) OpenExternal(id string) (domain.Recommendation, error) {
	rec, err := s.store.Recommendation(id)
	if err != nil {
		return domain.Recommendation{}, err
	}
	if err := s.launcher.Open(rec.ExternalLink); err != nil {
		return rec, err
	}
	s.logger.Debug("opened recommendation", "id", rec.ID, "title", rec.Title)
	return rec, nil
}

// OpenProfile opens a team member's profile page.
func (s *LinkService) OpenProfile(name string) (domain.TeamMember, error) {
	member, err := s.store.Member(name)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if member.ProfileURL == "" {
		return member, domainerrors.Unavailable("No Profile Available").
			WithDetails("Sorry, no profile link is available for this team member.")
	}
	return member, s.launcher.Open(member.ProfileURL)
}
