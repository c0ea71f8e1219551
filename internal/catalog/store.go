// Package catalog holds the read-only recommendation catalog: the genre
// registry per category, the recommendations per (category, genre) pair and
// the team roster.
package catalog

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/smartlife/recommender/internal/domain"
	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/validation"
)

// idNamespace scopes recommendation UUIDs so IDs are stable across runs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smartlife-recommender/catalog"))

// Store is the in-memory catalog. It is written once by Initialize and only
// read afterwards; every accessor returns copies.
type Store struct {
	logger    *slog.Logger
	validator *validation.Validator

	mu          sync.RWMutex
	initialized bool
	genres      map[domain.Category][]string
	items       map[domain.Category]map[string][]domain.Recommendation
	byID        map[string]domain.Recommendation
	order       []string
	team        []domain.TeamMember
	about       string
}

// New creates an empty store. Every query answers empty until Initialize.
func New(logger *slog.Logger, validator *validation.Validator) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if validator == nil {
		validator = validation.New()
	}
	return &Store{
		logger:    logger,
		validator: validator,
		genres:    make(map[domain.Category][]string),
		items:     make(map[domain.Category]map[string][]domain.Recommendation),
		byID:      make(map[string]domain.Recommendation),
	}
}

// Initialize populates the store from seed. Calls after the first successful
// one are no-ops, so entries are never duplicated.
func (s *Store) Initialize(seed *Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if seed == nil {
		return domainerrors.Validation("catalog seed is required")
	}
	if err := s.validator.Validate(seed); err != nil {
		return err
	}

	genres := make(map[domain.Category][]string, len(seed.Categories))
	items := make(map[domain.Category]map[string][]domain.Recommendation, len(seed.Categories))
	byID := make(map[string]domain.Recommendation)
	order := make([]string, 0)

	for _, cs := range seed.Categories {
		category, err := domain.ParseCategory(cs.Name)
		if err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid catalog category")
		}
		if _, dup := genres[category]; dup {
			return domainerrors.Validationf("category %s listed twice", category)
		}

		names := make([]string, 0, len(cs.Genres))
		byGenre := make(map[string][]domain.Recommendation, len(cs.Genres))
		for _, gs := range cs.Genres {
			names = append(names, gs.Name)
			if len(gs.Items) == 0 {
				continue
			}

			recs := make([]domain.Recommendation, 0, len(gs.Items))
			for _, it := range gs.Items {
				rec := domain.Recommendation{
					ID:           recommendationID(byID, category, gs.Name, it.Title),
					Title:        it.Title,
					ImageRef:     it.Image,
					ExternalLink: it.Link,
					TrailerRef:   it.Trailer,
					Category:     category,
					Genre:        gs.Name,
				}
				recs = append(recs, rec)
				byID[rec.ID] = rec
				order = append(order, rec.ID)
			}
			byGenre[gs.Name] = recs
		}

		genres[category] = names
		items[category] = byGenre
	}

	team := make([]domain.TeamMember, 0, len(seed.Team))
	for _, m := range seed.Team {
		team = append(team, domain.TeamMember{
			Name:       m.Name,
			RollNumber: m.Roll,
			Role:       m.Role,
			ImageRef:   m.Image,
			ProfileURL: m.Profile,
		})
	}

	s.genres = genres
	s.items = items
	s.byID = byID
	s.order = order
	s.team = team
	s.about = seed.About
	s.initialized = true

	s.logger.Info("catalog loaded",
		"categories", len(genres),
		"recommendations", len(order),
		"team", len(team))

	return nil
}

// recommendationID derives a UUIDv5 from category, genre and title. Titles
// are not unique, so a repeated title gets an ordinal suffix.
func recommendationID(taken map[string]domain.Recommendation, c domain.Category, genre, title string) string {
	base := c.Slug() + "/" + genre + "/" + title
	name := base
	for n := 2; ; n++ {
		id := uuid.NewSHA1(idNamespace, []byte(name)).String()
		if _, exists := taken[id]; !exists {
			return id
		}
		name = base + "#" + strconv.Itoa(n)
	}
}

// Initialized reports whether Initialize has succeeded.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Categories returns the categories present in the catalog, in display order.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.genres))
	for _, c := range domain.AllCategories() {
		if _, ok := s.genres[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Genres returns the ordered genre names of a category. Unknown or zero
// categories yield an empty slice.
func (s *Store) Genres(category domain.Category) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if names := s.genres[category]; len(names) > 0 {
		return slices.Clone(names)
	}
	return []string{}
}

// GenreBySlug maps a URL slug back to the registered genre name.
func (s *Store) GenreBySlug(category domain.Category, slug string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, name := range s.genres[category] {
		if Slugify(name) == slug {
			return name, true
		}
	}
	return "", false
}

// Recommendations returns the items of a (category, genre) pair in seed
// order. Matching is exact; absent pairs yield an empty slice.
func (s *Store) Recommendations(category domain.Category, genre string) []domain.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if recs := s.items[category][genre]; len(recs) > 0 {
		return slices.Clone(recs)
	}
	return []domain.Recommendation{}
}

// Recommendation looks up a single item by ID.
func (s *Store) Recommendation(id string) (domain.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return domain.Recommendation{}, domainerrors.NotFoundf("recommendation %s not found", id)
	}
	return rec, nil
}

// All returns every recommendation in catalog order.
func (s *Store) All() []domain.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recommendation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Count returns the number of recommendations.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Team returns the team roster.
func (s *Store) Team() []domain.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.team)
}

// Member finds a team member by name.
func (s *Store) Member(name string) (domain.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.team {
		if m.Name == name {
			return m, nil
		}
	}
	return domain.TeamMember{}, domainerrors.NotFound(fmt.Sprintf("team member %q not found", name))
}

// About returns the markdown blurb shown on the home page.
func (s *Store) About() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.about
}
