package service

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/color"
	"github.com/smartlife/recommender/internal/domain"
	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/search"
	"github.com/smartlife/recommender/internal/trailer"
)

// Card is a recommendation decorated for display.
type Card struct {
	domain.Recommendation
	CategoryName string `json:"category_name"`
	ImageURL     string `json:"image_url"`
	BlurHash     string `json:"blur_hash,omitempty"`
	EmbedURL     string `json:"embed_url,omitempty"`
}

// GenreSummary is one genre of a category.
type GenreSummary struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// CategorySummary is one sidebar entry.
type CategorySummary struct {
	Category domain.Category `json:"-"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Emoji    string          `json:"emoji"`
	// Description lists the genre names, e.g. "Action, Comedy, Sci-Fi".
	Description string         `json:"description"`
	Genres      []GenreSummary `json:"genres"`
}

// MemberCard is a team member decorated for display.
type MemberCard struct {
	domain.TeamMember
	Lead       bool   `json:"lead"`
	Initials   string `json:"initials"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	ImageURL   string `json:"image_url"`
}

// SearchResults is a page of matching cards.
type SearchResults struct {
	Query   string `json:"query"`
	Total   uint64 `json:"total"`
	TookMs  int64  `json:"took_ms"`
	Results []Card `json:"results"`
}

// CatalogService answers read queries over the catalog.
type CatalogService struct {
	store     *catalog.Store
	index     *search.Index
	processor *images.Processor
	logger    *slog.Logger

	aboutOnce sync.Once
	aboutHTML template.HTML
}

// NewCatalogService creates a catalog service. index and processor may be nil
// to disable search and BlurHash placeholders.
func NewCatalogService(store *catalog.Store, index *search.Index, processor *images.Processor, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CatalogService{
		store:     store,
		index:     index,
		processor: processor,
		logger:    logger,
	}
}

// ParseCategory resolves a category name or slug from a URL.
func (s *CatalogService) ParseCategory(name string) (domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return domain.CategoryNone, domainerrors.Validation("category is required")
	}
	c, err := domain.ParseCategory(name)
	if err != nil {
		return domain.CategoryNone, domainerrors.NotFoundf("category %q not found", name)
	}
	return c, nil
}

// ResolveGenre maps a genre slug or exact name to the registered genre name.
// Unknown genres are returned as given; they select an empty slice.
func (s *CatalogService) ResolveGenre(category domain.Category, genre string) string {
	for _, name := range s.store.Genres(category) {
		if name == genre {
			return name
		}
	}
	if name, ok := s.store.GenreBySlug(category, genre); ok {
		return name
	}
	return genre
}

// Categories lists every category with its genres.
func (s *CatalogService) Categories() []CategorySummary {
	cats := s.store.Categories()
	out := make([]CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, s.summary(c))
	}
	return out
}

// Category returns one category with its genres.
func (s *CatalogService) Category(name string) (CategorySummary, error) {
	c, err := s.ParseCategory(name)
	if err != nil {
		return CategorySummary{}, err
	}
	return s.summary(c), nil
}

func (s *CatalogService) summary(c domain.Category) CategorySummary {
	names := s.store.Genres(c)
	genres := make([]GenreSummary, 0, len(names))
	for _, g := range names {
		genres = append(genres, GenreSummary{
			Name:  g,
			Slug:  catalog.Slugify(g),
			Count: len(s.store.Recommendations(c, g)),
		})
	}
	return CategorySummary{
		Category: c,
		Name:     c.String(),
		Slug:     c.Slug(),
		Emoji:    c.Emoji(),

		Description: strings.Join(names, ", "),
		Genres:      genres,
	}
}

// Recommendations returns the cards of a (category, genre) pair given as URL
// segments.
func (s *CatalogService) Recommendations(category, genre string) ([]Card, error) {
	c, err := s.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.Cards(s.store.Recommendations(c, s.ResolveGenre(c, genre))), nil
}

// Recommendation returns a single card.
func (s *CatalogService) Recommendation(id string) (Card, error) {
	rec, err := s.store.Recommendation(id)
	if err != nil {
		return Card{}, err
	}
	return s.card(rec), nil
}

// Cards decorates recommendations for display.
func (s *CatalogService) Cards(recs []domain.Recommendation) []Card {
	out := make([]Card, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.card(rec))
	}
	return out
}

func (s *CatalogService) card(rec domain.Recommendation) Card {
	c := Card{
		Recommendation: rec,
		CategoryName:   rec.Category.String(),
		ImageURL:       ImageURL(rec.ImageRef),
	}
	if rec.HasTrailer() {
		c.EmbedURL = trailer.ResolveEmbedURL(rec.TrailerRef)
	}
	if s.processor != nil && rec.ImageRef != "" {
		c.BlurHash = s.processor.BlurHash(rec.ImageRef)
	}
	return c
}

// Search runs a title search, optionally within one category.
func (s *CatalogService) Search(ctx context.Context, query, category string, limit int) (*SearchResults, error) {
	if s.index == nil {
		return nil, domainerrors.Unavailable("search is not available")
	}

	params := search.Params{Query: query, Limit: limit}
	if category != "" {
		c, err := s.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		params.Category = c.Slug()
	}

	res, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	out := &SearchResults{
		Query:   res.Query,
		Total:   res.Total,
		TookMs:  res.TookMs,
		Results: make([]Card, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		rec, err := s.store.Recommendation(hit.ID)
		if err != nil {
			s.logger.Warn("search hit missing from catalog", "id", hit.ID)
			continue
		}
		out.Results = append(out.Results, s.card(rec))
	}
	return out, nil
}

// Team returns the team roster decorated for display.
func (s *CatalogService) Team() []MemberCard {
	members := s.store.Team()
	out := make([]MemberCard, 0, len(members))
	for _, m := range members {
		sw := color.ForName(m.Name)
		out = append(out, MemberCard{
			TeamMember: m,
			Lead:       m.IsLead(),
			Initials:   images.Initials(m.Name),
			Background: sw.Background,
			Foreground: sw.Foreground,
			ImageURL:   ImageURL(m.ImageRef),
		})
	}
	return out
}

// AboutHTML renders the catalog's markdown blurb once and sanitises it.
func (s *CatalogService) AboutHTML() template.HTML {
	s.aboutOnce.Do(func() {
		s.aboutHTML = renderMarkdown(s.store.About(), s.logger)
	})
	return s.aboutHTML
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
	policy   = bluemonday.UGCPolicy().RequireNoFollowOnLinks(true).AddTargetBlankToFullyQualifiedLinks(true)
)

func renderMarkdown(src string, logger *slog.Logger) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		logger.Warn("failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(src)) //#nosec G203 -- escaped above
	}
	return template.HTML(policy.Sanitize(buf.String())) //#nosec G203 -- sanitised by bluemonday
}

// ImageURL is the page path serving an asset-relative image ref.
func ImageURL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/images/" + ref
}
