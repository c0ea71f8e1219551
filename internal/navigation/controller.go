// Package navigation owns the UI's current view and selection.
//
// The controller is a flat selector: every command is accepted from every
// state and none of them fail. Views:
//
//	Home -> Category(c) -> Genre(c, g)
//	any  -> Home | Team
package navigation

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/smartlife/recommender/internal/domain"
)

// View identifies which page is showing.
type View uint8

const (
	ViewHome View = iota
	ViewCategory
	ViewGenre
	ViewTeam
)

// String returns the wire name of the view.
func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewCategory:
		return "category"
	case ViewGenre:
		return "genre"
	case ViewTeam:
		return "team"
	}
	return fmt.Sprintf("View(%d)", uint8(v))
}

// ParseView is the inverse of View.String.
func ParseView(s string) (View, error) {
	for _, v := range []View{ViewHome, ViewCategory, ViewGenre, ViewTeam} {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return ViewHome, fmt.Errorf("unknown view %q", s)
}

// MarshalText encodes the view by name.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a view name.
func (v *View) UnmarshalText(text []byte) error {
	parsed, err := ParseView(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// State is a snapshot of the navigation selection.
type State struct {
	View           View            `json:"view"`
	Category       domain.Category `json:"category"` // CategoryNone outside Category/Genre views
	Genre          string          `json:"genre"`    // "" outside the Genre view
	SidebarVisible bool            `json:"sidebar_visible"`
	// Revision increases on every command. A client that scheduled several
	// renders keeps only the one for the latest revision.
	Revision uint64 `json:"revision"`
}

// Source is the read side of the catalog the controller renders from.
type Source interface {
	Categories() []domain.Category
	Genres(category domain.Category) []string
	Recommendations(category domain.Category, genre string) []domain.Recommendation
	GenreBySlug(category domain.Category, slug string) (string, bool)
}

// Render is the slice of the catalog selected by a state.
type Render struct {
	State           State                   `json:"state"`
	Categories      []domain.Category       `json:"categories,omitempty"`
	Genres          []string                `json:"genres,omitempty"`
	Recommendations []domain.Recommendation `json:"recommendations,omitempty"`
}

// Controller is the single owner of navigation state. HTTP handlers call it
// concurrently, so every method takes the lock.
type Controller struct {
	source Source
	logger *slog.Logger

	mu           sync.Mutex
	state        State
	introPending bool
}

// New creates a controller in the Home view with the sidebar hidden.
// introAvailable marks the intro video as due on the first home render.
func New(source Source, logger *slog.Logger, introAvailable bool) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		source:       source,
		logger:       logger,
		state:        State{View: ViewHome},
		introPending: introAvailable,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectCategory shows the genre list of category and clears the genre.
func (c *Controller) SelectCategory(category domain.Category) State {
	return c.apply("select_category", func(s *State) {
		s.View = ViewCategory
		s.Category = category
		s.Genre = ""
	})
}

// SelectGenre shows the items of genre within the current category. genre may
// be a registered name or its slug. Without a selected category the result is
// a Genre view with no items.
func (c *Controller) SelectGenre(genre string) State {
	return c.apply("select_genre", func(s *State) {
		s.View = ViewGenre
		s.Genre = c.canonicalGenre(s.Category, genre)
	})
}

// Open jumps straight to a (category, genre) pair, as a deep link does.
// An empty genre opens the category view.
func (c *Controller) Open(category domain.Category, genre string) State {
	if genre == "" {
		return c.SelectCategory(category)
	}
	return c.apply("open", func(s *State) {
		s.View = ViewGenre
		s.Category = category
		s.Genre = c.canonicalGenre(category, genre)
	})
}

// canonicalGenre maps a slug to the registered name. Unknown genres are kept
// as given and select no items. Called with c.mu held.
func (c *Controller) canonicalGenre(category domain.Category, genre string) string {
	if c.source == nil || category == domain.CategoryNone || genre == "" {
		return genre
	}
	if slices.Contains(c.source.Genres(category), genre) {
		return genre
	}
	if name, ok := c.source.GenreBySlug(category, genre); ok {
		return name
	}
	return genre
}

// GoHome returns to the home view and clears the selection.
func (c *Controller) GoHome() State {
	return c.apply("go_home", func(s *State) {
		s.View = ViewHome
		s.Category = domain.CategoryNone
		s.Genre = ""
	})
}

// GoTeam shows the team page and clears the selection.
func (c *Controller) GoTeam() State {
	return c.apply("go_team", func(s *State) {
		s.View = ViewTeam
		s.Category = domain.CategoryNone
		s.Genre = ""
	})
}

// ToggleSidebar flips sidebar visibility without changing the view.
func (c *Controller) ToggleSidebar() State {
	return c.apply("toggle_sidebar", func(s *State) {
		s.SidebarVisible = !s.SidebarVisible
	})
}

// ConsumeIntro reports whether the intro video should play now. It returns
// true at most once per process.
func (c *Controller) ConsumeIntro() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := c.introPending
	c.introPending = false
	return pending
}

// Render returns the current state with the catalog slice it selects.
func (c *Controller) Render() Render {
	return c.RenderState(c.State())
}

// RenderState resolves the catalog slice for an arbitrary state snapshot.
func (c *Controller) RenderState(s State) Render {
	r := Render{State: s}
	if c.source == nil {
		return r
	}

	switch s.View {
	case ViewHome:
		r.Categories = c.source.Categories()
	case ViewCategory:
		r.Genres = c.source.Genres(s.Category)
	case ViewGenre:
		if s.Category == domain.CategoryNone {
			r.Recommendations = []domain.Recommendation{}
		} else {
			r.Recommendations = c.source.Recommendations(s.Category, s.Genre)
		}
	case ViewTeam:
	}
	return r
}

func (c *Controller) apply(command string, mutate func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	mutate(&c.state)
	c.state.Revision++

	c.logger.Debug("navigation",
		"command", command,
		"view", c.state.View.String(),
		"category", c.state.Category.String(),
		"genre", c.state.Genre,
		"revision", c.state.Revision)

	return c.state
}
