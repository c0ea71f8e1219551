package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/media/images"
	"github.com/smartlife/recommender/internal/media/intro"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/service"
	"github.com/smartlife/recommender/internal/sse"
)

//go:embed templates/*.html static/*
var webFS embed.FS

var pageNames = []string{"home", "category", "genre", "search", "team", "trailer", "notice"}

var pageFuncs = template.FuncMap{
	"imageSrc": imageSrc,
}

// parsePages parses each page together with the shared layout. Pages all
// define "content", so each gets its own template set.
func parsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.New(name).Funcs(pageFuncs).ParseFS(webFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return pages
}

// imageSrc builds a thumbnail URL. The label travels along so a missing file
// can still get a useful placeholder.
func imageSrc(imageURL, label string, width int) string {
	if imageURL == "" {
		imageURL = "/images/_"
	}
	q := url.Values{}
	q.Set("w", strconv.Itoa(width))
	q.Set("label", label)
	return imageURL + "?" + q.Encode()
}

type notice struct {
	Title   string
	Message string
}

type pageData struct {
	Title          string
	State          navigation.State
	Sidebar        []service.CategorySummary
	ActiveSlug     string
	LoadingDelayMs int64
	SessionID      string

	ShowIntro bool
	About     template.HTML
	Category  service.CategorySummary
	Genre     string
	Cards     []service.Card
	Query     string
	Team      []service.MemberCard
	Trailer   *TrailerResponse
	Notice    *notice
}

func (s *Server) registerPageRoutes() {
	s.router.Group(func(r chi.Router) {
		r.Use(noStore)
		r.Get("/", s.handleHomePage)
		r.Get("/categories/{category}", s.handleCategoryPage)
		r.Get("/categories/{category}/genres/{genre}", s.handleGenrePage)
		r.Get("/search", s.handleSearchPage)
		r.Get("/team", s.handleTeamPage)
		r.Get("/trailers/{session}", s.handleTrailerPage)
	})

	r := s.router
	r.Get("/images/*", s.handleImage)
	r.Get("/intro", s.handleIntro)

	static, err := fs.Sub(webFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
}

func (s *Server) page(title string, state navigation.State) *pageData {
	return &pageData{
		Title:          title,
		State:          state,
		Sidebar:        s.services.Catalog.Categories(),
		LoadingDelayMs: s.opts.LoadingDelay.Milliseconds(),
	}
}

func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	state := s.controller.GoHome()
	s.broadcast(state)

	data := s.page("", state)
	data.ShowIntro = s.controller.ConsumeIntro() && s.introAvailable()
	data.About = s.services.Catalog.AboutHTML()
	s.render(w, r, http.StatusOK, "home", data)
}

func (s *Server) handleCategoryPage(w http.ResponseWriter, r *http.Request) {
	category, err := s.services.Catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	state := s.controller.SelectCategory(category)
	s.broadcast(state)

	summary, err := s.services.Catalog.Category(category.String())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data := s.page(summary.Name, state)
	data.ActiveSlug = summary.Slug
	data.Category = summary
	s.render(w, r, http.StatusOK, "category", data)
}

func (s *Server) handleGenrePage(w http.ResponseWriter, r *http.Request) {
	category, err := s.services.Catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	genre := s.services.Catalog.ResolveGenre(category, chi.URLParam(r, "genre"))

	state := s.controller.Open(category, genre)
	s.broadcast(state)

	summary, err := s.services.Catalog.Category(category.String())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data := s.page(genre, state)
	data.ActiveSlug = summary.Slug
	data.Category = summary
	data.Genre = genre
	data.Cards = s.services.Catalog.Cards(s.controller.RenderState(state).Recommendations)
	s.render(w, r, http.StatusOK, "genre", data)
}

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := s.page("Search", s.controller.State())
	data.Query = query
	if query != "" {
		results, err := s.services.Catalog.Search(r.Context(), query, r.URL.Query().Get("category"), 50)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		data.Cards = results.Results
	}
	s.render(w, r, http.StatusOK, "search", data)
}

func (s *Server) handleTeamPage(w http.ResponseWriter, r *http.Request) {
	state := s.controller.GoTeam()
	s.broadcast(state)

	data := s.page("Our Team", state)
	data.Team = s.services.Catalog.Team()
	s.render(w, r, http.StatusOK, "team", data)
}

func (s *Server) handleTrailerPage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.player.Get(chi.URLParam(r, "session"))
	if err != nil {
		s.renderNotice(w, r, http.StatusNotFound, "No Trailer Available", "This trailer has already been closed.")
		return
	}

	resp := trailerResponse(sess)
	data := s.page(sess.Title, s.controller.State())
	data.Trailer = &resp
	data.SessionID = sess.ID
	s.render(w, r, http.StatusOK, "trailer", data)
}

// handleImage serves artwork. With ?w= it returns a cached JPEG thumbnail;
// otherwise the original file. Missing artwork becomes an SVG placeholder.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "*")
	label := r.URL.Query().Get("label")
	if label == "" {
		label = strings.TrimSuffix(ref, "/")
	}

	if s.media == nil || s.media.Resolver == nil {
		writePlaceholder(w, label)
		return
	}

	if raw := r.URL.Query().Get("w"); raw != "" && s.media.Processor != nil {
		width, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid width", http.StatusBadRequest)
			return
		}
		data, err := s.media.Processor.Thumbnail(ref, width)
		if err != nil {
			s.logImageMiss(ref, err)
			writePlaceholder(w, label)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
		return
	}

	abs, err := s.media.Resolver.Resolve(ref)
	if err != nil {
		s.logImageMiss(ref, err)
		writePlaceholder(w, label)
		return
	}
	if etag, err := images.Hash(abs); err == nil {
		w.Header().Set("ETag", `"`+etag+`"`)
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, abs)
}

func (s *Server) logImageMiss(ref string, err error) {
	if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, domainerrors.ErrValidation) {
		s.logger.Debug("image unavailable", "ref", ref, "error", err)
		return
	}
	s.logger.Warn("failed to load image", "ref", ref, "error", err)
}

func writePlaceholder(w http.ResponseWriter, label string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(images.Placeholder(label, 300, 450))
}

func (s *Server) handleIntro(w http.ResponseWriter, r *http.Request) {
	if s.media == nil || s.media.IntroVideo == "" {
		http.NotFound(w, r)
		return
	}
	video, err := intro.Locate(s.media.AssetsDir, s.media.IntroVideo)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(video.Path)
	if err != nil {
		s.logger.Warn("failed to open intro video", "path", video.Path, "error", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", video.ContentType)
	http.ServeContent(w, r, video.Name, info.ModTime(), f)
}

// broadcast tells other open pages about a navigation change.
func (s *Server) broadcast(state navigation.State) {
	if s.sseManager != nil {
		s.sseManager.Emit(sse.NewNavigationChangedEvent(state))
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data *pageData) {
	tmpl, ok := s.pages[name]
	if !ok {
		s.logger.Error("unknown page template", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("failed to render page",
			"page", name,
			"path", r.URL.Path,
			"error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderNotice shows a titled message in place of the requested page.
func (s *Server) renderNotice(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	data := s.page(title, s.controller.State())
	data.Notice = &notice{Title: title, Message: message}
	s.render(w, r, status, "notice", data)
}

// renderError maps a domain error to a notice page.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		s.renderNotice(w, r, http.StatusNotFound, "Not Found", domainerrors.MessageOf(err))
	case errors.Is(err, domainerrors.ErrValidation):
		s.renderNotice(w, r, http.StatusBadRequest, "Invalid Request", domainerrors.MessageOf(err))
	case errors.Is(err, domainerrors.ErrUnavailable):
		s.renderNotice(w, r, http.StatusNotFound, domainerrors.MessageOf(err), "This feature is not available right now.")
	default:
		s.logger.Error("page request failed", "path", r.URL.Path, "error", err)
		s.renderNotice(w, r, http.StatusInternalServerError, "Something Went Wrong", "Please try again.")
	}
}
