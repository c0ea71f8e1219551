package trailer

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/smartlife/recommender/internal/domain"
	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/id"
)

// IDPrefix prefixes trailer session IDs.
const IDPrefix = "trl"

// Session is one open trailer view. Done is closed when playback stops.
type Session struct {
	ID               string    `json:"id"`
	RecommendationID string    `json:"recommendation_id"`
	Title            string    `json:"title"`
	EmbedURL         string    `json:"embed_url"`
	OpenedAt         time.Time `json:"opened_at"`

	seq      uint64
	done     chan struct{}
	stopOnce sync.Once
}

// Done returns a channel closed once playback has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stopped reports whether playback has stopped.
func (s *Session) Stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// StopFunc is notified after a session stops and before it is forgotten.
type StopFunc func(s *Session)

// Player tracks open trailer sessions. Closing a session always stops its
// playback before the session is dropped.
type Player struct {
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	onStop   []StopFunc
	seq      uint64
	closed   bool
}

// NewPlayer creates an empty player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// OnStop registers a listener for stopped sessions. Listeners must not call
// back into the Player.
func (p *Player) OnStop(fn StopFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStop = append(p.onStop, fn)
}

// Open starts a session for rec. Items without a trailer get the
// "No Trailer Available" notice.
func (p *Player) Open(rec domain.Recommendation) (*Session, error) {
	if !rec.HasTrailer() {
		return nil, domainerrors.Unavailable("No Trailer Available").
			WithDetails("Sorry, no trailer is available for this recommendation.")
	}

	sessionID, err := id.Generate(IDPrefix)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "open trailer")
	}

	s := &Session{
		ID:               sessionID,
		RecommendationID: rec.ID,
		Title:            rec.Title,
		EmbedURL:         ResolveEmbedURL(rec.TrailerRef),
		OpenedAt:         p.now(),
		done:             make(chan struct{}),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, domainerrors.Unavailable("trailer player is shutting down")
	}
	p.seq++
	s.seq = p.seq
	p.sessions[s.ID] = s

	p.logger.Info("trailer opened",
		"session_id", s.ID,
		"title", s.Title,
		"embed_url", s.EmbedURL)

	return s, nil
}

// Get returns a live session. Malformed IDs are reported as not found
// without being echoed back.
func (p *Player) Get(sessionID string) (*Session, error) {
	if !id.Valid(sessionID, IDPrefix) {
		return nil, domainerrors.NotFound("trailer session not found")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[sessionID]
	if !ok {
		return nil, domainerrors.NotFoundf("trailer session %s not found", sessionID)
	}
	return s, nil
}

// Close stops playback of a session and then forgets it. It reports whether
// a live session was stopped; closing an unknown or already closed session
// is a no-op.
func (p *Player) Close(sessionID string) bool {
	p.mu.Lock()
	s, ok := p.sessions[sessionID]
	listeners := slices.Clone(p.onStop)
	p.mu.Unlock()

	if !ok {
		return false
	}

	stopped := p.stop(s, listeners)

	p.mu.Lock()
	delete(p.sessions, sessionID)
	p.mu.Unlock()

	return stopped
}

// Active returns the open sessions, oldest first.
func (p *Player) Active() []*Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Session) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// Shutdown stops every session and refuses new ones.
func (p *Player) Shutdown() error {
	p.mu.Lock()
	p.closed = true
	open := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		open = append(open, s)
	}
	listeners := slices.Clone(p.onStop)
	p.mu.Unlock()

	for _, s := range open {
		p.stop(s, listeners)
	}

	p.mu.Lock()
	clear(p.sessions)
	p.mu.Unlock()

	if len(open) > 0 {
		p.logger.Info("trailer sessions stopped", "count", len(open))
	}
	return nil
}

// stop closes Done exactly once and notifies listeners. It returns false if
// the session was already stopped.
func (p *Player) stop(s *Session, listeners []StopFunc) bool {
	stopped := false
	s.stopOnce.Do(func() {
		close(s.done)
		stopped = true
	})
	if !stopped {
		return false
	}

	for _, fn := range listeners {
		fn(s)
	}
	p.logger.Info("trailer closed",
		"session_id", s.ID,
		"duration", p.now().Sub(s.OpenedAt))
	return true
}
