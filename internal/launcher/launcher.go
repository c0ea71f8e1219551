// Package launcher opens external URLs in the user's default browser.
package launcher

import (
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/ratelimit"
)

// Opener opens a URL outside the app.
type Opener interface {
	Open(rawURL string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(rawURL string) error

func (f OpenerFunc) Open(rawURL string) error { return f(rawURL) }

// Browser opens URLs with the platform's default browser.
func Browser() Opener {
	// Silence the helper process so it doesn't write over our log output.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return OpenerFunc(browser.OpenURL)
}

// Launcher validates and throttles URL opening before handing it to an Opener.
type Launcher struct {
	opener  Opener
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a launcher. limiter may be nil to disable throttling.
func New(opener Opener, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Launcher{opener: opener, limiter: limiter, logger: logger}
}

// Open opens rawURL. An empty URL yields the "No Link Available" notice.
func (l *Launcher) Open(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return domainerrors.Unavailable("No Link Available").
			WithDetails("Sorry, no external link is available for this recommendation.")
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domainerrors.Validationf("not an http(s) URL: %q", rawURL)
	}

	host := strings.ToLower(u.Hostname())
	if l.limiter != nil && !l.limiter.Allow(host) {
		l.logger.Warn("link open throttled", "host", host)
		return domainerrors.RateLimited("too many links opened, try again shortly")
	}

	if err := l.opener.Open(u.String()); err != nil {
		l.logger.Error("failed to open link", "url", u.String(), "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to open link")
	}

	l.logger.Info("opened link", "host", host)
	return nil
}

// Close stops the limiter's background cleanup.
func (l *Launcher) Close() {
	if l.limiter != nil {
		l.limiter.Stop()
	}
}
