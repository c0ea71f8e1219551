package watcher

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// defaultJunk matches editor, OS and download leftovers that never count as
// asset changes.
var defaultJunk = []string{".DS_Store", "Thumbs.db", "*.tmp", "*.temp", "*.part", "*.crdownload", "*~"}

// Options controls which paths the watcher reports and how long a file must
// stay still before its change is reported.
type Options struct {
	// Extensions limits reported files to these suffixes (".jpg"). Empty
	// reports every file. Directories are always walked.
	Extensions []string
	// Junk lists base-name globs to drop. nil selects the defaults and turns
	// IgnoreHidden on; an explicit empty slice keeps IgnoreHidden as given.
	Junk         []string
	SettleDelay  time.Duration
	IgnoreHidden bool
}

func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = 100 * time.Millisecond
	}
	if o.Junk == nil {
		o.Junk = defaultJunk
		o.IgnoreHidden = true
	}
	for i, ext := range o.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.Extensions[i] = ext
	}
}

// shouldIgnore reports whether rel, relative to a watched root, is hidden or
// junk. It applies to directories as well as files.
func (o *Options) shouldIgnore(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if o.IgnoreHidden {
		for part := range strings.SplitSeq(rel, "/") {
			if len(part) > 1 && part[0] == '.' && part != ".." {
				return true
			}
		}
	}

	base := filepath.Base(rel)
	return slices.ContainsFunc(o.Junk, func(glob string) bool {
		ok, err := filepath.Match(glob, base)
		return err == nil && ok
	})
}

// wants reports whether a file with this name is worth reporting.
func (o *Options) wants(name string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	return slices.Contains(o.Extensions, strings.ToLower(filepath.Ext(name)))
}
