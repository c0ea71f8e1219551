package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}
	opts.setDefaults()

	assert.True(t, opts.IgnoreHidden, "hidden files are ignored by default")
	assert.Equal(t, 100*time.Millisecond, opts.SettleDelay)
	assert.Contains(t, opts.Junk, ".DS_Store")
	assert.Contains(t, opts.Junk, "*.crdownload")
}

func TestOptions_ExplicitJunkKeepsHiddenSetting(t *testing.T) {
	opts := Options{Junk: []string{}, SettleDelay: 200 * time.Millisecond}
	opts.setDefaults()

	assert.False(t, opts.IgnoreHidden)
	assert.Equal(t, 200*time.Millisecond, opts.SettleDelay)
	assert.False(t, opts.shouldIgnore(".hidden"))
}

func TestOptions_ShouldIgnore(t *testing.T) {
	opts := Options{}
	opts.setDefaults()

	tests := []struct {
		path   string
		expect bool
	}{
		{".hidden", true},
		{"images/.cache/a.jpg", true},
		{"images/.DS_Store", true},
		{"images/movies/poster.tmp", true},
		{"introofapp.mp4.part", true},
		{"images/books/gone_girl.jpg.crdownload", true},
		{"catalog.yaml~", true},
		{"images/movies/action/john_wick.jpg", false},
		{"introofapp.mp4", false},
		{".", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expect, opts.shouldIgnore(tt.path))
		})
	}
}

func TestOptions_Wants(t *testing.T) {
	opts := Options{Extensions: []string{".JPG", "png", ".mp4"}}
	opts.setDefaults()

	assert.True(t, opts.wants("images/a.jpg"))
	assert.True(t, opts.wants("images/a.PNG"))
	assert.True(t, opts.wants("introofapp.mp4"))
	assert.False(t, opts.wants("notes.txt"))

	all := Options{}
	all.setDefaults()
	assert.True(t, all.wants("notes.txt"))
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "added", EventAdded.String())
	assert.Equal(t, "modified", EventModified.String())
	assert.Equal(t, "removed", EventRemoved.String())
	assert.Equal(t, "unknown", EventType(42).String())
	assert.Equal(t, "unknown", EventType(-1).String())
}
