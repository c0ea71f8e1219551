// Package domain holds the catalog value types.
package domain

import (
	"fmt"
	"strings"
)

// Category is one of the five top-level media kinds. The zero value means
// "no category selected".
type Category uint8

const (
	CategoryNone Category = iota
	CategoryMovies
	CategoryBooks
	CategoryAnime
	CategoryCourses
	CategoryGames
)

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryMovies,
		CategoryBooks,
		CategoryAnime,
		CategoryCourses,
		CategoryGames,
	}
}

// ParseCategory accepts a display name ("Movies") or slug ("movies"),
// case-insensitively.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, c := range AllCategories() {
		if strings.EqualFold(name, c.String()) || strings.EqualFold(name, c.Slug()) {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown category %q", name)
}

// Valid reports whether c is one of the five real categories.
func (c Category) Valid() bool {
	return c >= CategoryMovies && c <= CategoryGames
}

// String returns the display name.
func (c Category) String() string {
	switch c {
	case CategoryMovies:
		return "Movies"
	case CategoryBooks:
		return "Books"
	case CategoryAnime:
		return "Anime"
	case CategoryCourses:
		return "Courses"
	case CategoryGames:
		return "Games"
	case CategoryNone:
		return ""
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Slug is the URL path segment for the category.
func (c Category) Slug() string {
	switch c {
	case CategoryMovies:
		return "movies"
	case CategoryBooks:
		return "books"
	case CategoryAnime:
		return "anime"
	case CategoryCourses:
		return "courses"
	case CategoryGames:
		return "games"
	case CategoryNone:
		return ""
	}
	return ""
}

// Emoji is the sidebar and card icon.
func (c Category) Emoji() string {
	switch c {
	case CategoryMovies:
		return "🎬"
	case CategoryBooks:
		return "📚"
	case CategoryAnime:
		return "🌸"
	case CategoryCourses:
		return "🎓"
	case CategoryGames:
		return "🎮"
	case CategoryNone:
		return "⭐"
	}
	return "⭐"
}

// MarshalText encodes the category as its display name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a display name or slug. Empty text is CategoryNone.
func (c *Category) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = CategoryNone
		return nil
	}
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
