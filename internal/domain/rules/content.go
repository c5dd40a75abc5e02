package rules

import (
	"strings"
	"unicode/utf8"
)

const (
	CommentMinLength = 3
	CommentMaxLength = 2000
	ReplyMinLength   = 3
	ReplyMaxLength   = 1000
	RatingMin        = 1
	RatingMax        = 5

	PostTitleMaxLength       = 255
	PostSlugMaxLength        = 255
	MealTypeNameMaxLength    = 100
	MealDescriptionMaxLength = 1000

	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// LengthBetween counts runes of the trimmed value.
func LengthBetween(value string, lo, hi int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	return n >= lo && n <= hi
}

func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}

func ValidSlug(slug string) bool {
	if slug == "" || len(slug) > PostSlugMaxLength {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return !strings.HasPrefix(slug, "-") && !strings.HasSuffix(slug, "-")
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
