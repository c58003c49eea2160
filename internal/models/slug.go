package models

import "strings"

// GenerateSlug builds a URL-safe slug from a display name: lowercase, strip
// everything but alphanumerics, spaces and hyphens, collapse whitespace to
// single hyphens, collapse hyphen runs, trim hyphens at both ends. Every
// slug column in the catalog (products, categories, stores, brands) goes
// through this one function.
func GenerateSlug(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
