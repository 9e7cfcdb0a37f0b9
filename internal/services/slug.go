package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"jurnal/internal/apperrors"
	"jurnal/internal/repositories"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used when a title has no characters that survive slugging.
const fallbackSlug = "article"

// maxSlugAttempts bounds the suffix probe before giving up with a conflict.
const maxSlugAttempts = 1000

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a URL-safe identifier matching
// [a-z0-9]+(-[a-z0-9]+)*. Accents are folded to their base letter first so
// "Café" becomes "cafe" rather than "caf".
func Slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	s := strings.ToLower(folded)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// hasBase reports whether slug is base itself or base followed by -N.
func hasBase(slug, base string) bool {
	if slug == base {
		return true
	}
	suffix, ok := strings.CutPrefix(slug, base+"-")
	if !ok || suffix == "" {
		return false
	}
	_, err := strconv.ParseUint(suffix, 10, 32)
	return err == nil
}

// uniqueSlug returns a slug for title that no article other than excludeID
// holds. current is kept only when oldTitle slugifies to the same base, so
// saving an article without renaming it never changes its URL.
func uniqueSlug(ctx context.Context, repo repositories.ArticleRepository, title, oldTitle, current, excludeID string) (string, error) {
	base := Slugify(title)
	if current != "" && Slugify(oldTitle) == base && hasBase(current, base) {
		return current, nil
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
	return "", fmt.Errorf("%w: no free slug for %q", apperrors.ErrConflict, base)
}
