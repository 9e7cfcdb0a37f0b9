package services

import (
	"context"
	"regexp"
	"strconv"
	"testing"

	"jurnal/internal/apperrors"
	"jurnal/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Hello   World  ", "hello-world"},
		{"Go 1.22 -- Released!", "go-122-released"},
		{"Café au lait", "cafe-au-lait"},
		{"Ünïcödé Títlé", "unicode-title"},
		{"already-a-slug", "already-a-slug"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"!!!", "article"},
		{"", "article"},
		{"日本語", "article"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_IdempotentAndWellFormed(t *testing.T) {
	titles := []string{
		"Hello World", "A  -  B", "x_y_z", "Déjà vu 2", "- - -", "MiXeD CaSe 123",
		"emoji 🚀 launch", "trailing space ", "100%", "über-cool",
	}
	for _, title := range titles {
		slug := Slugify(title)
		assert.Regexp(t, slugPattern, slug, "title %q", title)
		assert.Equal(t, slug, Slugify(slug), "title %q", title)
	}
}

func TestHasBase(t *testing.T) {
	assert.True(t, hasBase("hello-world", "hello-world"))
	assert.True(t, hasBase("hello-world-3", "hello-world"))
	assert.False(t, hasBase("hello-world-x", "hello-world"))
	assert.False(t, hasBase("hello-world-", "hello-world"))
	assert.False(t, hasBase("hello", "hello-world"))
	assert.False(t, hasBase("hello-world-2-1", "hello-world"))
}

// slugSet answers SlugExists from a map; no other method is used by uniqueSlug.
type slugSet struct {
	repositories.ArticleRepository
	taken map[string]string // slug -> article ID
}

func (s *slugSet) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	id, ok := s.taken[slug]
	return ok && id != excludeID, nil
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()
	repo := &slugSet{taken: map[string]string{}}

	first, err := uniqueSlug(ctx, repo, "Hello World", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first)
	repo.taken[first] = "a1"

	second, err := uniqueSlug(ctx, repo, "Hello World", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", second)
	repo.taken[second] = "a2"

	third, err := uniqueSlug(ctx, repo, "Hello World", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", third)
	repo.taken[third] = "a3"

	// An unchanged title keeps the current slug.
	kept, err := uniqueSlug(ctx, repo, "Hello World", "Hello World", "hello-world-1", "a2")
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", kept)

	// A renamed article probes from the bare base again.
	renamed, err := uniqueSlug(ctx, repo, "Goodbye", "Hello World", "hello-world-2", "a3")
	require.NoError(t, err)
	assert.Equal(t, "goodbye", renamed)

	// Dropping a trailing number from the title is a rename too.
	repo.taken["top-10"] = "a4"
	shortened, err := uniqueSlug(ctx, repo, "Top", "Top 10", "top-10", "a4")
	require.NoError(t, err)
	assert.Equal(t, "top", shortened)

	repo.taken["go"] = "a5"
	clashed, err := uniqueSlug(ctx, repo, "Go", "Go 2", "go-2", "a6")
	require.NoError(t, err)
	assert.Equal(t, "go-1", clashed)
}

func TestUniqueSlug_Exhausted(t *testing.T) {
	repo := &slugSet{taken: map[string]string{}}
	repo.taken["same"] = "x"
	for i := 1; i <= maxSlugAttempts; i++ {
		repo.taken["same-"+strconv.Itoa(i)] = "x"
	}
	_, err := uniqueSlug(context.Background(), repo, "Same", "", "", "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
