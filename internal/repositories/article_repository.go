package repositories

import (
	"context"

	"jurnal/internal/models"
)

// ArticleRepository defines the interface for article data access. Every
// listing except FindAll and FindByAuthor(publishedOnly=false) returns
// published articles only.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	// SlugExists reports whether slug is taken by an article other than excludeID.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// IncrementViewCount adds one to the view counter in a single statement.
	IncrementViewCount(ctx context.Context, id string) error

	FindAll(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)
	FindPublished(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)
	FindFeatured(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)
	FindTrending(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)
	FindLatest(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)
	FindMostViewed(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)
	FindByCategory(ctx context.Context, category string, req models.PageRequest) (*models.Page[models.Article], error)
	Search(ctx context.Context, term string, req models.PageRequest) (*models.Page[models.Article], error)
	FindByAuthor(ctx context.Context, authorID string, publishedOnly bool, req models.PageRequest) (*models.Page[models.Article], error)
	DistinctCategories(ctx context.Context) ([]string, error)

	Count(ctx context.Context, publishedOnly bool) (int64, error)
	CountByAuthor(ctx context.Context, authorID string, publishedOnly bool) (int64, error)

	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(repo ArticleRepository) error) error
}
