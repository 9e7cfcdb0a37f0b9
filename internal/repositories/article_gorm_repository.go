package repositories

import (
	"context"
	"errors"
	"fmt"

	"jurnal/internal/apperrors"
	"jurnal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultArticleOrder = "published_at desc"

// GORMArticleRepository is a GORM implementation of ArticleRepository.
type GORMArticleRepository struct {
	db *gorm.DB
}

// NewGORMArticleRepository creates a new instance of GORMArticleRepository.
func NewGORMArticleRepository(db *gorm.DB) *GORMArticleRepository {
	return &GORMArticleRepository{
		db: db,
	}
}

// Create creates a new article in the database.
func (r *GORMArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error; err != nil {
		return translateWriteError(err, "create article")
	}
	return nil
}

// Update saves every column of an existing article. The author association is
// never written through here.
func (r *GORMArticleRepository) Update(ctx context.Context, article *models.Article) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(article)
	if res.Error != nil {
		return translateWriteError(res.Error, "update article")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: article with ID %s", apperrors.ErrNotFound, article.ID)
	}
	return nil
}

// Delete deletes an article by its ID from the database.
func (r *GORMArticleRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: article with ID %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// GetByID retrieves a single article by its ID.
func (r *GORMArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.first(ctx, "id", id)
}

// GetBySlug retrieves a single article by its slug.
func (r *GORMArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.first(ctx, "slug", slug)
}

func (r *GORMArticleRepository) first(ctx context.Context, column, value string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, column+" = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article with %s %s", apperrors.ErrNotFound, column, value)
		}
		return nil, fmt.Errorf("failed to get article by %s %s: %w", column, value, err)
	}
	return &article, nil
}

// SlugExists reports whether slug belongs to an article other than excludeID.
// An empty excludeID checks against every article.
func (r *GORMArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// IncrementViewCount bumps view_count in one UPDATE so concurrent readers never
// lose increments. updated_at is left alone.
func (r *GORMArticleRepository) IncrementViewCount(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to increment view count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: article with ID %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (r *GORMArticleRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Article{}).Where("is_published = ?", true)
}

func (r *GORMArticleRepository) page(query *gorm.DB, req models.PageRequest, defaultOrder string) (*models.Page[models.Article], error) {
	return paginate[models.Article](query.Session(&gorm.Session{}), req, models.ArticleSortColumns, defaultOrder)
}

// FindAll lists every article regardless of state.
func (r *GORMArticleRepository) FindAll(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return r.page(r.db.WithContext(ctx).Model(&models.Article{}), req, "created_at desc")
}

// FindPublished lists published articles.
func (r *GORMArticleRepository) FindPublished(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return r.page(r.published(ctx), req, defaultArticleOrder)
}

// FindFeatured lists published articles flagged as featured.
func (r *GORMArticleRepository) FindFeatured(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return r.page(r.published(ctx).Where("is_featured = ?", true), req, defaultArticleOrder)
}

// FindTrending lists published articles flagged as trending.
func (r *GORMArticleRepository) FindTrending(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return r.page(r.published(ctx).Where("is_trending = ?", true), req, defaultArticleOrder)
}

// FindLatest lists published articles newest first; the requested sort is ignored.
func (r *GORMArticleRepository) FindLatest(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	req.SortBy, req.SortDir = "publishedAt", models.SortDesc
	return r.page(r.published(ctx), req, defaultArticleOrder)
}

// FindMostViewed lists published articles by view count; the requested sort is ignored.
func (r *GORMArticleRepository) FindMostViewed(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	req.SortBy, req.SortDir = "viewCount", models.SortDesc
	return r.page(r.published(ctx), req, defaultArticleOrder)
}

// FindByCategory lists published articles of one category (exact match).
func (r *GORMArticleRepository) FindByCategory(ctx context.Context, category string, req models.PageRequest) (*models.Page[models.Article], error) {
	return r.page(r.published(ctx).Where("category = ?", category), req, defaultArticleOrder)
}

// Search lists published articles whose title or content contains term.
func (r *GORMArticleRepository) Search(ctx context.Context, term string, req models.PageRequest) (*models.Page[models.Article], error) {
	p := containsPattern(term)
	query := r.published(ctx).Where(`(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`, p, p)
	return r.page(query, req, defaultArticleOrder)
}

// FindByAuthor lists the articles of one author.
func (r *GORMArticleRepository) FindByAuthor(ctx context.Context, authorID string, publishedOnly bool, req models.PageRequest) (*models.Page[models.Article], error) {
	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("author_id = ?", authorID)
	order := "created_at desc"
	if publishedOnly {
		query = query.Where("is_published = ?", true)
		order = defaultArticleOrder
	}
	return r.page(query, req, order)
}

// DistinctCategories returns the non-empty categories of published articles, sorted.
func (r *GORMArticleRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.published(ctx).
		Where("category IS NOT NULL AND category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Count returns the number of articles, optionally only published ones.
func (r *GORMArticleRepository) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// CountByAuthor returns the number of articles written by authorID.
func (r *GORMArticleRepository) CountByAuthor(ctx context.Context, authorID string, publishedOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("author_id = ?", authorID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count articles of author %s: %w", authorID, err)
	}
	return count, nil
}

// WithTx runs fn inside a database transaction.
func (r *GORMArticleRepository) WithTx(ctx context.Context, fn func(repo ArticleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMArticleRepository(tx))
	})
}
