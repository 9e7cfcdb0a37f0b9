package services

import (
	"context"
	"fmt"
	"time"

	"jurnal/internal/apperrors"
	"jurnal/internal/metrics"
	"jurnal/internal/models"
	"jurnal/internal/repositories"

	"github.com/rs/zerolog"
)

// ArticleInput is the writable part of an article, used by both create and update.
type ArticleInput struct {
	Title     string
	Excerpt   string
	Content   string
	ImageURL  string
	Category  string
	Published bool
	Featured  bool
	Trending  bool
}

// Stats summarizes the content of the blog.
type Stats struct {
	Users             int64 `json:"users"`
	Articles          int64 `json:"articles"`
	PublishedArticles int64 `json:"publishedArticles"`
}

// AuthorStats counts the articles of one author.
type AuthorStats struct {
	Articles          int64 `json:"articles"`
	PublishedArticles int64 `json:"publishedArticles"`
}

// ArticleService handles the article lifecycle and the public query surface.
type ArticleService struct {
	articles repositories.ArticleRepository
	users    repositories.UserRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles repositories.ArticleRepository, users repositories.UserRepository, log zerolog.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		users:    users,
		log:      log,
		now:      time.Now,
	}
}

// CreateArticle stores a new article written by authorUsername under a fresh
// unique slug. PublishedAt is stamped only when the article starts published.
func (s *ArticleService) CreateArticle(ctx context.Context, in ArticleInput, authorUsername string) (*models.Article, error) {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if !author.Role.CanWriteArticles() {
		return nil, fmt.Errorf("%w: role %s cannot write articles", apperrors.ErrPermissionDenied, author.Role)
	}

	article := &models.Article{AuthorID: author.ID}
	applyInput(article, in, s.now())

	err = s.articles.WithTx(ctx, func(repo repositories.ArticleRepository) error {
		slug, err := uniqueSlug(ctx, repo, in.Title, "", "", "")
		if err != nil {
			return err
		}
		article.Slug = slug
		return repo.Create(ctx, article)
	})
	if err != nil {
		return nil, err
	}

	metrics.ArticlesCreated.Inc()
	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Str("author", author.Username).Msg("Article created")
	return article, nil
}

// UpdateArticle overwrites every writable field of an article. Only its author
// or an admin may do so; anyone else gets PermissionDenied and the stored
// article is left untouched.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, in ArticleInput, actingUsername string) (*models.Article, error) {
	actor, err := s.users.GetByUsername(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	var updated *models.Article
	err = s.articles.WithTx(ctx, func(repo repositories.ArticleRepository) error {
		article, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !models.CanModifyArticle(actor, article) {
			return fmt.Errorf("%w: %s may not edit article %s", apperrors.ErrPermissionDenied, actor.Username, id)
		}

		slug, err := uniqueSlug(ctx, repo, in.Title, article.Title, article.Slug, article.ID)
		if err != nil {
			return err
		}
		article.Slug = slug
		applyInput(article, in, s.now())

		if err := repo.Update(ctx, article); err != nil {
			return err
		}
		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", updated.ID).Str("slug", updated.Slug).Str("editor", actor.Username).Msg("Article updated")
	return updated, nil
}

// DeleteArticle removes an article. Only its author or an admin may do so.
func (s *ArticleService) DeleteArticle(ctx context.Context, id, actingUsername string) error {
	actor, err := s.users.GetByUsername(ctx, actingUsername)
	if err != nil {
		return err
	}

	err = s.articles.WithTx(ctx, func(repo repositories.ArticleRepository) error {
		article, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !models.CanModifyArticle(actor, article) {
			return fmt.Errorf("%w: %s may not delete article %s", apperrors.ErrPermissionDenied, actor.Username, id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("article_id", id).Str("actor", actor.Username).Msg("Article deleted")
	return nil
}

func applyInput(article *models.Article, in ArticleInput, now time.Time) {
	article.Title = in.Title
	article.Excerpt = in.Excerpt
	article.Content = in.Content
	article.ImageURL = in.ImageURL
	article.Category = in.Category
	article.IsFeatured = in.Featured
	article.IsTrending = in.Trending
	article.SetPublished(in.Published, now)
}

// IncrementView records one view of the article at slug and returns it with
// the new count.
func (s *ArticleService) IncrementView(ctx context.Context, slug string) (*models.Article, error) {
	var article *models.Article
	err := s.articles.WithTx(ctx, func(repo repositories.ArticleRepository) error {
		found, err := repo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if err := repo.IncrementViewCount(ctx, found.ID); err != nil {
			return err
		}
		article, err = repo.GetByID(ctx, found.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.ArticleViews.Inc()
	return article, nil
}

// GetArticleBySlug retrieves a single article by slug.
func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.articles.GetBySlug(ctx, slug)
}

// GetArticleByID retrieves a single article by ID.
func (s *ArticleService) GetArticleByID(ctx context.Context, id string) (*models.Article, error) {
	return s.articles.GetByID(ctx, id)
}

func (s *ArticleService) ListPublished(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindPublished(ctx, req)
}

func (s *ArticleService) ListFeatured(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindFeatured(ctx, req)
}

func (s *ArticleService) ListTrending(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindTrending(ctx, req)
}

func (s *ArticleService) ListLatest(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindLatest(ctx, req)
}

func (s *ArticleService) ListMostViewed(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindMostViewed(ctx, req)
}

func (s *ArticleService) ListByCategory(ctx context.Context, category string, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindByCategory(ctx, category, req)
}

// Search matches term as a case-sensitive substring of title or content.
func (s *ArticleService) Search(ctx context.Context, term string, req models.PageRequest) (*models.Page[models.Article], error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term q is required", apperrors.ErrValidation)
	}
	return s.articles.Search(ctx, term, req)
}

// ListAll includes drafts and is meant for administrators.
func (s *ArticleService) ListAll(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return s.articles.FindAll(ctx, req)
}

// ListByAuthor pages through the articles of username. With publishedOnly
// false drafts are included, which is what the author sees of their own work.
func (s *ArticleService) ListByAuthor(ctx context.Context, username string, publishedOnly bool, req models.PageRequest) (*models.Page[models.Article], error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.articles.FindByAuthor(ctx, author.ID, publishedOnly, req)
}

// Categories lists the distinct categories of published articles.
func (s *ArticleService) Categories(ctx context.Context) ([]string, error) {
	return s.articles.DistinctCategories(ctx)
}

// PublishArticle sets the published flag, stamping PublishedAt on first publish.
func (s *ArticleService) PublishArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.setFlag(ctx, id, "published", func(a *models.Article) { a.SetPublished(true, s.now()) })
}

// UnpublishArticle clears the published flag; PublishedAt is kept.
func (s *ArticleService) UnpublishArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.setFlag(ctx, id, "unpublished", func(a *models.Article) { a.SetPublished(false, s.now()) })
}

func (s *ArticleService) SetFeatured(ctx context.Context, id string, featured bool) (*models.Article, error) {
	return s.setFlag(ctx, id, "featured flag changed", func(a *models.Article) { a.IsFeatured = featured })
}

func (s *ArticleService) SetTrending(ctx context.Context, id string, trending bool) (*models.Article, error) {
	return s.setFlag(ctx, id, "trending flag changed", func(a *models.Article) { a.IsTrending = trending })
}

func (s *ArticleService) setFlag(ctx context.Context, id, what string, apply func(*models.Article)) (*models.Article, error) {
	var updated *models.Article
	err := s.articles.WithTx(ctx, func(repo repositories.ArticleRepository) error {
		article, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		apply(article)
		if err := repo.Update(ctx, article); err != nil {
			return err
		}
		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("article_id", id).Msg("Article " + what)
	return updated, nil
}

// Stats counts users, articles and published articles.
func (s *ArticleService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.articles.Count(ctx, false)
	if err != nil {
		return nil, err
	}
	published, err := s.articles.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	return &Stats{Users: users, Articles: total, PublishedArticles: published}, nil
}

// StatsForAuthor counts the articles written by authorID.
func (s *ArticleService) StatsForAuthor(ctx context.Context, authorID string) (*AuthorStats, error) {
	total, err := s.articles.CountByAuthor(ctx, authorID, false)
	if err != nil {
		return nil, err
	}
	published, err := s.articles.CountByAuthor(ctx, authorID, true)
	if err != nil {
		return nil, err
	}
	return &AuthorStats{Articles: total, PublishedArticles: published}, nil
}
