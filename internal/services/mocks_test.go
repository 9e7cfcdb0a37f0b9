package services_test

import (
	"context"

	"jurnal/internal/models"
	"jurnal/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repositories.UserFilter, req models.PageRequest) (*models.Page[models.User], error) {
	args := m.Called(ctx, filter, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.User]), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx runs fn against the mock itself.
func (m *MockUserRepository) WithTx(_ context.Context, fn func(repositories.UserRepository) error) error {
	return fn(m)
}

// MockArticleRepository is a mock implementation of repositories.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) IncrementViewCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) page(args mock.Arguments) (*models.Page[models.Article], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Article]), args.Error(1)
}

func (m *MockArticleRepository) FindAll(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockArticleRepository) FindPublished(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockArticleRepository) FindFeatured(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockArticleRepository) FindTrending(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockArticleRepository) FindLatest(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockArticleRepository) FindMostViewed(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockArticleRepository) FindByCategory(ctx context.Context, category string, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, category, req))
}

func (m *MockArticleRepository) Search(ctx context.Context, term string, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, term, req))
}

func (m *MockArticleRepository) FindByAuthor(ctx context.Context, authorID string, publishedOnly bool, req models.PageRequest) (*models.Page[models.Article], error) {
	return m.page(m.Called(ctx, authorID, publishedOnly, req))
}

func (m *MockArticleRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArticleRepository) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	args := m.Called(ctx, publishedOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleRepository) CountByAuthor(ctx context.Context, authorID string, publishedOnly bool) (int64, error) {
	args := m.Called(ctx, authorID, publishedOnly)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx runs fn against the mock itself.
func (m *MockArticleRepository) WithTx(_ context.Context, fn func(repositories.ArticleRepository) error) error {
	return fn(m)
}
