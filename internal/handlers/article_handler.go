package handlers

import (
	"context"

	"jurnal/internal/middleware"
	"jurnal/internal/models"
	"jurnal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ArticleHandler handles HTTP requests for articles.
type ArticleHandler struct {
	service  *services.ArticleService
	limits   PageLimits
	validate *validator.Validate
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(service *services.ArticleService, limits PageLimits, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		service:  service,
		limits:   limits,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the article routes. auth guards the write routes.
func (h *ArticleHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	writer := middleware.RequireRoles(models.RoleAuthor, models.RoleAdmin)

	articleRoutes := router.Group("/articles")
	articleRoutes.Get("/public", h.HandleListPublished)
	articleRoutes.Get("/public/:slug", h.HandleGetBySlug)
	articleRoutes.Post("/:slug/view", h.HandleView)
	articleRoutes.Get("/featured", h.pageOnly(h.service.ListFeatured))
	articleRoutes.Get("/trending", h.pageOnly(h.service.ListTrending))
	articleRoutes.Get("/latest", h.pageOnly(h.service.ListLatest))
	articleRoutes.Get("/most-viewed", h.pageOnly(h.service.ListMostViewed))
	articleRoutes.Get("/categories", h.HandleCategories)
	articleRoutes.Get("/category/:category", h.HandleByCategory)
	articleRoutes.Get("/search", h.HandleSearch)
	articleRoutes.Get("/author/:username", h.HandleByAuthor)

	articleRoutes.Get("/my-articles", auth, writer, h.HandleMyArticles)
	articleRoutes.Post("/", auth, writer, h.HandleCreate)
	articleRoutes.Put("/:id", auth, writer, h.HandleUpdate)
	articleRoutes.Delete("/:id", auth, writer, h.HandleDelete)
}

// ArticleRequest is the payload of create and update.
type ArticleRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Excerpt   string `json:"excerpt" validate:"required,max=500"`
	Content   string `json:"content" validate:"required"`
	ImageURL  string `json:"imageUrl" validate:"max=500"`
	Category  string `json:"category" validate:"max=100"`
	Published bool   `json:"published"`
	Featured  bool   `json:"featured"`
	Trending  bool   `json:"trending"`
}

func (r ArticleRequest) input() services.ArticleInput {
	return services.ArticleInput{
		Title:     r.Title,
		Excerpt:   r.Excerpt,
		Content:   r.Content,
		ImageURL:  r.ImageURL,
		Category:  r.Category,
		Published: r.Published,
		Featured:  r.Featured,
		Trending:  r.Trending,
	}
}

type pageQuery func(ctx context.Context, req models.PageRequest) (*models.Page[models.Article], error)

// pageOnly serves a listing that accepts page and size but no sort.
func (h *ArticleHandler) pageOnly(query pageQuery) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := h.limits.pageRequest(c, false)
		if err != nil {
			return respondError(c, h.log, err)
		}
		page, err := query(c.UserContext(), req)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(page)
	}
}

// HandleListPublished lists published articles with optional sorting.
func (h *ArticleHandler) HandleListPublished(c *fiber.Ctx) error {
	req, err := h.limits.pageRequest(c, true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.ListPublished(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleGetBySlug retrieves a single article by slug.
func (h *ArticleHandler) HandleGetBySlug(c *fiber.Ctx) error {
	article, err := h.service.GetArticleBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(article)
}

// HandleView records a view and returns the article with its new count.
func (h *ArticleHandler) HandleView(c *fiber.Ctx) error {
	article, err := h.service.IncrementView(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(article)
}

// HandleCategories lists the distinct categories of published articles.
func (h *ArticleHandler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(categories)
}

// HandleByCategory lists published articles of one category.
func (h *ArticleHandler) HandleByCategory(c *fiber.Ctx) error {
	req, err := h.limits.pageRequest(c, false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.ListByCategory(c.UserContext(), c.Params("category"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleSearch matches q against title and content of published articles.
func (h *ArticleHandler) HandleSearch(c *fiber.Ctx) error {
	req, err := h.limits.pageRequest(c, false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.Search(c.UserContext(), c.Query("q"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleByAuthor lists the published articles of a given author.
func (h *ArticleHandler) HandleByAuthor(c *fiber.Ctx) error {
	req, err := h.limits.pageRequest(c, true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.ListByAuthor(c.UserContext(), c.Params("username"), true, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleMyArticles lists every article of the caller, drafts included.
func (h *ArticleHandler) HandleMyArticles(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	req, err := h.limits.pageRequest(c, true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.ListByAuthor(c.UserContext(), principal.Username, false, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleCreate creates an article owned by the caller.
func (h *ArticleHandler) HandleCreate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	var req ArticleRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	article, err := h.service.CreateArticle(c.UserContext(), req.input(), principal.Username)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(article)
}

// HandleUpdate overwrites an article the caller owns (or any, for admins).
func (h *ArticleHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	var req ArticleRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	article, err := h.service.UpdateArticle(c.UserContext(), c.Params("id"), req.input(), principal.Username)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(article)
}

// HandleDelete removes an article the caller owns (or any, for admins).
func (h *ArticleHandler) HandleDelete(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	if err := h.service.DeleteArticle(c.UserContext(), c.Params("id"), principal.Username); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
