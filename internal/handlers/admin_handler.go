package handlers

import (
	"context"
	"fmt"

	"jurnal/internal/apperrors"
	"jurnal/internal/models"
	"jurnal/internal/repositories"
	"jurnal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AdminHandler serves user management, moderation and stats. Every route
// requires the ADMIN role, enforced by the group middleware.
type AdminHandler struct {
	users    *services.UserService
	articles *services.ArticleService
	limits   PageLimits
	validate *validator.Validate
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users *services.UserService, articles *services.ArticleService, limits PageLimits, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		users:    users,
		articles: articles,
		limits:   limits,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the admin routes on an already guarded router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stats", h.HandleStats)

	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id/role", h.HandleUpdateRole)
	userRoutes.Put("/:id/activate", h.HandleActivate)
	userRoutes.Put("/:id/deactivate", h.HandleDeactivate)
	userRoutes.Delete("/:id", h.HandleDeleteUser)

	articleRoutes := router.Group("/articles")
	articleRoutes.Get("/", h.HandleListArticles)
	articleRoutes.Put("/:id/publish", h.articleAction(h.articles.PublishArticle))
	articleRoutes.Put("/:id/unpublish", h.articleAction(h.articles.UnpublishArticle))
	articleRoutes.Put("/:id/featured", h.HandleSetFeatured)
	articleRoutes.Put("/:id/trending", h.HandleSetTrending)
}

// RoleRequest is the payload of a role change.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER AUTHOR ADMIN user author admin"`
}

// FlagRequest is the payload of a featured or trending toggle.
type FlagRequest struct {
	Value *bool `json:"value" validate:"required"`
}

// HandleStats returns content totals.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.articles.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}

// HandleListUsers pages through users, filtered by role, active flag and q.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	req, err := h.limits.pageRequest(c, true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return respondError(c, h.log, err)
	}

	filter := repositories.UserFilter{Active: active, Query: c.Query("q")}
	if raw := c.Query("role"); raw != "" {
		role, ok := models.ParseRole(raw)
		if !ok {
			return respondError(c, h.log, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, raw))
		}
		filter.Role = role
	}

	page, err := h.users.ListUsers(c.UserContext(), filter, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleGetUser retrieves one user by ID.
func (h *AdminHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleUpdateRole changes a user's role.
func (h *AdminHandler) HandleUpdateRole(c *fiber.Ctx) error {
	var req RoleRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	role, _ := models.ParseRole(req.Role)
	user, err := h.users.UpdateRole(c.UserContext(), c.Params("id"), role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleActivate re-enables a user.
func (h *AdminHandler) HandleActivate(c *fiber.Ctx) error {
	user, err := h.users.ActivateUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleDeactivate disables a user.
func (h *AdminHandler) HandleDeactivate(c *fiber.Ctx) error {
	user, err := h.users.DeactivateUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user and their articles.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListArticles lists every article, drafts included.
func (h *AdminHandler) HandleListArticles(c *fiber.Ctx) error {
	req, err := h.limits.pageRequest(c, true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.articles.ListAll(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// HandleSetFeatured sets or clears the featured flag.
func (h *AdminHandler) HandleSetFeatured(c *fiber.Ctx) error {
	return h.flag(c, h.articles.SetFeatured)
}

// HandleSetTrending sets or clears the trending flag.
func (h *AdminHandler) HandleSetTrending(c *fiber.Ctx) error {
	return h.flag(c, h.articles.SetTrending)
}

func (h *AdminHandler) flag(c *fiber.Ctx, set func(ctx context.Context, id string, value bool) (*models.Article, error)) error {
	var req FlagRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	article, err := set(c.UserContext(), c.Params("id"), *req.Value)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(article)
}

func (h *AdminHandler) articleAction(action func(ctx context.Context, id string) (*models.Article, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		article, err := action(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(article)
	}
}
