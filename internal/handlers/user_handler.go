package handlers

import (
	"jurnal/internal/middleware"
	"jurnal/internal/models"
	"jurnal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	users    *services.UserService
	articles *services.ArticleService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService, articles *services.ArticleService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		articles: articles,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the profile routes, all behind auth.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", auth, h.HandleGetMe)
	userRoutes.Put("/me", auth, h.HandleUpdateMe)
}

// ProfileResponse is a user plus their article counts.
type ProfileResponse struct {
	*models.User
	Stats *services.AuthorStats `json:"stats"`
}

// ProfileRequest is the payload of a profile update.
type ProfileRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Bio      string `json:"bio" validate:"max=500"`
}

// HandleGetMe returns the caller's profile.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	user, err := h.users.GetUserByID(c.UserContext(), principal.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	stats, err := h.articles.StatsForAuthor(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(ProfileResponse{User: user, Stats: stats})
}

// HandleUpdateMe edits the caller's profile.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	var req ProfileRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.users.UpdateProfile(c.UserContext(), principal.ID, services.ProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Bio:      req.Bio,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}
