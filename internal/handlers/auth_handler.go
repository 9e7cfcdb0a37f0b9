package handlers

import (
	"jurnal/internal/models"
	"jurnal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/signin", h.HandleSignin)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=40"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Bio      string `json:"bio" validate:"max=500"`
	Role     string `json:"role" validate:"omitempty,oneof=USER AUTHOR ADMIN user author admin"`
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	role, _ := models.ParseRole(req.Role)
	_, err := h.authService.RegisterUser(c.UserContext(), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Bio:      req.Bio,
		Role:     role,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"message": "User registered successfully!",
	})
}

// LoginRequest represents the request body for signin.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by a successful signin.
type AuthResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
}

// HandleSignin handles user login and issues a JWT token.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		h.log.Info().Str("username", req.Username).Msg("Signin rejected")
		return respondError(c, h.log, err)
	}

	user := result.User
	return c.JSON(AuthResponse{
		Token:    result.Token,
		Type:     "Bearer",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    []string{string(user.Role)},
	})
}
