package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jurnal/internal/apperrors"
	"jurnal/internal/metrics"
	"jurnal/internal/models"
	"jurnal/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials covers both unknown usernames and wrong passwords.
var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Bio      string
	Role     models.Role // empty means USER
}

// LoginResult is a signed token plus the authenticated user.
type LoginResult struct {
	Token string
	User  *models.User
}

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
		log:        log,
	}
}

// RegisterUser creates an active account after checking that the username and
// email are free. The password is stored as a bcrypt hash.
func (s *AuthService) RegisterUser(ctx context.Context, in SignupInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, in.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
		FullName: in.FullName,
		Bio:      in.Bio,
		Role:     role,
		IsActive: true,
	}

	err = s.userRepo.WithTx(ctx, func(repo repositories.UserRepository) error {
		taken, err := repo.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: username '%s' already taken", apperrors.ErrConflict, in.Username)
		}
		taken, err = repo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email '%s' already registered", apperrors.ErrConflict, in.Email)
		}
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersRegistered.Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
// Unknown users, wrong passwords and disabled accounts are all rejected as
// Unauthorized.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrUnauthorized)
	}

	tokenString, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("User logged in")
	return &LoginResult{Token: tokenString, User: user}, nil
}

// IssueToken signs an HS256 token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("Token validation failed")
		return nil, fmt.Errorf("%w: invalid token: %v", apperrors.ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
}

// Authenticate validates the token and reloads its user, so role changes and
// deactivation take effect before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrUnauthorized)
	}

	return &models.Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}
