package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL         = time.Hour // 1 hour
	passwordHashCost = 10

	defaultMaxLoginAttempts = 5
	defaultLoginCooldown    = 15 * time.Minute
)

// Domain errors for auth flows.
var (
	ErrUserExists        = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTooManyAttempts   = errors.New("too many failed login attempts")
	errEmptyPassword     = errors.New("password is empty")
	errMissingSigningKey = errors.New("signing key is empty")
)

// AuthConfig is built once at startup and never mutated afterwards.
type AuthConfig struct {
	SigningKey       []byte
	MaxLoginAttempts int
	LoginCooldown    time.Duration
}

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	attempts repository.LoginAttempts
	cfg      AuthConfig
}

// NewAuthService wires the credential store; attempts may be nil to disable throttling.
func NewAuthService(repo repository.Authorization, attempts repository.LoginAttempts, cfg AuthConfig) *AuthService {
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = defaultMaxLoginAttempts
	}
	if cfg.LoginCooldown <= 0 {
		cfg.LoginCooldown = defaultLoginCooldown
	}
	return &AuthService{authRepo: repo, attempts: attempts, cfg: cfg}
}

// SignUp rejects a registered email, otherwise hashes the password and creates the user.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (string, error) {
	existing, err := s.authRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.authRepo.Create(ctx, email, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// lost a race with a concurrent sign-up
		return "", ErrUserExists
	}
	return id, err
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Login validates credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.throttled(ctx, email) {
		return "", ErrTooManyAttempts
	}

	u, err := s.authRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		s.recordFailure(ctx, email)
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return "", ErrInvalidPassword
	}

	s.resetFailures(ctx, email)
	return issueToken(s.cfg.SigningKey, models.Identity{UserID: u.ID, Email: u.Email}, time.Now())
}

// ParseToken verifies signature, algorithm and expiry and returns the embedded identity.
func (s *AuthService) ParseToken(accessToken string) (models.Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.SigningKey, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// The limiter is best-effort: store errors never block a login.
func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.attempts == nil {
		return false
	}
	n, err := s.attempts.Failures(ctx, email)
	return err == nil && n >= int64(s.cfg.MaxLoginAttempts)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.attempts == nil {
		return
	}
	_, _ = s.attempts.RecordFailure(ctx, email, s.cfg.LoginCooldown)
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.attempts == nil {
		return
	}
	_ = s.attempts.Reset(ctx, email)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for an identity
func issueToken(key []byte, id models.Identity, now time.Time) (string, error) {
	if len(key) == 0 {
		return "", errMissingSigningKey
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: id.UserID,
		Email:  id.Email,
	})
	return token.SignedString(key)
}
