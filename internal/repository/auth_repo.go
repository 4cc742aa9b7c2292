package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ecommerce_backend/internal/models"

	"github.com/google/uuid"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash FROM users WHERE email = ?`
)

// Create inserts a new user and returns its generated ID.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (string, error) {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, insertUserSQL, id, email, passwordHash); err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("insert user %q: %w", email, err)
	}
	return id, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}

// sqlite reports constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
