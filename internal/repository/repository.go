package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ecommerce_backend/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEmail is returned by Authorization.Create when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Lookups return (nil, nil) when the record does not exist.
type Authorization interface {
	Create(ctx context.Context, email, hash string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type ItemRepo interface {
	List(ctx context.Context, category string, maxPrice *float64) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Create(ctx context.Context, it models.Item) (models.Item, error)
	Update(ctx context.Context, id string, p models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

// CartRepo mutates a cart in a single store operation so that concurrent
// writers on the same cart never overwrite each other.
type CartRepo interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	// Append creates the cart when missing.
	Append(ctx context.Context, userID string, it models.CartItem) (*models.Cart, error)
	// Remove returns (nil, nil) when the user has no cart.
	Remove(ctx context.Context, userID, cartItemID string) (*models.Cart, error)
}

// LoginAttempts counts failed logins per key inside a sliding window.
type LoginAttempts interface {
	Failures(ctx context.Context, key string) (int64, error)
	RecordFailure(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

type Repository struct {
	Auth     Authorization
	Items    ItemRepo
	Carts    CartRepo
	Attempts LoginAttempts // nil disables login throttling
}

func NewSQLiteRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:  NewUserRepository(db),
		Items: NewItemSQLite(db),
		Carts: NewCartSQLite(db),
	}
}

func NewMongoRepository(db *mongo.Database) *Repository {
	return &Repository{
		Auth:  NewUserMongo(db),
		Items: NewItemMongo(db),
		Carts: NewCartMongo(db),
	}
}
