package service

import (
	"context"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (models.Identity, error)
}

// Catalog exposes item listing and the authenticated item mutations.
type Catalog interface {
	List(ctx context.Context, f ItemFilter) ([]models.Item, error)
	Create(ctx context.Context, in ItemInput) (models.Item, error)
	Update(ctx context.Context, id string, p models.ItemPatch) (models.Item, error)
	Delete(ctx context.Context, id string) error
}

// Cart exposes the caller's cart. Returned slices are never nil.
type Cart interface {
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	Add(ctx context.Context, userID, itemID string) ([]models.CartItem, error)
	Remove(ctx context.Context, userID, cartItemID string) ([]models.CartItem, error)
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Authorization
	Catalog
	Cart
}

func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, repos.Attempts, auth),
		Catalog:       NewCatalogService(repos.Items),
		Cart:          NewCartService(repos.Items, repos.Carts),
	}
}
