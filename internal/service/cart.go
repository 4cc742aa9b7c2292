package service

import (
	"context"
	"errors"
	"time"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/repository"

	"github.com/google/uuid"
)

var ErrCartNotFound = errors.New("cart not found")

type CartService struct {
	itemRepo repository.ItemRepo
	cartRepo repository.CartRepo
	now      func() time.Time
}

func NewCartService(itemRepo repository.ItemRepo, cartRepo repository.CartRepo) *CartService {
	return &CartService{
		itemRepo: itemRepo,
		cartRepo: cartRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func itemsOf(c *models.Cart) []models.CartItem {
	if c == nil || c.Items == nil {
		return []models.CartItem{}
	}
	return c.Items
}

// Items returns an empty list for users who never added anything.
func (s *CartService) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	c, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return itemsOf(c), nil
}

// Add copies the catalog item into the cart. Later catalog changes do not
// reach the copy.
func (s *CartService) Add(ctx context.Context, userID, itemID string) ([]models.CartItem, error) {
	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}

	c, err := s.cartRepo.Append(ctx, userID, models.CartItem{
		ID:       uuid.NewString(),
		ItemID:   it.ID,
		Name:     it.Name,
		Price:    it.Price,
		Category: it.Category,
		ImageURL: it.ImageURL,
		AddedAt:  s.now(),
	})
	if err != nil {
		return nil, err
	}
	return itemsOf(c), nil
}

// Remove filters out the snapshot with the given cart-item id. An id that is
// not in the cart leaves it unchanged.
func (s *CartService) Remove(ctx context.Context, userID, cartItemID string) ([]models.CartItem, error) {
	c, err := s.cartRepo.Remove(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return itemsOf(c), nil
}
