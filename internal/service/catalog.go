package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/repository"
)

var (
	ErrItemNotFound = errors.New("item not found")

	errNameRequired  = errors.New("name is required")
	errNegativePrice = errors.New("price must be >= 0")
	errInvalidPrice  = errors.New("price must be a finite number")
)

// ValidationError marks input the caller must fix; handlers answer 400.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error { return &ValidationError{Err: err} }

type CatalogService struct {
	itemRepo repository.ItemRepo
}

func NewCatalogService(itemRepo repository.ItemRepo) *CatalogService {
	return &CatalogService{itemRepo: itemRepo}
}

func validatePrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return errInvalidPrice
	}
	if p < 0 {
		return errNegativePrice
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	if f.MaxPrice != nil && math.IsNaN(*f.MaxPrice) {
		return nil, invalid(errInvalidPrice)
	}
	items, err := s.itemRepo.List(ctx, f.Category, f.MaxPrice)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *CatalogService) Create(ctx context.Context, in ItemInput) (models.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Item{}, invalid(errNameRequired)
	}
	if err := validatePrice(in.Price); err != nil {
		return models.Item{}, invalid(err)
	}
	return s.itemRepo.Create(ctx, models.Item{
		Name:     name,
		Price:    in.Price,
		Category: in.Category,
		ImageURL: in.ImageURL,
	})
}

func (s *CatalogService) Update(ctx context.Context, id string, p models.ItemPatch) (models.Item, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return models.Item{}, invalid(errNameRequired)
		}
		p.Name = &name
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return models.Item{}, invalid(err)
		}
	}

	it, err := s.itemRepo.Update(ctx, id, p)
	if err != nil {
		return models.Item{}, err
	}
	if it == nil {
		return models.Item{}, ErrItemNotFound
	}
	return *it, nil
}

// Delete does not check existence first; unknown ids succeed.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}
