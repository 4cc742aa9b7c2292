package service

import (
	"context"
	"fmt"
	"sync"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/repository"
)

// memItems is an in-memory repository.ItemRepo.
type memItems struct {
	mu    sync.Mutex
	seq   int
	order []string
	byID  map[string]models.Item
	err   error
}

func newMemItems(items ...models.Item) *memItems {
	m := &memItems{byID: map[string]models.Item{}}
	for _, it := range items {
		_, _ = m.Create(context.Background(), it)
	}
	return m
}

func (m *memItems) List(_ context.Context, category string, maxPrice *float64) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Item
	for _, id := range m.order {
		it, ok := m.byID[id]
		if !ok {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		if maxPrice != nil && it.Price > *maxPrice {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *memItems) GetByID(_ context.Context, id string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	it, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (m *memItems) Create(_ context.Context, it models.Item) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Item{}, m.err
	}
	if it.ID == "" {
		m.seq++
		it.ID = fmt.Sprintf("i%d", m.seq)
	}
	m.byID[it.ID] = it
	m.order = append(m.order, it.ID)
	return it, nil
}

func (m *memItems) Update(_ context.Context, id string, p models.ItemPatch) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	it, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.ImageURL != nil {
		it.ImageURL = *p.ImageURL
	}
	m.byID[id] = it
	return &it, nil
}

func (m *memItems) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.byID, id)
	return nil
}

// memCarts is an in-memory repository.CartRepo; each call is atomic.
type memCarts struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
	err   error
}

func newMemCarts() *memCarts { return &memCarts{carts: map[string]*models.Cart{}} }

func cloneCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp
}

func (m *memCarts) Get(_ context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (m *memCarts) Append(_ context.Context, userID string, it models.CartItem) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[userID]
	if !ok {
		c = &models.Cart{ID: "c-" + userID, UserID: userID}
		m.carts[userID] = c
	}
	c.Items = append(c.Items, it)
	return cloneCart(c), nil
}

func (m *memCarts) Remove(_ context.Context, userID, cartItemID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ID != cartItemID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	return cloneCart(c), nil
}

var (
	_ repository.ItemRepo = (*memItems)(nil)
	_ repository.CartRepo = (*memCarts)(nil)
)
