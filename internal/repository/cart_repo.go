package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ecommerce_backend/internal/models"

	"github.com/google/uuid"
)

// CartSQLite keeps each cart as one row whose items column is a JSON array.
type CartSQLite struct {
	db *sql.DB
}

func NewCartSQLite(db *sql.DB) *CartSQLite { return &CartSQLite{db: db} }

var _ CartRepo = (*CartSQLite)(nil)

const (
	selectCartSQL = `SELECT id, user_id, items FROM carts WHERE user_id = ?`

	appendCartItemSQL = `
		INSERT INTO carts (id, user_id, items) VALUES (?, ?, json_array(json(?)))
		ON CONFLICT(user_id) DO UPDATE SET
			items = json_insert(carts.items, '$[#]', json(?))
		RETURNING id, user_id, items
	`

	removeCartItemSQL = `
		UPDATE carts SET items = (
			SELECT json_group_array(json(value)) FROM json_each(carts.items)
			WHERE json_extract(value, '$.id') IS NOT ?
		)
		WHERE user_id = ?
		RETURNING id, user_id, items
	`
)

// marshalCartItem converts a snapshot to the JSON stored in the items array.
func marshalCartItem(it models.CartItem) (string, error) {
	b, err := json.Marshal(it)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalCartItems parses the items column; an empty column is an empty cart.
func unmarshalCartItems(s string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if s == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func scanCart(row rowScanner) (*models.Cart, error) {
	var (
		c         models.Cart
		itemsJSON string
	)
	if err := row.Scan(&c.ID, &c.UserID, &itemsJSON); err != nil {
		return nil, err
	}
	items, err := unmarshalCartItems(itemsJSON)
	if err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	c.Items = items
	return &c, nil
}

// Get returns (nil, nil) when the user has no cart yet.
func (r *CartSQLite) Get(ctx context.Context, userID string) (*models.Cart, error) {
	c, err := scanCart(r.db.QueryRowContext(ctx, selectCartSQL, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cart for user %q: %w", userID, err)
	}
	return c, nil
}

// Append upserts the cart and pushes the snapshot in one statement.
func (r *CartSQLite) Append(ctx context.Context, userID string, it models.CartItem) (*models.Cart, error) {
	itemJSON, err := marshalCartItem(it)
	if err != nil {
		return nil, fmt.Errorf("encode cart item: %w", err)
	}
	row := r.db.QueryRowContext(ctx, appendCartItemSQL, uuid.NewString(), userID, itemJSON, itemJSON)
	c, err := scanCart(row)
	if err != nil {
		return nil, fmt.Errorf("append to cart for user %q: %w", userID, err)
	}
	return c, nil
}

// Remove drops every snapshot whose id equals cartItemID.
func (r *CartSQLite) Remove(ctx context.Context, userID, cartItemID string) (*models.Cart, error) {
	c, err := scanCart(r.db.QueryRowContext(ctx, removeCartItemSQL, cartItemID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("remove from cart for user %q: %w", userID, err)
	}
	return c, nil
}
