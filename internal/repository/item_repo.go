package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecommerce_backend/internal/models"

	"github.com/google/uuid"
)

type ItemSQLite struct {
	db *sql.DB
}

func NewItemSQLite(db *sql.DB) *ItemSQLite { return &ItemSQLite{db: db} }

var _ ItemRepo = (*ItemSQLite)(nil)

const (
	itemColumns = `id, name, price, category, image_url`

	selectItemsSQL    = `SELECT ` + itemColumns + ` FROM items`
	selectItemByIDSQL = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	insertItemSQL     = `INSERT INTO items (id, name, price, category, image_url, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	deleteItemSQL     = `DELETE FROM items WHERE id = ?`

	// NULL arguments keep the stored value, which gives partial updates in one statement.
	updateItemSQL = `
		UPDATE items SET
			name = COALESCE(?, name),
			price = COALESCE(?, price),
			category = COALESCE(?, category),
			image_url = COALESCE(?, image_url)
		WHERE id = ?
		RETURNING ` + itemColumns
)

type rowScanner interface {
	Scan(dest ...any) error
}

// nullable maps an absent patch field to SQL NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func scanItem(row rowScanner) (models.Item, error) {
	var it models.Item
	err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Category, &it.ImageURL)
	return it, err
}

// List returns items filtered by exact category and/or inclusive max price, in insertion order.
func (r *ItemSQLite) List(ctx context.Context, category string, maxPrice *float64) ([]models.Item, error) {
	var (
		conds []string
		args  []any
	)
	if category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}
	if maxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *maxPrice)
	}

	q := selectItemsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY rowid ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	out := make([]models.Item, 0, 16)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns (nil, nil) when the item does not exist.
func (r *ItemSQLite) GetByID(ctx context.Context, id string) (*models.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, selectItemByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select item %q: %w", id, err)
	}
	return &it, nil
}

// Create assigns an ID when the item has none and stores it.
func (r *ItemSQLite) Create(ctx context.Context, it models.Item) (models.Item, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertItemSQL,
		it.ID,
		it.Name,
		it.Price,
		it.Category,
		it.ImageURL,
		time.Now().UTC(),
	)
	if err != nil {
		return models.Item{}, fmt.Errorf("insert item %q: %w", it.Name, err)
	}
	return it, nil
}

// Update applies the non-nil fields of p. Returns (nil, nil) when id is unknown.
func (r *ItemSQLite) Update(ctx context.Context, id string, p models.ItemPatch) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx, updateItemSQL,
		nullable(p.Name),
		nullable(p.Price),
		nullable(p.Category),
		nullable(p.ImageURL),
		id,
	)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update item %q: %w", id, err)
	}
	return &it, nil
}

// Delete removes the item; deleting an unknown id is not an error.
func (r *ItemSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteItemSQL, id); err != nil {
		return fmt.Errorf("delete item %q: %w", id, err)
	}
	return nil
}
