package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"ecommerce_backend/internal/models"
	dbconn "ecommerce_backend/internal/repository/db"

	"go.mongodb.org/mongo-driver/mongo"
)

// getMongoDB connects to MONGO_URI and returns a throwaway database.
func getMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	name := fmt.Sprintf("ecommerce_test_%d", time.Now().UnixNano())
	client, db, err := dbconn.ConnectMongo(ctx, uri, name)
	if err != nil {
		t.Skipf("Mongo not available: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestUserMongo_CreateAndDuplicate(t *testing.T) {
	db := getMongoDB(t)
	ctx := context.Background()
	repo := NewUserMongo(db)

	id, err := repo.Create(ctx, "alice@x.com", "h1")
	if err != nil || id == "" {
		t.Fatalf("Create: id=%q err=%v", id, err)
	}

	if _, err := repo.Create(ctx, "alice@x.com", "h2"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	u, err := repo.GetByEmail(ctx, "alice@x.com")
	if err != nil || u == nil || u.ID != id || u.PasswordHash != "h1" {
		t.Fatalf("GetByEmail: user=%+v err=%v", u, err)
	}

	u, err = repo.GetByEmail(ctx, "nobody@x.com")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", u, err)
	}
}

func TestItemMongo_CRUDAndFilters(t *testing.T) {
	db := getMongoDB(t)
	ctx := context.Background()
	repo := NewItemMongo(db)

	book, err := repo.Create(ctx, models.Item{Name: "Book", Price: 10, Category: "books"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, models.Item{Name: "Pen", Price: 2.5, Category: "office"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, models.Item{Name: "Atlas", Price: 40, Category: "books"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.List(ctx, "", nil)
	if err != nil || len(all) != 3 || all[0].ID != book.ID {
		t.Fatalf("List all: %+v err=%v", all, err)
	}

	limit := 10.0
	cheapBooks, err := repo.List(ctx, "books", &limit)
	if err != nil || len(cheapBooks) != 1 || cheapBooks[0].Name != "Book" {
		t.Fatalf("List filtered: %+v err=%v", cheapBooks, err)
	}

	newPrice := 12.0
	updated, err := repo.Update(ctx, book.ID, models.ItemPatch{Price: &newPrice})
	if err != nil || updated == nil || updated.Price != 12 || updated.Name != "Book" {
		t.Fatalf("Update: %+v err=%v", updated, err)
	}

	missing, err := repo.Update(ctx, "not-an-object-id", models.ItemPatch{Price: &newPrice})
	if err != nil || missing != nil {
		t.Fatalf("Update unknown: expected (nil, nil), got (%+v, %v)", missing, err)
	}

	if err := repo.Delete(ctx, book.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, book.ID); err != nil {
		t.Fatalf("second Delete should succeed, got %v", err)
	}
	if got, err := repo.GetByID(ctx, book.ID); err != nil || got != nil {
		t.Fatalf("expected deleted item to be gone, got (%+v, %v)", got, err)
	}
}

func TestCartMongo_AppendRemove(t *testing.T) {
	db := getMongoDB(t)
	ctx := context.Background()
	repo := NewCartMongo(db)

	if c, err := repo.Remove(ctx, "u1", "x"); err != nil || c != nil {
		t.Fatalf("Remove without cart: expected (nil, nil), got (%+v, %v)", c, err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	for _, id := range []string{"ci1", "ci2"} {
		if _, err := repo.Append(ctx, "u1", models.CartItem{ID: id, ItemID: "i1", Name: "Book", Price: 10, AddedAt: now}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	c, err := repo.Remove(ctx, "u1", "ci1")
	if err != nil || c == nil || len(c.Items) != 1 || c.Items[0].ID != "ci2" {
		t.Fatalf("Remove: %+v err=%v", c, err)
	}

	c, err = repo.Remove(ctx, "u1", "unknown")
	if err != nil || c == nil || len(c.Items) != 1 {
		t.Fatalf("Remove unknown id should leave cart unchanged: %+v err=%v", c, err)
	}
}
