package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce_backend/internal/models"
	dbconn "ecommerce_backend/internal/repository/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---- documents ----

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

type itemDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Category  string             `bson:"category"`
	ImageURL  string             `bson:"imageUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d itemDoc) toModel() models.Item {
	return models.Item{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Price:    d.Price,
		Category: d.Category,
		ImageURL: d.ImageURL,
	}
}

// Snapshots keep their cart-assigned id as a plain string so $pull can match it.
type cartItemDoc struct {
	ID       string    `bson:"_id"`
	ItemID   string    `bson:"itemId"`
	Name     string    `bson:"name"`
	Price    float64   `bson:"price"`
	Category string    `bson:"category"`
	ImageURL string    `bson:"imageUrl,omitempty"`
	AddedAt  time.Time `bson:"addedAt"`
}

type cartDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"userId"`
	Items  []cartItemDoc      `bson:"items"`
}

func (d cartDoc) toModel() *models.Cart {
	c := &models.Cart{
		ID:     d.ID.Hex(),
		UserID: d.UserID,
		Items:  make([]models.CartItem, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		c.Items = append(c.Items, models.CartItem{
			ID:       it.ID,
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Category: it.Category,
			ImageURL: it.ImageURL,
			AddedAt:  it.AddedAt.UTC(),
		})
	}
	return c
}

// ---- users ----

type UserMongo struct {
	coll *mongo.Collection
}

func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{coll: db.Collection(dbconn.UsersCollection)}
}

var _ Authorization = (*UserMongo)(nil)

func (r *UserMongo) Create(ctx context.Context, email, passwordHash string) (string, error) {
	res, err := r.coll.InsertOne(ctx, userDoc{Email: email, Password: passwordHash})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("insert user %q: %w", email, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user %q: unexpected id type %T", email, res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *UserMongo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %q: %w", email, err)
	}
	return &models.User{ID: d.ID.Hex(), Email: d.Email, PasswordHash: d.Password}, nil
}

// ---- items ----

type ItemMongo struct {
	coll *mongo.Collection
}

func NewItemMongo(db *mongo.Database) *ItemMongo {
	return &ItemMongo{coll: db.Collection(dbconn.ItemsCollection)}
}

var _ ItemRepo = (*ItemMongo)(nil)

// List returns matching items in insertion order (ObjectIDs grow with time).
func (r *ItemMongo) List(ctx context.Context, category string, maxPrice *float64) ([]models.Item, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if maxPrice != nil {
		filter["price"] = bson.M{"$lte": *maxPrice}
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Item, 0, 16)
	for cur.Next(ctx) {
		var d itemDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, d.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// An id that is not a valid ObjectID cannot exist, so it reads as "not found".
func (r *ItemMongo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var d itemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find item %q: %w", id, err)
	}
	it := d.toModel()
	return &it, nil
}

func (r *ItemMongo) Create(ctx context.Context, it models.Item) (models.Item, error) {
	d := itemDoc{
		ID:        primitive.NewObjectID(),
		Name:      it.Name,
		Price:     it.Price,
		Category:  it.Category,
		ImageURL:  it.ImageURL,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return models.Item{}, fmt.Errorf("insert item %q: %w", it.Name, err)
	}
	return d.toModel(), nil
}

func patchToSet(p models.ItemPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.ImageURL != nil {
		set["imageUrl"] = *p.ImageURL
	}
	return set
}

func (r *ItemMongo) Update(ctx context.Context, id string, p models.ItemPatch) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	var d itemDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchToSet(p)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update item %q: %w", id, err)
	}
	it := d.toModel()
	return &it, nil
}

func (r *ItemMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete item %q: %w", id, err)
	}
	return nil
}

// ---- carts ----

type CartMongo struct {
	coll *mongo.Collection
}

func NewCartMongo(db *mongo.Database) *CartMongo {
	return &CartMongo{coll: db.Collection(dbconn.CartsCollection)}
}

var _ CartRepo = (*CartMongo)(nil)

func (r *CartMongo) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var d cartDoc
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart for user %q: %w", userID, err)
	}
	return d.toModel(), nil
}

func (r *CartMongo) Append(ctx context.Context, userID string, it models.CartItem) (*models.Cart, error) {
	snapshot := cartItemDoc{
		ID:       it.ID,
		ItemID:   it.ItemID,
		Name:     it.Name,
		Price:    it.Price,
		Category: it.Category,
		ImageURL: it.ImageURL,
		AddedAt:  it.AddedAt,
	}
	var d cartDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$push": bson.M{"items": snapshot}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, fmt.Errorf("append to cart for user %q: %w", userID, err)
	}
	return d.toModel(), nil
}

func (r *CartMongo) Remove(ctx context.Context, userID, cartItemID string) (*models.Cart, error) {
	var d cartDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"_id": cartItemID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("remove from cart for user %q: %w", userID, err)
	}
	return d.toModel(), nil
}
