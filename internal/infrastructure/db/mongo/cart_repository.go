package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

const collectionCartLines = "cart_lines"

// CartRepository stores one document per (user_id, item_id). The pair is
// backed by a unique index, and Save and Increment are single upserts on it,
// so concurrent writers to the same line never produce duplicates.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCartLines)}
}

type cartLineDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ItemID    string             `bson:"item_id"`
	Quantity  int                `bson:"quantity"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *cartLineDocument) toDomain() *domain.CartLine {
	return &domain.CartLine{
		UserID:    d.UserID,
		ItemID:    d.ItemID,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func lineKey(userID, itemID string) bson.M {
	return bson.M{"user_id": userID, "item_id": itemID}
}

func (r *CartRepository) FindLine(ctx context.Context, userID, itemID string) (*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc cartLineDocument
	if err := r.col.FindOne(ctx, lineKey(userID, itemID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotInCart
		}
		return nil, fmt.Errorf("find cart line: %w", err)
	}
	return doc.toDomain(), nil
}

// ListLines returns the user's lines ordered by when they were first added.
func (r *CartRepository) ListLines(ctx context.Context, userID string) ([]*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer cur.Close(ctx)

	var docs []cartLineDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cart lines: %w", err)
	}

	out := make([]*domain.CartLine, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Save upserts the line. created_at is only written on insert so the
// listing order survives later quantity changes.
func (r *CartRepository) Save(ctx context.Context, line *domain.CartLine) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	createdAt := line.CreatedAt
	if createdAt.IsZero() {
		createdAt = line.UpdatedAt
	}

	update := bson.M{
		"$set": bson.M{
			"quantity":   line.Quantity,
			"updated_at": line.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": createdAt,
		},
	}

	_, err := r.col.UpdateOne(ctx, lineKey(line.UserID, line.ItemID), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save cart line: %w", err)
	}
	return nil
}

// Increment applies delta with $inc in one upsert and returns the stored
// quantity after the write.
func (r *CartRepository) Increment(ctx context.Context, userID, itemID string, delta int, at time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc":         bson.M{"quantity": delta},
		"$set":         bson.M{"updated_at": at},
		"$setOnInsert": bson.M{"created_at": at},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc cartLineDocument
	if err := r.col.FindOneAndUpdate(ctx, lineKey(userID, itemID), update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("increment cart line: %w", err)
	}
	return doc.Quantity, nil
}

func (r *CartRepository) DeleteLine(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, lineKey(userID, itemID)); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteByItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"item_id": bson.M{"$in": itemIDs}}); err != nil {
		return fmt.Errorf("delete cart lines by item: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the cart_lines collection.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "item_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "item_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
