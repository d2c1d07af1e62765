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

const collectionBusinesses = "businesses"

// caseInsensitive makes "Padaria" and "padaria" collide on the unique name
// index.
var caseInsensitive = &options.Collation{Locale: "pt", Strength: 2}

type BusinessRepository struct {
	col *mongo.Collection
}

func NewBusinessRepository(db *mongo.Database) *BusinessRepository {
	return &BusinessRepository{col: db.Collection(collectionBusinesses)}
}

type businessDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Address     string             `bson:"address,omitempty"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *businessDocument) toDomain() *domain.Business {
	return &domain.Business{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		Address:     d.Address,
		Category:    domain.Category(d.Category),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := businessDocument{
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		Category:    string(b.Category),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBusinessExists
		}
		return nil, fmt.Errorf("insert business: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByIDAndOwner filters on both fields in one query.
func (r *BusinessRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Business, error) {
	oid, ok := objectID(id)
	if !ok || ownerID == "" {
		return nil, domain.ErrBusinessNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
}

func (r *BusinessRepository) findOne(ctx context.Context, filter bson.M) (*domain.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc businessDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("find business: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BusinessRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Business, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *BusinessRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Business, error) {
	return r.find(ctx, bson.M{"category": string(category)})
}

func (r *BusinessRepository) find(ctx context.Context, filter bson.M) ([]*domain.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []businessDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode businesses: %w", err)
	}

	out := make([]*domain.Business, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	oid, ok := objectID(b.ID)
	if !ok {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":        b.Name,
		"description": b.Description,
		"address":     b.Address,
		"category":    string(b.Category),
		"updated_at":  b.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrBusinessExists
		}
		return fmt.Errorf("update business: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the businesses collection.
func (r *BusinessRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
