package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
)

const collectionProviders = "providers"

type ProviderRepository struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{col: db.Collection(collectionProviders)}
}

type mongoProvider struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Address     string             `bson:"address"`
	Description string             `bson:"description,omitempty"`
	Tel         string             `bson:"tel,omitempty"`
	Images      []string           `bson:"images"`
	Pic         string             `bson:"pic"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoProvider) toDomain() *domain.Provider {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Provider{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Address:     m.Address,
		Description: m.Description,
		Tel:         m.Tel,
		Images:      images,
		Pic:         m.Pic,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainProvider(p *domain.Provider) mongoProvider {
	return mongoProvider{
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		Tel:         p.Tel,
		Images:      p.Images,
		Pic:         p.Pic,
		CreatedAt:   p.CreatedAt,
	}
}

// Create inserts a provider document. The unique index on name maps
// duplicate-key failures to domain.ErrProviderExists.
func (r *ProviderRepository) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainProvider(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProviderExists
		}
		return nil, err
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProviderNotFound
	}

	var m mongoProvider
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// List returns a page of providers sorted by created_at descending, plus
// the total count.
func (r *ProviderRepository) List(ctx context.Context, page ports.ProviderPage) ([]*domain.Provider, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page.Page - 1) * page.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*domain.Provider
	for cur.Next(ctx) {
		var m mongoProvider
		if err := cur.Decode(&m); err != nil {
			return nil, 0, err
		}
		out = append(out, m.toDomain())
	}
	return out, total, cur.Err()
}

func (r *ProviderRepository) Update(ctx context.Context, id string, p *domain.Provider) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProviderNotFound
	}

	set := bson.M{
		"name":        p.Name,
		"address":     p.Address,
		"description": p.Description,
		"tel":         p.Tel,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoProvider
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProviderNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProviderExists
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// SetImages replaces the stored image key list.
func (r *ProviderRepository) SetImages(ctx context.Context, id string, images []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProviderNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"images": images}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProviderNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index.
func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
