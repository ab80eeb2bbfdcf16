package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

const collectionCategories = "categories"

type categoryDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Image          string             `bson:"image"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	Duration       string             `bson:"duration"`
	AddsOn         []domain.AddOn     `bson:"adds_on"`
	AvailableDates []time.Time        `bson:"available_dates"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d categoryDoc) toDomain() *domain.Category {
	dates := make([]time.Time, 0, len(d.AvailableDates))
	for _, t := range d.AvailableDates {
		dates = append(dates, t.UTC())
	}
	addOns := d.AddsOn
	if addOns == nil {
		addOns = []domain.AddOn{}
	}
	return &domain.Category{
		ID:             d.ID.Hex(),
		Image:          d.Image,
		Title:          d.Title,
		Description:    d.Description,
		Duration:       d.Duration,
		AddsOn:         addOns,
		AvailableDates: dates,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, categoryDoc{
		Image:          c.Image,
		Title:          c.Title,
		Description:    c.Description,
		Duration:       c.Duration,
		AddsOn:         c.AddsOn,
		AvailableDates: c.AvailableDates,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	})
	if err != nil {
		return storeErr("insert category", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := objectID(id, domain.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByTitle resolves a booking's weak category reference.
func (r *CategoryRepository) FindByTitle(ctx context.Context, title string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc categoryDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, storeErr("find category", err)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	return r.find(ctx, bson.M{})
}

// ListAvailableFrom returns categories with at least one available date on
// or after day.
func (r *CategoryRepository) ListAvailableFrom(ctx context.Context, day time.Time) ([]*domain.Category, error) {
	return r.find(ctx, bson.M{"available_dates": bson.M{"$gte": day}})
}

func (r *CategoryRepository) find(ctx context.Context, filter bson.M) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("decode categories", err)
	}

	out := make([]*domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, f ports.CategoryFields) (*domain.Category, error) {
	oid, err := objectID(id, domain.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Image != nil {
		set["image"] = *f.Image
	}
	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.Duration != nil {
		set["duration"] = *f.Duration
	}
	if f.AddsOn != nil {
		set["adds_on"] = *f.AddsOn
	}
	if f.AvailableDates != nil {
		set["available_dates"] = *f.AvailableDates
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc categoryDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, storeErr("update category", err)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrCategoryNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete category", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// EnsureIndexes backs the title lookup used by slot checks and the date
// range query.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "available_dates", Value: 1}}},
	})
	return err
}
