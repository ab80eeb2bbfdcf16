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

const collectionBookings = "bookings"

type bookingDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Category    string             `bson:"category"`
	PhoneNumber string             `bson:"phone_number"`
	Description string             `bson:"description"`
	Duration    string             `bson:"duration"`
	AddsOn      []domain.AddOn     `bson:"adds_on"`
	DateBooked  time.Time          `bson:"date_booked"`
	Email       string             `bson:"email"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toBookingDoc(b *domain.Booking) bookingDoc {
	return bookingDoc{
		Category:    b.Category,
		PhoneNumber: b.PhoneNumber,
		Description: b.Description,
		Duration:    b.Duration,
		AddsOn:      b.AddsOn,
		DateBooked:  b.DateBooked,
		Email:       b.Email,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (d bookingDoc) toDomain() *domain.Booking {
	addOns := d.AddsOn
	if addOns == nil {
		addOns = []domain.AddOn{}
	}
	return &domain.Booking{
		ID:          d.ID.Hex(),
		Category:    d.Category,
		PhoneNumber: d.PhoneNumber,
		Description: d.Description,
		Duration:    d.Duration,
		AddsOn:      addOns,
		DateBooked:  d.DateBooked.UTC(),
		Email:       d.Email,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// BookingRepository persists bookings. The unique index built by
// EnsureIndexes is what makes the natural key authoritative under
// concurrent creates.
type BookingRepository struct {
	col   *mongo.Collection
	shape domain.KeyShape
}

func NewBookingRepository(db *mongo.Database, shape domain.KeyShape) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings), shape: shape}
}

func subjectField(shape domain.KeyShape) string {
	if shape == domain.KeyByPhone {
		return "phone_number"
	}
	return "category"
}

// Create inserts a booking and assigns its ID.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toBookingDoc(b))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBooking
		}
		return storeErr("insert booking", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := objectID(id, domain.ErrBookingNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByKey looks a booking up by its natural key. key.Shape must match the
// shape the repository indexes on.
func (r *BookingRepository) FindByKey(ctx context.Context, key domain.NaturalKey) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{
		subjectField(key.Shape): key.Subject,
		"date_booked":           key.Date,
		"email":                 key.Email,
	})
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bookingDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, storeErr("find booking", err)
	}
	return doc.toDomain(), nil
}

// List returns every booking, earliest date first.
func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date_booked", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list bookings", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("decode bookings", err)
	}

	out := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Update sets the supplied fields and returns the updated document.
func (r *BookingRepository) Update(ctx context.Context, id string, f ports.BookingFields) (*domain.Booking, error) {
	oid, err := objectID(id, domain.ErrBookingNotFound)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Category != nil {
		set["category"] = *f.Category
	}
	if f.PhoneNumber != nil {
		set["phone_number"] = *f.PhoneNumber
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
	if f.DateBooked != nil {
		set["date_booked"] = *f.DateBooked
	}
	if f.Email != nil {
		set["email"] = *f.Email
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bookingDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		switch {
		case isNoDocuments(err):
			return nil, domain.ErrBookingNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateBooking
		}
		return nil, storeErr("update booking", err)
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrBookingNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete booking", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates the unique natural key index for the configured
// shape, plus a plain index on email for lookups.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: subjectField(r.shape), Value: 1},
				{Key: "date_booked", Value: 1},
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("natural_key_" + string(r.shape)),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
