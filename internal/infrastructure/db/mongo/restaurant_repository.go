package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

const restaurantsCollection = "restaurants"

type RestaurantRepository struct {
	coll *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{coll: db.Collection(restaurantsCollection)}
}

type addressDoc struct {
	Street     string `bson:"rue"`
	City       string `bson:"ville"`
	PostalCode string `bson:"codePostal"`
}

type imageDoc struct {
	ID       string `bson:"_id"`
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

type reviewDoc struct {
	ID      string    `bson:"_id"`
	UserID  string    `bson:"userId"`
	Note    float64   `bson:"note"`
	Comment string    `bson:"commentaire,omitempty"`
	Date    time.Time `bson:"date"`
}

type restaurantDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"nom"`
	Cuisine       string             `bson:"cuisine"`
	Address       addressDoc         `bson:"adresse"`
	Phone         string             `bson:"telephone,omitempty"`
	Description   string             `bson:"description,omitempty"`
	OwnerID       primitive.ObjectID `bson:"userId"`
	Images        []imageDoc         `bson:"images"`
	Reviews       []reviewDoc        `bson:"avis"`
	AverageRating float64            `bson:"noteMoyenne"`
	ReviewCount   int                `bson:"nombreAvis"`
	Version       int64              `bson:"version"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func toDoc(r *domain.Restaurant) (restaurantDoc, error) {
	owner, err := primitive.ObjectIDFromHex(r.OwnerID)
	if err != nil {
		return restaurantDoc{}, fmt.Errorf("invalid owner id %q: %w", r.OwnerID, err)
	}

	doc := restaurantDoc{
		Name:    r.Name,
		Cuisine: r.Cuisine,
		Address: addressDoc{
			Street:     r.Address.Street,
			City:       r.Address.City,
			PostalCode: r.Address.PostalCode,
		},
		Phone:         r.Phone,
		Description:   r.Description,
		OwnerID:       owner,
		Images:        make([]imageDoc, 0, len(r.Images)),
		Reviews:       make([]reviewDoc, 0, len(r.Reviews)),
		AverageRating: r.AverageRating,
		ReviewCount:   r.ReviewCount,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, img := range r.Images {
		doc.Images = append(doc.Images, imageDoc{ID: img.ID, URL: img.URL, PublicID: img.PublicID})
	}
	for _, a := range r.Reviews {
		doc.Reviews = append(doc.Reviews, reviewDoc{ID: a.ID, UserID: a.UserID, Note: a.Note, Comment: a.Comment, Date: a.Date})
	}
	return doc, nil
}

func (d restaurantDoc) toDomain() *domain.Restaurant {
	r := &domain.Restaurant{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Cuisine: d.Cuisine,
		Address: domain.Address{
			Street:     d.Address.Street,
			City:       d.Address.City,
			PostalCode: d.Address.PostalCode,
		},
		Phone:         d.Phone,
		Description:   d.Description,
		OwnerID:       d.OwnerID.Hex(),
		Images:        make([]domain.Image, 0, len(d.Images)),
		Reviews:       make([]domain.Review, 0, len(d.Reviews)),
		AverageRating: d.AverageRating,
		ReviewCount:   d.ReviewCount,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, img := range d.Images {
		r.Images = append(r.Images, domain.Image{ID: img.ID, URL: img.URL, PublicID: img.PublicID})
	}
	for _, a := range d.Reviews {
		r.Reviews = append(r.Reviews, domain.Review{ID: a.ID, UserID: a.UserID, Note: a.Note, Comment: a.Comment, Date: a.Date})
	}
	return r
}

// Create inserts a new restaurant document at version 0.
func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	doc, err := toDoc(rest)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert restaurant: %w", err)
	}

	created := *rest
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return r.findOne(ctx, id, "")
}

func (r *RestaurantRepository) FindByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Restaurant, error) {
	return r.findOne(ctx, id, ownerID)
}

// findOne retrieves a restaurant by id. When ownerID is non-empty the
// query additionally filters on the owner, so a foreign document reads as
// absent.
func (r *RestaurantRepository) findOne(ctx context.Context, id, ownerID string) (*domain.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	filter := bson.M{"_id": oid}
	if ownerID != "" {
		owner, err := primitive.ObjectIDFromHex(ownerID)
		if err != nil {
			return nil, domain.ErrRestaurantNotFound
		}
		filter["userId"] = owner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc restaurantDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns one page of the owner's restaurants plus the total match
// count. Filters compose conjunctively; text filters are case-insensitive
// regex matches, mirroring the API contract.
func (r *RestaurantRepository) List(ctx context.Context, f ports.ListRestaurantsFilter) ([]*domain.Restaurant, int64, error) {
	owner, err := primitive.ObjectIDFromHex(f.OwnerID)
	if err != nil {
		return []*domain.Restaurant{}, 0, nil
	}

	filter := bson.M{"userId": owner}
	if f.Search != "" {
		re := ciRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"nom": re},
			bson.M{"cuisine": re},
			bson.M{"adresse.ville": re},
		}
	}
	if f.Cuisine != "" {
		filter["cuisine"] = ciRegex(f.Cuisine)
	}
	if f.City != "" {
		filter["adresse.ville"] = ciRegex(f.City)
	}
	if f.MinRating != nil {
		filter["noteMoyenne"] = bson.M{"$gte": *f.MinRating}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	dir := 1
	if f.SortDesc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: f.SortBy, Value: dir}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Restaurant, 0, f.Limit)
	for cur.Next(ctx) {
		var doc restaurantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode restaurant: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	return items, total, nil
}

// Save replaces the document guarded by the version the caller loaded and
// bumps it by one. A filter miss on an existing document means another
// writer got there first.
func (r *RestaurantRepository) Save(ctx context.Context, rest *domain.Restaurant) error {
	oid, err := primitive.ObjectIDFromHex(rest.ID)
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	doc, err := toDoc(rest)
	if err != nil {
		return err
	}
	doc.ID = oid
	doc.Version = rest.Version + 1

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid, "version": rest.Version}, doc)
	if err != nil {
		return fmt.Errorf("save restaurant: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a vanished document from a lost race.
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("save restaurant: %w", err)
		}
		if n == 0 {
			return domain.ErrRestaurantNotFound
		}
		return domain.ErrVersionConflict
	}

	rest.Version = doc.Version
	return nil
}

// Delete removes an owned document and returns its last state.
func (r *RestaurantRepository) Delete(ctx context.Context, id, ownerID string) (*domain.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc restaurantDoc
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid, "userId": owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("delete restaurant: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing owner-scoped lookups and the
// list filters.
func (r *RestaurantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "noteMoyenne", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// ciRegex builds a case-insensitive substring matcher, quoting the input
// so user-supplied text cannot inject regex syntax.
func ciRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
