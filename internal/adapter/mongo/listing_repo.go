package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/renohome/listing-service/internal/entity"
	"github.com/renohome/listing-service/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listingCollectionName = "listings"

type ListingMongoRepository struct {
	db *mongo.Database
}

func NewListingMongoRepository(client *mongo.Client, dbName string) *ListingMongoRepository {
	return &ListingMongoRepository{
		db: client.Database(dbName),
	}
}

type zoneDocument struct {
	Name        string   `bson:"name"`
	Description string   `bson:"description,omitempty"`
	Size        string   `bson:"size,omitempty"`
	Images      []string `bson:"images,omitempty"`
}

type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Price       int64              `bson:"price"`
	Location    string             `bson:"location"`
	Province    string             `bson:"province,omitempty"`
	District    string             `bson:"district,omitempty"`
	SubDistrict string             `bson:"sub_district,omitempty"`
	ZipCode     string             `bson:"zip_code,omitempty"`
	Type        string             `bson:"type"`
	Category    string             `bson:"category"`
	Status      string             `bson:"status"`
	Date        string             `bson:"date,omitempty"`
	Views       int64              `bson:"views"`
	Beds        int                `bson:"beds"`
	Baths       int                `bson:"baths"`
	Area        int                `bson:"area"`
	Description string             `bson:"desc,omitempty"`
	MapURL      string             `bson:"map_url,omitempty"`
	Images      []string           `bson:"images,omitempty"`
	Image       string             `bson:"image,omitempty"` // legacy single-image documents
	Zones       []zoneDocument     `bson:"zones,omitempty"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at"`
}

func toListingDocument(l *entity.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		Title:       l.Title,
		Price:       l.Price,
		Location:    l.Location,
		Province:    l.Province,
		District:    l.District,
		SubDistrict: l.SubDistrict,
		ZipCode:     l.ZipCode,
		Type:        string(l.Type),
		Category:    string(l.Category),
		Status:      string(l.Status),
		Date:        l.Date,
		Views:       l.Views,
		Beds:        l.Beds,
		Baths:       l.Baths,
		Area:        l.Area,
		Description: l.Description,
		MapURL:      l.MapURL,
		Images:      l.Images,
		CreatedAt:   primitive.NewDateTimeFromTime(l.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(l.UpdatedAt),
	}
	for _, z := range l.Zones {
		doc.Zones = append(doc.Zones, zoneDocument(z))
	}
	if l.ID != "" {
		objID, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

// toListingEntity normalizes loosely shaped documents: legacy single `image`
// fields fold into Images, nil slices become empty, and a blank category or
// status falls back to its default. Keeping this at the store boundary means
// the search core never sees a half-shaped listing.
func toListingEntity(doc *listingDocument) entity.Listing {
	images := doc.Images
	if len(images) == 0 && doc.Image != "" {
		images = []string{doc.Image}
	}
	if images == nil {
		images = []string{}
	}

	category := entity.Category(doc.Category)
	if category == "" {
		category = entity.CategoryAll
	}
	status := entity.ListingStatus(doc.Status)
	if status == "" {
		status = entity.StatusAvailable
	}

	l := entity.Listing{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Price:       doc.Price,
		Location:    doc.Location,
		Province:    doc.Province,
		District:    doc.District,
		SubDistrict: doc.SubDistrict,
		ZipCode:     doc.ZipCode,
		Type:        entity.PropertyType(doc.Type),
		Category:    category,
		Status:      status,
		Date:        doc.Date,
		Views:       doc.Views,
		Beds:        doc.Beds,
		Baths:       doc.Baths,
		Area:        doc.Area,
		Description: doc.Description,
		MapURL:      doc.MapURL,
		Images:      images,
		CreatedAt:   doc.CreatedAt.Time(),
		UpdatedAt:   doc.UpdatedAt.Time(),
	}
	for _, z := range doc.Zones {
		l.Zones = append(l.Zones, entity.Zone(z))
	}
	return l
}

func (r *ListingMongoRepository) Create(ctx context.Context, listing *entity.Listing) (string, error) {
	doc, err := toListingDocument(listing)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(listingCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create listing in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *ListingMongoRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc listingDocument
	err = r.db.Collection(listingCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing by id from mongo: %w", err)
	}
	l := toListingEntity(&doc)
	return &l, nil
}

func (r *ListingMongoRepository) Update(ctx context.Context, listing *entity.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("listing ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"title":        doc.Title,
			"price":        doc.Price,
			"location":     doc.Location,
			"province":     doc.Province,
			"district":     doc.District,
			"sub_district": doc.SubDistrict,
			"zip_code":     doc.ZipCode,
			"type":         doc.Type,
			"category":     doc.Category,
			"status":       doc.Status,
			"date":         doc.Date,
			"beds":         doc.Beds,
			"baths":        doc.Baths,
			"area":         doc.Area,
			"desc":         doc.Description,
			"map_url":      doc.MapURL,
			"images":       doc.Images,
			"zones":        doc.Zones,
			"updated_at":   doc.UpdatedAt,
		},
		// Drop the legacy field once a document is rewritten with images.
		"$unset": bson.M{"image": ""},
	}

	res, err := r.db.Collection(listingCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update listing in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingMongoRepository) UpdateStatus(ctx context.Context, id string, status entity.ListingStatus) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(listingCollectionName).UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update listing status in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(listingCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete listing from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Snapshot loads the whole collection, newest first, for in-memory search.
func (r *ListingMongoRepository) Snapshot(ctx context.Context) ([]entity.Listing, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(listingCollectionName).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings snapshot from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listings snapshot from mongo: %w", err)
	}

	listings := make([]entity.Listing, len(docs))
	for i, doc := range docs {
		listings[i] = toListingEntity(&doc)
	}
	return listings, nil
}

func (r *ListingMongoRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(listingCollectionName).UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment listing views in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Watch follows the collection's change stream and calls onChange for every
// event until ctx is cancelled. Requires mongo to run as a replica set; the
// caller decides how to degrade when that is unavailable.
func (r *ListingMongoRepository) Watch(ctx context.Context, onChange func()) error {
	stream, err := r.db.Collection(listingCollectionName).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("failed to open listings change stream: %w", err)
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		onChange()
	}
	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("listings change stream failed: %w", err)
	}
	return nil
}
