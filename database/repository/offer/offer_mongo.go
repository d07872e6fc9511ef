package offerRepo

import (
	"context"
	"fmt"
	"time"

	"skytrip/database"
	"skytrip/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOfferRepo implements OfferRepository using MongoDB.
type MongoOfferRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferRepo creates a new instance of OfferRepository using MongoDB.
func NewMongoOfferRepo() OfferRepository {
	repo := &MongoOfferRepo{coll: database.Collection("offers")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create offer indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoOfferRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a new offer document.
func (r *MongoOfferRepo) Create(ctx context.Context, offer *models.TicketOffer) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, offer); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// GetByID retrieves an offer by its ID.
func (r *MongoOfferRepo) GetByID(ctx context.Context, id string) (*models.TicketOffer, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var offer models.TicketOffer
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offer %s: %w", id, err)
	}
	return &offer, nil
}

// ListActive retrieves all active offers, newest first.
func (r *MongoOfferRepo) ListActive(ctx context.Context) ([]models.TicketOffer, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

// ListBySeller retrieves all of a seller's offers, newest first.
func (r *MongoOfferRepo) ListBySeller(ctx context.Context, sellerID string) ([]models.TicketOffer, error) {
	return r.list(ctx, bson.M{"seller_id": sellerID})
}

func (r *MongoOfferRepo) list(ctx context.Context, filter bson.M) ([]models.TicketOffer, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer cursor.Close(ctx)

	var offers []models.TicketOffer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}
	return offers, nil
}

// Claim atomically deactivates an active offer on behalf of a buyer. The
// is_active filter makes the write a compare-and-set; losing the race
// surfaces as ErrNotActive.
func (r *MongoOfferRepo) Claim(ctx context.Context, id, buyerID string, at time.Time) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "is_active": true}
	update := bson.M{"$set": bson.M{
		"is_active": false,
		"sold_to":   buyerID,
		"sold_at":   at,
	}}
	return r.conditionalDeactivate(ctx, id, filter, update)
}

// Deactivate flips an active offer to inactive without recording a buyer.
func (r *MongoOfferRepo) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "is_active": true}
	update := bson.M{"$set": bson.M{"is_active": false}}
	return r.conditionalDeactivate(ctx, id, filter, update)
}

func (r *MongoOfferRepo) conditionalDeactivate(ctx context.Context, id string, filter, update bson.M) error {
	res := r.coll.FindOneAndUpdate(ctx, filter, update)
	err := res.Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to deactivate offer %s: %w", id, err)
	}
	count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if countErr == nil && count == 0 {
		return ErrNotFound
	}
	return ErrNotActive
}

// Delete removes a listing, restricted to its seller.
func (r *MongoOfferRepo) Delete(ctx context.Context, id, sellerID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "seller_id": sellerID})
	if err != nil {
		return fmt.Errorf("failed to delete offer %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
