package mongodb

import (
	"context"
	"errors"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipientRepository implements the repositories.RecipientRepository interface
type RecipientRepository struct {
	collection *mongo.Collection
}

// NewRecipientRepository creates a new RecipientRepository
func NewRecipientRepository(db *mongo.Database) repositories.RecipientRepository {
	return &RecipientRepository{
		collection: db.Collection("recipients"),
	}
}

// Create inserts a payout record. The unique indexes on
// (cycleYear, cycleMonth) and (cycleYear, member) reject a second winner for
// the same cycle and a repeat winner within a year.
func (r *RecipientRepository) Create(ctx context.Context, recipient *models.Recipient) error {
	_, err := r.collection.InsertOne(ctx, recipient)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByCycleYear finds all payout records for a cycle year
func (r *RecipientRepository) FindByCycleYear(ctx context.Context, year int) ([]*models.Recipient, error) {
	opts := options.Find().SetSort(bson.M{"receivedAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"cycleYear": year}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipients []*models.Recipient
	if err := cursor.All(ctx, &recipients); err != nil {
		return nil, err
	}
	return recipients, nil
}

// FindByCycle finds the payout record for one cycle, if drawn
func (r *RecipientRepository) FindByCycle(ctx context.Context, year, month int) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.collection.FindOne(ctx, bson.M{"cycleYear": year, "cycleMonth": month}).Decode(&recipient)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// FindLatest finds the most recent payout record by receivedAt
func (r *RecipientRepository) FindLatest(ctx context.Context) (*models.Recipient, error) {
	opts := options.FindOne().SetSort(bson.M{"receivedAt": -1})
	var recipient models.Recipient
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&recipient)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}
