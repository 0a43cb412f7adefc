package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionRepository implements the repositories.TransactionRepository interface
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) repositories.TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create creates a new transaction. The unique index on checkoutSessionId
// turns concurrent webhook redelivery into ErrDuplicate instead of a second
// document.
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, transaction)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByCheckoutSessionID finds a transaction by its checkout session id
func (r *TransactionRepository) FindByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"checkoutSessionId": checkoutSessionID}).Decode(&transaction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateStatusIfPending transitions a pending transaction to a terminal
// status. The pending filter keeps terminal statuses immutable under webhook
// redelivery.
func (r *TransactionRepository) UpdateStatusIfPending(ctx context.Context, checkoutSessionID, status, errDetail string) (bool, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"error":     errDetail,
		"updatedAt": time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{
		"checkoutSessionId": checkoutSessionID,
		"status":            models.TransactionPending,
	}, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// FindAll finds all transactions sorted newest-first
func (r *TransactionRepository) FindAll(ctx context.Context, limit int64) ([]*models.Transaction, error) {
	return r.find(ctx, bson.M{}, limit)
}

// FindByMember finds a member's transactions sorted newest-first
func (r *TransactionRepository) FindByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Transaction, error) {
	return r.find(ctx, bson.M{"member": memberID}, limit)
}

// DeleteByMember removes all transactions of a member (cascade on member deletion)
func (r *TransactionRepository) DeleteByMember(ctx context.Context, memberID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"member": memberID})
	return err
}

func (r *TransactionRepository) find(ctx context.Context, filter bson.M, limit int64) ([]*models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}
