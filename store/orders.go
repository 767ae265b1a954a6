package store

import (
	"context"

	"github.com/inkpress/bookshop-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderStore struct {
	orders  *mongo.Collection
	pending *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{
		orders:  db.Collection("orders"),
		pending: db.Collection("pending_orders"),
	}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.orders.InsertOne(ctx, order)
	return err
}

// ListAll returns every order, newest first. Admin dashboard only.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) GetByIDForUser(ctx context.Context, userID, orderID string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the order status and, when hasReview is non-nil, the
// hasReview flag in the same write.
func (s *OrderStore) UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus, hasReview *bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{"status": status}
	if hasReview != nil {
		set["hasReview"] = *hasReview
	}

	result, err := s.orders.UpdateOne(ctx, bson.M{"_id": orderID, "userId": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OrderStore) CreatePending(ctx context.Context, pending *models.PendingOrder) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.pending.InsertOne(ctx, pending)
	return err
}

func (s *OrderStore) GetPending(ctx context.Context, txnID string) (*models.PendingOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var pending models.PendingOrder
	err := s.pending.FindOne(ctx, bson.M{"_id": txnID}).Decode(&pending)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// ClaimPending atomically takes the pending order out of the collection
// and returns it. Of two concurrent reconciliations for the same
// transaction, only one gets the document; the other sees ErrNotFound.
func (s *OrderStore) ClaimPending(ctx context.Context, txnID string) (*models.PendingOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var pending models.PendingOrder
	err := s.pending.FindOneAndDelete(ctx, bson.M{"_id": txnID}).Decode(&pending)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

func (s *OrderStore) DeletePending(ctx context.Context, txnID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.pending.DeleteOne(ctx, bson.M{"_id": txnID})
	return err
}
