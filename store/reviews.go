package store

import (
	"context"

	"github.com/inkpress/bookshop-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewStore struct {
	reviews *mongo.Collection
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{reviews: db.Collection("reviews")}
}

func (s *ReviewStore) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.reviews.InsertOne(ctx, review)
	return err
}

func (s *ReviewStore) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.reviews.CountDocuments(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ReviewStore) ListForOrder(ctx context.Context, orderID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.reviews.Find(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
