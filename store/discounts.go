package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkpress/bookshop-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DiscountStore struct {
	discounts *mongo.Collection
}

func NewDiscountStore(db *mongo.Database) *DiscountStore {
	return &DiscountStore{discounts: db.Collection("discounts")}
}

func (s *DiscountStore) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var discount models.Discount
	err := s.discounts.FindOne(ctx, bson.M{"_id": strings.ToUpper(code)}).Decode(&discount)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

// IncrementUsage bumps the redemption counter with an atomic $inc so
// concurrent redemptions of the same code never lose an update. A missing
// code is a no-op, not an error.
func (s *DiscountStore) IncrementUsage(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.discounts.UpdateOne(
		ctx,
		bson.M{"_id": strings.ToUpper(code)},
		bson.M{"$inc": bson.M{"usageCount": 1}},
	)
	return err
}

func (s *DiscountStore) Create(ctx context.Context, code string, percent int) (*models.Discount, error) {
	if percent < 1 || percent > 100 {
		return nil, fmt.Errorf("percent must be between 1 and 100")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	discount := models.Discount{Code: code, Percent: percent, UsageCount: 0}
	_, err := s.discounts.InsertOne(ctx, discount)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateCode
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (s *DiscountStore) List(ctx context.Context) ([]models.Discount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.discounts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var discounts []models.Discount
	if err := cursor.All(ctx, &discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}
