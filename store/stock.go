package store

import (
	"context"
	"fmt"

	"github.com/inkpress/bookshop-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Stock lives in a single document so a conditional update can check and
// decrement a variant's count in one atomic step.
const stockDocID = "book"

type StockStore struct {
	stock *mongo.Collection
}

func NewStockStore(db *mongo.Database) *StockStore {
	return &StockStore{stock: db.Collection("stock")}
}

func (s *StockStore) Get(ctx context.Context) (*models.Stock, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var stock models.Stock
	err := s.stock.FindOne(ctx, bson.M{"_id": stockDocID}).Decode(&stock)
	if err == mongo.ErrNoDocuments {
		return &models.Stock{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Set overwrites the stock counts. Negative quantities are rejected.
func (s *StockStore) Set(ctx context.Context, stock models.Stock) error {
	if stock.Negative() {
		return fmt.Errorf("stock quantities must not be negative")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := s.stock.ReplaceOne(ctx, bson.M{"_id": stockDocID}, bson.M{
		"_id":       stockDocID,
		"paperback": stock.Paperback,
		"hardcover": stock.Hardcover,
	}, opts)
	return err
}

// Decrement takes n copies of a physical variant off the shelf. The filter
// requires the current count to cover n, so an oversell attempt matches no
// document and comes back as ErrOutOfStock. The e-book is unlimited and
// decrementing it is a no-op.
func (s *StockStore) Decrement(ctx context.Context, variant models.Variant, n int) error {
	if !variant.Physical() {
		return nil
	}
	field, err := variantField(variant)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result := s.stock.FindOneAndUpdate(
		ctx,
		bson.M{"_id": stockDocID, field: bson.M{"$gte": n}},
		bson.M{"$inc": bson.M{field: -n}},
	)
	if result.Err() == mongo.ErrNoDocuments {
		return ErrOutOfStock
	}
	return result.Err()
}

// Increment gives copies back, compensating a decrement whose order failed
// to persist.
func (s *StockStore) Increment(ctx context.Context, variant models.Variant, n int) error {
	if !variant.Physical() {
		return nil
	}
	field, err := variantField(variant)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err = s.stock.UpdateOne(ctx, bson.M{"_id": stockDocID}, bson.M{"$inc": bson.M{field: n}}, opts)
	return err
}

func variantField(variant models.Variant) (string, error) {
	switch variant {
	case models.VariantPaperback:
		return "paperback", nil
	case models.VariantHardcover:
		return "hardcover", nil
	}
	return "", fmt.Errorf("variant %q carries no stock", variant)
}
