package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	DB = client.Database(os.Getenv("MONGODB_DATABASE"))
	if DB.Name() == "" {
		DB = client.Database("bookshop")
	}

	if err := ensureIndexes(ctx); err != nil {
		return err
	}

	log.Println("🗄️ Connected to MongoDB!")
	return nil
}

// ensureIndexes backs the per-user order lookups and the one-review-per-order
// guarantee with server-side indexes.
func ensureIndexes(ctx context.Context) error {
	_, err := DB.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	unique := options.Index().SetUnique(true)
	_, err = DB.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: unique,
	})
	return err
}
