package models

import "time"

type Review struct {
	ID        string    `bson:"_id" json:"id"`
	OrderID   string    `bson:"orderId" json:"orderId"`
	UserID    string    `bson:"userId" json:"userId"`
	UserName  string    `bson:"userName" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
