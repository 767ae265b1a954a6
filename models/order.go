package models

import "time"

type Variant string

const (
	VariantPaperback Variant = "paperback"
	VariantHardcover Variant = "hardcover"
	VariantEbook     Variant = "ebook"
)

// Physical reports whether the variant ships and therefore carries stock.
func (v Variant) Physical() bool {
	return v == VariantPaperback || v == VariantHardcover
}

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentPrepaid PaymentMethod = "prepaid"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID             string        `bson:"_id" json:"id"`
	UserID         string        `bson:"userId" json:"userId"`
	Name           string        `bson:"name" json:"name"`
	Email          string        `bson:"email" json:"email"`
	Phone          string        `bson:"phone" json:"phone"`
	Address        string        `bson:"address" json:"address"`
	Street         string        `bson:"street" json:"street"`
	City           string        `bson:"city" json:"city"`
	State          string        `bson:"state" json:"state"`
	Country        string        `bson:"country" json:"country"`
	PostalCode     string        `bson:"postalCode" json:"postalCode"`
	Variant        Variant       `bson:"variant" json:"variant"`
	OriginalPrice  int           `bson:"originalPrice" json:"originalPrice"`
	DiscountCode   string        `bson:"discountCode,omitempty" json:"discountCode,omitempty"`
	DiscountAmount int           `bson:"discountAmount" json:"discountAmount"`
	Price          int           `bson:"price" json:"price"`
	PaymentMethod  PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	Status         OrderStatus   `bson:"status" json:"status"`
	HasReview      bool          `bson:"hasReview" json:"hasReview"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
}

// PendingOrder holds a prepaid order between payment initiation and the
// gateway callback. It is keyed by the gateway transaction id and is
// promoted to a real Order only after the gateway confirms payment.
type PendingOrder struct {
	TxnID          string        `bson:"_id" json:"txnId"`
	UserID         string        `bson:"userId" json:"userId"`
	Name           string        `bson:"name" json:"name"`
	Email          string        `bson:"email" json:"email"`
	Phone          string        `bson:"phone" json:"phone"`
	Address        string        `bson:"address" json:"address"`
	Street         string        `bson:"street" json:"street"`
	City           string        `bson:"city" json:"city"`
	State          string        `bson:"state" json:"state"`
	Country        string        `bson:"country" json:"country"`
	PostalCode     string        `bson:"postalCode" json:"postalCode"`
	Variant        Variant       `bson:"variant" json:"variant"`
	OriginalPrice  int           `bson:"originalPrice" json:"originalPrice"`
	DiscountCode   string        `bson:"discountCode,omitempty" json:"discountCode,omitempty"`
	DiscountAmount int           `bson:"discountAmount" json:"discountAmount"`
	Price          int           `bson:"price" json:"price"`
	PaymentMethod  PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
}
