// Package service implements the order orchestrator: form validation, price
// and discount resolution, order persistence, and the cash-on-delivery /
// prepaid branch with gateway reconciliation.
package service

import (
	"context"
	"errors"

	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/inkpress/bookshop-backend-go/payment"
	"github.com/inkpress/bookshop-backend-go/pricing"
	"github.com/sirupsen/logrus"
)

var (
	// ErrValidation keeps its message deliberately generic; field-level
	// detail stays in the logs, not the response.
	ErrValidation = errors.New("invalid order details")
	// ErrAlreadyReviewed rejects a second review for the same order.
	ErrAlreadyReviewed = errors.New("order already has a review")
	// ErrPaymentPending means the gateway has not settled the transaction
	// yet; the caller should retry reconciliation later.
	ErrPaymentPending = errors.New("payment not yet confirmed")
	// ErrPaymentFailed means the gateway reported a declined or failed
	// transaction; the pending order has been discarded.
	ErrPaymentFailed = errors.New("payment failed")
)

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByIDForUser(ctx context.Context, userID, orderID string) (*models.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus, hasReview *bool) error
	CreatePending(ctx context.Context, pending *models.PendingOrder) error
	GetPending(ctx context.Context, txnID string) (*models.PendingOrder, error)
	ClaimPending(ctx context.Context, txnID string) (*models.PendingOrder, error)
	DeletePending(ctx context.Context, txnID string) error
}

type DiscountStore interface {
	GetByCode(ctx context.Context, code string) (*models.Discount, error)
	IncrementUsage(ctx context.Context, code string) error
	Create(ctx context.Context, code string, percent int) (*models.Discount, error)
	List(ctx context.Context) ([]models.Discount, error)
}

type StockStore interface {
	Get(ctx context.Context) (*models.Stock, error)
	Set(ctx context.Context, stock models.Stock) error
	Decrement(ctx context.Context, variant models.Variant, n int) error
	Increment(ctx context.Context, variant models.Variant, n int) error
}

type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)
}

type Gateway interface {
	Initiate(ctx context.Context, req payment.InitiateRequest) (string, error)
	CheckStatus(ctx context.Context, txnID string) (*payment.StatusResponse, error)
}

type ViewCache interface {
	InvalidateOrders(ctx context.Context, userID string)
}

type Mailer interface {
	SendOrderConfirmation(order *models.Order)
}

type Service struct {
	orders    OrderStore
	discounts DiscountStore
	stock     StockStore
	reviews   ReviewStore
	pricing   *pricing.Resolver
	gateway   Gateway
	cache     ViewCache
	mailer    Mailer
	log       *logrus.Logger
}

func New(orders OrderStore, discounts DiscountStore, stock StockStore, reviews ReviewStore,
	resolver *pricing.Resolver, gateway Gateway, cache ViewCache, mailer Mailer, log *logrus.Logger) *Service {
	return &Service{
		orders:    orders,
		discounts: discounts,
		stock:     stock,
		reviews:   reviews,
		pricing:   resolver,
		gateway:   gateway,
		cache:     cache,
		mailer:    mailer,
		log:       log,
	}
}
