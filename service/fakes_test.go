package service

import (
	"context"
	"errors"
	"sync"

	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/inkpress/bookshop-backend-go/payment"
	"github.com/inkpress/bookshop-backend-go/pricing"
	"github.com/inkpress/bookshop-backend-go/store"
	"github.com/sirupsen/logrus"
)

// In-memory doubles for the orchestrator's collaborators. They mirror the
// MongoDB stores' contracts, including the conditional stock decrement and
// the no-op usage increment for missing codes.

type fakeOrderStore struct {
	mu         sync.Mutex
	orders     map[string]models.Order
	pending    map[string]models.PendingOrder
	failCreate bool
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:  make(map[string]models.Order),
		pending: make(map[string]models.PendingOrder),
	}
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("insert failed")
	}
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderStore) ListAll(context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) GetByIDForUser(_ context.Context, userID, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, userID, orderID string, status models.OrderStatus, hasReview *bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return store.ErrNotFound
	}
	o.Status = status
	if hasReview != nil {
		o.HasReview = *hasReview
	}
	f.orders[orderID] = o
	return nil
}

func (f *fakeOrderStore) CreatePending(_ context.Context, pending *models.PendingOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[pending.TxnID] = *pending
	return nil
}

func (f *fakeOrderStore) GetPending(_ context.Context, txnID string) (*models.PendingOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pending[txnID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeOrderStore) ClaimPending(_ context.Context, txnID string) (*models.PendingOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pending[txnID]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(f.pending, txnID)
	return &p, nil
}

func (f *fakeOrderStore) DeletePending(_ context.Context, txnID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, txnID)
	return nil
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *fakeOrderStore) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (f *fakeOrderStore) anyOrder() *models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		return &o
	}
	return nil
}

type fakeDiscountStore struct {
	mu        sync.Mutex
	discounts map[string]models.Discount
}

func newFakeDiscountStore(discounts ...models.Discount) *fakeDiscountStore {
	f := &fakeDiscountStore{discounts: make(map[string]models.Discount)}
	for _, d := range discounts {
		f.discounts[d.Code] = d
	}
	return f
}

func (f *fakeDiscountStore) GetByCode(_ context.Context, code string) (*models.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discounts[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDiscountStore) IncrementUsage(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discounts[code]
	if !ok {
		return nil
	}
	d.UsageCount++
	f.discounts[code] = d
	return nil
}

func (f *fakeDiscountStore) Create(_ context.Context, code string, percent int) (*models.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.discounts[code]; ok {
		return nil, store.ErrDuplicateCode
	}
	d := models.Discount{Code: code, Percent: percent}
	f.discounts[code] = d
	return &d, nil
}

func (f *fakeDiscountStore) List(context.Context) ([]models.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Discount, 0, len(f.discounts))
	for _, d := range f.discounts {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDiscountStore) usage(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discounts[code].UsageCount
}

type fakeStockStore struct {
	mu      sync.Mutex
	stock   models.Stock
	setErr  error
	setDone bool
}

func newFakeStockStore(paperback, hardcover int) *fakeStockStore {
	return &fakeStockStore{stock: models.Stock{Paperback: paperback, Hardcover: hardcover}}
}

func (f *fakeStockStore) Get(context.Context) (*models.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.stock
	return &s, nil
}

func (f *fakeStockStore) Set(_ context.Context, stock models.Stock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.stock = stock
	f.setDone = true
	return nil
}

func (f *fakeStockStore) Decrement(_ context.Context, variant models.Variant, n int) error {
	if !variant.Physical() {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch variant {
	case models.VariantPaperback:
		if f.stock.Paperback < n {
			return store.ErrOutOfStock
		}
		f.stock.Paperback -= n
	case models.VariantHardcover:
		if f.stock.Hardcover < n {
			return store.ErrOutOfStock
		}
		f.stock.Hardcover -= n
	}
	return nil
}

func (f *fakeStockStore) Increment(_ context.Context, variant models.Variant, n int) error {
	if !variant.Physical() {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch variant {
	case models.VariantPaperback:
		f.stock.Paperback += n
	case models.VariantHardcover:
		f.stock.Hardcover += n
	}
	return nil
}

func (f *fakeStockStore) paperback() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock.Paperback
}

type fakeReviewStore struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (f *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStore) ExistsForOrder(_ context.Context, orderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

type fakeGateway struct {
	mu          sync.Mutex
	redirectURL string
	initErr     error
	statusCode  string
	statusErr   error
	initiated   []payment.InitiateRequest
}

func (f *fakeGateway) Initiate(_ context.Context, req payment.InitiateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initErr != nil {
		return "", f.initErr
	}
	f.initiated = append(f.initiated, req)
	return f.redirectURL, nil
}

func (f *fakeGateway) CheckStatus(_ context.Context, txnID string) (*payment.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &payment.StatusResponse{
		Success: f.statusCode == payment.CodeSuccess,
		Code:    f.statusCode,
	}, nil
}

type fakeCache struct {
	mu            sync.Mutex
	invalidations []string
}

func (f *fakeCache) InvalidateOrders(_ context.Context, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations = append(f.invalidations, userID)
}

func (f *fakeCache) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.invalidations)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) SendOrderConfirmation(order *models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, order.ID)
}

type fixture struct {
	svc       *Service
	orders    *fakeOrderStore
	discounts *fakeDiscountStore
	stock     *fakeStockStore
	reviews   *fakeReviewStore
	gateway   *fakeGateway
	cache     *fakeCache
	mailer    *fakeMailer
	prices    pricing.Prices
}

func newFixture(discounts ...models.Discount) *fixture {
	f := &fixture{
		orders:    newFakeOrderStore(),
		discounts: newFakeDiscountStore(discounts...),
		stock:     newFakeStockStore(10, 10),
		reviews:   &fakeReviewStore{},
		gateway:   &fakeGateway{redirectURL: "https://pay.example/checkout/abc", statusCode: payment.CodeSuccess},
		cache:     &fakeCache{},
		mailer:    &fakeMailer{},
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	resolver := pricing.NewResolver()
	f.prices = resolver.Resolve("IN")
	f.svc = New(f.orders, f.discounts, f.stock, f.reviews, resolver, f.gateway, f.cache, f.mailer, log)
	return f
}

func validForm() OrderForm {
	return OrderForm{
		UserID:        "user-1",
		Name:          "Asha Verma",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Address:       "14 Lake View Apartments",
		Street:        "MG Road",
		City:          "Pune",
		State:         "Maharashtra",
		Country:       "India",
		PostalCode:    "411001",
		Variant:       models.VariantPaperback,
		PaymentMethod: models.PaymentCOD,
		Region:        "IN",
	}
}
