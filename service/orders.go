package service

import (
	"context"
	"errors"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/bookshop-backend-go/metrics"
	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/inkpress/bookshop-backend-go/payment"
	"github.com/inkpress/bookshop-backend-go/store"
	"github.com/sirupsen/logrus"
)

// OrderForm is the validated order submission. Region is the caller's
// ISO country code, resolved by the handler from the request, and drives
// geography-dependent pricing.
type OrderForm struct {
	UserID        string               `json:"userId"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	Street        string               `json:"street"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	Country       string               `json:"country"`
	PostalCode    string               `json:"postalCode"`
	Variant       models.Variant       `json:"variant"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	DiscountCode  string               `json:"discountCode"`
	Region        string               `json:"-"`
}

func (f *OrderForm) validate() error {
	if f.Variant != models.VariantPaperback && f.Variant != models.VariantHardcover {
		return errors.New("variant must be paperback or hardcover")
	}
	if len(strings.TrimSpace(f.Name)) < 2 {
		return errors.New("name too short")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return errors.New("invalid email")
	}
	digits := strings.TrimPrefix(strings.TrimSpace(f.Phone), "+")
	if len(digits) < 10 || len(digits) > 15 {
		return errors.New("invalid phone")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return errors.New("invalid phone")
		}
	}
	for _, field := range []string{f.Address, f.Street, f.City, f.State, f.Country, f.PostalCode} {
		if strings.TrimSpace(field) == "" {
			return errors.New("incomplete shipping address")
		}
	}
	if strings.TrimSpace(f.UserID) == "" {
		return errors.New("missing user id")
	}
	if f.PaymentMethod != models.PaymentCOD && f.PaymentMethod != models.PaymentPrepaid {
		return errors.New("unknown payment method")
	}
	return nil
}

// PlaceOrderResult reports either a confirmed COD order or a prepaid
// transaction awaiting the customer on the gateway's pay page.
type PlaceOrderResult struct {
	OrderID     string `json:"orderId,omitempty"`
	TxnID       string `json:"txnId,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// PlaceOrder runs the whole order flow. COD orders are confirmed in place:
// stock is taken first (so an oversell rejects before anything persists),
// then the order is written and the discount redemption counted. Prepaid
// orders only leave a pending record behind; stock and discount move when
// the gateway confirms payment in ConfirmPayment.
func (s *Service) PlaceOrder(ctx context.Context, form OrderForm) (*PlaceOrderResult, error) {
	if err := form.validate(); err != nil {
		s.log.WithError(err).Debug("order form rejected")
		return nil, ErrValidation
	}

	prices := s.pricing.Resolve(form.Region)
	original := prices.For(form.Variant)

	discountAmount := 0
	code := strings.ToUpper(strings.TrimSpace(form.DiscountCode))
	if code != "" {
		discount, err := s.discounts.GetByCode(ctx, code)
		switch {
		case err == nil:
			discountAmount = int(math.Round(float64(original) * float64(discount.Percent) / 100))
		case errors.Is(err, store.ErrNotFound):
			// Unknown codes are accepted with zero discount rather than
			// failing the order.
			code = ""
		default:
			return nil, err
		}
	}

	if form.PaymentMethod == models.PaymentPrepaid {
		return s.placePrepaid(ctx, form, original, discountAmount, code)
	}
	return s.placeCOD(ctx, form, original, discountAmount, code)
}

func (s *Service) placeCOD(ctx context.Context, form OrderForm, original, discountAmount int, code string) (*PlaceOrderResult, error) {
	if err := s.stock.Decrement(ctx, form.Variant, 1); err != nil {
		return nil, err
	}

	order := s.buildOrder(form, original, discountAmount, code)
	if err := s.orders.Create(ctx, &order); err != nil {
		// Give the copy back; the order never existed.
		if ierr := s.stock.Increment(ctx, form.Variant, 1); ierr != nil {
			s.log.WithError(ierr).WithField("variant", form.Variant).Error("stock compensation failed")
		}
		return nil, err
	}

	if code != "" {
		if err := s.discounts.IncrementUsage(ctx, code); err != nil {
			s.log.WithError(err).WithField("code", code).Warn("discount usage increment failed")
		}
	}

	s.cache.InvalidateOrders(ctx, order.UserID)
	metrics.OrdersPlaced.WithLabelValues(string(models.PaymentCOD), string(order.Variant)).Inc()
	s.mailer.SendOrderConfirmation(&order)

	s.log.WithFields(logrus.Fields{"orderId": order.ID, "variant": order.Variant, "price": order.Price}).Info("cod order placed")
	return &PlaceOrderResult{OrderID: order.ID}, nil
}

func (s *Service) placePrepaid(ctx context.Context, form OrderForm, original, discountAmount int, code string) (*PlaceOrderResult, error) {
	txnID := newTxnID()

	pending := models.PendingOrder{
		TxnID:          txnID,
		UserID:         form.UserID,
		Name:           strings.TrimSpace(form.Name),
		Email:          form.Email,
		Phone:          form.Phone,
		Address:        form.Address,
		Street:         form.Street,
		City:           form.City,
		State:          form.State,
		Country:        form.Country,
		PostalCode:     form.PostalCode,
		Variant:        form.Variant,
		OriginalPrice:  original,
		DiscountCode:   code,
		DiscountAmount: discountAmount,
		Price:          original - discountAmount,
		PaymentMethod:  models.PaymentPrepaid,
	}
	if err := s.orders.CreatePending(ctx, &pending); err != nil {
		return nil, err
	}

	redirectURL, err := s.gateway.Initiate(ctx, payment.InitiateRequest{
		TxnID:       txnID,
		UserID:      form.UserID,
		AmountPaise: int64(pending.Price) * 100,
		Mobile:      form.Phone,
	})
	if err != nil {
		// Initiation failed, so the pending record must not linger: no
		// order exists until payment is confirmed.
		if derr := s.orders.DeletePending(ctx, txnID); derr != nil {
			s.log.WithError(derr).WithField("txnId", txnID).Error("failed to delete pending order")
		}
		metrics.PaymentFailures.Inc()
		return nil, err
	}

	metrics.PaymentInitiations.Inc()
	s.log.WithFields(logrus.Fields{"txnId": txnID, "price": pending.Price}).Info("prepaid order initiated")
	return &PlaceOrderResult{TxnID: txnID, RedirectURL: redirectURL}, nil
}

// ConfirmPayment reconciles a prepaid transaction after the gateway calls
// back (or the customer returns from the pay page). The provider's status
// endpoint is the source of truth; the callback body is only a hint.
// A confirmed transaction claims its pending record atomically, so when the
// server-to-server callback races the browser return exactly one of them
// promotes and the other finds nothing to do.
func (s *Service) ConfirmPayment(ctx context.Context, txnID string) (*models.Order, error) {
	status, err := s.gateway.CheckStatus(ctx, txnID)
	if err != nil {
		return nil, err
	}

	switch status.Code {
	case payment.CodeSuccess:
		pending, err := s.orders.ClaimPending(ctx, txnID)
		if err != nil {
			return nil, err
		}
		return s.promotePending(ctx, pending)
	case payment.CodePending:
		if _, err := s.orders.GetPending(ctx, txnID); err != nil {
			return nil, err
		}
		return nil, ErrPaymentPending
	default:
		if _, err := s.orders.ClaimPending(ctx, txnID); err != nil {
			return nil, err
		}
		metrics.PaymentFailures.Inc()
		s.log.WithFields(logrus.Fields{"txnId": txnID, "code": status.Code}).Info("payment declined")
		return nil, ErrPaymentFailed
	}
}

func (s *Service) promotePending(ctx context.Context, pending *models.PendingOrder) (*models.Order, error) {
	order := models.Order{
		ID:             uuid.NewString(),
		UserID:         pending.UserID,
		Name:           pending.Name,
		Email:          pending.Email,
		Phone:          pending.Phone,
		Address:        pending.Address,
		Street:         pending.Street,
		City:           pending.City,
		State:          pending.State,
		Country:        pending.Country,
		PostalCode:     pending.PostalCode,
		Variant:        pending.Variant,
		OriginalPrice:  pending.OriginalPrice,
		DiscountCode:   pending.DiscountCode,
		DiscountAmount: pending.DiscountAmount,
		Price:          pending.Price,
		PaymentMethod:  models.PaymentPrepaid,
		Status:         models.OrderStatusNew,
		CreatedAt:      time.Now(),
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		// Put the claim back so reconciliation can be retried.
		if rerr := s.orders.CreatePending(ctx, pending); rerr != nil {
			s.log.WithError(rerr).WithField("txnId", pending.TxnID).Error("failed to restore pending order")
		}
		return nil, err
	}

	// Stock moves only after the order exists, so a retried promotion can
	// never charge two units for one sale. Payment is already captured, so
	// an empty shelf must not block the order; log it for the admin to
	// sort out instead.
	if err := s.stock.Decrement(ctx, pending.Variant, 1); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"txnId": pending.TxnID, "variant": pending.Variant}).
			Warn("paid order exceeds recorded stock")
	}

	if order.DiscountCode != "" {
		if err := s.discounts.IncrementUsage(ctx, order.DiscountCode); err != nil {
			s.log.WithError(err).WithField("code", order.DiscountCode).Warn("discount usage increment failed")
		}
	}

	s.cache.InvalidateOrders(ctx, order.UserID)
	metrics.OrdersPlaced.WithLabelValues(string(models.PaymentPrepaid), string(order.Variant)).Inc()
	metrics.PaymentConfirmations.Inc()
	s.mailer.SendOrderConfirmation(&order)

	s.log.WithFields(logrus.Fields{"orderId": order.ID, "txnId": pending.TxnID}).Info("prepaid order confirmed")
	return &order, nil
}

func (s *Service) buildOrder(form OrderForm, original, discountAmount int, code string) models.Order {
	return models.Order{
		ID:             uuid.NewString(),
		UserID:         form.UserID,
		Name:           strings.TrimSpace(form.Name),
		Email:          form.Email,
		Phone:          form.Phone,
		Address:        form.Address,
		Street:         form.Street,
		City:           form.City,
		State:          form.State,
		Country:        form.Country,
		PostalCode:     form.PostalCode,
		Variant:        form.Variant,
		OriginalPrice:  original,
		DiscountCode:   code,
		DiscountAmount: discountAmount,
		Price:          original - discountAmount,
		PaymentMethod:  form.PaymentMethod,
		Status:         models.OrderStatusNew,
		CreatedAt:      time.Now(),
	}
}

// newTxnID builds a gateway-safe merchant transaction id from a fresh order
// id and the current time.
func newTxnID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TX" + strings.ToUpper(id[:12]) + time.Now().UTC().Format("20060102150405")
}

func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	return s.orders.GetByIDForUser(ctx, userID, orderID)
}
