package service

import (
	"context"
	"strings"

	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/sirupsen/logrus"
)

// ChangeOrderStatus is an admin override: any status may move to any other,
// including cancelled back to delivered. No transition table is enforced.
func (s *Service) ChangeOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return ErrValidation
	}
	if err := s.orders.UpdateStatus(ctx, userID, orderID, status, nil); err != nil {
		return err
	}
	s.cache.InvalidateOrders(ctx, userID)
	s.log.WithFields(logrus.Fields{"orderId": orderID, "status": status}).Info("order status changed")
	return nil
}

func (s *Service) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *Service) GetStock(ctx context.Context) (*models.Stock, error) {
	return s.stock.Get(ctx)
}

// SetStock overwrites the shelf counts. Negative quantities are rejected
// before anything is written.
func (s *Service) SetStock(ctx context.Context, stock models.Stock) error {
	if stock.Negative() {
		return ErrValidation
	}
	return s.stock.Set(ctx, stock)
}

func (s *Service) ListDiscounts(ctx context.Context) ([]models.Discount, error) {
	return s.discounts.List(ctx)
}

func (s *Service) CreateDiscount(ctx context.Context, code string, percent int) (*models.Discount, error) {
	if strings.TrimSpace(code) == "" || percent < 1 || percent > 100 {
		return nil, ErrValidation
	}
	return s.discounts.Create(ctx, code, percent)
}
