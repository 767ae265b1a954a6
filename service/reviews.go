package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/sirupsen/logrus"
)

// SubmitReview records a rating for the caller's order. An order takes at
// most one review; submitting marks it delivered and reviewed whatever its
// prior status was.
func (s *Service) SubmitReview(ctx context.Context, orderID, userID string, rating int, text string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	order, err := s.orders.GetByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.HasReview {
		return nil, ErrAlreadyReviewed
	}
	exists, err := s.reviews.ExistsForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		UserID:    userID,
		UserName:  order.Name,
		Rating:    rating,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, err
	}

	reviewed := true
	if err := s.orders.UpdateStatus(ctx, userID, orderID, models.OrderStatusDelivered, &reviewed); err != nil {
		return nil, err
	}

	s.cache.InvalidateOrders(ctx, userID)
	s.log.WithFields(logrus.Fields{"orderId": orderID, "rating": rating}).Info("review submitted")
	return &review, nil
}
