package service

import (
	"context"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/session"

	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, sess *session.Data, userID int64, destination string) (*models.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// Checkout turns the session cart into an order. Stock checks and the
// item expansion happen inside the repository transaction; the cart is
// cleared only after the order committed.
func (s *orderService) Checkout(ctx context.Context, sess *session.Data, userID int64, destination string) (*models.Order, error) {
	if len(sess.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	quantities := make(map[int64]int, len(sess.Cart))
	for key, item := range sess.Cart {
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		quantities[productID] = item.Quantity
	}

	order := &models.Order{
		Reference:   uuid.New().String(),
		UserID:      userID,
		Destination: destination,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order, quantities); err != nil {
		return nil, err
	}

	sess.Cart = nil
	return order, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
