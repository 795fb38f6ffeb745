package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientStock is returned when a checkout asks for more units
// than the catalog currently holds.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, quantities map[int64]int) error
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order, expands each quantity into that
// many order item rows and decrements stock, all in one transaction.
// Any stock shortfall rolls the whole order back.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *models.Order, quantities map[int64]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for productID, qty := range quantities {
			q := tx
			if tx.Dialector.Name() == "postgres" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var product models.Product
			if err := q.First(&product, productID).Error; err != nil {
				return err
			}
			if product.Stock < qty {
				return fmt.Errorf("%w: product %d has %d left, wanted %d",
					ErrInsufficientStock, productID, product.Stock, qty)
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", productID).
				UpdateColumn("stock", gorm.Expr("stock - ?", qty)).Error; err != nil {
				return err
			}

			for i := 0; i < qty; i++ {
				item := models.OrderItem{OrderID: order.ID, ProductID: productID}
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("create order item: %w", err)
				}
			}
		}
		return nil
	})
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
