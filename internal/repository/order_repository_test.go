package repository

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithItems(t *testing.T) {
	ctx := context.Background()

	t.Run("ExpandsQuantityIntoRows", func(t *testing.T) {
		db := setupDB(t)
		repo := NewOrderRepository(db)
		product := seedProduct(t, db, 100, 5)
		user := seedUser(t, db)

		order := &models.Order{
			Reference:   uuid.New().String(),
			UserID:      user.ID,
			Destination: "Baker Street 221b",
		}
		err := repo.CreateWithItems(ctx, order, map[int64]int{product.ID: 3})
		require.NoError(t, err)

		var items []models.OrderItem
		require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
		assert.Len(t, items, 3)

		var got models.Product
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, 2, got.Stock)
	})

	t.Run("InsufficientStockRollsBackEverything", func(t *testing.T) {
		db := setupDB(t)
		repo := NewOrderRepository(db)
		product := seedProduct(t, db, 100, 2)
		user := seedUser(t, db)

		order := &models.Order{Reference: uuid.New().String(), UserID: user.ID}
		err := repo.CreateWithItems(ctx, order, map[int64]int{product.ID: 3})
		assert.ErrorIs(t, err, ErrInsufficientStock)

		var orders int64
		require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
		assert.Zero(t, orders)

		var got models.Product
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, 2, got.Stock)
	})

	t.Run("ListByUser", func(t *testing.T) {
		db := setupDB(t)
		repo := NewOrderRepository(db)
		product := seedProduct(t, db, 100, 10)
		user := seedUser(t, db)

		for i := 0; i < 2; i++ {
			order := &models.Order{Reference: uuid.New().String(), UserID: user.ID}
			require.NoError(t, repo.CreateWithItems(ctx, order, map[int64]int{product.ID: 1}))
		}

		orders, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Len(t, orders[0].Items, 1)
	})
}
