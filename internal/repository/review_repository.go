package repository

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	CreateWithAggregate(ctx context.Context, review *models.Review) error
	GetByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateWithAggregate inserts the review and folds its rate into the
// product's running average inside one transaction, so two concurrent
// submissions cannot both read the same count/average. The new average
// is (N*avg + rate) / (N+1) with N and avg read under the same lock.
func (r *reviewRepository) CreateWithAggregate(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite has no row locks; its single writer covers the same case
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var product models.Product
		if err := q.First(&product, review.ProductID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ?", review.ProductID).
			Count(&count).Error; err != nil {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		newAvg := (float64(count)*product.AvgRate + float64(review.Rate)) / float64(count+1)
		return tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			UpdateColumn("avg_rate", newAvg).Error
	})
}

func (r *reviewRepository) GetByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
