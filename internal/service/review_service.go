package service

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	Submit(ctx context.Context, userID, productID int64, text string, rate int) (*models.Review, error)
	ListForProduct(ctx context.Context, productID int64) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Submit stores a review and folds its rate into the product average.
// The repository does both writes in one transaction; the database
// check constraint backstops the range validation here.
func (s *reviewService) Submit(ctx context.Context, userID, productID int64, text string, rate int) (*models.Review, error) {
	if rate < 0 || rate > 5 {
		return nil, ErrInvalidRate
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review := &models.Review{
		Text:      text,
		Rate:      rate,
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.reviewRepo.CreateWithAggregate(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListForProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.reviewRepo.GetByProduct(ctx, productID)
}
