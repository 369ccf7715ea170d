package review

import (
	"errors"
	"time"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Service provides business logic for product reviews.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) ListByProduct(productID int) ([]Review, error) {
	if productID <= 0 {
		return nil, ErrProductNotFound
	}
	return s.repo.ListByProduct(productID)
}

func (s *Service) Add(productID int, rating int, comment *string, author string) (Review, error) {
	if productID <= 0 {
		return Review{}, ErrProductNotFound
	}
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if author == "" {
		author = "Anonymous"
	}
	rev := Review{
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		Author:    author,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return s.repo.Add(rev)
}
