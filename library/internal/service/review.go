package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/library-catalog/library/internal/model"
)

// AddReview appends a review. Any integer rating is accepted; blank content is stored as null.
func (s *Service) AddReview(ctx context.Context, req model.ReviewRequest) (model.Review, error) {
	review := model.Review{
		UserID: req.UserID,
		BookID: req.BookID,
		Rating: req.Rating,
	}
	if content := strings.TrimSpace(req.Content); content != "" {
		review.Content = &content
	}
	return s.repo.CreateReview(ctx, review)
}

func (s *Service) ListReviews(ctx context.Context, bookID int64) ([]model.ReviewView, error) {
	return s.repo.ListReviews(ctx, bookID)
}
