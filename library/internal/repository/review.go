package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
)

func (r *repository) CreateReview(ctx context.Context, review model.Review) (model.Review, error) {
	b := qb.Insert(reviewTableName).
		Columns("user_id", "book_id", "rating", "content").
		Values(review.UserID, review.BookID, review.Rating, review.Content).
		Suffix("returning review_id, user_id, book_id, rating, content, created_at")
	created, err := selectOne[model.Review](ctx, r.db, b, errs.ErrNotFound)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Review{}, errs.ErrReferenceMissing
		}
		return model.Review{}, errors.Wrap(err, "create review")
	}
	return created, nil
}

func (r *repository) ListReviews(ctx context.Context, bookID int64) ([]model.ReviewView, error) {
	b := qb.Select("r.review_id", "u.username", "r.rating", "r.content", "r.created_at").
		From(reviewTableName + " r").
		Join(fmt.Sprintf("%s u on r.user_id = u.user_id", userTableName)).
		Where(sq.Eq{"r.book_id": bookID}).
		OrderBy("r.created_at desc", "r.review_id desc")
	return selectAll[model.ReviewView](ctx, r.db, b)
}
