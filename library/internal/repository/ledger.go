package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
)

// Reserve takes one copy of the book. The decrement is a single conditional update, so
// concurrent reservations of the last copy are serialized by the row lock and exactly one wins.
func (r *repository) Reserve(ctx context.Context, bookID int64) error {
	query, args, err := qb.Update(bookTableName).
		Set("stock", sq.Expr("stock - 1")).
		Where(sq.Eq{"book_id": bookID}).
		Where(sq.Gt{"stock": 0}).
		Suffix("returning stock").
		ToSql()
	if err != nil {
		return err
	}

	var stock int
	err = r.db.QueryRow(ctx, query, args...).Scan(&stock)
	switch {
	case err == nil:
		r.log.Debug("reserve", zap.Int64("book_id", bookID), zap.Int("stock", stock))
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return errors.Wrap(err, "reserve")
	}

	ok, err := r.exists(ctx, bookTableName, "book_id", bookID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrBookNotFound
	}
	return errs.ErrInsufficientStock
}

// Release returns one copy. There is no upper bound; callers guarantee one release per reservation.
func (r *repository) Release(ctx context.Context, bookID int64) error {
	query, args, err := qb.Update(bookTableName).
		Set("stock", sq.Expr("stock + 1")).
		Where(sq.Eq{"book_id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "release")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}
