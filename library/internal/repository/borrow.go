package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
)

var borrowColumns = []string{"borrow_id", "user_id", "book_id", "borrowed_at", "due_at", "returned_at"}

const borrowReturning = "returning borrow_id, user_id, book_id, borrowed_at, due_at, returned_at"

func (r *repository) CreateBorrow(ctx context.Context, borrow model.Borrow) (model.Borrow, error) {
	b := qb.Insert(borrowTableName).
		Columns("user_id", "book_id", "borrowed_at", "due_at").
		Values(borrow.UserID, borrow.BookID, borrow.BorrowedAt, borrow.DueAt).
		Suffix(borrowReturning)
	created, err := selectOne[model.Borrow](ctx, r.db, b, errs.ErrBorrowNotFound)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Borrow{}, errs.ErrReferenceMissing
		}
		return model.Borrow{}, errors.Wrap(err, "create borrow")
	}
	return created, nil
}

func (r *repository) GetBorrow(ctx context.Context, id int64) (model.Borrow, error) {
	b := qb.Select(borrowColumns...).
		From(borrowTableName).
		Where(sq.Eq{"borrow_id": id}).
		Limit(1)
	return selectOne[model.Borrow](ctx, r.db, b, errs.ErrBorrowNotFound)
}

// CloseBorrow sets returned_at only while it is still null. A borrow that is already closed,
// including one closed concurrently, yields errs.ErrAlreadyReturned.
func (r *repository) CloseBorrow(ctx context.Context, id int64, at time.Time) (model.Borrow, error) {
	b := qb.Update(borrowTableName).
		Set("returned_at", at).
		Where(sq.Eq{"borrow_id": id}).
		Where(sq.Eq{"returned_at": nil}).
		Suffix(borrowReturning)
	closed, err := selectOne[model.Borrow](ctx, r.db, b, errs.ErrAlreadyReturned)
	if err == nil || !errors.Is(err, errs.ErrAlreadyReturned) {
		return closed, err
	}
	ok, err := r.exists(ctx, borrowTableName, "borrow_id", id)
	if err != nil {
		return model.Borrow{}, err
	}
	if !ok {
		return model.Borrow{}, errs.ErrBorrowNotFound
	}
	return model.Borrow{}, errs.ErrAlreadyReturned
}

func (r *repository) CountOpenBorrows(ctx context.Context, bookID int64) (int, error) {
	return r.count(ctx, qb.Select("count(*)").
		From(borrowTableName).
		Where(sq.Eq{"book_id": bookID}).
		Where(sq.Eq{"returned_at": nil}))
}

func (r *repository) ListBorrows(ctx context.Context, limit, offset int) ([]model.BorrowView, error) {
	b := qb.Select("bo.borrow_id", "bo.user_id", "u.username", "bo.book_id", "b.title",
		"bo.borrowed_at", "bo.due_at", "bo.returned_at").
		From(borrowTableName + " bo").
		Join(fmt.Sprintf("%s u on bo.user_id = u.user_id", userTableName)).
		Join(fmt.Sprintf("%s b on bo.book_id = b.book_id", bookTableName)).
		OrderBy("bo.borrow_id desc").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	return selectAll[model.BorrowView](ctx, r.db, b)
}

func (r *repository) CountBorrows(ctx context.Context) (int, error) {
	return r.count(ctx, qb.Select("count(*)").From(borrowTableName))
}
