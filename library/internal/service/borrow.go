package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
	"github.com/Astemirdum/library-catalog/library/internal/repository"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
)

// Borrow lends one copy of a book. The stock reservation and the borrow row are written in
// one transaction: either both persist or neither does.
func (s *Service) Borrow(ctx context.Context, req model.BorrowRequest) (model.Borrow, error) {
	days := req.Days
	if days <= 0 {
		days = model.DefaultBorrowDays
	}
	if days > model.MaxBorrowDays {
		return model.Borrow{}, errs.Validation("days must not exceed %d", model.MaxBorrowDays)
	}

	var borrow model.Borrow
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		ok, err := repo.UserExists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.ErrUserNotFound
		}
		if ok, err = repo.BookExists(ctx, req.BookID); err != nil {
			return err
		}
		if !ok {
			return errs.ErrBookNotFound
		}

		if err = repo.Reserve(ctx, req.BookID); err != nil {
			if errors.Is(err, errs.ErrInsufficientStock) {
				return errs.ErrStockExhausted
			}
			return err
		}

		now := s.timestamp()
		borrow, err = repo.CreateBorrow(ctx, model.Borrow{
			UserID:     req.UserID,
			BookID:     req.BookID,
			BorrowedAt: now,
			DueAt:      now.AddDate(0, 0, days),
		})
		return err
	})
	if err != nil {
		return model.Borrow{}, err
	}

	s.log.Info("book borrowed",
		zap.Int64("borrow_id", borrow.ID),
		zap.Int64("book_id", borrow.BookID),
		zap.Int64("user_id", borrow.UserID),
		zap.Time("due_at", borrow.DueAt))
	s.publish(ctx, kafka.EventBorrowed, borrow)
	return borrow, nil
}

// Return closes an open borrow and puts the copy back. Closing is a compare-and-set on
// returned_at, so concurrent returns of one borrow release stock exactly once.
func (s *Service) Return(ctx context.Context, borrowID int64) (model.Borrow, error) {
	var borrow model.Borrow
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		current, err := repo.GetBorrow(ctx, borrowID)
		if err != nil {
			return err
		}
		if current.ReturnedAt != nil {
			return errs.ErrAlreadyReturned
		}
		if borrow, err = repo.CloseBorrow(ctx, borrowID, s.timestamp()); err != nil {
			return err
		}
		return repo.Release(ctx, borrow.BookID)
	})
	if err != nil {
		return model.Borrow{}, err
	}

	s.log.Info("book returned",
		zap.Int64("borrow_id", borrow.ID),
		zap.Int64("book_id", borrow.BookID))
	s.publish(ctx, kafka.EventReturned, borrow)
	return borrow, nil
}

// publish runs after commit; a failed publish never undoes the borrow or return.
func (s *Service) publish(ctx context.Context, eventType kafka.EventType, b model.Borrow) {
	event := kafka.NewEventLifecycle(eventType, b.ID, b.UserID, b.BookID, b.DueAt, b.ReturnedAt)
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("publish lifecycle event",
			zap.String("event_type", string(eventType)),
			zap.Int64("borrow_id", b.ID),
			zap.Error(err))
	}
}
