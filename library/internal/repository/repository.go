package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/model"
)

// Ledger owns book stock. Reserve never drives stock below zero.
type Ledger interface {
	Reserve(ctx context.Context, bookID int64) error
	Release(ctx context.Context, bookID int64) error
}

type Catalog interface {
	GetBook(ctx context.Context, id int64) (model.BookView, error)
	BookExists(ctx context.Context, id int64) (bool, error)
	LockBook(ctx context.Context, id int64) error
	CreateBook(ctx context.Context, book model.Book) (int64, error)
	UpdateBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, query string, limit, offset int) ([]model.BookView, error)
	CountBooks(ctx context.Context, query string) (int, error)

	FindAuthorByName(ctx context.Context, name string) (model.Author, error)
	CreateAuthor(ctx context.Context, name string) (model.Author, error)
	ListAuthors(ctx context.Context, byName bool) ([]model.Author, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	ListCategories(ctx context.Context, byName bool) ([]model.Category, error)

	UserExists(ctx context.Context, id int64) (bool, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	ListUsers(ctx context.Context) ([]model.UserView, error)
	FindRoleByName(ctx context.Context, name string) (model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type Borrows interface {
	CreateBorrow(ctx context.Context, borrow model.Borrow) (model.Borrow, error)
	GetBorrow(ctx context.Context, id int64) (model.Borrow, error)
	CloseBorrow(ctx context.Context, id int64, at time.Time) (model.Borrow, error)
	CountOpenBorrows(ctx context.Context, bookID int64) (int, error)
	ListBorrows(ctx context.Context, limit, offset int) ([]model.BorrowView, error)
	CountBorrows(ctx context.Context) (int, error)
}

type Reviews interface {
	CreateReview(ctx context.Context, review model.Review) (model.Review, error)
	ListReviews(ctx context.Context, bookID int64) ([]model.ReviewView, error)
}

type Repository interface {
	Ledger
	Catalog
	Borrows
	Reviews

	// InTx runs fn against a transaction-bound Repository. The transaction commits when fn
	// returns nil and rolls back on error, panic or context cancellation.
	// Calling InTx on a transaction-bound Repository joins the running transaction.
	InTx(ctx context.Context, fn func(repo Repository) error) error
	// InReadTx runs fn in a read-only repeatable read transaction, so every statement in fn
	// sees the same snapshot.
	InReadTx(ctx context.Context, fn func(repo Repository) error) error
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	pool *pgxpool.Pool
	db   dbtx
	log  *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil pool")
	}
	return &repository{
		pool: db,
		db:   db,
		log:  log.Named("repo"),
	}, nil
}

const (
	bookTableName     = `book`
	authorTableName   = `author`
	categoryTableName = `category`
	userTableName     = `"user"`
	roleTableName     = `role`
	borrowTableName   = `borrow`
	reviewTableName   = `review`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) InTx(ctx context.Context, fn func(repo Repository) error) error {
	return r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (r *repository) InReadTx(ctx context.Context, fn func(repo Repository) error) error {
	return r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *repository) inTx(ctx context.Context, opts pgx.TxOptions, fn func(repo Repository) error) (err error) {
	if r.pool == nil {
		return fn(r)
	}
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.log.Error("tx rollback", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(&repository{db: tx, log: r.log}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.ForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.CheckViolation
}

func (r *repository) exists(ctx context.Context, table, column string, id int64) (bool, error) {
	query, args, err := qb.Select("1").
		Prefix("select exists (").
		From(table).
		Where(sq.Eq{column: id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}
	var ok bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, errors.Wrapf(err, "exists %s", table)
	}
	return ok, nil
}

func (r *repository) count(ctx context.Context, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		r.log.Error("count", zap.String("q", query), zap.Any("args", args))
		return 0, errors.Wrap(err, "count")
	}
	return n, nil
}

func selectAll[T any](ctx context.Context, db dbtx, b sq.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// selectOne returns notFound when the query yields no rows.
func selectOne[T any](ctx context.Context, db dbtx, b sq.Sqlizer, notFound error) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, notFound
		}
		return zero, err
	}
	return item, nil
}
