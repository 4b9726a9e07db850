package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
)

var bookViewColumns = []string{
	"b.book_id", "b.title",
	"b.author_id", "a.name as author_name",
	"b.category_id", "c.name as category_name",
	"b.isbn", "b.stock",
}

func bookViewFrom(b sq.SelectBuilder) sq.SelectBuilder {
	return b.From(bookTableName + " b").
		LeftJoin(fmt.Sprintf("%s a on b.author_id = a.author_id", authorTableName)).
		LeftJoin(fmt.Sprintf("%s c on b.category_id = c.category_id", categoryTableName))
}

// searchBooks matches query case-insensitively as a substring of the title, author or category.
func searchBooks(b sq.SelectBuilder, query string) sq.SelectBuilder {
	if query == "" {
		return b
	}
	like := "%" + escapeLike(query) + "%"
	return b.Where(sq.Or{
		sq.ILike{"b.title": like},
		sq.ILike{"a.name": like},
		sq.ILike{"c.name": like},
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.BookView, error) {
	b := bookViewFrom(qb.Select(bookViewColumns...)).
		Where(sq.Eq{"b.book_id": id}).
		Limit(1)
	book, err := selectOne[model.BookView](ctx, r.db, b, errs.ErrBookNotFound)
	if err != nil && !errors.Is(err, errs.ErrBookNotFound) {
		r.log.Error("GetBook", zap.Int64("book_id", id), zap.Error(err))
	}
	return book, err
}

func (r *repository) BookExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, bookTableName, "book_id", id)
}

// LockBook takes the row lock of the book until the end of the transaction.
func (r *repository) LockBook(ctx context.Context, id int64) error {
	query, args, err := qb.Select("book_id").
		From(bookTableName).
		Where(sq.Eq{"book_id": id}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "lock book")
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return errors.Wrap(err, "lock book")
		}
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (int64, error) {
	query, args, err := qb.Insert(bookTableName).
		Columns("title", "author_id", "category_id", "isbn", "stock").
		Values(book.Title, book.AuthorID, book.CategoryID, book.ISBN, book.Stock).
		Suffix("returning book_id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, bookWriteErr(err)
	}
	return id, nil
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) error {
	query, args, err := qb.Update(bookTableName).
		SetMap(map[string]interface{}{
			"title":       book.Title,
			"author_id":   book.AuthorID,
			"category_id": book.CategoryID,
			"isbn":        book.ISBN,
			"stock":       book.Stock,
		}).
		Where(sq.Eq{"book_id": book.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return bookWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func bookWriteErr(err error) error {
	switch {
	case isForeignKeyViolation(err):
		return errs.ErrCategoryNotFound
	case isCheckViolation(err):
		return errs.Validation("stock must not be negative")
	}
	return errors.Wrap(err, "write book")
}

func (r *repository) DeleteBook(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(bookTableName).
		Where(sq.Eq{"book_id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) ListBooks(ctx context.Context, query string, limit, offset int) ([]model.BookView, error) {
	b := searchBooks(bookViewFrom(qb.Select(bookViewColumns...)), query).
		OrderBy("b.book_id desc").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	r.log.Debug("ListBooks", zap.String("query", query), zap.Int("limit", limit), zap.Int("offset", offset))
	return selectAll[model.BookView](ctx, r.db, b)
}

func (r *repository) CountBooks(ctx context.Context, query string) (int, error) {
	return r.count(ctx, searchBooks(bookViewFrom(qb.Select("count(*)")), query))
}
