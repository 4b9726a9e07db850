package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
	"github.com/Astemirdum/library-catalog/library/internal/repository"
)

func (s *Service) GetBook(ctx context.Context, id int64) (model.BookView, error) {
	return s.repo.GetBook(ctx, id)
}

// GetBookDetail loads the book and its reviews, newest review first.
func (s *Service) GetBookDetail(ctx context.Context, id int64) (model.BookDetail, error) {
	var detail model.BookDetail
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		book, err := s.repo.GetBook(gCtx, id)
		detail.Book = book
		return err
	})
	g.Go(func() error {
		reviews, err := s.repo.ListReviews(gCtx, id)
		detail.Reviews = reviews
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BookDetail{}, err
	}
	return detail, nil
}

func normalizeBook(req model.BookRequest) (model.Book, string, error) {
	book := model.Book{
		Title:      strings.TrimSpace(req.Title),
		CategoryID: req.CategoryID,
		Stock:      req.Stock,
	}
	if book.Title == "" {
		return model.Book{}, "", errs.Validation("title is required")
	}
	if book.Stock < 0 {
		return model.Book{}, "", errs.Validation("stock must not be negative")
	}
	if isbn := strings.TrimSpace(req.ISBN); isbn != "" {
		book.ISBN = &isbn
	}
	return book, strings.TrimSpace(req.AuthorName), nil
}

// resolveAuthor finds an author by exact name or creates one. Two concurrent callers may
// both create the same name; each book still gets a valid author.
func resolveAuthor(ctx context.Context, repo repository.Repository, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	author, err := repo.FindAuthorByName(ctx, name)
	if err == nil {
		return &author.ID, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if author, err = repo.CreateAuthor(ctx, name); err != nil {
		return nil, err
	}
	return &author.ID, nil
}

func (s *Service) CreateBook(ctx context.Context, req model.BookRequest) (model.BookView, error) {
	book, authorName, err := normalizeBook(req)
	if err != nil {
		return model.BookView{}, err
	}
	var created model.BookView
	err = s.repo.InTx(ctx, func(repo repository.Repository) error {
		authorID, err := resolveAuthor(ctx, repo, authorName)
		if err != nil {
			return err
		}
		book.AuthorID = authorID
		id, err := repo.CreateBook(ctx, book)
		if err != nil {
			return err
		}
		created, err = repo.GetBook(ctx, id)
		return err
	})
	if err != nil {
		return model.BookView{}, err
	}
	s.log.Debug("book created", zap.Int64("book_id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// UpdateBook overwrites every field, stock included.
func (s *Service) UpdateBook(ctx context.Context, id int64, req model.BookRequest) (model.BookView, error) {
	book, authorName, err := normalizeBook(req)
	if err != nil {
		return model.BookView{}, err
	}
	book.ID = id
	var updated model.BookView
	err = s.repo.InTx(ctx, func(repo repository.Repository) error {
		if err := repo.LockBook(ctx, id); err != nil {
			return err
		}
		authorID, err := resolveAuthor(ctx, repo, authorName)
		if err != nil {
			return err
		}
		book.AuthorID = authorID
		if err = repo.UpdateBook(ctx, book); err != nil {
			return err
		}
		updated, err = repo.GetBook(ctx, id)
		return err
	})
	if err != nil {
		return model.BookView{}, err
	}
	return updated, nil
}

// DeleteBook refuses to delete a book that still has open borrows. Closed borrows and
// reviews go with the book.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.repo.InTx(ctx, func(repo repository.Repository) error {
		if err := repo.LockBook(ctx, id); err != nil {
			return err
		}
		open, err := repo.CountOpenBorrows(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return errs.ErrBookHasOpenBorrows
		}
		return repo.DeleteBook(ctx, id)
	})
}

func (s *Service) BookOptions(ctx context.Context) (model.BookOptions, error) {
	var opts model.BookOptions
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		opts.Authors, err = s.repo.ListAuthors(gCtx, true)
		return err
	})
	g.Go(func() (err error) {
		opts.Categories, err = s.repo.ListCategories(gCtx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BookOptions{}, err
	}
	return opts, nil
}

func (s *Service) CreateAuthor(ctx context.Context, name string) (model.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Author{}, errs.Validation("name is required")
	}
	return s.repo.CreateAuthor(ctx, name)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, errs.Validation("name is required")
	}
	return s.repo.CreateCategory(ctx, name)
}

// CreateUser assigns the "user" role when no role is given and that role exists.
func (s *Service) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	user := model.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		RoleID:   req.RoleID,
	}
	if user.Username == "" || user.Email == "" {
		return model.User{}, errs.Validation("username and email are required")
	}
	if user.RoleID == nil {
		role, err := s.repo.FindRoleByName(ctx, model.RoleUser)
		switch {
		case err == nil:
			user.RoleID = &role.ID
		case !errors.Is(err, errs.ErrNotFound):
			return model.User{}, err
		}
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *Service) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.repo.ListRoles(ctx)
}
