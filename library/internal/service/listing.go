package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/library-catalog/library/internal/model"
	"github.com/Astemirdum/library-catalog/library/internal/repository"
)

// ListBooks searches title, author and category names. Out of range pages are clamped.
// Count and page are read from one snapshot.
func (s *Service) ListBooks(ctx context.Context, query string, page int) (model.ListBooks, error) {
	query = strings.TrimSpace(query)
	list := model.ListBooks{Query: query}
	err := s.repo.InReadTx(ctx, func(repo repository.Repository) error {
		total, err := repo.CountBooks(ctx, query)
		if err != nil {
			return err
		}
		list.Paging = model.NewPaging(page, s.pageSize, total)
		list.Items, err = repo.ListBooks(ctx, query, list.PageSize, list.Offset())
		return err
	})
	if err != nil {
		return model.ListBooks{}, err
	}
	return list, nil
}

func (s *Service) ListBorrows(ctx context.Context, page int) (model.ListBorrows, error) {
	var list model.ListBorrows
	err := s.repo.InReadTx(ctx, func(repo repository.Repository) error {
		total, err := repo.CountBorrows(ctx)
		if err != nil {
			return err
		}
		list.Paging = model.NewPaging(page, s.pageSize, total)
		list.Items, err = repo.ListBorrows(ctx, list.PageSize, list.Offset())
		return err
	})
	if err != nil {
		return model.ListBorrows{}, err
	}
	return list, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]model.UserView, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.repo.ListAuthors(ctx, false)
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx, false)
}
