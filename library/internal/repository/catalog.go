package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
)

// FindAuthorByName matches the name exactly (case-sensitive). With duplicates the oldest wins.
func (r *repository) FindAuthorByName(ctx context.Context, name string) (model.Author, error) {
	b := qb.Select("author_id", "name").
		From(authorTableName).
		Where(sq.Eq{"name": name}).
		OrderBy("author_id").
		Limit(1)
	return selectOne[model.Author](ctx, r.db, b, errs.ErrNotFound)
}

func (r *repository) CreateAuthor(ctx context.Context, name string) (model.Author, error) {
	b := qb.Insert(authorTableName).
		Columns("name").
		Values(name).
		Suffix("returning author_id, name")
	author, err := selectOne[model.Author](ctx, r.db, b, errs.ErrNotFound)
	if err != nil {
		return model.Author{}, errors.Wrap(err, "create author")
	}
	return author, nil
}

func (r *repository) ListAuthors(ctx context.Context, byName bool) ([]model.Author, error) {
	b := qb.Select("author_id", "name").From(authorTableName)
	if byName {
		b = b.OrderBy("name", "author_id")
	} else {
		b = b.OrderBy("author_id desc")
	}
	return selectAll[model.Author](ctx, r.db, b)
}

func (r *repository) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	b := qb.Insert(categoryTableName).
		Columns("name").
		Values(name).
		Suffix("returning category_id, name")
	category, err := selectOne[model.Category](ctx, r.db, b, errs.ErrNotFound)
	if err != nil {
		return model.Category{}, errors.Wrap(err, "create category")
	}
	return category, nil
}

func (r *repository) ListCategories(ctx context.Context, byName bool) ([]model.Category, error) {
	b := qb.Select("category_id", "name").From(categoryTableName)
	if byName {
		b = b.OrderBy("name", "category_id")
	} else {
		b = b.OrderBy("category_id desc")
	}
	return selectAll[model.Category](ctx, r.db, b)
}

func (r *repository) UserExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, userTableName, "user_id", id)
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	b := qb.Insert(userTableName).
		Columns("username", "email", "role_id").
		Values(user.Username, user.Email, user.RoleID).
		Suffix("returning user_id, username, email, role_id")
	created, err := selectOne[model.User](ctx, r.db, b, errs.ErrNotFound)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return model.User{}, errs.ErrUserExists
		case isForeignKeyViolation(err):
			return model.User{}, errs.ErrRoleNotFound
		}
		r.log.Error("CreateUser", zap.String("username", user.Username), zap.Error(err))
		return model.User{}, errors.Wrap(err, "create user")
	}
	return created, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]model.UserView, error) {
	b := qb.Select("u.user_id", "u.username", "u.email", "r.name as role_name").
		From(userTableName + " u").
		LeftJoin(roleTableName + " r on u.role_id = r.role_id").
		OrderBy("u.user_id desc")
	return selectAll[model.UserView](ctx, r.db, b)
}

func (r *repository) FindRoleByName(ctx context.Context, name string) (model.Role, error) {
	b := qb.Select("role_id", "name").
		From(roleTableName).
		Where(sq.Eq{"name": name}).
		Limit(1)
	return selectOne[model.Role](ctx, r.db, b, errs.ErrRoleNotFound)
}

func (r *repository) ListRoles(ctx context.Context) ([]model.Role, error) {
	b := qb.Select("role_id", "name").
		From(roleTableName).
		OrderBy("role_id")
	return selectAll[model.Role](ctx, r.db, b)
}
