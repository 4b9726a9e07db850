package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-catalog/library/internal/model"
)

func (h *Handler) ListAuthors(c echo.Context) error {
	authors, err := h.librarySvc.ListAuthors(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, authors)
}

func (h *Handler) CreateAuthor(c echo.Context) error {
	var req model.NameRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	author, err := h.librarySvc.CreateAuthor(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, author)
}

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.librarySvc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req model.NameRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	category, err := h.librarySvc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.librarySvc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser
// @Summary      Create user
// @Description  Username and email are unique. Without roleId the "user" role is assigned.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.CreateUserRequest  true  "user"
// @Success      201  {object}  model.User
// @Failure      400  {object}  echo.HTTPError
// @Failure      409  {object}  echo.HTTPError  "username or email already exists"
// @Router       /api/v1/users [post]
func (h *Handler) CreateUser(c echo.Context) error {
	var req model.CreateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListRoles(c echo.Context) error {
	roles, err := h.librarySvc.ListRoles(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, roles)
}
