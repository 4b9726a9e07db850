package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-catalog/library/internal/model"
)

// ListBooks
// @Summary      List books
// @Description  Search by title, author or category name. Pages outside the range are clamped.
// @Tags         books
// @Produce      json
// @Param        q     query  string  false  "search text"
// @Param        page  query  int     false  "1-based page"
// @Success      200  {object}  model.ListBooks
// @Failure      400  {object}  echo.HTTPError
// @Router       /api/v1/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	books, err := h.librarySvc.ListBooks(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")), page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook
// @Summary      Book detail
// @Tags         books
// @Produce      json
// @Param        id   path  int  true  "book id"
// @Success      200  {object}  model.BookDetail
// @Failure      404  {object}  echo.HTTPError
// @Router       /api/v1/books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.librarySvc.GetBookDetail(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateBook
// @Summary      Create book
// @Description  The author is looked up by exact name and created when missing.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body  model.BookRequest  true  "book"
// @Success      201  {object}  model.BookView
// @Failure      400  {object}  echo.HTTPError
// @Failure      404  {object}  echo.HTTPError  "unknown category"
// @Router       /api/v1/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.BookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.BookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook
// @Summary      Delete book
// @Description  Refused while the book has open borrows.
// @Tags         books
// @Param        id   path  int  true  "book id"
// @Success      204
// @Failure      404  {object}  echo.HTTPError
// @Failure      409  {object}  echo.HTTPError  "book has open borrows"
// @Router       /api/v1/books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteBook(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) BookOptions(c echo.Context) error {
	opts, err := h.librarySvc.BookOptions(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) AddReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.ReviewRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	req.BookID = id
	review, err := h.librarySvc.AddReview(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}
