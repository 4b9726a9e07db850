package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/model"
)

// Borrow
// @Summary      Borrow a copy
// @Description  Takes one copy out of stock. A missing or non-positive days value means 14 days.
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Param        id       path  int                  true  "book id"
// @Param        payload  body  model.BorrowRequest  true  "borrower"
// @Success      201  {object}  model.Borrow
// @Failure      400  {object}  echo.HTTPError
// @Failure      404  {object}  echo.HTTPError  "user or book not found"
// @Failure      409  {object}  echo.HTTPError  "stock exhausted"
// @Router       /api/v1/books/{id}/borrow [post]
func (h *Handler) Borrow(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.BorrowRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	req.BookID = id
	borrow, err := h.librarySvc.Borrow(c.Request().Context(), req)
	if err != nil {
		h.log.Debug("borrow refused", zap.Int64("book_id", id), zap.Error(err))
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, borrow)
}

// Return
// @Summary      Return a borrowed copy
// @Tags         borrows
// @Produce      json
// @Param        id   path  int  true  "borrow id"
// @Success      200  {object}  model.Borrow
// @Failure      404  {object}  echo.HTTPError
// @Failure      409  {object}  echo.HTTPError  "already returned"
// @Router       /api/v1/borrows/{id}/return [post]
func (h *Handler) Return(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	borrow, err := h.librarySvc.Return(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrow)
}

func (h *Handler) ListBorrows(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	borrows, err := h.librarySvc.ListBorrows(c.Request().Context(), page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrows)
}
