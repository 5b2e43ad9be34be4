package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fintrack/internal/service"
)

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest carries the writable fields of an expense. Note and date are
// optional: note defaults to empty, a missing date means "now" on create and
// keeps the stored date on update.
type ExpenseRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category" validate:"required"`
	Note     string          `json:"note"`
	Date     *time.Time      `json:"date"`
}

func (r ExpenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		Amount:   r.Amount,
		Category: r.Category,
		Note:     r.Note,
		Date:     r.Date,
	}
}

// List godoc
// @Summary List the caller's expenses, newest first
// @Tags expenses
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Expense
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.List(c.Request().Context(), uid)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// Create godoc
// @Summary Record a new expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ExpenseRequest true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	expense, err := h.expenseService.Create(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// Update godoc
// @Summary Overwrite one expense by id
// @Tags expenses
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path string true "Expense ID"
// @Param request body ExpenseRequest true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	expenseID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	expense, err := h.expenseService.Update(c.Request().Context(), uid, expenseID, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete one expense by id
// @Tags expenses
// @Produce json
// @Security TokenAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	expenseID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), uid, expenseID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted"})
}
