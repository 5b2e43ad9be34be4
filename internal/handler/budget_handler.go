package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fintrack/internal/model"
	"fintrack/internal/service"
)

// BudgetHandler handles budget endpoints.
type BudgetHandler struct {
	budgetService service.BudgetService
}

// NewBudgetHandler creates a new budget handler.
func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// ItemRequest carries one budget item's fields. Category is a free-text label;
// the server accepts any string.
type ItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category" validate:"required"`
}

// CreateBudgetRequest represents a budget creation request.
type CreateBudgetRequest struct {
	Items []ItemRequest `json:"items" validate:"dive"`
}

// BudgetResponse wraps the exists/budget pair of GET /budget. Absence is a
// successful outcome, not an error.
type BudgetResponse struct {
	Exists bool          `json:"exists"`
	Budget *model.Budget `json:"budget,omitempty"`
}

// ItemResponse wraps a message with the affected item.
type ItemResponse struct {
	Message string            `json:"message"`
	Item    *model.BudgetItem `json:"item"`
}

// MessageResponse is a bare acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

func (r ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Name:     r.Name,
		Amount:   r.Amount,
		Category: r.Category,
	}
}

// Get godoc
// @Summary Get the caller's budget, if any
// @Tags budget
// @Produce json
// @Security TokenAuth
// @Success 200 {object} BudgetResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budget [get]
func (h *BudgetHandler) Get(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	budget, err := h.budgetService.Get(c.Request().Context(), uid)
	if err != nil {
		return domainError(err)
	}
	if budget == nil {
		return c.JSON(http.StatusOK, BudgetResponse{Exists: false})
	}
	return c.JSON(http.StatusOK, BudgetResponse{Exists: true, Budget: budget})
}

// Create godoc
// @Summary Create the caller's budget
// @Tags budget
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body CreateBudgetRequest true "Initial items"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budget [post]
func (h *BudgetHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	items := make([]service.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.toInput())
	}

	if err := h.budgetService.Create(c.Request().Context(), uid, items); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Budget created successfully"})
}

// AddItem godoc
// @Summary Append an item to the caller's budget
// @Tags budget
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ItemRequest true "Item data"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budget/item [post]
func (h *BudgetHandler) AddItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	item, err := h.budgetService.AddItem(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ItemResponse{Message: "Item added", Item: item})
}

// UpdateItem godoc
// @Summary Overwrite one budget item by id
// @Tags budget
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param itemId path string true "Item ID"
// @Param request body ItemRequest true "Item data"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budget/{itemId} [put]
func (h *BudgetHandler) UpdateItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	item, err := h.budgetService.UpdateItem(c.Request().Context(), uid, itemID, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ItemResponse{Message: "Item updated", Item: item})
}

// DeleteItem godoc
// @Summary Delete one budget item by id
// @Tags budget
// @Produce json
// @Security TokenAuth
// @Param itemId path string true "Item ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budget/{itemId} [delete]
func (h *BudgetHandler) DeleteItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.budgetService.DeleteItem(c.Request().Context(), uid, itemID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Item deleted"})
}

// Summary godoc
// @Summary Get total and per-category sums of the caller's budget
// @Tags budget
// @Produce json
// @Security TokenAuth
// @Success 200 {object} service.BudgetSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budget/summary [get]
func (h *BudgetHandler) Summary(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	summary, err := h.budgetService.Summary(c.Request().Context(), uid)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
