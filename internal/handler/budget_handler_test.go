package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	errs "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// MockBudgetService is a mock implementation of service.BudgetService.
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) Get(ctx context.Context, userID uuid.UUID) (*model.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Budget), args.Error(1)
}

func (m *MockBudgetService) Create(ctx context.Context, userID uuid.UUID, items []service.ItemInput) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

func (m *MockBudgetService) AddItem(ctx context.Context, userID uuid.UUID, input service.ItemInput) (*model.BudgetItem, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BudgetItem), args.Error(1)
}

func (m *MockBudgetService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, input service.ItemInput) (*model.BudgetItem, error) {
	args := m.Called(ctx, userID, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BudgetItem), args.Error(1)
}

func (m *MockBudgetService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockBudgetService) Summary(ctx context.Context, userID uuid.UUID) (*service.BudgetSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BudgetSummary), args.Error(1)
}

func newBudgetContext(t *testing.T, method, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/budget", nil)
	} else {
		req = httptest.NewRequest(method, "/api/budget", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(IdentityContextKey, userID)
	return c, rec
}

func TestBudgetHandler_Get_NoBudget(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockBudgetService)
	mockService.On("Get", mock.Anything, userID).Return(nil, nil)

	c, rec := newBudgetContext(t, http.MethodGet, "", userID)
	h := NewBudgetHandler(mockService)

	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.JSONEq(t, "false", string(resp["exists"]))
	// Absence is represented, not an error; no budget key at all.
	_, present := resp["budget"]
	assert.False(t, present)
}

func TestBudgetHandler_Get_ExistingBudget(t *testing.T) {
	userID := uuid.New()
	budget := &model.Budget{ID: uuid.New(), UserID: userID}
	mockService := new(MockBudgetService)
	mockService.On("Get", mock.Anything, userID).Return(budget, nil)

	c, rec := newBudgetContext(t, http.MethodGet, "", userID)
	h := NewBudgetHandler(mockService)

	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp BudgetResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Exists)
	assert.Equal(t, budget.ID, resp.Budget.ID)
}

func TestBudgetHandler_Get_MissingIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/budget", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewBudgetHandler(new(MockBudgetService))
	err := h.Get(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestBudgetHandler_Create_Conflict(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockBudgetService)
	mockService.On("Create", mock.Anything, userID, mock.MatchedBy(func(items []service.ItemInput) bool {
		return len(items) == 1 && items[0].Name == "Rent" && items[0].Amount.Equal(decimal.NewFromInt(1200))
	})).Return(errs.ErrBudgetExists)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/budget",
		strings.NewReader(`{"items":[{"name":"Rent","amount":1200,"category":"Housing"}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(IdentityContextKey, userID)
	c.Echo().Validator = noopValidator{}

	h := NewBudgetHandler(mockService)
	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

type noopValidator struct{}

func (noopValidator) Validate(i interface{}) error { return nil }
