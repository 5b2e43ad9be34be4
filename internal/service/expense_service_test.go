package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	errs "fintrack/internal/errors"
	"fintrack/internal/model"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Expense, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestExpenseService_Create(t *testing.T) {
	userID := uuid.New()
	fixedNow := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("defaults note to empty and date to now", func(t *testing.T) {
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

		svc := &expenseService{expenses: mockRepo, now: func() time.Time { return fixedNow }}
		expense, err := svc.Create(context.Background(), userID, ExpenseInput{
			Amount:   decimal.NewFromFloat(12.50),
			Category: "Food",
		})

		assert.NoError(t, err)
		assert.Equal(t, userID, expense.UserID)
		assert.Equal(t, "", expense.Note)
		assert.Equal(t, fixedNow, expense.Date)
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeps a supplied date and note", func(t *testing.T) {
		supplied := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

		svc := &expenseService{expenses: mockRepo, now: func() time.Time { return fixedNow }}
		expense, err := svc.Create(context.Background(), userID, ExpenseInput{
			Amount:   decimal.NewFromInt(40),
			Category: "Transportation",
			Note:     "airport ride",
			Date:     &supplied,
		})

		assert.NoError(t, err)
		assert.Equal(t, supplied, expense.Date)
		assert.Equal(t, "airport ride", expense.Note)
	})
}

func TestExpenseService_Update(t *testing.T) {
	userID := uuid.New()
	expenseID := uuid.New()
	storedDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	stored := func() *model.Expense {
		return &model.Expense{
			ID:       expenseID,
			UserID:   userID,
			Amount:   decimal.NewFromInt(20),
			Category: "Food",
			Note:     "lunch",
			Date:     storedDate,
		}
	}

	t.Run("overwrites fields, keeps date when omitted", func(t *testing.T) {
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("FindByIDAndUser", mock.Anything, expenseID, userID).Return(stored(), nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

		service := NewExpenseService(mockRepo)
		expense, err := service.Update(context.Background(), userID, expenseID, ExpenseInput{
			Amount:   decimal.NewFromInt(25),
			Category: "Food",
		})

		assert.NoError(t, err)
		assert.Equal(t, expenseID, expense.ID)
		assert.True(t, expense.Amount.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, "", expense.Note)
		assert.Equal(t, storedDate, expense.Date)
	})

	t.Run("applies a supplied date", func(t *testing.T) {
		newDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("FindByIDAndUser", mock.Anything, expenseID, userID).Return(stored(), nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

		service := NewExpenseService(mockRepo)
		expense, err := service.Update(context.Background(), userID, expenseID, ExpenseInput{
			Amount:   decimal.NewFromInt(20),
			Category: "Food",
			Date:     &newDate,
		})

		assert.NoError(t, err)
		assert.Equal(t, newDate, expense.Date)
	})

	t.Run("foreign or missing expense is not found", func(t *testing.T) {
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("FindByIDAndUser", mock.Anything, expenseID, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewExpenseService(mockRepo)
		expense, err := service.Update(context.Background(), userID, expenseID, ExpenseInput{
			Amount:   decimal.NewFromInt(25),
			Category: "Food",
		})

		assert.ErrorIs(t, err, errs.ErrExpenseNotFound)
		assert.Nil(t, expense)
	})
}

func TestExpenseService_Delete(t *testing.T) {
	userID := uuid.New()
	expenseID := uuid.New()

	t.Run("deletes an owned expense", func(t *testing.T) {
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("DeleteByIDAndUser", mock.Anything, expenseID, userID).Return(nil)

		service := NewExpenseService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), userID, expenseID))
	})

	t.Run("foreign or missing expense is not found", func(t *testing.T) {
		mockRepo := new(MockExpenseRepository)
		mockRepo.On("DeleteByIDAndUser", mock.Anything, expenseID, userID).Return(gorm.ErrRecordNotFound)

		service := NewExpenseService(mockRepo)
		err := service.Delete(context.Background(), userID, expenseID)

		assert.ErrorIs(t, err, errs.ErrExpenseNotFound)
	})
}

func TestExpenseService_List(t *testing.T) {
	userID := uuid.New()
	expenses := []model.Expense{
		{ID: uuid.New(), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	mockRepo := new(MockExpenseRepository)
	mockRepo.On("ListByUser", mock.Anything, userID).Return(expenses, nil)

	service := NewExpenseService(mockRepo)
	got, err := service.List(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, expenses, got)
}
