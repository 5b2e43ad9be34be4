package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	errs "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

// ExpenseInput carries the writable fields of an expense. Note defaults to
// empty; a nil Date means "now" on create and "keep the stored date" on update.
type ExpenseInput struct {
	Amount   decimal.Decimal
	Category string
	Note     string
	Date     *time.Time
}

// ExpenseService handles a user's dated spending records.
type ExpenseService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Expense, error)
	Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*model.Expense, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenses repository.ExpenseRepository
	now      func() time.Time
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{
		expenses: expenses,
		now:      time.Now,
	}
}

// List returns all of the user's expenses, newest first. Unbounded by design.
func (s *expenseService) List(ctx context.Context, userID uuid.UUID) ([]model.Expense, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Create persists a new expense, defaulting the date to the creation instant.
func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*model.Expense, error) {
	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := &model.Expense{
		UserID:   userID,
		Amount:   input.Amount,
		Category: input.Category,
		Note:     input.Note,
		Date:     date,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// Update overwrites an owned expense in place. An expense belonging to another
// user is reported exactly like a missing one.
func (s *expenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (*model.Expense, error) {
	expense, err := s.expenses.FindByIDAndUser(ctx, expenseID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}

	expense.Amount = input.Amount
	expense.Category = input.Category
	expense.Note = input.Note
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}
	return expense, nil
}

// Delete permanently removes an owned expense.
func (s *expenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	if err := s.expenses.DeleteByIDAndUser(ctx, expenseID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
