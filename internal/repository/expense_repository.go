package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// ExpenseRepository defines expense persistence operations. Every lookup is
// scoped by owner in the same query, so ownership misses and true absences are
// indistinguishable to callers.
type ExpenseRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Expense, error)
	Create(ctx context.Context, expense *model.Expense) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error)
	Save(ctx context.Context, expense *model.Expense) error
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// ListByUser returns all of a user's expenses, newest first.
func (r *expenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Save(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// DeleteByIDAndUser permanently removes an expense. Returns
// gorm.ErrRecordNotFound when no owned record matched.
func (r *expenseRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
