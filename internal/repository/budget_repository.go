package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// BudgetRepository defines budget persistence operations. A budget and its
// items live together; items are only ever written through their budget.
type BudgetRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Budget, error)
	Create(ctx context.Context, budget *model.Budget) error
	CreateItem(ctx context.Context, item *model.BudgetItem) error
	FindItem(ctx context.Context, budgetID, itemID uuid.UUID) (*model.BudgetItem, error)
	SaveItem(ctx context.Context, item *model.BudgetItem) error
	DeleteItem(ctx context.Context, budgetID, itemID uuid.UUID) error
}

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository.
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

// FindByUserID loads a user's budget with its items in insertion order.
func (r *budgetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// Create persists a new budget together with its initial items.
func (r *budgetRepository) Create(ctx context.Context, budget *model.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

// CreateItem appends a single item row to an existing budget.
func (r *budgetRepository) CreateItem(ctx context.Context, item *model.BudgetItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindItem loads one item, scoped to its budget so a foreign budget's item id
// reads as not found.
func (r *budgetRepository) FindItem(ctx context.Context, budgetID, itemID uuid.UUID) (*model.BudgetItem, error) {
	var item model.BudgetItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND budget_id = ?", itemID, budgetID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists all fields of an existing item.
func (r *budgetRepository) SaveItem(ctx context.Context, item *model.BudgetItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes an item by identity within a budget. Returns
// gorm.ErrRecordNotFound when nothing matched.
func (r *budgetRepository) DeleteItem(ctx context.Context, budgetID, itemID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND budget_id = ?", itemID, budgetID).
		Delete(&model.BudgetItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
