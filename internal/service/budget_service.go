package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/cache"
	errs "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

const summaryCacheTTL = 5 * time.Minute

// ItemInput carries the three mutable fields of a budget item. All three are
// always supplied; partial item updates are not supported.
type ItemInput struct {
	Name     string
	Amount   decimal.Decimal
	Category string
}

// BudgetSummary is the total and per-category aggregation of a budget,
// recomputed from scratch on every read.
type BudgetSummary struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

// BudgetService handles a user's single budget and its items.
type BudgetService interface {
	// Get returns the user's budget, or nil without error when none exists.
	Get(ctx context.Context, userID uuid.UUID) (*model.Budget, error)
	Create(ctx context.Context, userID uuid.UUID, items []ItemInput) error
	AddItem(ctx context.Context, userID uuid.UUID, input ItemInput) (*model.BudgetItem, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, input ItemInput) (*model.BudgetItem, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (*BudgetSummary, error)
}

type budgetService struct {
	budgets repository.BudgetRepository
	cache   *cache.Client
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgets repository.BudgetRepository, cache *cache.Client) BudgetService {
	return &budgetService{
		budgets: budgets,
		cache:   cache,
	}
}

func (s *budgetService) summaryKey(userID uuid.UUID) string {
	return fmt.Sprintf("budget:summary:%s", userID)
}

// Get returns the user's budget. Absence is a normal outcome, not an error.
func (s *budgetService) Get(ctx context.Context, userID uuid.UUID) (*model.Budget, error) {
	budget, err := s.budgets.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return budget, nil
}

// Create persists a new budget with its initial items. The unique index on
// user_id decides concurrent duplicate creates; the lookup is a fast path.
func (s *budgetService) Create(ctx context.Context, userID uuid.UUID, items []ItemInput) error {
	if _, err := s.budgets.FindByUserID(ctx, userID); err == nil {
		return errs.ErrBudgetExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check budget existence: %w", err)
	}

	budget := &model.Budget{UserID: userID}
	for i, in := range items {
		budget.Items = append(budget.Items, model.BudgetItem{
			Name:     in.Name,
			Amount:   in.Amount,
			Category: in.Category,
			Position: i,
		})
	}

	if err := s.budgets.Create(ctx, budget); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrBudgetExists
		}
		return fmt.Errorf("create budget: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryKey(userID))
	return nil
}

// AddItem appends one item with a fresh identity to the user's budget.
func (s *budgetService) AddItem(ctx context.Context, userID uuid.UUID, input ItemInput) (*model.BudgetItem, error) {
	budget, err := s.budgets.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}

	item := &model.BudgetItem{
		BudgetID: budget.ID,
		Name:     input.Name,
		Amount:   input.Amount,
		Category: input.Category,
		Position: len(budget.Items),
	}
	if err := s.budgets.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryKey(userID))
	return item, nil
}

// UpdateItem overwrites all three mutable fields of an item in place. The item
// keeps its identity and position.
func (s *budgetService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, input ItemInput) (*model.BudgetItem, error) {
	budget, err := s.budgets.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}

	item, err := s.budgets.FindItem(ctx, budget.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}

	item.Name = input.Name
	item.Amount = input.Amount
	item.Category = input.Category
	if err := s.budgets.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryKey(userID))
	return item, nil
}

// DeleteItem removes an item by identity from the user's budget.
func (s *budgetService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	budget, err := s.budgets.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrBudgetNotFound
		}
		return fmt.Errorf("find budget: %w", err)
	}

	if err := s.budgets.DeleteItem(ctx, budget.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrItemNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryKey(userID))
	return nil
}

// Summary computes the budget total and per-category sums, with a short-lived
// cache in front. The budget must exist.
func (s *budgetService) Summary(ctx context.Context, userID uuid.UUID) (*BudgetSummary, error) {
	var cached BudgetSummary
	if s.cache.GetJSON(ctx, s.summaryKey(userID), &cached) {
		return &cached, nil
	}

	budget, err := s.budgets.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}

	summary := Summarize(budget.Items)
	s.cache.SetJSON(ctx, s.summaryKey(userID), summary, summaryCacheTTL)
	return summary, nil
}

// Summarize folds items into a total and a category-to-sum mapping.
func Summarize(items []model.BudgetItem) *BudgetSummary {
	summary := &BudgetSummary{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal, len(items)),
	}
	for _, item := range items {
		summary.Total = summary.Total.Add(item.Amount)
		summary.ByCategory[item.Category] = summary.ByCategory[item.Category].Add(item.Amount)
	}
	return summary
}
