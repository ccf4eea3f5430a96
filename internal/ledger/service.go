package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

// ShopFinder resolves the caller's shop. Ledger entries belong to a shop,
// not directly to a user.
type ShopFinder interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
}

// ServiceParams groups dependencies for the ledger service.
type ServiceParams struct {
	Repo     Repository
	ShopRepo ShopFinder
	Logger   *logger.Logger
	Now      func() time.Time
}

// Service exposes cash-flow bookkeeping for a shop owner.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*TransactionDTO, error)
	Delete(ctx context.Context, userID, transactionID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]TransactionDTO, error)
	Summary(ctx context.Context, userID uuid.UUID) (*SummaryDTO, error)
}

type service struct {
	repo     Repository
	shopRepo ShopFinder
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds a ledger service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ledger repo is required")
	}
	if params.ShopRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		shopRepo: params.ShopRepo,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Create records one entry in the caller's shop ledger.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*TransactionDTO, error) {
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return nil, err
	}

	txType, err := enums.ParseTransactionType(input.Type)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type")
	}
	method, err := enums.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	occurredAt := s.now().UTC()
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.UTC()
	}

	transaction := &models.Transaction{
		ShopID:     shop.ID,
		Type:       txType,
		Method:     method,
		Amount:     input.Amount,
		Category:   category,
		Note:       input.Note,
		OccurredAt: occurredAt,
	}
	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create transaction")
	}
	return toDTO(transaction), nil
}

// Delete removes an entry after checking it belongs to the caller's shop.
func (s *service) Delete(ctx context.Context, userID, transactionID uuid.UUID) error {
	if transactionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return err
	}

	transaction, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find transaction")
	}
	if transaction.ShopID != shop.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "transaction belongs to another shop")
	}

	if err := s.repo.Delete(ctx, transactionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete transaction")
	}
	return nil
}

// List returns the caller's ledger newest-first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]TransactionDTO, error) {
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	return toDTOs(transactions), nil
}

// Summary folds the ledger into income, expense and balance totals.
func (s *service) Summary(ctx context.Context, userID uuid.UUID) (*SummaryDTO, error) {
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}

	income := decimal.Zero
	expense := decimal.Zero
	for i := range transactions {
		switch transactions[i].Type {
		case enums.TransactionTypeIncome:
			income = income.Add(transactions[i].Amount)
		case enums.TransactionTypeExpense:
			expense = expense.Add(transactions[i].Amount)
		}
	}
	return &SummaryDTO{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}

func (s *service) ownShop(ctx context.Context, userID uuid.UUID) (*models.Shop, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	shop, err := s.shopRepo.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find shop by owner")
	}
	return shop, nil
}
