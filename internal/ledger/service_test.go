package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
)

type fakeRepository struct {
	rows  map[uuid.UUID]*models.Transaction
	order []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[uuid.UUID]*models.Transaction{}}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transaction.CreatedAt = time.Now()
	f.rows[transaction.ID] = transaction
	f.order = append(f.order, transaction.ID)
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := len(f.order) - 1; i >= 0; i-- {
		row, ok := f.rows[f.order[i]]
		if ok && row.ShopID == shopID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeShopFinder struct {
	shops map[uuid.UUID]*models.Shop
}

func (f *fakeShopFinder) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	shop, ok := f.shops[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shop, nil
}

type ledgerFixture struct {
	svc     Service
	repo    *fakeRepository
	ownerID uuid.UUID
	shopID  uuid.UUID
}

func newLedgerFixture(t *testing.T) ledgerFixture {
	t.Helper()
	repo := newFakeRepository()
	ownerID := uuid.New()
	shopID := uuid.New()
	finder := &fakeShopFinder{shops: map[uuid.UUID]*models.Shop{
		ownerID: {ID: shopID, OwnerID: ownerID, Name: "PixelFix"},
	}}
	svc, err := NewService(ServiceParams{Repo: repo, ShopRepo: finder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return ledgerFixture{svc: svc, repo: repo, ownerID: ownerID, shopID: shopID}
}

func (fx ledgerFixture) mustCreate(t *testing.T, txType, category string, amount int64) *TransactionDTO {
	t.Helper()
	dto, err := fx.svc.Create(context.Background(), fx.ownerID, CreateTransactionInput{
		Type:     txType,
		Method:   "cash",
		Amount:   decimal.NewFromInt(amount),
		Category: category,
	})
	if err != nil {
		t.Fatalf("create %s %d: %v", txType, amount, err)
	}
	return dto
}

func TestCreateTransaction(t *testing.T) {
	fx := newLedgerFixture(t)

	note := "аванс за ремонт"
	dto, err := fx.svc.Create(context.Background(), fx.ownerID, CreateTransactionInput{
		Type:     "income",
		Method:   "card",
		Amount:   decimal.RequireFromString("1500000.50"),
		Category: "  Предоплата заказа  ",
		Note:     &note,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Category != "Предоплата заказа" {
		t.Fatalf("expected trimmed category, got %q", dto.Category)
	}
	if dto.Type != "income" || dto.Method != "card" {
		t.Fatalf("unexpected type/method: %s/%s", dto.Type, dto.Method)
	}
	stored := fx.repo.rows[dto.ID]
	if stored == nil || stored.ShopID != fx.shopID {
		t.Fatal("transaction not attached to the owner's shop")
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	fx := newLedgerFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateTransactionInput
	}{
		{"bad type", CreateTransactionInput{Type: "transfer", Method: "cash", Amount: decimal.NewFromInt(10), Category: "Прочие доходы"}},
		{"bad method", CreateTransactionInput{Type: "income", Method: "crypto", Amount: decimal.NewFromInt(10), Category: "Прочие доходы"}},
		{"zero amount", CreateTransactionInput{Type: "income", Method: "cash", Amount: decimal.Zero, Category: "Прочие доходы"}},
		{"negative amount", CreateTransactionInput{Type: "expense", Method: "cash", Amount: decimal.NewFromInt(-5), Category: "Прочие расходы"}},
		{"blank category", CreateTransactionInput{Type: "income", Method: "cash", Amount: decimal.NewFromInt(10), Category: "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Create(ctx, fx.ownerID, tc.input)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(fx.repo.rows) != 0 {
		t.Fatalf("no rows should be written, got %d", len(fx.repo.rows))
	}
}

func TestDeleteTransaction_Ownership(t *testing.T) {
	fx := newLedgerFixture(t)
	ctx := context.Background()

	dto := fx.mustCreate(t, "income", "Оплата товара", 100)

	otherOwner := uuid.New()
	fx.repo.rows[dto.ID].ShopID = fx.shopID
	finder := &fakeShopFinder{shops: map[uuid.UUID]*models.Shop{
		otherOwner: {ID: uuid.New(), OwnerID: otherOwner},
	}}
	otherSvc, err := NewService(ServiceParams{Repo: fx.repo, ShopRepo: finder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = otherSvc.Delete(ctx, otherOwner, dto.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := fx.svc.Delete(ctx, fx.ownerID, dto.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(fx.repo.rows) != 0 {
		t.Fatal("transaction should be gone")
	}

	err = fx.svc.Delete(ctx, fx.ownerID, dto.ID)
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	fx := newLedgerFixture(t)

	fx.mustCreate(t, "income", "Оплата заказа", 70)
	fx.mustCreate(t, "income", "Оплата товара", 50)
	fx.mustCreate(t, "expense", "Оплата поставщику", 30)

	summary, err := fx.svc.Summary(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.Income.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("income = %s, want 120", summary.Income)
	}
	if !summary.Expense.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expense = %s, want 30", summary.Expense)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("balance = %s, want 90", summary.Balance)
	}
}

func TestList_NewestFirst(t *testing.T) {
	fx := newLedgerFixture(t)

	fx.mustCreate(t, "income", "Оплата заказа", 10)
	fx.mustCreate(t, "expense", "Оплата аренды", 20)

	list, err := fx.svc.List(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].Category != "Оплата аренды" {
		t.Fatalf("expected newest entry first, got %q", list[0].Category)
	}
}

func TestLedger_NoShop(t *testing.T) {
	fx := newLedgerFixture(t)

	_, err := fx.svc.List(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found without a shop, got %v", err)
	}
}

func TestSuggestedCategories(t *testing.T) {
	categories := SuggestedCategories()
	if len(categories.Income) == 0 || len(categories.Expense) == 0 {
		t.Fatal("expected both suggestion lists to be populated")
	}
	categories.Income[0] = "mutated"
	if SuggestedCategories().Income[0] == "mutated" {
		t.Fatal("returned slices must be copies")
	}
}
