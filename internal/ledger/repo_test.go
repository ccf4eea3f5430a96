package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS transactions (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  type TEXT NOT NULL,
  method TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  category TEXT NOT NULL,
  note TEXT,
  occurred_at DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM transactions").Error)
	return db
}

func insertTransaction(t *testing.T, repo Repository, shopID uuid.UUID, occurredAt time.Time) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		ID:         uuid.New(),
		ShopID:     shopID,
		Type:       enums.TransactionTypeIncome,
		Method:     enums.PaymentMethodCash,
		Amount:     decimal.NewFromInt(100),
		Category:   "Оплата заказа",
		OccurredAt: occurredAt,
	}
	require.NoError(t, repo.Create(context.Background(), transaction))
	return transaction
}

func TestRepositoryListByShopOrdersNewestFirst(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	shopID := uuid.New()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := insertTransaction(t, repo, shopID, base.Add(-2*time.Hour))
	newest := insertTransaction(t, repo, shopID, base)
	middle := insertTransaction(t, repo, shopID, base.Add(-time.Hour))
	insertTransaction(t, repo, uuid.New(), base)

	listed, err := repo.ListByShop(context.Background(), shopID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, newest.ID, listed[0].ID)
	assert.Equal(t, middle.ID, listed[1].ID)
	assert.Equal(t, oldest.ID, listed[2].ID)
}

func TestRepositoryFindByIDRoundTrips(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	note := "сдача наличными"
	created := &models.Transaction{
		ID:         uuid.New(),
		ShopID:     uuid.New(),
		Type:       enums.TransactionTypeExpense,
		Method:     enums.PaymentMethodCard,
		Amount:     decimal.RequireFromString("149.99"),
		Category:   "Оплата аренды",
		Note:       &note,
		OccurredAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), created))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ShopID, found.ShopID)
	assert.Equal(t, enums.TransactionTypeExpense, found.Type)
	assert.Equal(t, enums.PaymentMethodCard, found.Method)
	assert.True(t, found.Amount.Equal(created.Amount), "amount mismatch: %s", found.Amount)
	require.NotNil(t, found.Note)
	assert.Equal(t, note, *found.Note)
}

func TestRepositoryDeleteRemovesRow(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	shopID := uuid.New()

	transaction := insertTransaction(t, repo, shopID, time.Now().UTC())
	require.NoError(t, repo.Delete(context.Background(), transaction.ID))

	_, err := repo.FindByID(context.Background(), transaction.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	listed, err := repo.ListByShop(context.Background(), shopID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
