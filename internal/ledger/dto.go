package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
)

// CreateTransactionInput is the payload for recording a ledger entry.
type CreateTransactionInput struct {
	Type       string          `json:"type"`
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Note       *string         `json:"note,omitempty"`
	OccurredAt *time.Time      `json:"occurredAt,omitempty"`
}

// TransactionDTO is the wire shape of a single ledger entry.
type TransactionDTO struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Note       *string         `json:"note,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SummaryDTO totals a shop's ledger. Balance is income minus expense.
type SummaryDTO struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoriesDTO carries the suggestion lists for the entry form.
type CategoriesDTO struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

func toDTO(transaction *models.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:         transaction.ID,
		Type:       transaction.Type.String(),
		Method:     transaction.Method.String(),
		Amount:     transaction.Amount,
		Category:   transaction.Category,
		Note:       transaction.Note,
		OccurredAt: transaction.OccurredAt,
		CreatedAt:  transaction.CreatedAt,
	}
}

func toDTOs(transactions []models.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(transactions))
	for i := range transactions {
		out = append(out, *toDTO(&transactions[i]))
	}
	return out
}

// Suggestion lists shown by the entry form. Free text is still accepted.
var (
	incomeCategories = []string{
		"Оплата заказа",
		"Оплата счета",
		"Оплата товара",
		"Предоплата заказа",
		"Прочие доходы",
	}
	expenseCategories = []string{
		"Возврат товара",
		"Возврат заказа",
		"Выплата ЗП",
		"Оплата аренды",
		"Оплата коммунальных услуг",
		"Оплата поставщику",
		"Прочие расходы",
	}
)

// SuggestedCategories returns the form suggestion lists for both entry types.
func SuggestedCategories() CategoriesDTO {
	return CategoriesDTO{
		Income:  append([]string(nil), incomeCategories...),
		Expense: append([]string(nil), expenseCategories...),
	}
}
