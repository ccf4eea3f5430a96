package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/api/responses"
	"github.com/ishoep/pixelpage-backend/api/validators"
	ledgersvc "github.com/ishoep/pixelpage-backend/internal/ledger"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

type createTransactionRequest struct {
	Type       string          `json:"type" validate:"required"`
	Method     string          `json:"method" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Category   string          `json:"category" validate:"required,max=128"`
	Note       *string         `json:"note,omitempty"`
	OccurredAt *time.Time      `json:"occurredAt,omitempty"`
}

func CreateTransaction(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transaction, err := svc.Create(r.Context(), userID, ledgersvc.CreateTransactionInput{
			Type:       payload.Type,
			Method:     payload.Method,
			Amount:     payload.Amount,
			Category:   payload.Category,
			Note:       payload.Note,
			OccurredAt: payload.OccurredAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

func DeleteTransaction(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transactionID, err := pathUUID(r, "transactionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, transactionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListTransactions(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transactions, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactions)
	}
}

func LedgerSummary(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// LedgerCategories serves the entry-form suggestion lists.
func LedgerCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, ledgersvc.SuggestedCategories())
	}
}
