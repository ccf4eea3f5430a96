package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/api/responses"
	"github.com/ishoep/pixelpage-backend/api/validators"
	taskssvc "github.com/ishoep/pixelpage-backend/internal/tasks"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

type createTaskRequest struct {
	Title  string          `json:"title" validate:"required,max=255"`
	Client string          `json:"client" validate:"required,max=255"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status,omitempty"`
	DueAt  *time.Time      `json:"dueAt,omitempty"`
}

func CreateTask(svc taskssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTaskRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.Create(r.Context(), userID, taskssvc.CreateTaskInput{
			Title:  payload.Title,
			Client: payload.Client,
			Price:  payload.Price,
			Status: payload.Status,
			DueAt:  payload.DueAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, task)
	}
}

// ListTasks serves the board, narrowed by the optional "status" query
// parameter (one board tab or the all-tasks sentinel).
func ListTasks(svc taskssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tasks, err := svc.List(r.Context(), userID, validators.SanitizeString(r.URL.Query().Get("status"), 64))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tasks)
	}
}

type updateTaskCompletedRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

func UpdateTaskCompleted(svc taskssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := pathUUID(r, "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTaskCompletedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.UpdateCompleted(r.Context(), userID, taskID, *payload.Completed)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, task)
	}
}

func DeleteTask(svc taskssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := pathUUID(r, "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, taskID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
