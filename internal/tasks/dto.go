package tasks

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
)

// CreateTaskInput is the payload for putting a job on the workshop board.
type CreateTaskInput struct {
	Title  string          `json:"title"`
	Client string          `json:"client"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status,omitempty"`
	DueAt  *time.Time      `json:"dueAt,omitempty"`
}

// TaskDTO is the wire shape of a workshop task.
type TaskDTO struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Client    string          `json:"client"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	Completed bool            `json:"completed"`
	DueAt     *time.Time      `json:"dueAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toDTO(task *models.Task) *TaskDTO {
	return &TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Client:    task.Client,
		Price:     task.Price,
		Status:    task.Status.String(),
		Completed: task.Completed,
		DueAt:     task.DueAt,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func toDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		out = append(out, *toDTO(&tasks[i]))
	}
	return out
}
