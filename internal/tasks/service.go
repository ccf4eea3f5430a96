package tasks

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

// ShopFinder resolves the caller's shop. Tasks live on a shop's board.
type ShopFinder interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
}

// ServiceParams groups dependencies for the task service.
type ServiceParams struct {
	Repo     Repository
	ShopRepo ShopFinder
	Logger   *logger.Logger
}

// Service exposes the workshop board for a shop owner.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*TaskDTO, error)
	List(ctx context.Context, userID uuid.UUID, statusTab string) ([]TaskDTO, error)
	UpdateCompleted(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*TaskDTO, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type service struct {
	repo     Repository
	shopRepo ShopFinder
	logg     *logger.Logger
}

// NewService builds a task service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task repo is required")
	}
	if params.ShopRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	return &service{
		repo:     params.Repo,
		shopRepo: params.ShopRepo,
		logg:     params.Logger,
	}, nil
}

// Create puts a new job on the board. Status defaults to the first tab and
// the completed flag always starts false.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*TaskDTO, error) {
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	client := strings.TrimSpace(input.Client)
	if client == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	status := enums.TaskStatusActive
	if input.Status != "" {
		status, err = enums.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid task status")
		}
	}

	task := &models.Task{
		ShopID: shop.ID,
		Title:  title,
		Client: client,
		Price:  input.Price,
		Status: status,
		DueAt:  input.DueAt,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create task")
	}
	return toDTO(task), nil
}

// List returns the board, optionally narrowed to one status tab. The
// sentinel tab and an empty string both mean every task. The "Активные"
// tab is the default board view and keeps every open task whatever its
// stage, not just tasks whose status literally reads "Активные".
func (s *service) List(ctx context.Context, userID uuid.UUID, statusTab string) ([]TaskDTO, error) {
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return nil, err
	}

	var filter TaskFilter
	switch statusTab {
	case "", enums.TaskStatusAll:
	case string(enums.TaskStatusActive):
		filter.OpenOnly = true
	default:
		parsed, err := enums.ParseTaskStatus(statusTab)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid task status")
		}
		filter.Status = &parsed
	}

	tasks, err := s.repo.ListByShop(ctx, shop.ID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tasks")
	}
	return toDTOs(tasks), nil
}

// UpdateCompleted toggles the closed flag only. The task keeps its status
// tab, so a reopened job lands back where it was.
func (s *service) UpdateCompleted(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*TaskDTO, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task.ID, map[string]any{"completed": completed}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update task")
	}
	task.Completed = completed
	return toDTO(task), nil
}

// Delete removes a job from the board.
func (s *service) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete task")
	}
	return nil
}

func (s *service) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	if taskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}
	shop, err := s.ownShop(ctx, userID)
	if err != nil {
		return nil, err
	}
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find task")
	}
	if task.ShopID != shop.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "task belongs to another shop")
	}
	return task, nil
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
