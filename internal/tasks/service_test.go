package tasks

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
	rows  map[uuid.UUID]*models.Task
	order []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[uuid.UUID]*models.Task{}}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	f.rows[task.ID] = task
	f.order = append(f.order, task.ID)
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	task, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if completed, ok := updates["completed"].(bool); ok {
		task.Completed = completed
	}
	task.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeRepository) ListByShop(ctx context.Context, shopID uuid.UUID, filter TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for i := len(f.order) - 1; i >= 0; i-- {
		task, ok := f.rows[f.order[i]]
		if !ok || task.ShopID != shopID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.OpenOnly && task.Completed {
			continue
		}
		out = append(out, *task)
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

type taskFixture struct {
	svc     Service
	repo    *fakeRepository
	ownerID uuid.UUID
	shopID  uuid.UUID
}

func newTaskFixture(t *testing.T) taskFixture {
	t.Helper()
	repo := newFakeRepository()
	ownerID := uuid.New()
	shopID := uuid.New()
	finder := &fakeShopFinder{shops: map[uuid.UUID]*models.Shop{
		ownerID: {ID: shopID, OwnerID: ownerID},
	}}
	svc, err := NewService(ServiceParams{Repo: repo, ShopRepo: finder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return taskFixture{svc: svc, repo: repo, ownerID: ownerID, shopID: shopID}
}

func (fx taskFixture) mustCreate(t *testing.T, title, status string) *TaskDTO {
	t.Helper()
	dto, err := fx.svc.Create(context.Background(), fx.ownerID, CreateTaskInput{
		Title:  title,
		Client: "Азиз",
		Price:  decimal.NewFromInt(250000),
		Status: status,
	})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return dto
}

func TestCreateTask_Defaults(t *testing.T) {
	fx := newTaskFixture(t)

	dto, err := fx.svc.Create(context.Background(), fx.ownerID, CreateTaskInput{
		Title:  "  Замена дисплея iPhone 13  ",
		Client: "Азиз",
		Price:  decimal.NewFromInt(250000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Title != "Замена дисплея iPhone 13" {
		t.Fatalf("expected trimmed title, got %q", dto.Title)
	}
	if dto.Status != "Активные" {
		t.Fatalf("expected default status, got %q", dto.Status)
	}
	if dto.Completed {
		t.Fatal("new task must start open")
	}
}

func TestCreateTask_Validation(t *testing.T) {
	fx := newTaskFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateTaskInput
	}{
		{"blank title", CreateTaskInput{Title: " ", Client: "Азиз", Price: decimal.NewFromInt(1)}},
		{"blank client", CreateTaskInput{Title: "Ремонт", Client: "", Price: decimal.NewFromInt(1)}},
		{"negative price", CreateTaskInput{Title: "Ремонт", Client: "Азиз", Price: decimal.NewFromInt(-1)}},
		{"unknown status", CreateTaskInput{Title: "Ремонт", Client: "Азиз", Price: decimal.NewFromInt(1), Status: "Отменённые"}},
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
}

func TestListTasks_TabFilter(t *testing.T) {
	fx := newTaskFixture(t)
	ctx := context.Background()

	fx.mustCreate(t, "Диагностика", "Активные")
	fx.mustCreate(t, "Срочная пайка", "Срочные")
	fx.mustCreate(t, "Выдача", "Готов")

	all, err := fx.svc.List(ctx, fx.ownerID, "Все задачи")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("sentinel tab should list everything, got %d", len(all))
	}

	urgent, err := fx.svc.List(ctx, fx.ownerID, "Срочные")
	if err != nil {
		t.Fatalf("list urgent: %v", err)
	}
	if len(urgent) != 1 || urgent[0].Title != "Срочная пайка" {
		t.Fatalf("unexpected urgent tab: %+v", urgent)
	}

	if _, err := fx.svc.List(ctx, fx.ownerID, "Неизвестный таб"); err == nil {
		t.Fatal("expected error for unknown tab")
	}
}

func TestListTasks_ActiveTabKeepsOpenWork(t *testing.T) {
	fx := newTaskFixture(t)
	ctx := context.Background()

	inProgress := fx.mustCreate(t, "Замена разъёма", "В работе")
	closed := fx.mustCreate(t, "Выдан клиенту", "Готов")
	if _, err := fx.svc.UpdateCompleted(ctx, fx.ownerID, closed.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}

	active, err := fx.svc.List(ctx, fx.ownerID, "Активные")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != inProgress.ID {
		t.Fatalf("active tab should keep every open task regardless of stage: %+v", active)
	}
}

func TestUpdateCompleted_KeepsStatus(t *testing.T) {
	fx := newTaskFixture(t)
	ctx := context.Background()

	dto := fx.mustCreate(t, "Замена батареи", "В работе")

	updated, err := fx.svc.UpdateCompleted(ctx, fx.ownerID, dto.ID, true)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !updated.Completed {
		t.Fatal("expected completed flag set")
	}
	if updated.Status != "В работе" {
		t.Fatalf("status must survive completion, got %q", updated.Status)
	}

	reopened, err := fx.svc.UpdateCompleted(ctx, fx.ownerID, dto.ID, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Completed {
		t.Fatal("expected completed flag cleared")
	}
}

func TestTaskOwnership(t *testing.T) {
	fx := newTaskFixture(t)
	ctx := context.Background()

	dto := fx.mustCreate(t, "Чистка от залития", "Активные")

	otherOwner := uuid.New()
	finder := &fakeShopFinder{shops: map[uuid.UUID]*models.Shop{
		otherOwner: {ID: uuid.New(), OwnerID: otherOwner},
	}}
	otherSvc, err := NewService(ServiceParams{Repo: fx.repo, ShopRepo: finder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = otherSvc.UpdateCompleted(ctx, otherOwner, dto.ID, true)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	err = otherSvc.Delete(ctx, otherOwner, dto.ID)
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden delete, got %v", err)
	}

	if err := fx.svc.Delete(ctx, fx.ownerID, dto.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(fx.repo.rows) != 0 {
		t.Fatal("task should be gone")
	}
}
