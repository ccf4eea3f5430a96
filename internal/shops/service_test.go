package shops

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

type fakeRepository struct {
	byOwner map[uuid.UUID]*models.Shop
	byID    map[uuid.UUID]*models.Shop
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byOwner: map[uuid.UUID]*models.Shop{},
		byID:    map[uuid.UUID]*models.Shop{},
	}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, shop *models.Shop) error {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	f.byOwner[shop.OwnerID] = shop
	f.byID[shop.ID] = shop
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	shop, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shop, nil
}

func (f *fakeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	shop, ok := f.byOwner[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shop, nil
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	shop, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		shop.Name = v.(string)
	}
	if v, ok := updates["addresses"]; ok {
		shop.Addresses = v.(types.AddressList)
	}
	if v, ok := updates["has_delivery"]; ok {
		shop.HasDelivery = v.(bool)
	}
	return nil
}

type fanoutCall struct {
	listingID   uuid.UUID
	snapshot    types.ShopSnapshot
	city        *string
	hasDelivery bool
}

type fakeFanout struct {
	ids     []uuid.UUID
	calls   []fanoutCall
	failFor map[uuid.UUID]error
	listErr error
}

func (f *fakeFanout) ListIDsByShop(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeFanout) UpdateShopDetails(ctx context.Context, listingID uuid.UUID, snapshot types.ShopSnapshot, city *string, hasDelivery bool) error {
	if err, ok := f.failFor[listingID]; ok {
		return err
	}
	f.calls = append(f.calls, fanoutCall{listingID: listingID, snapshot: snapshot, city: city, hasDelivery: hasDelivery})
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepository, *fakeFanout) {
	t.Helper()
	repo := newFakeRepository()
	fanout := &fakeFanout{}
	svc, err := NewService(ServiceParams{Repo: repo, ListingRepo: fanout})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, fanout
}

func TestUpsert_CreatesThenUpdates(t *testing.T) {
	svc, repo, fanout := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	created, err := svc.Upsert(ctx, ownerID, UpsertShopInput{
		Name:      "GSM Сервис",
		Addresses: types.AddressList{{City: "Ташкент", Street: "ул. Навои 10"}},
	})
	if err != nil {
		t.Fatalf("create upsert: %v", err)
	}
	if created.City != "Ташкент" {
		t.Fatalf("expected city from primary address, got %q", created.City)
	}
	if len(fanout.calls) != 0 {
		t.Fatal("create must not fan out to listings")
	}

	listingID := uuid.New()
	fanout.ids = []uuid.UUID{listingID}

	updated, err := svc.Upsert(ctx, ownerID, UpsertShopInput{
		Name:        "GSM Сервис Плюс",
		Addresses:   types.AddressList{{City: "Самарканд", Street: "пр. Регистан 1"}},
		HasDelivery: true,
	})
	if err != nil {
		t.Fatalf("update upsert: %v", err)
	}
	if updated.Name != "GSM Сервис Плюс" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}

	if len(fanout.calls) != 1 {
		t.Fatalf("expected one fan-out call, got %d", len(fanout.calls))
	}
	call := fanout.calls[0]
	if call.listingID != listingID {
		t.Fatal("fan-out targeted unknown listing")
	}
	if call.snapshot.Name != "GSM Сервис Плюс" || call.snapshot.City() != "Самарканд" {
		t.Fatalf("stale snapshot propagated: %+v", call.snapshot)
	}
	if call.city == nil || *call.city != "Самарканд" {
		t.Fatalf("expected denormalized city, got %v", call.city)
	}
	if !call.hasDelivery {
		t.Fatal("expected delivery flag propagated")
	}

	if repo.byOwner[ownerID].Name != "GSM Сервис Плюс" {
		t.Fatal("repo not updated")
	}
}

func TestUpsert_FanoutFailuresDoNotFailUpdate(t *testing.T) {
	svc, repo, fanout := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	if _, err := svc.Upsert(ctx, ownerID, UpsertShopInput{Name: "Мастерская"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	good, bad1, bad2 := uuid.New(), uuid.New(), uuid.New()
	fanout.ids = []uuid.UUID{bad1, good, bad2}
	fanout.failFor = map[uuid.UUID]error{
		bad1: errors.New("row lock"),
		bad2: errors.New("connection reset"),
	}

	dto, err := svc.Upsert(ctx, ownerID, UpsertShopInput{Name: "Мастерская 2"})
	if err != nil {
		t.Fatalf("snapshot refresh failures must not fail the upsert: %v", err)
	}
	if dto.Name != "Мастерская 2" {
		t.Fatalf("expected updated shop returned, got %q", dto.Name)
	}
	if repo.byOwner[ownerID].Name != "Мастерская 2" {
		t.Fatal("shop row not updated")
	}

	// the good row must still be updated despite sibling failures
	if len(fanout.calls) != 1 || fanout.calls[0].listingID != good {
		t.Fatalf("expected surviving update for %s, got %+v", good, fanout.calls)
	}
}

func TestUpsert_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, uuid.Nil, UpsertShopInput{Name: "X"}); err == nil {
		t.Fatal("expected owner id error")
	}
	if _, err := svc.Upsert(ctx, uuid.New(), UpsertShopInput{}); err == nil {
		t.Fatal("expected name error")
	}
}

func TestGetByOwner_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetByOwner(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
