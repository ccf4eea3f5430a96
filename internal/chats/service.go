package chats

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
	"github.com/ishoep/pixelpage-backend/pkg/pagination"
)

// ListingFinder resolves the listing a chat is about.
type ListingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

// ShopFinder resolves the seller behind a listing's shop.
type ShopFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

// ServiceParams groups dependencies for the chat service.
type ServiceParams struct {
	Repo        Repository
	ListingRepo ListingFinder
	ShopRepo    ShopFinder
	Logger      *logger.Logger
	Now         func() time.Time
}

// Service exposes business rules for buyer/seller messaging.
type Service interface {
	GetOrCreateChat(ctx context.Context, buyerID, listingID uuid.UUID) (*ChatDTO, error)
	SendMessage(ctx context.Context, chatID, senderID uuid.UUID, body string) (*MessageDTO, error)
	GetMessages(ctx context.Context, chatID, userID uuid.UUID, params pagination.Params) (*MessagePageDTO, error)
	ListUserChats(ctx context.Context, userID uuid.UUID) ([]ChatDTO, error)
}

type service struct {
	repo        Repository
	listingRepo ListingFinder
	shopRepo    ShopFinder
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds a chat service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat repo is required")
	}
	if params.ListingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing repo is required")
	}
	if params.ShopRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		listingRepo: params.ListingRepo,
		shopRepo:    params.ShopRepo,
		logg:        params.Logger,
		now:         now,
	}, nil
}

// GetOrCreateChat resolves the seller from the listing's shop and returns
// the unique thread for (buyer, seller, listing), creating it on first
// contact.
func (s *service) GetOrCreateChat(ctx context.Context, buyerID, listingID uuid.UUID) (*ChatDTO, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer id is required")
	}
	if listingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}

	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}

	shop, err := s.shopRepo.FindByID(ctx, listing.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}

	if shop.OwnerID == buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot open a chat on your own listing")
	}

	chat, _, err := s.repo.GetOrCreate(ctx, buyerID, shop.OwnerID, listingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get or create chat")
	}

	dto := chatToDTO(chat)
	return &dto, nil
}

// SendMessage bumps the thread's updated_at and appends the message. The
// two writes are deliberately not transactional: a failed append leaves
// only a touched timestamp behind.
func (s *service) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, body string) (*MessageDTO, error) {
	if senderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender id is required")
	}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	chat, err := s.participantChat(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchUpdatedAt(ctx, chat.ID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch chat")
	}

	message := &models.Message{
		ChatID:   chat.ID,
		SenderID: senderID,
		Body:     trimmed,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}

	dto := messageToDTO(message)
	return &dto, nil
}

// GetMessages walks the thread oldest-first. The returned cursor points
// at the last message of the page and is empty on the final page.
func (s *service) GetMessages(ctx context.Context, chatID, userID uuid.UUID, params pagination.Params) (*MessagePageDTO, error) {
	chat, err := s.participantChat(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	after, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	// Without a limit or cursor the whole transcript comes back in one
	// response; cursor paging is opt-in for clients on long threads.
	if params.Limit <= 0 && after == nil {
		messages, err := s.repo.ListMessages(ctx, chat.ID, nil, 0)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
		}
		page := &MessagePageDTO{Messages: make([]MessageDTO, 0, len(messages))}
		for i := range messages {
			page.Messages = append(page.Messages, messageToDTO(&messages[i]))
		}
		return page, nil
	}

	limit := pagination.NormalizeLimit(params.Limit)
	messages, err := s.repo.ListMessages(ctx, chat.ID, after, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}

	page := &MessagePageDTO{Messages: make([]MessageDTO, 0, len(messages))}
	if len(messages) > limit {
		messages = messages[:limit]
		last := messages[len(messages)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			Timestamp: last.CreatedAt,
			ID:        last.ID,
		})
	}
	for i := range messages {
		page.Messages = append(page.Messages, messageToDTO(&messages[i]))
	}
	return page, nil
}

func (s *service) ListUserChats(ctx context.Context, userID uuid.UUID) ([]ChatDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	chats, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list chats")
	}

	out := make([]ChatDTO, 0, len(chats))
	for i := range chats {
		dto := chatToDTO(&chats[i])
		dto.IsOwner = chats[i].SellerID == userID
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) participantChat(ctx context.Context, chatID, userID uuid.UUID) (*models.Chat, error) {
	if chatID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat id is required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	chat, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "chat not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load chat")
	}
	if chat.BuyerID != userID && chat.SellerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this chat")
	}
	return chat, nil
}
