package service

import (
	"context"
	"errors"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/registry"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"gorm.io/gorm"
)

// EventPublisher is the side-channel for delivered notifications
// (push/email workers downstream). Satisfied by rabbitmq.Publisher.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type NotificationService interface {
	// Send persists an unread notification for the recipient and appends it
	// to the recipient's register. Engines call it exactly once per affected
	// party per mutation.
	Send(ctx context.Context, kind models.RecipientKind, recipientID uint, text string) (*models.Notification, error)
	MarkRead(ctx context.Context, notificationID uint) error
	MarkAllRead(ctx context.Context, kind models.RecipientKind, recipientID uint) error
	List(ctx context.Context, kind models.RecipientKind, recipientID uint) ([]models.Notification, error)
	UnreadCount(ctx context.Context, kind models.RecipientKind, recipientID uint) (int, error)
}

type notificationService struct {
	repo       repository.NotificationRepository
	recipients *registry.RecipientRegistry
	publisher  EventPublisher // nil disables the side-channel
}

func NewNotificationService(repo repository.NotificationRepository, publisher EventPublisher) NotificationService {
	return &notificationService{
		repo:       repo,
		recipients: registry.NewRecipients(),
		publisher:  publisher,
	}
}

func (s *notificationService) Send(ctx context.Context, kind models.RecipientKind, recipientID uint, text string) (*models.Notification, error) {
	notification := &models.Notification{
		RecipientID:   recipientID,
		RecipientKind: kind,
		Text:          text,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, persistErr("create notification", err)
	}

	state, release, err := s.acquire(ctx, kind, recipientID)
	if err != nil {
		return nil, err
	}
	state.Notifications.Add(notification.ID, false)
	release()

	// Best effort: delivery workers resync from the database if a publish
	// is lost, so a broker hiccup must not fail the mutation that
	// triggered this notification.
	if s.publisher != nil {
		_ = s.publisher.Publish("notification.sent", notification)
	}

	return notification, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uint) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistErr("find notification", err)
	}

	if !notification.Read {
		if err := s.repo.MarkRead(ctx, notificationID); err != nil {
			return persistErr("mark notification read", err)
		}
	}

	state, release, err := s.acquire(ctx, notification.RecipientKind, notification.RecipientID)
	if err != nil {
		return err
	}
	state.Notifications.MarkRead(notificationID)
	release()
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, kind models.RecipientKind, recipientID uint) error {
	if err := s.repo.MarkAllRead(ctx, kind, recipientID); err != nil {
		return persistErr("mark all notifications read", err)
	}

	state, release, err := s.acquire(ctx, kind, recipientID)
	if err != nil {
		return err
	}
	state.Notifications.MarkAllRead()
	release()
	return nil
}

func (s *notificationService) List(ctx context.Context, kind models.RecipientKind, recipientID uint) ([]models.Notification, error) {
	notifications, err := s.repo.FindByRecipient(ctx, kind, recipientID)
	if err != nil {
		return nil, persistErr("list notifications", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, kind models.RecipientKind, recipientID uint) (int, error) {
	state, release, err := s.acquire(ctx, kind, recipientID)
	if err != nil {
		return 0, err
	}
	defer release()
	return state.Notifications.Unread(), nil
}

// acquire returns the recipient's register with its lock held, hydrating
// from storage on first touch.
func (s *notificationService) acquire(ctx context.Context, kind models.RecipientKind, recipientID uint) (*registry.RecipientState, func(), error) {
	state, release := s.recipients.Acquire(kind, recipientID)
	if state.Loaded() {
		return state, release, nil
	}
	existing, err := s.repo.FindByRecipient(ctx, kind, recipientID)
	if err != nil {
		release()
		return nil, nil, persistErr("load notifications", err)
	}
	for _, n := range existing {
		state.Notifications.Add(n.ID, n.Read)
	}
	state.MarkLoaded()
	return state, release, nil
}
