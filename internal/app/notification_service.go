package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"healthhub/internal/domain"
)

type inbox struct {
	items    []domain.Notification
	settings domain.NotificationSettings
}

// NotificationRead is the payload published when a notification is read.
type NotificationRead struct {
	UserID         int64 `json:"userId"`
	NotificationID int64 `json:"notificationId"`
}

// NotificationService keeps each user's notification center.
type NotificationService struct {
	events domain.EventPublisher
	now    func() time.Time

	mu    sync.Mutex
	boxes map[int64]*inbox
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(events domain.EventPublisher) *NotificationService {
	if events == nil {
		events = domain.NopPublisher{}
	}
	return &NotificationService{
		events: events,
		now:    time.Now,
		boxes:  make(map[int64]*inbox),
	}
}

func (s *NotificationService) seed(now time.Time) *inbox {
	return &inbox{
		items: []domain.Notification{
			{ID: 1, Kind: domain.NotificationReminder, Title: "Time to log your weight!", Message: "You haven't logged your weight today.", CreatedAt: now.Add(-2 * time.Hour)},
			{ID: 2, Kind: domain.NotificationAchievement, Title: "Goal achieved!", Message: "You've reached your daily step goal of 10,000 steps!", CreatedAt: now.Add(-5 * time.Hour)},
			{ID: 3, Kind: domain.NotificationReminder, Title: "Hydration reminder", Message: "Remember to drink water!", CreatedAt: now.Add(-24 * time.Hour), Read: true},
		},
		settings: domain.DefaultNotificationSettings(),
	}
}

func (s *NotificationService) inbox(ctx context.Context) (*inbox, int64, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, 0, err
	}
	b, ok := s.boxes[user.ID]
	if !ok {
		b = s.seed(s.now())
		s.boxes[user.ID] = b
	}
	return b, user.ID, nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, _, err := s.inbox(ctx)
	if err != nil {
		return nil, err
	}
	return append([]domain.Notification(nil), b.items...), nil
}

// Unread counts unread notifications.
func (s *NotificationService) Unread(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n, nil
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	s.mu.Lock()
	b, uid, err := s.inbox(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	found := false
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Read = true
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return domain.ErrNotificationNotFound
	}
	if err := s.events.Publish(ctx, domain.EventNotificationRead, NotificationRead{UserID: uid, NotificationID: id}); err != nil {
		slog.WarnContext(ctx, "publish read event", "notification_id", id, "error", err)
	}
	return nil
}

// Settings returns a copy of the user's reminder toggles.
func (s *NotificationService) Settings(ctx context.Context) (domain.NotificationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, _, err := s.inbox(ctx)
	if err != nil {
		return nil, err
	}
	out := make(domain.NotificationSettings, len(b.settings))
	for k, v := range b.settings {
		out[k] = v
	}
	return out, nil
}

// UpdateSettings applies the given toggles. Unknown keys are rejected before
// anything changes.
func (s *NotificationService) UpdateSettings(ctx context.Context, changes map[string]bool) (domain.NotificationSettings, error) {
	for k := range changes {
		if _, ok := domain.DefaultNotificationSettings()[k]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSetting, k)
		}
	}
	s.mu.Lock()
	b, _, err := s.inbox(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	for k, v := range changes {
		b.settings[k] = v
	}
	s.mu.Unlock()
	return s.Settings(ctx)
}

// ToggleSetting flips one toggle and returns its new value.
func (s *NotificationService) ToggleSetting(ctx context.Context, key string) (bool, error) {
	if _, ok := domain.DefaultNotificationSettings()[key]; !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownSetting, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, _, err := s.inbox(ctx)
	if err != nil {
		return false, err
	}
	b.settings[key] = !b.settings[key]
	return b.settings[key], nil
}
