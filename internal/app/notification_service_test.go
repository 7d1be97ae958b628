package app_test

import (
	"context"
	"errors"
	"testing"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

func TestNotifications_Seeded(t *testing.T) {
	svc := app.NewNotificationService(nil)
	list, err := svc.List(userCtx(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("notifications = %d, want 3", len(list))
	}
	if list[0].Title != "Time to log your weight!" || list[1].Kind != domain.NotificationAchievement || !list[2].Read {
		t.Errorf("unexpected seed %+v", list)
	}
	n, _ := svc.Unread(userCtx(1))
	if n != 2 {
		t.Errorf("unread = %d, want 2", n)
	}
}

func TestNotifications_MarkRead(t *testing.T) {
	pub := &recordingPublisher{}
	svc := app.NewNotificationService(pub)
	ctx := userCtx(1)
	if err := svc.MarkRead(ctx, 1); err != nil {
		t.Fatal(err)
	}
	n, _ := svc.Unread(ctx)
	if n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}
	if pub.count() != 1 || pub.events[0].subject != domain.EventNotificationRead {
		t.Errorf("events = %+v", pub.events)
	}
	if err := svc.MarkRead(ctx, 42); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
	if other, _ := svc.Unread(userCtx(2)); other != 2 {
		t.Errorf("other user's unread = %d", other)
	}
}

func TestNotifications_Settings(t *testing.T) {
	svc := app.NewNotificationService(nil)
	ctx := userCtx(1)

	on, err := svc.ToggleSetting(ctx, domain.SettingWaterReminders)
	if err != nil || on {
		t.Errorf("toggle = %v, %v", on, err)
	}
	s, err := svc.UpdateSettings(ctx, map[string]bool{domain.SettingGoalAlerts: false})
	if err != nil {
		t.Fatal(err)
	}
	if s[domain.SettingWaterReminders] || s[domain.SettingGoalAlerts] || !s[domain.SettingMealReminders] {
		t.Errorf("settings = %v", s)
	}
	if _, err := svc.UpdateSettings(ctx, map[string]bool{"smsAlerts": true}); !errors.Is(err, domain.ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
	if _, err := svc.Settings(context.Background()); !errors.Is(err, domain.ErrNoUser) {
		t.Errorf("expected ErrNoUser, got %v", err)
	}
}
