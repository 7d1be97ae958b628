package app_test

import (
	"context"
	"errors"
	"testing"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

func TestCommunity_List(t *testing.T) {
	svc := app.NewCommunityService()
	list := svc.List(context.Background())
	if len(list) != 3 {
		t.Fatalf("challenges = %d, want 3", len(list))
	}
	if list[0].Name != "30-Day Step Challenge" || list[0].Participants != 145 || list[0].DaysLeft != 12 {
		t.Errorf("first challenge = %+v", list[0])
	}
	if list[2].Status != domain.ChallengeCompleted {
		t.Errorf("sleep challenge status = %q", list[2].Status)
	}
}

func TestCommunity_Join(t *testing.T) {
	svc := app.NewCommunityService()
	ctx := userCtx(1)

	c, err := svc.Join(ctx, "hydration-heroes")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Joined || c.Participants != 90 {
		t.Errorf("joined challenge = %+v", c)
	}
	if c, _ = svc.Join(ctx, "hydration-heroes"); c.Participants != 90 {
		t.Errorf("joining twice counted twice: %d", c.Participants)
	}

	others := svc.List(userCtx(2))
	if others[1].Joined || others[1].Participants != 90 {
		t.Errorf("other user sees %+v", others[1])
	}
}

func TestCommunity_JoinErrors(t *testing.T) {
	svc := app.NewCommunityService()
	tests := []struct {
		name string
		ctx  context.Context
		id   string
		want error
	}{
		{"no user", context.Background(), "steps-30", domain.ErrNoUser},
		{"unknown", userCtx(1), "marathon", domain.ErrChallengeNotFound},
		{"completed", userCtx(1), "sleep-well", domain.ErrChallengeClosed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Join(tc.ctx, tc.id); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
