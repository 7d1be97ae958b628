package app

import (
	"context"
	"sync"

	"healthhub/internal/domain"
)

var defaultChallenges = []domain.Challenge{
	{ID: "steps-30", Name: "30-Day Step Challenge", Description: "Walk 10,000 steps daily for 30 days", Participants: 145, Status: domain.ChallengeActive, DaysLeft: 12},
	{ID: "hydration-heroes", Name: "Hydration Heroes", Description: "Drink 8 glasses of water daily", Participants: 89, Status: domain.ChallengeActive, DaysLeft: 5},
	{ID: "sleep-well", Name: "Sleep Well Challenge", Description: "Get 8 hours of sleep for 7 days", Participants: 67, Status: domain.ChallengeCompleted},
}

// CommunityService lists challenges and records which ones users joined.
type CommunityService struct {
	challenges []domain.Challenge

	mu     sync.Mutex
	joined map[string]map[int64]bool
}

// NewCommunityService creates a CommunityService with the built-in challenges.
func NewCommunityService() *CommunityService {
	return &CommunityService{
		challenges: defaultChallenges,
		joined:     make(map[string]map[int64]bool),
	}
}

// List returns every challenge as seen by the user in ctx. Participant counts
// include users who joined here.
func (s *CommunityService) List(ctx context.Context) []domain.Challenge {
	var uid int64
	if u := UserFrom(ctx); u != nil {
		uid = u.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Challenge, len(s.challenges))
	for i, c := range s.challenges {
		c.Participants += len(s.joined[c.ID])
		c.Joined = uid != 0 && s.joined[c.ID][uid]
		out[i] = c
	}
	return out
}

// Join adds the user in ctx to an active challenge. Joining twice is a no-op.
func (s *CommunityService) Join(ctx context.Context, id string) (domain.Challenge, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return domain.Challenge{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.challenges {
		if c.ID != id {
			continue
		}
		if !c.Active() {
			return domain.Challenge{}, domain.ErrChallengeClosed
		}
		members := s.joined[id]
		if members == nil {
			members = make(map[int64]bool)
			s.joined[id] = members
		}
		members[user.ID] = true
		c.Participants += len(members)
		c.Joined = true
		return c, nil
	}
	return domain.Challenge{}, domain.ErrChallengeNotFound
}
