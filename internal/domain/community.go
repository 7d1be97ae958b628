package domain

// ChallengeStatus is either active or completed.
type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "Active"
	ChallengeCompleted ChallengeStatus = "Completed"
)

// Challenge is a community challenge users can join.
type Challenge struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Participants int             `json:"participants"`
	Status       ChallengeStatus `json:"status"`
	DaysLeft     int             `json:"daysLeft"`
	Joined       bool            `json:"joined"`
}

// Active reports whether the challenge can still be joined.
func (c Challenge) Active() bool { return c.Status == ChallengeActive }
