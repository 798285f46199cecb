package domain

import "time"

// RetroSettings controls voting and anonymity rules for one session.
type RetroSettings struct {
	AllowAnonymous bool
	VotesPerPerson int
	TimerMinutes   *int
}

// RetroSession is the single retrospective attached to a sprint (1:1).
type RetroSession struct {
	ID            string
	SprintID      string
	Format        RetroFormat
	Phase         RetroPhase
	FacilitatorID string
	Settings      RetroSettings
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Columns returns the session format's fixed column set.
func (s *RetroSession) Columns() []string {
	return RetroFormatColumns[s.Format]
}

type RetroCard struct {
	ID          string
	SessionID   string
	Column      string
	Content     string
	AuthorID    string
	IsAnonymous bool
	// Votes is a set of voter user ids; a user's vote on a card is binary.
	Votes     []string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasVote reports whether userID has voted on this card.
func (c *RetroCard) HasVote(userID string) bool {
	for _, v := range c.Votes {
		if v == userID {
			return true
		}
	}
	return false
}

// DeletableBy reports whether actorID may delete the card: the author
// always can, and anonymous cards may be removed by any participant.
func (c *RetroCard) DeletableBy(actorID string) bool {
	return c.AuthorID == actorID || c.IsAnonymous
}

type RetroActionItem struct {
	ID          string
	SessionID   string
	Title       string
	Description string
	AssigneeID  *string
	Status      ActionStatus
	DueDate     *time.Time
	// CardIDs links the action back to the cards that motivated it.
	CardIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
