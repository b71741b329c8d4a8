package model

import "time"

// Poll is a question with a fixed set of option labels.
type Poll struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"size:512;not null" json:"question"`
	Options   []string  `gorm:"serializer:json;not null" json:"options"`
	CreatedBy uint      `gorm:"index;not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasOption reports whether option is one of the poll's declared options.
func (p *Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// PollVote is a single user's vote on a poll. The composite unique index
// is the store-level guard for the one-vote-per-user invariant; the
// application-level existence check is advisory only.
type PollVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PollID    uint      `gorm:"uniqueIndex:idx_poll_vote_once;not null" json:"pollId"`
	UserID    uint      `gorm:"uniqueIndex:idx_poll_vote_once;not null" json:"userId"`
	Option    string    `gorm:"size:256;not null" json:"option"`
	CreatedAt time.Time `json:"createdAt"`
}
