package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreatePoll(ctx context.Context, p *model.Poll) error {
	if p.Question == "" || len(p.Options) < 2 {
		return ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(p.Options))
	for _, o := range p.Options {
		if o == "" {
			return ErrInvalidInput
		}
		if _, dup := seen[o]; dup {
			return ErrInvalidInput
		}
		seen[o] = struct{}{}
	}
	return s.db.WithContext(ctx).Create(p).Error
}

// ListPolls returns polls newest first, each with per-option vote counts
// and the viewer's own vote. Options with no votes appear with zero.
func (s *gormStore) ListPolls(ctx context.Context, viewerID uint, pp PageParams) (Page[PollView], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.Poll{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[PollView]{}, err
	}

	var polls []model.Poll
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&polls).Error; err != nil {
		return Page[PollView]{}, err
	}

	pollIDs := make([]uint, len(polls))
	for i, p := range polls {
		pollIDs[i] = p.ID
	}
	var votes []model.PollVote
	if len(pollIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("poll_id IN ?", pollIDs).Find(&votes).Error; err != nil {
			return Page[PollView]{}, err
		}
	}

	counts := make(map[uint]map[string]int64, len(polls))
	mine := make(map[uint]string)
	for _, v := range votes {
		if counts[v.PollID] == nil {
			counts[v.PollID] = make(map[string]int64)
		}
		counts[v.PollID][v.Option]++
		if v.UserID == viewerID {
			mine[v.PollID] = v.Option
		}
	}

	items := make([]PollView, len(polls))
	for i, p := range polls {
		userVote, hasVoted := mine[p.ID]
		opts := make([]PollOptionView, len(p.Options))
		for j, text := range p.Options {
			opts[j] = PollOptionView{
				ID:           j,
				Text:         text,
				Votes:        counts[p.ID][text],
				IsUserChoice: hasVoted && userVote == text,
			}
		}
		items[i] = PollView{
			ID:        p.ID,
			Question:  p.Question,
			Options:   opts,
			HasVoted:  hasVoted,
			UserVote:  userVote,
			CreatedAt: p.CreatedAt,
		}
	}
	return Page[PollView]{Items: items, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) PollByID(ctx context.Context, id uint) (*model.Poll, error) {
	var p model.Poll
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Vote records a single vote. The existence pre-check gives the friendly
// conflict answer; the unique index on (poll_id, user_id) is what actually
// holds the invariant under concurrent votes, so its violation maps to the
// same ErrAlreadyVoted.
func (s *gormStore) Vote(ctx context.Context, pollID, userID uint, option string) error {
	poll, err := s.PollByID(ctx, pollID)
	if err != nil {
		return err
	}
	if !poll.HasOption(option) {
		return ErrInvalidOption
	}

	var existing model.PollVote
	err = s.db.WithContext(ctx).Where("poll_id = ? AND user_id = ?", pollID, userID).First(&existing).Error
	if err == nil {
		return ErrAlreadyVoted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	vote := model.PollVote{PollID: pollID, UserID: userID, Option: option}
	if err := s.db.WithContext(ctx).Create(&vote).Error; err != nil {
		if isDuplicate(err) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

// PollResults returns counts for every option that received at least one
// vote.
func (s *gormStore) PollResults(ctx context.Context, pollID uint) ([]OptionCount, error) {
	if _, err := s.PollByID(ctx, pollID); err != nil {
		return nil, err
	}
	var results []OptionCount
	if err := s.db.WithContext(ctx).
		Model(&model.PollVote{}).
		Select("option, COUNT(*) as votes").
		Where("poll_id = ?", pollID).
		Group("option").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeletePoll removes the poll and all its votes, votes first so no
// orphaned rows survive a partial failure.
func (s *gormStore) DeletePoll(ctx context.Context, id uint) error {
	if _, err := s.PollByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Poll{}, id).Error
	})
}
