package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreateMenu(ctx context.Context, m *model.MessMenu) error {
	if m.Day == "" {
		return ErrInvalidInput
	}
	return s.db.WithContext(ctx).Create(m).Error
}

// UpdateMenu patches only the fields present on patch; an empty patch
// returns the current record unchanged.
func (s *gormStore) UpdateMenu(ctx context.Context, id uint, patch MenuPatch) (*model.MessMenu, error) {
	var m model.MessMenu
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}

	fields := map[string]any{}
	if patch.Day != nil {
		fields["day"] = *patch.Day
	}
	if patch.Breakfast != nil {
		fields["breakfast"] = *patch.Breakfast
	}
	if patch.Lunch != nil {
		fields["lunch"] = *patch.Lunch
	}
	if patch.Dinner != nil {
		fields["dinner"] = *patch.Dinner
	}
	if len(fields) == 0 {
		return &m, nil
	}
	if err := s.db.WithContext(ctx).Model(&m).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMenu removes a menu and its feedback rows, feedback first.
func (s *gormStore) DeleteMenu(ctx context.Context, id uint) error {
	var m model.MessMenu
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&model.MessFeedback{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MessMenu{}, id).Error
	})
}

func (s *gormStore) ListMenus(ctx context.Context, day string, pp PageParams) (Page[model.MessMenu], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.MessMenu{})
	if day != "" {
		q = q.Where("day = ?", day)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[model.MessMenu]{}, err
	}

	var menus []model.MessMenu
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&menus).Error; err != nil {
		return Page[model.MessMenu]{}, err
	}
	return Page[model.MessMenu]{Items: menus, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) CreateFeedback(ctx context.Context, fb *model.MessFeedback) error {
	if fb.Rating != 1 && fb.Rating != -1 {
		return ErrInvalidInput
	}
	if err := s.db.WithContext(ctx).First(&model.MessMenu{}, fb.MenuID).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Create(fb).Error
}

// FeedbackAnalytics aggregates signed ratings per menu over an optional
// time range. With rating in {+1, -1}: likes = (count+sum)/2 and
// dislikes = (count-sum)/2.
func (s *gormStore) FeedbackAnalytics(ctx context.Context, from, to *time.Time) ([]MenuScore, error) {
	q := s.db.WithContext(ctx).Model(&model.MessFeedback{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	type aggRow struct {
		MenuID uint
		Count  int
		Sum    int
	}
	var rows []aggRow
	if err := q.
		Select("menu_id as menu_id, COUNT(*) as count, COALESCE(SUM(rating), 0) as sum").
		Group("menu_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	scores := make([]MenuScore, len(rows))
	for i, r := range rows {
		scores[i] = MenuScore{
			MenuID:   r.MenuID,
			Likes:    (r.Count + r.Sum) / 2,
			Dislikes: (r.Count - r.Sum) / 2,
			Score:    r.Sum,
		}
	}
	return scores, nil
}
