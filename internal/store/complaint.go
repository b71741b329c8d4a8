package store

import (
	"context"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreateComplaint(ctx context.Context, c *model.Complaint) error {
	c.Status = model.ComplaintOpen
	return s.db.WithContext(ctx).Create(c).Error
}

// ListComplaints lists complaints, optionally scoped to one owner
// (the "my complaints" view) and/or one status.
func (s *gormStore) ListComplaints(ctx context.Context, userID *uint, status string, pp PageParams) (Page[ComplaintWithUser], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.Complaint{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[ComplaintWithUser]{}, err
	}

	var complaints []model.Complaint
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&complaints).Error; err != nil {
		return Page[ComplaintWithUser]{}, err
	}

	ids := make([]uint, len(complaints))
	for i, c := range complaints {
		ids[i] = c.UserID
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return Page[ComplaintWithUser]{}, err
	}

	items := make([]ComplaintWithUser, len(complaints))
	for i, c := range complaints {
		items[i] = ComplaintWithUser{Complaint: c, User: summaryFor(users, c.UserID)}
	}
	return Page[ComplaintWithUser]{Items: items, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) ComplaintByID(ctx context.Context, id uint) (*ComplaintWithUser, error) {
	var c model.Complaint
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	users, err := s.userSummaries(ctx, []uint{c.UserID})
	if err != nil {
		return nil, err
	}
	return &ComplaintWithUser{Complaint: c, User: summaryFor(users, c.UserID)}, nil
}

// AdvanceComplaint moves a complaint's status forward. Backward moves and
// unknown statuses are rejected.
func (s *gormStore) AdvanceComplaint(ctx context.Context, id uint, status string) (*model.Complaint, error) {
	var c model.Complaint
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	if !model.ComplaintStatusAdvances(c.Status, status) {
		return nil, ErrInvalidStatus
	}
	if err := s.db.WithContext(ctx).Model(&c).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) DeleteComplaint(ctx context.Context, id, actorID uint, actorRole string) error {
	var c model.Complaint
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return notFound(err)
	}
	if c.UserID != actorID && actorRole != model.RoleWarden && actorRole != model.RoleAdmin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&model.Complaint{}, id).Error
}
