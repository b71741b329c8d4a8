package store

import (
	"context"
	"strings"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreateLeave(ctx context.Context, l *model.LeaveRequest) error {
	l.Status = model.LeavePending
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *gormStore) ListMyLeaves(ctx context.Context, userID uint, status string, pp PageParams) (Page[model.LeaveRequest], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.LeaveRequest{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[model.LeaveRequest]{}, err
	}

	var leaves []model.LeaveRequest
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&leaves).Error; err != nil {
		return Page[model.LeaveRequest]{}, err
	}
	return Page[model.LeaveRequest]{Items: leaves, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

// ListPendingLeaves returns the warden's review queue, enriched with the
// requesting student. The student-name and room filters apply to the
// fetched page after enrichment, since they live on the users table.
func (s *gormStore) ListPendingLeaves(ctx context.Context, student string, room *int, pp PageParams) (Page[LeaveWithUser], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.LeaveRequest{}).Where("status = ?", model.LeavePending)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[LeaveWithUser]{}, err
	}

	var leaves []model.LeaveRequest
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&leaves).Error; err != nil {
		return Page[LeaveWithUser]{}, err
	}

	ids := make([]uint, len(leaves))
	for i, l := range leaves {
		ids[i] = l.UserID
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return Page[LeaveWithUser]{}, err
	}

	items := make([]LeaveWithUser, 0, len(leaves))
	for _, l := range leaves {
		u := summaryFor(users, l.UserID)
		if student != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(student)) {
			continue
		}
		if room != nil && (u.RoomNumber == nil || *u.RoomNumber != *room) {
			continue
		}
		items = append(items, LeaveWithUser{LeaveRequest: l, User: u})
	}
	return Page[LeaveWithUser]{Items: items, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) LeaveByID(ctx context.Context, id uint) (*LeaveWithUser, error) {
	var l model.LeaveRequest
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, notFound(err)
	}
	users, err := s.userSummaries(ctx, []uint{l.UserID})
	if err != nil {
		return nil, err
	}
	return &LeaveWithUser{LeaveRequest: l, User: summaryFor(users, l.UserID)}, nil
}

// SetLeaveStatus moves a pending request to APPROVED or REJECTED.
func (s *gormStore) SetLeaveStatus(ctx context.Context, id uint, status string) (*model.LeaveRequest, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return nil, ErrInvalidStatus
	}
	var l model.LeaveRequest
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, notFound(err)
	}
	if l.Status != model.LeavePending {
		return nil, ErrInvalidStatus
	}
	if err := s.db.WithContext(ctx).Model(&l).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLeave removes a request. Only the owner may withdraw their own
// request; ADMIN may remove any.
func (s *gormStore) DeleteLeave(ctx context.Context, id, actorID uint, actorRole string) error {
	var l model.LeaveRequest
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return notFound(err)
	}
	if l.UserID != actorID && actorRole != model.RoleAdmin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&model.LeaveRequest{}, id).Error
}
