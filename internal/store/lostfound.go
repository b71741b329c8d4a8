package store

import (
	"context"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreateReport(ctx context.Context, r *model.LostFoundReport) error {
	if r.Type != model.ReportLost && r.Type != model.ReportFound {
		return ErrInvalidInput
	}
	r.Resolved = false
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *gormStore) ListReports(ctx context.Context, f ReportFilter, pp PageParams) (Page[ReportWithUser], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.LostFoundReport{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Resolved != nil {
		q = q.Where("resolved = ?", *f.Resolved)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[ReportWithUser]{}, err
	}

	var reports []model.LostFoundReport
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&reports).Error; err != nil {
		return Page[ReportWithUser]{}, err
	}

	ids := make([]uint, len(reports))
	for i, r := range reports {
		ids[i] = r.UserID
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return Page[ReportWithUser]{}, err
	}

	items := make([]ReportWithUser, len(reports))
	for i, r := range reports {
		items[i] = ReportWithUser{LostFoundReport: r, User: summaryFor(users, r.UserID)}
	}
	return Page[ReportWithUser]{Items: items, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) ReportByID(ctx context.Context, id uint) (*ReportWithUser, error) {
	var r model.LostFoundReport
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err)
	}
	users, err := s.userSummaries(ctx, []uint{r.UserID})
	if err != nil {
		return nil, err
	}
	return &ReportWithUser{LostFoundReport: r, User: summaryFor(users, r.UserID)}, nil
}

func (s *gormStore) ResolveReport(ctx context.Context, id uint) (*model.LostFoundReport, error) {
	var r model.LostFoundReport
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&r).Update("resolved", true).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) DeleteReport(ctx context.Context, id, actorID uint, actorRole string) error {
	var r model.LostFoundReport
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return notFound(err)
	}
	if r.UserID != actorID && actorRole != model.RoleWarden && actorRole != model.RoleAdmin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&model.LostFoundReport{}, id).Error
}
