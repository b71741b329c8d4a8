package store

import (
	"context"
	"strings"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreateItem(ctx context.Context, it *model.MarketplaceItem) error {
	if it.Price < 0 {
		return ErrInvalidInput
	}
	it.Status = model.ItemAvailable
	return s.db.WithContext(ctx).Create(it).Error
}

func (s *gormStore) ListItems(ctx context.Context, f ItemFilter, pp PageParams) (Page[ItemWithUser], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.MarketplaceItem{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[ItemWithUser]{}, err
	}

	var records []model.MarketplaceItem
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&records).Error; err != nil {
		return Page[ItemWithUser]{}, err
	}

	ids := make([]uint, len(records))
	for i, it := range records {
		ids[i] = it.UserID
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return Page[ItemWithUser]{}, err
	}

	items := make([]ItemWithUser, len(records))
	for i, it := range records {
		items[i] = ItemWithUser{MarketplaceItem: it, User: summaryFor(users, it.UserID)}
	}
	return Page[ItemWithUser]{Items: items, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) ItemByID(ctx context.Context, id uint) (*ItemWithUser, error) {
	var it model.MarketplaceItem
	if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, notFound(err)
	}
	users, err := s.userSummaries(ctx, []uint{it.UserID})
	if err != nil {
		return nil, err
	}
	return &ItemWithUser{MarketplaceItem: it, User: summaryFor(users, it.UserID)}, nil
}

// UpdateItem patches only the fields present on patch. An empty patch is
// a successful no-op. Status may only move AVAILABLE -> SOLD.
func (s *gormStore) UpdateItem(ctx context.Context, id uint, patch ItemPatch, actorID uint, actorRole string) (*model.MarketplaceItem, error) {
	var it model.MarketplaceItem
	if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, notFound(err)
	}
	if it.UserID != actorID && actorRole != model.RoleAdmin {
		return nil, ErrForbidden
	}

	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, ErrInvalidInput
		}
		fields["price"] = *patch.Price
	}
	if patch.Status != nil {
		if *patch.Status != model.ItemSold || it.Status != model.ItemAvailable {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *patch.Status
	}
	if len(fields) == 0 {
		return &it, nil
	}
	if err := s.db.WithContext(ctx).Model(&it).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *gormStore) MarkItemSold(ctx context.Context, id, actorID uint, actorRole string) (*model.MarketplaceItem, error) {
	sold := model.ItemSold
	return s.UpdateItem(ctx, id, ItemPatch{Status: &sold}, actorID, actorRole)
}

func (s *gormStore) DeleteItem(ctx context.Context, id, actorID uint, actorRole string) error {
	var it model.MarketplaceItem
	if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return notFound(err)
	}
	if it.UserID != actorID && actorRole != model.RoleWarden && actorRole != model.RoleAdmin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&model.MarketplaceItem{}, id).Error
}
