package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-backend/internal/model"
)

func TestGormStore_CreateItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "item-owner", model.RoleStudent)

	it := &model.MarketplaceItem{UserID: owner.ID, Title: "Desk fan", Price: 15, Status: model.ItemSold}
	require.NoError(t, s.CreateItem(ctx, it))
	assert.Equal(t, model.ItemAvailable, it.Status, "new listings always start available")

	bad := &model.MarketplaceItem{UserID: owner.ID, Title: "Free?", Price: -1}
	assert.ErrorIs(t, s.CreateItem(ctx, bad), ErrInvalidInput)
}

func TestGormStore_ListItems_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "filter-owner", model.RoleStudent)

	require.NoError(t, s.CreateItem(ctx, &model.MarketplaceItem{UserID: owner.ID, Title: "Study Lamp", Price: 10}))
	require.NoError(t, s.CreateItem(ctx, &model.MarketplaceItem{UserID: owner.ID, Title: "Bicycle", Description: "barely used", Price: 80}))
	require.NoError(t, s.CreateItem(ctx, &model.MarketplaceItem{UserID: owner.ID, Title: "Kettle", Price: 25}))

	bySearch, err := s.ListItems(ctx, ItemFilter{Search: "lamp"}, PageParams{})
	require.NoError(t, err)
	require.Len(t, bySearch.Items, 1)
	assert.Equal(t, "Study Lamp", bySearch.Items[0].Title)

	// Search also matches descriptions.
	byDesc, err := s.ListItems(ctx, ItemFilter{Search: "barely"}, PageParams{})
	require.NoError(t, err)
	require.Len(t, byDesc.Items, 1)
	assert.Equal(t, "Bicycle", byDesc.Items[0].Title)

	min, max := 20.0, 90.0
	byPrice, err := s.ListItems(ctx, ItemFilter{MinPrice: &min, MaxPrice: &max}, PageParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byPrice.Total)
}

func TestGormStore_UpdateItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "upd-owner", model.RoleStudent)
	stranger := seedUser(t, s, "upd-stranger", model.RoleStudent)

	it := &model.MarketplaceItem{UserID: owner.ID, Title: "Chair", Price: 12}
	require.NoError(t, s.CreateItem(ctx, it))

	_, err := s.UpdateItem(ctx, it.ID, ItemPatch{}, stranger.ID, model.RoleStudent)
	assert.ErrorIs(t, err, ErrForbidden)

	newPrice := 9.5
	updated, err := s.UpdateItem(ctx, it.ID, ItemPatch{Price: &newPrice}, owner.ID, model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, 9.5, updated.Price)

	negative := -2.0
	_, err = s.UpdateItem(ctx, it.ID, ItemPatch{Price: &negative}, owner.ID, model.RoleStudent)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Empty patch is a successful no-op.
	same, err := s.UpdateItem(ctx, it.ID, ItemPatch{}, owner.ID, model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "Chair", same.Title)

	// Admins may edit any listing.
	title := "Office Chair"
	asAdmin, err := s.UpdateItem(ctx, it.ID, ItemPatch{Title: &title}, stranger.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Office Chair", asAdmin.Title)
}

func TestGormStore_MarkItemSold(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "sold-owner", model.RoleStudent)

	it := &model.MarketplaceItem{UserID: owner.ID, Title: "Heater", Price: 30}
	require.NoError(t, s.CreateItem(ctx, it))

	sold, err := s.MarkItemSold(ctx, it.ID, owner.ID, model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, model.ItemSold, sold.Status)

	// Sold is terminal.
	_, err = s.MarkItemSold(ctx, it.ID, owner.ID, model.RoleStudent)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	back := model.ItemAvailable
	_, err = s.UpdateItem(ctx, it.ID, ItemPatch{Status: &back}, owner.ID, model.RoleStudent)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGormStore_DeleteItem_Roles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "del-item-owner", model.RoleStudent)
	stranger := seedUser(t, s, "del-item-stranger", model.RoleStudent)

	it := &model.MarketplaceItem{UserID: owner.ID, Title: "Rug", Price: 8}
	require.NoError(t, s.CreateItem(ctx, it))

	assert.ErrorIs(t, s.DeleteItem(ctx, it.ID, stranger.ID, model.RoleStudent), ErrForbidden)

	// Wardens may clean up listings.
	require.NoError(t, s.DeleteItem(ctx, it.ID, stranger.ID, model.RoleWarden))
	_, err := s.ItemByID(ctx, it.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
