package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-backend/internal/model"
)

func TestGormStore_CreateReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	student := seedUser(t, s, "lf-student", model.RoleStudent)

	bad := &model.LostFoundReport{UserID: student.ID, Type: "MISPLACED", Title: "keys"}
	assert.ErrorIs(t, s.CreateReport(ctx, bad), ErrInvalidInput)

	r := &model.LostFoundReport{UserID: student.ID, Type: model.ReportLost, Title: "Black umbrella", Resolved: true}
	require.NoError(t, s.CreateReport(ctx, r))
	assert.False(t, r.Resolved, "new reports start unresolved")
}

func TestGormStore_ListReports_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	student := seedUser(t, s, "lf-list", model.RoleStudent)

	lost := &model.LostFoundReport{UserID: student.ID, Type: model.ReportLost, Title: "ID card"}
	require.NoError(t, s.CreateReport(ctx, lost))
	found := &model.LostFoundReport{UserID: student.ID, Type: model.ReportFound, Title: "Water bottle"}
	require.NoError(t, s.CreateReport(ctx, found))

	_, err := s.ResolveReport(ctx, found.ID)
	require.NoError(t, err)

	byType, err := s.ListReports(ctx, ReportFilter{Type: model.ReportLost}, PageParams{})
	require.NoError(t, err)
	require.Len(t, byType.Items, 1)
	assert.Equal(t, "ID card", byType.Items[0].Title)

	resolved := true
	byResolved, err := s.ListReports(ctx, ReportFilter{Resolved: &resolved}, PageParams{})
	require.NoError(t, err)
	require.Len(t, byResolved.Items, 1)
	assert.Equal(t, "Water bottle", byResolved.Items[0].Title)
	assert.Equal(t, student.Name, byResolved.Items[0].User.Name)
}

func TestGormStore_ResolveReport_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	student := seedUser(t, s, "lf-resolve", model.RoleStudent)

	r := &model.LostFoundReport{UserID: student.ID, Type: model.ReportFound, Title: "Charger"}
	require.NoError(t, s.CreateReport(ctx, r))

	first, err := s.ResolveReport(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, first.Resolved)

	again, err := s.ResolveReport(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, again.Resolved)

	_, err = s.ResolveReport(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_DeleteReport_Roles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "lf-owner", model.RoleStudent)
	stranger := seedUser(t, s, "lf-stranger", model.RoleStudent)

	r := &model.LostFoundReport{UserID: owner.ID, Type: model.ReportLost, Title: "Wallet"}
	require.NoError(t, s.CreateReport(ctx, r))

	assert.ErrorIs(t, s.DeleteReport(ctx, r.ID, stranger.ID, model.RoleStudent), ErrForbidden)
	require.NoError(t, s.DeleteReport(ctx, r.ID, stranger.ID, model.RoleWarden))

	_, err := s.ReportByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
