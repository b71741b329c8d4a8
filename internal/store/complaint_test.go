package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-backend/internal/model"
)

func TestGormStore_ComplaintTransitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	student := seedUser(t, s, "c-student", model.RoleStudent)

	c := &model.Complaint{UserID: student.ID, Title: "Broken fan", Description: "room 12", Status: "RESOLVED"}
	require.NoError(t, s.CreateComplaint(ctx, c))
	assert.Equal(t, model.ComplaintOpen, c.Status, "new complaints always open")

	inProgress, err := s.AdvanceComplaint(ctx, c.ID, model.ComplaintInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintInProgress, inProgress.Status)

	// No going back.
	_, err = s.AdvanceComplaint(ctx, c.ID, model.ComplaintOpen)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	resolved, err := s.AdvanceComplaint(ctx, c.ID, model.ComplaintResolved)
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintResolved, resolved.Status)

	_, err = s.AdvanceComplaint(ctx, c.ID, model.ComplaintResolved)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGormStore_ComplaintSkipsInProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	student := seedUser(t, s, "c-skip", model.RoleStudent)

	c := &model.Complaint{UserID: student.ID, Title: "Noise", Description: "late night"}
	require.NoError(t, s.CreateComplaint(ctx, c))

	resolved, err := s.AdvanceComplaint(ctx, c.ID, model.ComplaintResolved)
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintResolved, resolved.Status)
}

func TestGormStore_ListComplaints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedUser(t, s, "c-list-a", model.RoleStudent)
	b := seedUser(t, s, "c-list-b", model.RoleStudent)

	require.NoError(t, s.CreateComplaint(ctx, &model.Complaint{UserID: a.ID, Title: "one", Description: "d"}))
	require.NoError(t, s.CreateComplaint(ctx, &model.Complaint{UserID: b.ID, Title: "two", Description: "d"}))

	all, err := s.ListComplaints(ctx, nil, "", PageParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	for _, c := range all.Items {
		assert.NotEmpty(t, c.User.Name)
	}

	mine, err := s.ListComplaints(ctx, &a.ID, "", PageParams{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "one", mine.Items[0].Title)

	open, err := s.ListComplaints(ctx, nil, model.ComplaintOpen, PageParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), open.Total)
}

func TestGormStore_DeleteComplaint_Roles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "c-del-owner", model.RoleStudent)
	stranger := seedUser(t, s, "c-del-stranger", model.RoleStudent)

	c := &model.Complaint{UserID: owner.ID, Title: "t", Description: "d"}
	require.NoError(t, s.CreateComplaint(ctx, c))

	assert.ErrorIs(t, s.DeleteComplaint(ctx, c.ID, stranger.ID, model.RoleStudent), ErrForbidden)
	require.NoError(t, s.DeleteComplaint(ctx, c.ID, owner.ID, model.RoleStudent))

	_, err := s.ComplaintByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
