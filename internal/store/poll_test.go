package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-backend/internal/model"
)

func TestGormStore_CreatePoll_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	warden := seedUser(t, s, "poll-warden", model.RoleWarden)

	testCases := []struct {
		name    string
		poll    model.Poll
		wantErr error
	}{
		{"valid", model.Poll{Question: "mess timings?", Options: []string{"7am", "8am"}, CreatedBy: warden.ID}, nil},
		{"missing question", model.Poll{Options: []string{"a", "b"}, CreatedBy: warden.ID}, ErrInvalidInput},
		{"single option", model.Poll{Question: "q", Options: []string{"only"}, CreatedBy: warden.ID}, ErrInvalidInput},
		{"empty option", model.Poll{Question: "q", Options: []string{"a", ""}, CreatedBy: warden.ID}, ErrInvalidInput},
		{"duplicate options", model.Poll{Question: "q", Options: []string{"a", "a"}, CreatedBy: warden.ID}, ErrInvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.CreatePoll(ctx, &tc.poll)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGormStore_Vote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	warden := seedUser(t, s, "vote-warden", model.RoleWarden)
	voter := seedUser(t, s, "voter", model.RoleStudent)

	poll := &model.Poll{Question: "laundry day?", Options: []string{"sat", "sun"}, CreatedBy: warden.ID}
	require.NoError(t, s.CreatePoll(ctx, poll))

	assert.ErrorIs(t, s.Vote(ctx, poll.ID, voter.ID, "mon"), ErrInvalidOption)
	assert.ErrorIs(t, s.Vote(ctx, 9999, voter.ID, "sat"), ErrNotFound)

	require.NoError(t, s.Vote(ctx, poll.ID, voter.ID, "sat"))

	// One vote per user, even when switching options.
	assert.ErrorIs(t, s.Vote(ctx, poll.ID, voter.ID, "sat"), ErrAlreadyVoted)
	assert.ErrorIs(t, s.Vote(ctx, poll.ID, voter.ID, "sun"), ErrAlreadyVoted)
}

func TestGormStore_ListPolls_ViewerState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	warden := seedUser(t, s, "list-warden", model.RoleWarden)
	viewer := seedUser(t, s, "list-viewer", model.RoleStudent)
	other := seedUser(t, s, "list-other", model.RoleStudent)

	poll := &model.Poll{Question: "wifi upgrade?", Options: []string{"yes", "no", "later"}, CreatedBy: warden.ID}
	require.NoError(t, s.CreatePoll(ctx, poll))

	require.NoError(t, s.Vote(ctx, poll.ID, viewer.ID, "yes"))
	require.NoError(t, s.Vote(ctx, poll.ID, other.ID, "yes"))

	page, err := s.ListPolls(ctx, viewer.ID, PageParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	view := page.Items[0]
	assert.True(t, view.HasVoted)
	assert.Equal(t, "yes", view.UserVote)

	// All declared options appear, zero-filled when unvoted.
	require.Len(t, view.Options, 3)
	counts := map[string]int64{}
	for _, o := range view.Options {
		counts[o.Text] = o.Votes
		if o.Text == "yes" {
			assert.True(t, o.IsUserChoice)
		} else {
			assert.False(t, o.IsUserChoice)
		}
	}
	assert.Equal(t, int64(2), counts["yes"])
	assert.Equal(t, int64(0), counts["no"])
	assert.Equal(t, int64(0), counts["later"])

	// A viewer who has not voted sees the same counts without vote state.
	fresh, err := s.ListPolls(ctx, 9999, PageParams{})
	require.NoError(t, err)
	assert.False(t, fresh.Items[0].HasVoted)
	assert.Empty(t, fresh.Items[0].UserVote)
}

func TestGormStore_PollResults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	warden := seedUser(t, s, "res-warden", model.RoleWarden)
	a := seedUser(t, s, "res-a", model.RoleStudent)
	b := seedUser(t, s, "res-b", model.RoleStudent)

	poll := &model.Poll{Question: "q", Options: []string{"x", "y", "z"}, CreatedBy: warden.ID}
	require.NoError(t, s.CreatePoll(ctx, poll))
	require.NoError(t, s.Vote(ctx, poll.ID, a.ID, "x"))
	require.NoError(t, s.Vote(ctx, poll.ID, b.ID, "x"))

	results, err := s.PollResults(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, results, 1, "only voted options are reported")
	assert.Equal(t, "x", results[0].Option)
	assert.Equal(t, int64(2), results[0].Votes)

	_, err = s.PollResults(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_DeletePoll_CascadesVotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	warden := seedUser(t, s, "del-warden", model.RoleWarden)
	voter := seedUser(t, s, "del-voter", model.RoleStudent)

	poll := &model.Poll{Question: "q", Options: []string{"a", "b"}, CreatedBy: warden.ID}
	require.NoError(t, s.CreatePoll(ctx, poll))
	require.NoError(t, s.Vote(ctx, poll.ID, voter.ID, "a"))

	require.NoError(t, s.DeletePoll(ctx, poll.ID))

	_, err := s.PollByID(ctx, poll.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The voter can vote again on a new poll with the same id space; the
	// old votes are gone.
	again := &model.Poll{Question: "again", Options: []string{"a", "b"}, CreatedBy: warden.ID}
	require.NoError(t, s.CreatePoll(ctx, again))
	assert.NoError(t, s.Vote(ctx, again.ID, voter.ID, "b"))

	assert.ErrorIs(t, s.DeletePoll(ctx, 9999), ErrNotFound)
}
