package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-backend/internal/db"
	"hostel-backend/internal/model"
)

// newTestStore opens a fresh in-memory SQLite database, migrated and
// wrapped in the store. Each test gets its own database.
func newTestStore(t *testing.T) Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gdb))
	return NewGormStore(gdb)
}

// seedUser creates a user with a unique email and returns it.
func seedUser(t *testing.T, s Store, name, role string) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@hostel.test", name, role),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestPageParamsNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       PageParams
		expected PageParams
	}{
		{"zero values get defaults", PageParams{}, PageParams{Page: 1, Limit: 20}},
		{"negative page clamps to one", PageParams{Page: -3, Limit: 10}, PageParams{Page: 1, Limit: 10}},
		{"limit capped at hundred", PageParams{Page: 2, Limit: 500}, PageParams{Page: 2, Limit: 100}},
		{"valid values pass through", PageParams{Page: 3, Limit: 50}, PageParams{Page: 3, Limit: 50}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.in.Normalize())
		})
	}
}

func TestGormStore_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "owner", model.RoleStudent)
	for i := 0; i < 25; i++ {
		require.NoError(t, s.CreateItem(ctx, &model.MarketplaceItem{
			UserID: owner.ID,
			Title:  fmt.Sprintf("item %02d", i),
			Price:  float64(i),
		}))
	}

	first, err := s.ListItems(ctx, ItemFilter{}, PageParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), first.Total)
	assert.Len(t, first.Items, 10)

	second, err := s.ListItems(ctx, ItemFilter{}, PageParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, second.Items, 10)

	third, err := s.ListItems(ctx, ItemFilter{}, PageParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, third.Items, 5)

	// Pages are disjoint and ordered newest first.
	seen := map[uint]bool{}
	var all []ItemWithUser
	all = append(all, first.Items...)
	all = append(all, second.Items...)
	all = append(all, third.Items...)
	for i, it := range all {
		assert.False(t, seen[it.ID], "item %d appeared twice", it.ID)
		seen[it.ID] = true
		if i > 0 {
			assert.Greater(t, all[i-1].ID, it.ID)
		}
	}
}
