package push

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-backend/internal/db"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

// mockSender captures or fakes the web push transport.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestStore(t *testing.T) store.Store {
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
	return store.NewGormStore(gdb)
}

func pushResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString("")),
	}
}

func TestPool_DeliversToAllSubscriptions(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example/one", UserID: 7, P256DH: "k1", Auth: "a1",
	}))
	require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example/two", UserID: 7, P256DH: "k2", Auth: "a2",
	}))
	// Another user's subscription must not receive anything.
	require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example/other", UserID: 8, P256DH: "k3", Auth: "a3",
	}))

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	endpoints := map[string]string{}

	pool := NewPool(1, 16, s, &webpush.Options{})
	pool.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			mu.Lock()
			endpoints[sub.Endpoint] = string(payload)
			mu.Unlock()
			wg.Done()
			return pushResponse(http.StatusCreated), nil
		},
	})
	pool.Start(ctx)

	pool.Dispatch(Job{UserID: 7, Title: "Fee due", Message: "Pay by Friday"})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, endpoints, 2)
	assert.NotContains(t, endpoints, "https://push.example/other")
	for _, body := range endpoints {
		assert.JSONEq(t, `{"title":"Fee due","message":"Pay by Friday"}`, body)
	}
}

func TestPool_PrunesExpiredSubscription(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example/expired", UserID: 9, P256DH: "k", Auth: "a",
	}))

	var wg sync.WaitGroup
	wg.Add(1)

	pool := NewPool(1, 16, s, &webpush.Options{})
	pool.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			defer wg.Done()
			return pushResponse(http.StatusGone), nil
		},
	})
	pool.Start(ctx)

	pool.Dispatch(Job{UserID: 9, Title: "t", Message: "m"})
	wg.Wait()

	// The pruning write happens after the sender returns; poll briefly.
	assert.Eventually(t, func() bool {
		subs, err := s.SubscriptionsForUser(ctx, 9)
		return err == nil && len(subs) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestPool_DispatchNeverBlocks(t *testing.T) {
	s := newTestStore(t)

	// No workers are started, so the queue fills up and further jobs are
	// dropped rather than blocking the caller.
	pool := NewPool(1, 2, s, &webpush.Options{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			pool.Dispatch(Job{UserID: uint(i), Title: "t", Message: "m"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}
