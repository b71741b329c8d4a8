package push

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"hostel-backend/internal/metrics"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

// Sender abstracts the web push call so tests can substitute a mock.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender sends through the webpush library.
type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Job is one best-effort delivery request: push a notice to every
// subscription the user has registered.
type Job struct {
	UserID  uint
	Title   string
	Message string
}

// Pool manages a pool of workers delivering push notifications. Delivery
// is advisory: the notification row is the durable fact, and nothing here
// ever propagates failure back to the send request.
type Pool struct {
	size    int
	jobs    chan Job
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewPool creates a worker pool with the given concurrency and queue depth.
func NewPool(size, queueSize int, s store.Store, options *webpush.Options) *Pool {
	return &Pool{
		size:    size,
		jobs:    make(chan Job, queueSize),
		store:   s,
		webpush: options,
		sender:  &WebPushSender{},
	}
}

// SetSender overrides the delivery transport. Used by tests.
func (p *Pool) SetSender(s Sender) { p.sender = s }

// Start launches the worker goroutines. They drain until ctx is done.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.worker(ctx, i)
	}
}

// Dispatch enqueues a delivery without blocking the caller. If the queue
// is full the job is dropped and counted; callers must not care.
func (p *Pool) Dispatch(job Job) {
	select {
	case p.jobs <- job:
	default:
		metrics.PushDropped.Inc()
		log.Warn().Uint("user_id", job.UserID).Msg("push queue full, job dropped")
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	log.Debug().Int("worker", id).Msg("push worker started")
	for {
		select {
		case job := <-p.jobs:
			p.deliver(ctx, job)
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("push worker shutting down")
			return
		}
	}
}

type payload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// deliver fans one job out to all of the user's subscriptions.
func (p *Pool) deliver(ctx context.Context, job Job) {
	subs, err := p.store.SubscriptionsForUser(ctx, job.UserID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", job.UserID).Msg("fetch push subscriptions")
		metrics.PushFailed.Inc()
		return
	}
	if len(subs) == 0 {
		return
	}

	body, err := json.Marshal(payload{Title: job.Title, Message: job.Message})
	if err != nil {
		metrics.PushFailed.Inc()
		return
	}
	for _, sub := range subs {
		p.send(ctx, sub, body)
	}
}

// send pushes one payload to one subscription, pruning subscriptions the
// push service reports gone.
func (p *Pool) send(ctx context.Context, sub model.PushSubscription, body []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := p.sender.Send(body, wpSub, p.webpush)
	if err != nil {
		metrics.PushFailed.Inc()
		log.Warn().Err(err).Str("endpoint", sub.Endpoint).Msg("push delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		metrics.PushExpired.Inc()
		log.Info().Str("endpoint", sub.Endpoint).Msg("push subscription expired, pruning")
		if err := p.store.RemoveSubscriptionEndpoint(ctx, sub.Endpoint); err != nil {
			log.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("prune expired subscription")
		}
		return
	}
	metrics.PushDelivered.Inc()
}
