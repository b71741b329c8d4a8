package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hostel-backend/config"
	"hostel-backend/internal/push"
	"hostel-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	cfg   *config.Config
	push  *push.Pool
	vapid *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cfg *config.Config, pool *push.Pool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store: s,
		cfg:   cfg,
		push:  pool,
		vapid: webpushOptions,
	}
}
