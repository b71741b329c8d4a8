package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
	"hostel-backend/internal/push"
)

type sendNotificationRequest struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Recipients struct {
		Role    string `json:"role"`
		UserIDs []uint `json:"userIds"`
	} `json:"recipients"`
}

// SendNotification creates a broadcast (by role, or to everyone) or a
// batch of individual notices. Individual notices additionally enqueue
// best-effort web pushes; the stored rows are the durable fact.
func (h *Handler) SendNotification(c *gin.Context) {
	var req sendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if req.Title == "" || req.Message == "" {
		badRequest(c, "title and message are required")
		return
	}

	if len(req.Recipients.UserIDs) > 0 {
		notices, err := h.store.SendIndividual(c.Request.Context(), req.Recipients.UserIDs, req.Title, req.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		for _, n := range notices {
			if n.UserID != nil {
				h.push.Dispatch(push.Job{UserID: *n.UserID, Title: n.Title, Message: n.Message})
			}
		}
		c.JSON(http.StatusCreated, gin.H{"sent": len(notices)})
		return
	}

	var targetRole *string
	if req.Recipients.Role != "" && req.Recipients.Role != "ALL" {
		targetRole = &req.Recipients.Role
	}
	notice, err := h.store.SendBroadcast(c.Request.Context(), targetRole, req.Title, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notice)
}

// MyNotifications lists the caller's individual notices merged with the
// broadcasts visible to their role.
func (h *Handler) MyNotifications(c *gin.Context) {
	unreadOnly := c.Query("unreadOnly") == "true"
	page, err := h.store.ListMyNotifications(c.Request.Context(), auth.UserID(c), auth.Role(c), unreadOnly, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MarkNotificationRead marks one notification as read for the caller.
// Repeated calls are a no-op.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.MarkRead(c.Request.Context(), id, auth.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type subscriptionRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256DH string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// SaveSubscription registers or refreshes a web push subscription for
// the caller's browser.
func (h *Handler) SaveSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Endpoint == "" {
		badRequest(c, "endpoint and keys are required")
		return
	}

	sub := model.PushSubscription{
		Endpoint: req.Endpoint,
		UserID:   auth.UserID(c),
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
	}
	if err := h.store.UpsertSubscription(c.Request.Context(), &sub); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSubscription removes one of the caller's push subscriptions.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Endpoint == "" {
		badRequest(c, "endpoint is required")
		return
	}
	if err := h.store.DeleteSubscription(c.Request.Context(), req.Endpoint, auth.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VapidPublicKey exposes the server's VAPID public key so clients can
// subscribe.
func (h *Handler) VapidPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publicKey": h.cfg.Push.PublicKey})
}
