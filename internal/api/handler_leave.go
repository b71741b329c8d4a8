package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
)

type applyLeaveRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// ApplyLeave submits a new leave request for the authenticated user.
func (h *Handler) ApplyLeave(c *gin.Context) {
	var req applyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if req.From == "" || req.To == "" || req.Reason == "" {
		badRequest(c, "from, to and reason are required")
		return
	}
	from, err := parseDate(req.From)
	if err != nil {
		badRequest(c, "invalid from date")
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		badRequest(c, "invalid to date")
		return
	}
	if to.Before(from) {
		badRequest(c, "to must not be before from")
		return
	}

	leave := model.LeaveRequest{
		UserID:   auth.UserID(c),
		FromDate: from,
		ToDate:   to,
		Reason:   req.Reason,
	}
	if err := h.store.CreateLeave(c.Request.Context(), &leave); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, leave)
}

// MyLeaves lists the caller's own leave requests, optionally by status.
func (h *Handler) MyLeaves(c *gin.Context) {
	page, err := h.store.ListMyLeaves(c.Request.Context(), auth.UserID(c), c.Query("status"), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// PendingLeaves is the warden's review queue with optional student-name
// and room filters.
func (h *Handler) PendingLeaves(c *gin.Context) {
	var room *int
	if r := c.Query("room"); r != "" {
		v, err := strconv.Atoi(r)
		if err != nil {
			badRequest(c, "invalid room")
			return
		}
		room = &v
	}
	page, err := h.store.ListPendingLeaves(c.Request.Context(), c.Query("student"), room, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ApproveLeave moves a pending request to APPROVED.
func (h *Handler) ApproveLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	leave, err := h.store.SetLeaveStatus(c.Request.Context(), id, model.LeaveApproved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// RejectLeave moves a pending request to REJECTED.
func (h *Handler) RejectLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	leave, err := h.store.SetLeaveStatus(c.Request.Context(), id, model.LeaveRejected)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// GetLeave returns one leave request with its owner attached.
func (h *Handler) GetLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	leave, err := h.store.LeaveByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// DeleteLeave withdraws a leave request (owner, or ADMIN).
func (h *Handler) DeleteLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteLeave(c.Request.Context(), id, auth.UserID(c), auth.Role(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
