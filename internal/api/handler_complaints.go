package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
)

type createComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if req.Title == "" || req.Description == "" {
		badRequest(c, "title and description are required")
		return
	}

	complaint := model.Complaint{
		UserID:      auth.UserID(c),
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.store.CreateComplaint(c.Request.Context(), &complaint); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// MyComplaints lists the caller's own complaints.
func (h *Handler) MyComplaints(c *gin.Context) {
	userID := auth.UserID(c)
	page, err := h.store.ListComplaints(c.Request.Context(), &userID, c.Query("status"), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListComplaints is the manager view over all complaints.
func (h *Handler) ListComplaints(c *gin.Context) {
	page, err := h.store.ListComplaints(c.Request.Context(), nil, c.Query("status"), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetComplaint(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	complaint, err := h.store.ComplaintByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

type updateComplaintRequest struct {
	Status string `json:"status"`
}

// UpdateComplaint advances a complaint's status (forward only).
func (h *Handler) UpdateComplaint(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		badRequest(c, "status is required")
		return
	}
	complaint, err := h.store.AdvanceComplaint(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *Handler) DeleteComplaint(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteComplaint(c.Request.Context(), id, auth.UserID(c), auth.Role(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
