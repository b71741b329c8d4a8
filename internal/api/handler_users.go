package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/store"
)

// ListUsers is the staff directory view with role and search filters.
func (h *Handler) ListUsers(c *gin.Context) {
	f := store.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	page, err := h.store.ListUsers(c.Request.Context(), f, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type updateMeRequest struct {
	Name        *string `json:"name"`
	RoomNumber  *int    `json:"roomNumber"`
	OldPassword string  `json:"oldPassword"`
	NewPassword string  `json:"newPassword"`
}

// UpdateMe patches the caller's own profile. A password change requires
// the current password.
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}

	userID := auth.UserID(c)
	fields := map[string]any{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.RoomNumber != nil {
		fields["room_number"] = *req.RoomNumber
	}
	if req.NewPassword != "" {
		if req.OldPassword == "" {
			badRequest(c, "old password is required")
			return
		}
		user, err := h.store.UserByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !auth.VerifyPassword(user.Password, req.OldPassword) {
			respondError(c, store.ErrInvalidCredentials)
			return
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			respondError(c, err)
			return
		}
		fields["password"] = hash
	}

	user, err := h.store.UpdateUserFields(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// MyStats returns the student dashboard counters.
func (h *Handler) MyStats(c *gin.Context) {
	stats, err := h.store.StudentStats(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminStats returns the aggregate counters for the admin dashboard.
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.store.AdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
