package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

type reportRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// CreateReport files a lost or found report for the caller.
func (h *Handler) CreateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}

	report := model.LostFoundReport{
		UserID:      auth.UserID(c),
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if err := h.store.CreateReport(c.Request.Context(), &report); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports lists reports filtered by type and resolved state.
func (h *Handler) ListReports(c *gin.Context) {
	f := store.ReportFilter{Type: c.Query("type")}
	if r := c.Query("resolved"); r != "" {
		v, err := strconv.ParseBool(r)
		if err != nil {
			badRequest(c, "invalid resolved")
			return
		}
		f.Resolved = &v
	}
	page, err := h.store.ListReports(c.Request.Context(), f, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := h.store.ReportByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ResolveReport marks a report as resolved.
func (h *Handler) ResolveReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := h.store.ResolveReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) DeleteReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteReport(c.Request.Context(), id, auth.UserID(c), auth.Role(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
