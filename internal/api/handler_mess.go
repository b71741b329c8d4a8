package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

type menuRequest struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// CreateMenu publishes a menu for one day.
func (h *Handler) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if req.Day == "" {
		badRequest(c, "day is required")
		return
	}

	menu := model.MessMenu{
		Day:       req.Day,
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
	}
	if err := h.store.CreateMenu(c.Request.Context(), &menu); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menu)
}

// ListMenus lists menus, optionally for a single day.
func (h *Handler) ListMenus(c *gin.Context) {
	page, err := h.store.ListMenus(c.Request.Context(), c.Query("day"), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateMenu applies a partial update to a menu.
func (h *Handler) UpdateMenu(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch store.MenuPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	menu, err := h.store.UpdateMenu(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// DeleteMenu removes a menu and its feedback.
func (h *Handler) DeleteMenu(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteMenu(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type feedbackRequest struct {
	MenuID uint `json:"menuId"`
	Rating int  `json:"rating"`
}

// CreateFeedback records a like (+1) or dislike (-1) on a menu.
func (h *Handler) CreateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MenuID == 0 {
		badRequest(c, "menuId and rating are required")
		return
	}

	fb := model.MessFeedback{
		UserID: auth.UserID(c),
		MenuID: req.MenuID,
		Rating: req.Rating,
	}
	if err := h.store.CreateFeedback(c.Request.Context(), &fb); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// FeedbackAnalytics aggregates likes and dislikes per menu over an
// optional date window.
func (h *Handler) FeedbackAnalytics(c *gin.Context) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			badRequest(c, "invalid from date")
			return
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			badRequest(c, "invalid to date")
			return
		}
		to = &t
	}

	scores, err := h.store.FeedbackAnalytics(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
