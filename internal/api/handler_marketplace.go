package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

type createItemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if req.Title == "" || req.Price == nil {
		badRequest(c, "title and price are required")
		return
	}

	item := model.MarketplaceItem{
		UserID:      auth.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := h.store.CreateItem(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListItems is the public marketplace listing with search, price-range
// and status filters.
func (h *Handler) ListItems(c *gin.Context) {
	f := store.ItemFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, "invalid minPrice")
			return
		}
		f.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, "invalid maxPrice")
			return
		}
		f.MaxPrice = &p
	}

	page, err := h.store.ListItems(c.Request.Context(), f, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := h.store.ItemByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem patches an item; only fields present in the body change.
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch store.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	item, err := h.store.UpdateItem(c.Request.Context(), id, patch, auth.UserID(c), auth.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) MarkItemSold(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := h.store.MarkItemSold(c.Request.Context(), id, auth.UserID(c), auth.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteItem(c.Request.Context(), id, auth.UserID(c), auth.Role(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
