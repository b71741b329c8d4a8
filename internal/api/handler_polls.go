package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
)

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (h *Handler) CreatePoll(c *gin.Context) {
	var req createPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}

	poll := model.Poll{
		Question:  req.Question,
		Options:   req.Options,
		CreatedBy: auth.UserID(c),
	}
	if err := h.store.CreatePoll(c.Request.Context(), &poll); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poll)
}

// ListPolls returns polls with per-option counts and the caller's own
// vote state.
func (h *Handler) ListPolls(c *gin.Context) {
	page, err := h.store.ListPolls(c.Request.Context(), auth.UserID(c), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPoll(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	poll, err := h.store.PollByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}

type voteRequest struct {
	Option string `json:"option"`
}

// Vote casts the caller's single vote on a poll.
func (h *Handler) Vote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Option == "" {
		badRequest(c, "option is required")
		return
	}
	if err := h.store.Vote(c.Request.Context(), id, auth.UserID(c), req.Option); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) PollResults(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	results, err := h.store.PollResults(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// DeletePoll removes a poll and all of its votes.
func (h *Handler) DeletePoll(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeletePoll(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
