package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	RoomNumber *int   `json:"roomNumber"`
}

// Register creates an account. Role defaults to STUDENT; the password is
// stored hashed and never serialized back.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(c, "name, email and password are required")
		return
	}
	if req.Role != "" && !model.ValidRole(req.Role) {
		respondError(c, store.ErrInvalidRole)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	user := model.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Role:       req.Role,
		RoomNumber: req.RoomNumber,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role, h.cfg.Auth.JWTSecret, h.cfg.Auth.TokenTTLDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		badRequest(c, "email and password are required")
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		respondError(c, store.ErrInvalidCredentials)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role, h.cfg.Auth.JWTSecret, h.cfg.Auth.TokenTTLDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.store.UserByID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type assignRoleRequest struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
}

// AssignRole overwrites a user's role. Warden only, enforced by the
// route's role gate.
func (h *Handler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		badRequest(c, "invalid payload")
		return
	}
	user, err := h.store.SetUserRole(c.Request.Context(), req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
