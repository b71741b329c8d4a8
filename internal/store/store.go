package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostel-backend/internal/model"
)

// Page is the listing envelope every list operation returns: one page of
// items plus the total count ignoring pagination.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// PageParams carries normalized pagination inputs.
type PageParams struct {
	Page  int
	Limit int
}

// Normalize clamps page to >= 1 and limit into (0, 100], defaulting to 20.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p PageParams) offset() int { return (p.Page - 1) * p.Limit }

// UserSummary is the denormalized owner projection attached to listed
// records for display.
type UserSummary struct {
	ID         uint   `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	RoomNumber *int   `json:"roomNumber"`
}

// LeaveWithUser, ComplaintWithUser, ItemWithUser and ReportWithUser embed
// the record plus its owner summary.
type LeaveWithUser struct {
	model.LeaveRequest
	User UserSummary `json:"user"`
}

type ComplaintWithUser struct {
	model.Complaint
	User UserSummary `json:"user"`
}

type ItemWithUser struct {
	model.MarketplaceItem
	User UserSummary `json:"user"`
}

type ReportWithUser struct {
	model.LostFoundReport
	User UserSummary `json:"user"`
}

// PollOptionView is one option of a poll with its vote count.
type PollOptionView struct {
	ID           int    `json:"id"`
	Text         string `json:"text"`
	Votes        int64  `json:"votes"`
	IsUserChoice bool   `json:"isUserChoice"`
}

// PollView is the listing shape of a poll for a given viewer.
type PollView struct {
	ID        uint             `json:"id"`
	Question  string           `json:"question"`
	Options   []PollOptionView `json:"options"`
	HasVoted  bool             `json:"hasVoted"`
	UserVote  string           `json:"userVote,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// OptionCount is one row of a poll's results.
type OptionCount struct {
	Option string `json:"option"`
	Votes  int64  `json:"votes"`
}

// NotificationView is the listing shape of a notification for one reader,
// with broadcast read state resolved through the marker table.
type NotificationView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// MenuScore aggregates feedback for one menu.
type MenuScore struct {
	MenuID   uint `json:"menuId"`
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	Score    int  `json:"score"`
}

// AdminStats are the aggregate counters for the admin dashboard.
type AdminStats struct {
	Users          int64 `json:"users"`
	PendingLeaves  int64 `json:"pendingLeaves"`
	OpenComplaints int64 `json:"openComplaints"`
	ActivePolls    int64 `json:"activePolls"`
}

// StudentStats are the per-student dashboard counters.
type StudentStats struct {
	PendingLeaves    int64 `json:"pendingLeaves"`
	ActiveComplaints int64 `json:"activeComplaints"`
	ActivePolls      int64 `json:"activePolls"`
}

// Filter types. Nil/zero fields mean "no filter".

type UserFilter struct {
	Role   string
	Search string
}

type ItemFilter struct {
	Status   string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

type ReportFilter struct {
	Type     string
	Resolved *bool
}

// Patch types for partial updates. Nil fields are left untouched.

type ItemPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
}

type MenuPatch struct {
	Day       *string `json:"day"`
	Breakfast *string `json:"breakfast"`
	Lunch     *string `json:"lunch"`
	Dinner    *string `json:"dinner"`
}

// Store defines the interface for all database operations.
type Store interface {
	// users
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, f UserFilter, pp PageParams) (Page[model.User], error)
	SetUserRole(ctx context.Context, id uint, role string) (*model.User, error)
	UpdateUserFields(ctx context.Context, id uint, fields map[string]any) (*model.User, error)
	AdminStats(ctx context.Context) (AdminStats, error)
	StudentStats(ctx context.Context, userID uint) (StudentStats, error)

	// leave
	CreateLeave(ctx context.Context, l *model.LeaveRequest) error
	ListMyLeaves(ctx context.Context, userID uint, status string, pp PageParams) (Page[model.LeaveRequest], error)
	ListPendingLeaves(ctx context.Context, student string, room *int, pp PageParams) (Page[LeaveWithUser], error)
	LeaveByID(ctx context.Context, id uint) (*LeaveWithUser, error)
	SetLeaveStatus(ctx context.Context, id uint, status string) (*model.LeaveRequest, error)
	DeleteLeave(ctx context.Context, id, actorID uint, actorRole string) error

	// complaints
	CreateComplaint(ctx context.Context, c *model.Complaint) error
	ListComplaints(ctx context.Context, userID *uint, status string, pp PageParams) (Page[ComplaintWithUser], error)
	ComplaintByID(ctx context.Context, id uint) (*ComplaintWithUser, error)
	AdvanceComplaint(ctx context.Context, id uint, status string) (*model.Complaint, error)
	DeleteComplaint(ctx context.Context, id, actorID uint, actorRole string) error

	// marketplace
	CreateItem(ctx context.Context, it *model.MarketplaceItem) error
	ListItems(ctx context.Context, f ItemFilter, pp PageParams) (Page[ItemWithUser], error)
	ItemByID(ctx context.Context, id uint) (*ItemWithUser, error)
	UpdateItem(ctx context.Context, id uint, patch ItemPatch, actorID uint, actorRole string) (*model.MarketplaceItem, error)
	MarkItemSold(ctx context.Context, id, actorID uint, actorRole string) (*model.MarketplaceItem, error)
	DeleteItem(ctx context.Context, id, actorID uint, actorRole string) error

	// lost and found
	CreateReport(ctx context.Context, r *model.LostFoundReport) error
	ListReports(ctx context.Context, f ReportFilter, pp PageParams) (Page[ReportWithUser], error)
	ReportByID(ctx context.Context, id uint) (*ReportWithUser, error)
	ResolveReport(ctx context.Context, id uint) (*model.LostFoundReport, error)
	DeleteReport(ctx context.Context, id, actorID uint, actorRole string) error

	// polls
	CreatePoll(ctx context.Context, p *model.Poll) error
	ListPolls(ctx context.Context, viewerID uint, pp PageParams) (Page[PollView], error)
	PollByID(ctx context.Context, id uint) (*model.Poll, error)
	Vote(ctx context.Context, pollID, userID uint, option string) error
	PollResults(ctx context.Context, pollID uint) ([]OptionCount, error)
	DeletePoll(ctx context.Context, id uint) error

	// mess
	CreateMenu(ctx context.Context, m *model.MessMenu) error
	UpdateMenu(ctx context.Context, id uint, patch MenuPatch) (*model.MessMenu, error)
	DeleteMenu(ctx context.Context, id uint) error
	ListMenus(ctx context.Context, day string, pp PageParams) (Page[model.MessMenu], error)
	CreateFeedback(ctx context.Context, fb *model.MessFeedback) error
	FeedbackAnalytics(ctx context.Context, from, to *time.Time) ([]MenuScore, error)

	// notifications
	SendBroadcast(ctx context.Context, targetRole *string, title, message string) (*model.Notification, error)
	SendIndividual(ctx context.Context, userIDs []uint, title, message string) ([]model.Notification, error)
	ListMyNotifications(ctx context.Context, userID uint, role string, unreadOnly bool, pp PageParams) (Page[NotificationView], error)
	MarkRead(ctx context.Context, id, userID uint) error

	// push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string, userID uint) error
	SubscriptionsForUser(ctx context.Context, userID uint) ([]model.PushSubscription, error)
	RemoveSubscriptionEndpoint(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// listOrder is the single required ordering guarantee for listings:
// newest first, id as a deterministic tiebreak.
const listOrder = "created_at DESC, id DESC"
