package api

import (
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"hostel-backend/config"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/metrics"
	"hostel-backend/internal/model"
	"hostel-backend/internal/mw"
	"hostel-backend/internal/push"
	"hostel-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, pool *push.Pool, webpushOptions *webpush.Options) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler := NewHandler(s, cfg, pool, webpushOptions)

	rateLimiter := mw.RateLimit(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateBurst)
	deadline := mw.Deadline(cfg.Server.RequestTimeout)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := auth.Middleware(cfg.Auth.JWTSecret)
	staff := auth.RequireRoles(model.RoleWarden, model.RoleAdmin)
	students := auth.RequireRoles(model.RoleStudent, model.RoleAdmin)

	api := r.Group("/api")
	api.Use(rateLimiter, metrics.GinMiddleware(), deadline)
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handler.Register)
			authGroup.POST("/login", handler.Login)
			authGroup.GET("/me", authed, handler.Me)
			authGroup.POST("/assign-role", authed, auth.RequireRoles(model.RoleWarden), handler.AssignRole)
		}

		users := api.Group("/users", authed)
		{
			users.GET("", staff, handler.ListUsers)
			users.PUT("/me", handler.UpdateMe)
			users.GET("/me/stats", handler.MyStats)
		}

		leave := api.Group("/leave", authed)
		{
			leave.POST("/apply", students, handler.ApplyLeave)
			leave.GET("/my-leaves", students, handler.MyLeaves)
			leave.GET("/pending", auth.RequireRoles(model.RoleWarden), handler.PendingLeaves)
			leave.PUT("/approve/:id", auth.RequireRoles(model.RoleWarden), handler.ApproveLeave)
			leave.PUT("/reject/:id", auth.RequireRoles(model.RoleWarden), handler.RejectLeave)
			leave.GET("/:id", handler.GetLeave)
			leave.DELETE("/:id", handler.DeleteLeave)
		}

		complaints := api.Group("/complaints", authed)
		{
			complaints.POST("", students, handler.CreateComplaint)
			complaints.GET("/my", handler.MyComplaints)
			complaints.GET("", staff, handler.ListComplaints)
			complaints.GET("/:id", handler.GetComplaint)
			complaints.PUT("/:id", staff, handler.UpdateComplaint)
			complaints.DELETE("/:id", handler.DeleteComplaint)
		}

		market := api.Group("/marketplace")
		{
			// listings are public; cache absorbs repeated reads
			market.GET("/items", caching, handler.ListItems)
			market.GET("/item/:id", handler.GetItem)
			market.POST("/item", authed, students, handler.CreateItem)
			market.PUT("/item/:id", authed, handler.UpdateItem)
			market.PUT("/item/:id/mark-sold", authed, handler.MarkItemSold)
			market.DELETE("/item/:id", authed, handler.DeleteItem)
		}

		polls := api.Group("/polls", authed)
		{
			polls.POST("", staff, handler.CreatePoll)
			polls.GET("", handler.ListPolls)
			polls.GET("/:id", handler.GetPoll)
			polls.POST("/:id/vote", handler.Vote)
			polls.GET("/:id/results", handler.PollResults)
			polls.DELETE("/:id", staff, handler.DeletePoll)
		}

		lostfound := api.Group("/lostfound", authed)
		{
			lostfound.POST("/report", students, handler.CreateReport)
			lostfound.GET("", handler.ListReports)
			lostfound.PUT("/:id/resolve", handler.ResolveReport)
			lostfound.GET("/:id", handler.GetReport)
			lostfound.DELETE("/:id", handler.DeleteReport)
		}

		mess := api.Group("/mess", authed)
		{
			mess.POST("/menu", staff, handler.CreateMenu)
			mess.PUT("/menu/:id", staff, handler.UpdateMenu)
			mess.DELETE("/menu/:id", staff, handler.DeleteMenu)
			mess.GET("/menus", caching, handler.ListMenus)
			mess.POST("/feedback", auth.RequireRoles(model.RoleStudent), handler.CreateFeedback)
			mess.GET("/analytics", staff, handler.FeedbackAnalytics)
		}

		notifications := api.Group("/notifications")
		{
			notifications.POST("/send", authed, staff, handler.SendNotification)
			notifications.GET("/my", authed, handler.MyNotifications)
			notifications.PUT("/:id/read", authed, handler.MarkNotificationRead)
			notifications.PUT("/subscription", authed, handler.SaveSubscription)
			notifications.DELETE("/subscription", authed, handler.DeleteSubscription)
			notifications.GET("/vapid_public_key", handler.VapidPublicKey)
		}

		admin := api.Group("/admin", authed, auth.RequireRoles(model.RoleAdmin))
		{
			admin.GET("/stats", handler.AdminStats)
		}
	}

	return r
}
