// Package router assembles the HTTP route table.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task_backend/internal/app/middleware"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	tasklisthandler "task_backend/internal/feature/tasklists/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/ratelimit"
)

// Handlers groups the feature handlers the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	TaskLists *tasklisthandler.TaskListHandler
	Tasks     *taskhandler.TaskHandler
}

// NewRouter builds the gin engine with all routes mounted. The limiter may
// be nil, in which case auth endpoints are not throttled.
func NewRouter(h Handlers, issuer *jwtmw.Issuer, users jwtmw.UserResolver, limiter *ratelimit.Limiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	throttled := ratelimit.Middleware(limiter)

	// Public auth routes. PIN and credential endpoints sit behind the
	// attempt limiter.
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", throttled, h.Auth.Register)
		auth.POST("/login", throttled, h.Auth.Login)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/resend-verification", throttled, h.Auth.ResendVerification)
		auth.POST("/forgot-password", throttled, h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.POST("/init-admin", h.Auth.InitAdmin)
	}

	// Authenticated routes. The middleware re-resolves the user record so
	// deleted accounts lose access immediately.
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(issuer, users))
	{
		api.GET("/auth/profile", h.Auth.Profile)

		api.GET("/tasklists/types", h.TaskLists.ListTypes)
		api.GET("/tasklists", h.TaskLists.List)
		api.POST("/tasklists", h.TaskLists.Create)
		api.PUT("/tasklists/:id", h.TaskLists.Update)
		api.PATCH("/tasklists/:id/pin", h.TaskLists.TogglePin)
		api.PATCH("/tasklists/:id/archive", h.TaskLists.ToggleArchive)
		api.DELETE("/tasklists/:id", h.TaskLists.Delete)

		api.GET("/tasks/list/:taskListId", h.Tasks.ListByTaskList)
		api.POST("/tasks", h.Tasks.Create)
		api.PUT("/tasks/:id", h.Tasks.Update)
		api.PATCH("/tasks/:id/status", h.Tasks.UpdateStatus)
		api.DELETE("/tasks/:id", h.Tasks.Delete)
	}

	return r
}
