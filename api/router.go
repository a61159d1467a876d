// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"taskmind/task-api/db"
	"taskmind/task-api/internal/llm"
	"taskmind/task-api/internal/store"
	"taskmind/task-api/pkg/middleware"
	"taskmind/task-api/pkg/security"
	"taskmind/task-api/pkg/token"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Argon     *security.ArgonHash
	Tokens    *token.Service
	Tasks     *store.TaskStore
	Completer llm.Completer
}

func NewRouter() (*API, error) {
	a := &API{
		Argon: security.New(),
		Tokens: token.New(token.Config{
			Secret:     viper.GetString("jwt.secret"),
			AccessTTL:  viper.GetDuration("jwt.access_ttl"),
			RefreshTTL: viper.GetDuration("jwt.refresh_ttl"),
			ResetTTL:   viper.GetDuration("jwt.reset_ttl"),
		}),
		Completer: llm.NewClient(),
	}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = database
	a.Tasks = store.NewTaskStore(database)

	makeLogger()

	a.Router = a.buildRouter()
	return a, nil
}

// buildRouter wires middleware and routes onto a fresh engine. Split out from
// NewRouter so tests can assemble an API around an in-memory database.
func (a *API) buildRouter() *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.cors_origin")},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Any("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(a.DB, a.Tokens)
	bodyLimit := middleware.BodySizeLimiter(1 << 20)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 			-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth", bodyLimit)
	{
		// POST /api/auth/signup 		-> Registers a new user
		auth.POST("/signup", a.AuthSignup)

		// POST /api/auth/login 		-> Verifies credentials, returns access + refresh tokens
		auth.POST("/login", a.AuthLogin)

		// POST /api/auth/refresh 		-> Trades a refresh token for a new access token
		auth.POST("/refresh", a.AuthRefresh)

		// POST /api/auth/logout 		-> Stateless no-op, tokens simply expire
		auth.POST("/logout", a.AuthLogout)

		// POST /api/auth/forgot-password 	-> Issues a password-reset token
		auth.POST("/forgot-password", a.AuthForgotPassword)

		// POST /api/auth/reset-password 	-> Sets a new password from a reset token
		auth.POST("/reset-password", a.AuthResetPassword)

		// GET /api/auth/me 			-> Returns the authenticated user
		auth.GET("/me", jwt, a.AuthMe)

		// POST /api/auth/change-password 	-> Re-hashes after verifying the old password
		auth.POST("/change-password", jwt, a.AuthChangePassword)
	}

	tasks := main.Group("/tasks", jwt, bodyLimit)
	{
		// POST /api/tasks 			-> Creates a task plus its paired agent
		tasks.POST("", a.TaskCreate)

		// GET /api/tasks 			-> Lists the caller's tasks
		tasks.GET("", a.TaskList)

		// GET /api/tasks/summary 		-> Task counts partitioned by status
		tasks.GET("/summary", a.TaskSummary)

		// POST /api/tasks/app-guide/chat 	-> Chat with the app-guide assistant
		tasks.POST("/app-guide/chat", a.GuideChat)

		// GET /api/tasks/:id 			-> Fetches one owned task
		tasks.GET("/:id", a.TaskFetch)

		// PUT /api/tasks/:id 			-> Partial title/description update
		tasks.PUT("/:id", a.TaskUpdate)

		// PATCH /api/tasks/:id/status 		-> Single-field status update
		tasks.PATCH("/:id/status", a.TaskStatus)

		// PATCH /api/tasks/:id/type 		-> Single-field type update
		tasks.PATCH("/:id/type", a.TaskType)

		// DELETE /api/tasks/:id 		-> Removes the task and its agent
		tasks.DELETE("/:id", a.TaskDelete)

		// POST /api/tasks/:id/chat 		-> Chat with the task's assistant
		tasks.POST("/:id/chat", a.TaskChat)
	}

	return router
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	var level zapcore.Level
	if err := level.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
