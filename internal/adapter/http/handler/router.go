package handler

import (
	"time"

	"payment-hub/internal/adapter/http/middleware"
	redisStore "payment-hub/internal/adapter/storage/redis"
	"payment-hub/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultBodyLimit = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc     ports.PaymentService
	StateMachine   ports.TransactionStateMachine
	Dispatcher     ports.CallbackDispatcher
	Ledger         ports.LedgerService
	LimitAdmin     ports.LimitAdminService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimit      int64
	RateWindow     time.Duration
	CallbackBytes  int64
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.RateLimitRules(deps.RateLimit, deps.RateWindow)
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rules[group], deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// Provider callbacks authenticate by signature inside the dispatcher.
	callbackBytes := deps.CallbackBytes
	if callbackBytes <= 0 {
		callbackBytes = defaultBodyLimit
	}
	callbackHandler := NewCallbackHandler(deps.Dispatcher)
	callbacks := v1.Group("/callbacks", middleware.MaxBodySize(callbackBytes), rl("callbacks"))
	{
		callbacks.POST("/:provider", callbackHandler.Handle)
		callbacks.GET("/:provider", callbackHandler.Handle)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	bodyLimit := middleware.MaxBodySize(defaultBodyLimit)

	transactionHandler := NewTransactionHandler(deps.PaymentSvc)
	walletHandler := NewWalletHandler(deps.Ledger)

	merchant := v1.Group("", bodyLimit, jwtAuth, middleware.RequireRole(ports.RoleMerchant))
	{
		merchant.POST("/deposits", rl("merchant_write"), transactionHandler.CreateDeposit)
		merchant.POST("/withdrawals", rl("merchant_write"), transactionHandler.CreateWithdrawal)
		merchant.GET("/transactions/:uuid", rl("merchant_read"), transactionHandler.GetTransaction)
		merchant.GET("/wallets/:id", rl("merchant_read"), walletHandler.GetWallet)
		merchant.GET("/wallets/:id/entries", rl("merchant_read"), walletHandler.ListEntries)
	}

	adminHandler := NewAdminHandler(deps.StateMachine, deps.Dispatcher, deps.LimitAdmin)
	limitHandler := NewLimitHandler(deps.LimitAdmin)

	admin := v1.Group("/admin", bodyLimit, jwtAuth, middleware.RequireRole(ports.RoleAdmin), rl("admin"))
	if deps.AuditSvc != nil {
		admin.Use(middleware.AuditLog(deps.AuditSvc))
	}
	{
		admin.POST("/transactions/:uuid/revert", adminHandler.Revert)
		admin.POST("/transactions/:uuid/check-status", adminHandler.CheckStatus)
		admin.GET("/transactions/:uuid/alerts", adminHandler.ListAlerts)
		admin.POST("/alerts/:id/ack", adminHandler.AcknowledgeAlert)

		admin.POST("/wallets/:id/adjustments", walletHandler.Adjust)
		admin.GET("/wallets/:id/verify", walletHandler.Verify)

		admin.POST("/limits", limitHandler.Create)
		admin.PUT("/limits/:id", limitHandler.Update)
		admin.DELETE("/limits/:id", limitHandler.Deactivate)
	}

	return r
}
