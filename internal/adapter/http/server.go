// Package http exposes the banking flows as a JSON API.
package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/holtback/holtback-backend/internal/domain"
	"github.com/holtback/holtback-backend/internal/security"
	"github.com/holtback/holtback-backend/internal/usecase/auth"
	"github.com/holtback/holtback-backend/internal/usecase/deposit"
	"github.com/holtback/holtback-backend/internal/usecase/signup"
	"github.com/holtback/holtback-backend/internal/usecase/transfer"
)

// AuthService is the auth usecase surface the handlers need.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context, email string) error
	Current(ctx context.Context, email string) (*domain.UserRecord, error)
}

// SignupService is the signup usecase surface the handlers need.
type SignupService interface {
	Register(ctx context.Context, in signup.Input) (*domain.UserRecord, error)
}

// TransferService is the transfer usecase surface the handlers need.
type TransferService interface {
	Begin(ctx context.Context, email string, req domain.TransferRequest) (*transfer.Status, error)
	SubmitCode(ctx context.Context, email, code string) (*transfer.Status, error)
	SubmitAccessDetails(ctx context.Context, email, value string) (*transfer.Status, error)
	FeeQuote(ctx context.Context, email string) (decimal.Decimal, error)
	ConfirmFee(ctx context.Context, email string) (*domain.UserRecord, error)
	Status(email string) (*transfer.Status, error)
	Abandon(email string)
}

// DepositService is the deposit usecase surface the handlers need.
type DepositService interface {
	MobileDeposit(ctx context.Context, email string, amount decimal.Decimal, checkImage string) (*domain.DepositEntry, error)
	Overview(ctx context.Context, email string) (*deposit.Overview, error)
}

// Server wires the usecase services into the gin router.
type Server struct {
	router    *gin.Engine
	auth      AuthService
	signup    SignupService
	transfers TransferService
	deposits  DepositService
	tokens    *security.TokenProvider
	logger    *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	authService AuthService,
	signupService SignupService,
	transferService TransferService,
	depositService DepositService,
	tokens *security.TokenProvider,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:    router,
		auth:      authService,
		signup:    signupService,
		transfers: transferService,
		deposits:  depositService,
		tokens:    tokens,
		logger:    logger,
	}

	router.Use(s.requestLog)

	router.POST("/api/signup", s.handleSignup)
	router.POST("/api/login", s.handleLogin)

	authorized := router.Group("/api", s.requireSession)
	{
		authorized.POST("/logout", s.handleLogout)
		authorized.GET("/me", s.handleMe)

		authorized.POST("/transfers", s.handleTransferBegin)
		authorized.POST("/transfers/code", s.handleTransferCode)
		authorized.POST("/transfers/access", s.handleTransferAccess)
		authorized.GET("/transfers/fee", s.handleTransferFee)
		authorized.POST("/transfers/confirm", s.handleTransferConfirm)
		authorized.GET("/transfers/status", s.handleTransferStatus)
		authorized.DELETE("/transfers", s.handleTransferAbandon)

		authorized.GET("/deposits", s.handleDepositOverview)
		authorized.POST("/deposits", s.handleMobileDeposit)
		authorized.GET("/deposits/chart", s.handleDepositChart)
	}

	return s
}

// Handler returns the underlying handler, for tests and server wiring.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// requestLog emits one structured line per request.
func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Info("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
