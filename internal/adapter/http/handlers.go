package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/holtback/holtback-backend/internal/charts"
	"github.com/holtback/holtback-backend/internal/domain"
	"github.com/holtback/holtback-backend/internal/usecase/signup"
	"github.com/holtback/holtback-backend/internal/usecase/transfer"
)

// userView is a record stripped of credential hashes for API responses.
type userView struct {
	Email          string                    `json:"email"`
	FirstName      string                    `json:"firstName"`
	MiddleName     string                    `json:"middleName,omitempty"`
	LastName       string                    `json:"lastName"`
	AccountType    string                    `json:"accountType"`
	AccountSubType string                    `json:"accountSubType"`
	AccountNumber  int64                     `json:"accountNumber"`
	ProfilePicture string                    `json:"profilePicture,omitempty"`
	Amount         string                    `json:"amount"`
	History        []domain.TransactionEntry `json:"history"`
	Deposits       []domain.DepositEntry     `json:"deposits"`
}

func toUserView(record *domain.UserRecord) userView {
	return userView{
		Email:          record.Email,
		FirstName:      record.FirstName,
		MiddleName:     record.MiddleName,
		LastName:       record.LastName,
		AccountType:    record.AccountType,
		AccountSubType: record.AccountSubType,
		AccountNumber:  record.AccountNumber,
		ProfilePicture: record.ProfilePicture,
		Amount:         record.Amount.StringFixed(2),
		History:        record.History,
		Deposits:       record.Deposits,
	}
}

func statusView(st *transfer.Status) gin.H {
	return gin.H{
		"stage":             st.Stage,
		"attemptsRemaining": st.AttemptsRemaining,
		"lastError":         st.LastError,
	}
}

func (s *Server) handleSignup(c *gin.Context) {
	var in signup.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := s.signup.Register(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserView(record)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      toUserView(result.Record),
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), sessionEmail(c)); err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedOut": true})
}

func (s *Server) handleMe(c *gin.Context) {
	record, err := s.auth.Current(c.Request.Context(), sessionEmail(c))
	if err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserView(record)})
}

func (s *Server) handleTransferBegin(c *gin.Context) {
	var body struct {
		Name          string `json:"name"`
		Bank          string `json:"bank"`
		AccountNumber string `json:"accountNumber"`
		RoutingNumber string `json:"routingNumber"`
		Amount        string `json:"amount"`
		Purpose       string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	amount, err := domain.ParseAmount(body.Amount)
	if err != nil {
		s.writeError(c, err, nil)
		return
	}

	req := domain.TransferRequest{
		Name:          body.Name,
		Bank:          body.Bank,
		AccountNumber: body.AccountNumber,
		RoutingNumber: body.RoutingNumber,
		Amount:        amount,
		Purpose:       body.Purpose,
	}

	st, err := s.transfers.Begin(c.Request.Context(), sessionEmail(c), req)
	if err != nil {
		s.writeError(c, err, st)
		return
	}
	c.JSON(http.StatusOK, statusView(st))
}

func (s *Server) handleTransferCode(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	st, err := s.transfers.SubmitCode(c.Request.Context(), sessionEmail(c), body.Code)
	if err != nil {
		s.writeError(c, err, st)
		return
	}
	c.JSON(http.StatusOK, statusView(st))
}

func (s *Server) handleTransferAccess(c *gin.Context) {
	var body struct {
		AccessDetails string `json:"accessDetails"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	st, err := s.transfers.SubmitAccessDetails(c.Request.Context(), sessionEmail(c), body.AccessDetails)
	if err != nil {
		s.writeError(c, err, st)
		return
	}
	c.JSON(http.StatusOK, statusView(st))
}

func (s *Server) handleTransferFee(c *gin.Context) {
	fee, err := s.transfers.FeeQuote(c.Request.Context(), sessionEmail(c))
	if err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee": fee.StringFixed(2)})
}

func (s *Server) handleTransferConfirm(c *gin.Context) {
	record, err := s.transfers.ConfirmFee(c.Request.Context(), sessionEmail(c))
	if err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stage": domain.StageSuccess,
		"user":  toUserView(record),
	})
}

func (s *Server) handleTransferStatus(c *gin.Context) {
	st, err := s.transfers.Status(sessionEmail(c))
	if err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, statusView(st))
}

func (s *Server) handleTransferAbandon(c *gin.Context) {
	s.transfers.Abandon(sessionEmail(c))
	c.JSON(http.StatusOK, gin.H{"abandoned": true})
}

func (s *Server) handleDepositOverview(c *gin.Context) {
	overview, err := s.deposits.Overview(c.Request.Context(), sessionEmail(c))
	if err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":    overview.Balance.StringFixed(2),
		"deposits":   overview.Deposits,
		"dailyGoal":  overview.DailyGoal.StringFixed(2),
		"weeklyGoal": overview.WeeklyGoal.StringFixed(2),
	})
}

func (s *Server) handleMobileDeposit(c *gin.Context) {
	var body struct {
		Amount string `json:"amount"`
		Image  string `json:"image"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	amount, err := domain.ParseAmount(body.Amount)
	if err != nil {
		s.writeError(c, err, nil)
		return
	}

	dep, err := s.deposits.MobileDeposit(c.Request.Context(), sessionEmail(c), amount, body.Image)
	if err != nil {
		s.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deposit": dep})
}

func (s *Server) handleDepositChart(c *gin.Context) {
	overview, err := s.deposits.Overview(c.Request.Context(), sessionEmail(c))
	if err != nil {
		s.writeError(c, err, nil)
		return
	}

	png, err := charts.RenderDepositHistory(overview.Deposits)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
		return
	}
	if png == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not enough deposit history to chart"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// writeError maps domain errors to HTTP status codes. st, when present,
// carries the verification snapshot after a failed step so clients can show
// the remaining attempts inline.
func (s *Server) writeError(c *gin.Context, err error, st *transfer.Status) {
	var validationErr *domain.ValidationError
	var challengeErr *domain.ChallengeFailure
	var lockoutErr *domain.LockoutError
	var persistenceErr *domain.PersistenceFailure

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &challengeErr):
		body := gin.H{
			"error":        challengeErr.Message,
			"attemptsLeft": challengeErr.AttemptsLeft,
		}
		if st != nil {
			body["stage"] = st.Stage
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &lockoutErr):
		c.JSON(http.StatusLocked, gin.H{
			"error": lockoutErr.Error(),
			"stage": domain.StageForm,
		})
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient balance"})
	case errors.As(err, &persistenceErr):
		s.logger.Error("store write failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send money. Please try again."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, domain.ErrNoVerification), errors.Is(err, domain.ErrStageMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.logger.Error("unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
