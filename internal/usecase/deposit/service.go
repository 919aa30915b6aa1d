package deposit

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/holtback/holtback-backend/internal/domain"
)

// Savings goal rates shown on the deposits overview.
var (
	dailyGoalRate  = decimal.NewFromFloat(0.01)
	weeklyGoalRate = decimal.NewFromFloat(0.10)
)

// Uploader stores a check image and returns its hosted URL.
type Uploader interface {
	UploadDataURI(ctx context.Context, data string) (string, error)
}

// Overview is the deposits view: balance, history, and the derived savings
// goals (1% daily, 10% weekly of the current balance).
type Overview struct {
	Balance    decimal.Decimal
	Deposits   []domain.DepositEntry
	DailyGoal  decimal.Decimal
	WeeklyGoal decimal.Decimal
}

// Service handles mobile check deposits and the deposits overview.
type Service struct {
	Users    domain.UserRepository
	Sessions domain.SessionRepository
	Uploader Uploader
}

// NewService creates a deposit Service instance.
func NewService(users domain.UserRepository, sessions domain.SessionRepository, uploader Uploader) *Service {
	return &Service{
		Users:    users,
		Sessions: sessions,
		Uploader: uploader,
	}
}

// MobileDeposit records a pending mobile check deposit for the logged-in
// user. The check image and a positive amount are both required. The image
// is uploaded to the media host and the resulting URL stored on the entry;
// the updated record is written through to both the User Record Store and
// the Session Holder.
func (s *Service) MobileDeposit(ctx context.Context, email string, amount decimal.Decimal, checkImage string) (*domain.DepositEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	if strings.TrimSpace(checkImage) == "" {
		return nil, &domain.ValidationError{Field: "image", Reason: "check image is required"}
	}

	record, err := s.Sessions.Read(ctx, email)
	if err != nil {
		return nil, err
	}

	imageURL := checkImage
	if s.Uploader != nil && strings.HasPrefix(checkImage, "data:") {
		imageURL, err = s.Uploader.UploadDataURI(ctx, checkImage)
		if err != nil {
			return nil, &domain.PersistenceFailure{Err: err}
		}
	}

	dep := domain.NewMobileDeposit(time.Now(), amount, imageURL)
	updated := record.WithDeposit(dep)

	if err := s.Users.Update(ctx, &updated); err != nil {
		return nil, &domain.PersistenceFailure{Err: err}
	}
	if err := s.Sessions.Write(ctx, &updated); err != nil {
		return nil, &domain.PersistenceFailure{Err: err}
	}

	return &dep, nil
}

// Overview returns the deposits view for the logged-in user.
func (s *Service) Overview(ctx context.Context, email string) (*Overview, error) {
	record, err := s.Sessions.Read(ctx, email)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Balance:    record.Amount,
		Deposits:   record.Deposits,
		DailyGoal:  record.Amount.Mul(dailyGoalRate),
		WeeklyGoal: record.Amount.Mul(weeklyGoalRate),
	}, nil
}
