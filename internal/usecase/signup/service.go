package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/holtback/holtback-backend/internal/domain"
	"github.com/holtback/holtback-backend/internal/security"
)

var ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Input carries every signup form field. Image fields accept either an
// already-hosted URL or a base64 data URI to be uploaded.
type Input struct {
	FirstName       string `json:"firstName"`
	MiddleName      string `json:"middleName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	SSN             string `json:"ssn"`
	Address         string `json:"address"`
	Gender          string `json:"gender"`
	DOB             string `json:"dob"`
	MaritalStatus   string `json:"maritalStatus"`
	AccountType     string `json:"accountType"`
	AccountSubType  string `json:"accountSubType"`
	PIN             string `json:"pin"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ProfilePicture  string `json:"profilePicture"`
	Signature       string `json:"signature"`
	FrontID         string `json:"frontId"`
	BackID          string `json:"backId"`
}

// Uploader stores an image and returns its hosted URL.
type Uploader interface {
	UploadDataURI(ctx context.Context, data string) (string, error)
}

// Notifier is told about each completed registration. Implementations cover
// the Telegram back-office notice and the welcome email.
type Notifier interface {
	NotifySignup(ctx context.Context, record *domain.UserRecord) error
}

// Service handles account registration.
type Service struct {
	Users     domain.UserRepository
	Uploader  Uploader
	Hasher    *security.Hasher
	Notifiers []Notifier
	Logger    *slog.Logger
}

// NewService creates a signup Service instance.
func NewService(users domain.UserRepository, uploader Uploader, hasher *security.Hasher, notifiers []Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Users:     users,
		Uploader:  uploader,
		Hasher:    hasher,
		Notifiers: notifiers,
		Logger:    logger,
	}
}

// Register validates the form, uploads any inline images, hashes the
// password and PIN, stores the record, and dispatches the registration
// notifications. Notification failures are logged and never fail signup.
func (s *Service) Register(ctx context.Context, in Input) (*domain.UserRecord, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.SSN = NormalizeSSN(in.SSN)

	if err := validate(in); err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	signatureURL, err := s.resolveImage(ctx, in.Signature)
	if err != nil {
		return nil, err
	}
	profileURL, err := s.resolveImage(ctx, in.ProfilePicture)
	if err != nil {
		return nil, err
	}
	frontURL, err := s.resolveImage(ctx, in.FrontID)
	if err != nil {
		return nil, err
	}
	backURL, err := s.resolveImage(ctx, in.BackID)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	pinHash, err := s.Hasher.Hash(in.PIN)
	if err != nil {
		return nil, err
	}

	record := &domain.UserRecord{
		Email:          in.Email,
		FirstName:      in.FirstName,
		MiddleName:     in.MiddleName,
		LastName:       in.LastName,
		SSN:            in.SSN,
		Address:        in.Address,
		Gender:         in.Gender,
		DOB:            in.DOB,
		MaritalStatus:  in.MaritalStatus,
		AccountType:    in.AccountType,
		AccountSubType: in.AccountSubType,
		AccountNumber:  domain.DefaultAccountNumber,
		PINHash:        pinHash,
		PasswordHash:   passwordHash,
		ProfilePicture: profileURL,
		Signature:      signatureURL,
		FrontID:        frontURL,
		BackID:         backURL,
		Amount:         decimal.Zero,
	}

	if err := s.Users.Create(ctx, record); err != nil {
		return nil, err
	}

	for _, n := range s.Notifiers {
		if err := n.NotifySignup(ctx, record); err != nil {
			s.Logger.Warn("signup notification failed", "email", record.Email, "error", err)
		}
	}

	return record, nil
}

// resolveImage uploads base64 data URIs through the media host and passes
// hosted URLs (or empty values) through unchanged.
func (s *Service) resolveImage(ctx context.Context, data string) (string, error) {
	if data == "" || !strings.HasPrefix(data, "data:") {
		return data, nil
	}
	if s.Uploader == nil {
		return "", errors.New("no media uploader configured")
	}
	return s.Uploader.UploadDataURI(ctx, data)
}

// NormalizeSSN strips non-digits, truncates to nine digits, and reformats
// as XXX-XX-XXXX. Short inputs are returned partially formatted, matching
// the as-you-type form behavior.
func NormalizeSSN(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	ssn := digits.String()
	if len(ssn) > 9 {
		ssn = ssn[:9]
	}
	switch {
	case len(ssn) > 5:
		return ssn[:3] + "-" + ssn[3:5] + "-" + ssn[5:]
	case len(ssn) >= 3:
		return ssn[:3] + "-" + ssn[3:]
	default:
		return ssn
	}
}

func validate(in Input) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return &domain.ValidationError{Field: "firstName", Reason: "first name is required"}
	}
	if strings.TrimSpace(in.LastName) == "" {
		return &domain.ValidationError{Field: "lastName", Reason: "last name is required"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return &domain.ValidationError{Field: "email", Reason: "invalid email"}
	}
	if !ssnPattern.MatchString(in.SSN) {
		return &domain.ValidationError{Field: "ssn", Reason: "invalid SSN"}
	}
	if strings.TrimSpace(in.Address) == "" {
		return &domain.ValidationError{Field: "address", Reason: "address is required"}
	}
	if !oneOf(in.Gender, "Male", "Female") {
		return &domain.ValidationError{Field: "gender", Reason: "must be Male or Female"}
	}
	if strings.TrimSpace(in.DOB) == "" {
		return &domain.ValidationError{Field: "dob", Reason: "date of birth is required"}
	}
	if !oneOf(in.MaritalStatus, "Single", "Married", "Divorced") {
		return &domain.ValidationError{Field: "maritalStatus", Reason: "must be Single, Married or Divorced"}
	}
	if !oneOf(in.AccountType, "Personal", "Business") {
		return &domain.ValidationError{Field: "accountType", Reason: "must be Personal or Business"}
	}
	if !oneOf(in.AccountSubType, "Savings", "Checking") {
		return &domain.ValidationError{Field: "accountSubType", Reason: "must be Savings or Checking"}
	}
	if !pinPattern.MatchString(in.PIN) {
		return &domain.ValidationError{Field: "pin", Reason: "four digits required"}
	}
	if len(in.Password) < 6 {
		return &domain.ValidationError{Field: "password", Reason: "password must be at least 6 characters"}
	}
	if in.Password != in.ConfirmPassword {
		return &domain.ValidationError{Field: "confirmPassword", Reason: "passwords must match"}
	}
	if strings.TrimSpace(in.Signature) == "" {
		return &domain.ValidationError{Field: "signature", Reason: "signature is required"}
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
