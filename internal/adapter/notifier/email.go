package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/holtback/holtback-backend/internal/domain"
)

const emailSendURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailNotifier sends the welcome email through the EmailJS template API.
type EmailNotifier struct {
	httpClient *http.Client
	serviceID  string
	templateID string
	publicKey  string
}

// NewEmailNotifier creates a notifier for the given EmailJS service,
// template, and public key.
func NewEmailNotifier(serviceID, templateID, publicKey string) *EmailNotifier {
	return &EmailNotifier{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
	}
}

// NotifySignup sends the welcome email to the new customer.
func (n *EmailNotifier) NotifySignup(ctx context.Context, record *domain.UserRecord) error {
	payload := map[string]interface{}{
		"service_id":  n.serviceID,
		"template_id": n.templateID,
		"user_id":     n.publicKey,
		"template_params": map[string]string{
			"name":  record.FirstName + " " + record.LastName,
			"email": record.Email,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, emailSendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email rejected with status %d", resp.StatusCode)
	}
	return nil
}
