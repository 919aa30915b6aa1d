// Package notifier dispatches registration notices to the back office and
// welcome emails to new customers. Both are best-effort collaborators: the
// signup flow logs their failures and carries on.
package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/holtback/holtback-backend/internal/domain"
)

// TelegramNotifier posts a registration summary to a back-office chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifySignup sends the new-registration summary. Credentials are stored
// hashed, so the message carries profile fields and document URLs only.
func (n *TelegramNotifier) NotifySignup(ctx context.Context, record *domain.UserRecord) error {
	text := fmt.Sprintf(`New Bank Registration

Name: %s %s %s
Email: %s
Address: %s
Gender: %s
DOB: %s
Marital: %s
Account Type: %s
Sub Type: %s
Signature: %s
Profile: %s
Front ID: %s
Back ID: %s`,
		record.FirstName, record.MiddleName, record.LastName,
		record.Email,
		record.Address,
		record.Gender,
		record.DOB,
		record.MaritalStatus,
		record.AccountType,
		record.AccountSubType,
		record.Signature,
		record.ProfilePicture,
		record.FrontID,
		record.BackID,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}
