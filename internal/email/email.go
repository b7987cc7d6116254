package email

import (
	"context"
	"fmt"
	"time"

	"greenery/internal/config"
	"greenery/internal/logger"
	"greenery/internal/models"

	"github.com/mailgun/mailgun-go/v5"
)

type Service struct {
	client  mailgun.Mailgun
	domain  string
	sender  string
	enabled bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.EmailEnabled()

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:  client,
		domain:  cfg.MailgunDomain,
		sender:  cfg.MailgunSender,
		enabled: enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

func (s *Service) SendWelcomeEmail(user *models.User) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	subject := fmt.Sprintf("Welcome to Greenery, %s!", user.Username)
	message := mailgun.NewMessage(
		s.domain,
		s.sender,
		subject,
		s.generateWelcomeText(user),
		user.Email,
	)
	message.SetHTML(s.generateWelcomeHTML(user))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	logger.Info("Welcome email sent", "email", user.Email, "message_id", resp)
	return nil
}

// SendBudgetAlertEmail notifies the user that their spending crossed a
// budget threshold. Called at most once per alert type per month.
func (s *Service) SendBudgetAlertEmail(user *models.User, alert *models.BudgetAlert) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	subject := budgetAlertSubject(alert)
	message := mailgun.NewMessage(
		s.domain,
		s.sender,
		subject,
		s.generateBudgetAlertText(user, alert),
		user.Email,
	)
	message.SetHTML(s.generateBudgetAlertHTML(user, alert))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send budget alert email: %w", err)
	}

	logger.Info("Budget alert email sent", "email", user.Email, "alert_type", alert.AlertType, "message_id", resp)
	return nil
}

func budgetAlertSubject(alert *models.BudgetAlert) string {
	switch alert.AlertType {
	case models.AlertTypeBudgetExceeded:
		return "Greenery: monthly budget exceeded"
	case models.AlertTypeWeeklyThreshold:
		return "Greenery: approaching your weekly budget"
	default:
		return "Greenery: approaching your monthly budget"
	}
}
