package email

import (
	"fmt"

	"greenery/internal/models"
)

func (s *Service) generateWelcomeHTML(user *models.User) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to Greenery</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #2d5e3e;
            margin-bottom: 10px;
        }
        .welcome-message {
            font-size: 24px;
            color: #2d5e3e;
            margin-bottom: 20px;
        }
        .content {
            font-size: 16px;
            margin-bottom: 30px;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Greenery</div>
            <div class="welcome-message">Welcome %s!</div>
        </div>

        <div class="content">
            <p>Thank you for joining Greenery, your personal cannabis consumption journal.</p>

            <p>With Greenery, you can:</p>
            <ul>
                <li>🌿 Log sessions and keep your strain history in one place</li>
                <li>📦 Track inventory from raw flower down to the last pre-roll</li>
                <li>📊 See tolerance trends, costs and projections at a glance</li>
                <li>💰 Set a budget and get notified before you overshoot it</li>
            </ul>

            <p>Everything you record stays private to your account.</p>
        </div>

        <div class="footer">
            <p>Stay green!</p>
            <p>The Greenery Team</p>
            <p style="margin-top: 20px; font-size: 12px;">
                This email was sent to %s. If you have any questions, feel free to reach out to us.
            </p>
        </div>
    </div>
</body>
</html>`, user.Username, user.Email)
}

func (s *Service) generateWelcomeText(user *models.User) string {
	return fmt.Sprintf(`Welcome %s!

Thank you for joining Greenery, your personal cannabis consumption journal.

With Greenery, you can:
- Log sessions and keep your strain history in one place
- Track inventory from raw flower down to the last pre-roll
- See tolerance trends, costs and projections at a glance
- Set a budget and get notified before you overshoot it

Everything you record stays private to your account.

Stay green!
The Greenery Team

This email was sent to %s.`, user.Username, user.Email)
}

func (s *Service) generateBudgetAlertHTML(user *models.User, alert *models.BudgetAlert) string {
	headline := "You are approaching your budget"
	if alert.AlertType == models.AlertTypeBudgetExceeded {
		headline = "You have exceeded your budget"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Budget Alert</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #2d5e3e;
            text-align: center;
            margin-bottom: 20px;
        }
        .headline {
            font-size: 22px;
            color: #b02a37;
            text-align: center;
            margin-bottom: 20px;
        }
        .stats {
            background-color: #f8f9fa;
            border-radius: 8px;
            padding: 20px;
            margin: 20px 0;
            font-size: 16px;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Greenery</div>
        <div class="headline">%s</div>

        <p>Hi %s,</p>

        <div class="stats">
            <p>Current spending: <strong>%.2f</strong></p>
            <p>Budget limit: <strong>%.2f</strong></p>
            <p>Used: <strong>%.0f%%</strong></p>
        </div>

        <p>You can adjust your budget or review your spending history in your Greenery dashboard.</p>

        <div class="footer">
            <p>The Greenery Team</p>
        </div>
    </div>
</body>
</html>`, headline, user.Username, alert.CurrentSpending, alert.BudgetLimit, alert.PercentageUsed)
}

func (s *Service) generateBudgetAlertText(user *models.User, alert *models.BudgetAlert) string {
	headline := "You are approaching your budget."
	if alert.AlertType == models.AlertTypeBudgetExceeded {
		headline = "You have exceeded your budget."
	}

	return fmt.Sprintf(`Hi %s,

%s

Current spending: %.2f
Budget limit: %.2f
Used: %.0f%%

You can adjust your budget or review your spending history in your Greenery dashboard.

The Greenery Team`, user.Username, headline, alert.CurrentSpending, alert.BudgetLimit, alert.PercentageUsed)
}
