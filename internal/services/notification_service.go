// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/storedash/backend/internal/config"
	"github.com/storedash/backend/internal/models"
)

type NotificationService struct {
	email    config.EmailConfig
	frontend config.FrontendConfig
}

// EmailResult reports whether a notification went out. Email delivery never
// fails the operation that triggered it; the caller forwards the result so
// the UI can tell the inviter to pass credentials along manually.
type EmailResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

func NewNotificationService(email config.EmailConfig, frontend config.FrontendConfig) *NotificationService {
	return &NotificationService{email: email, frontend: frontend}
}

const welcomeEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to {{.FromName}}</title>
</head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Welcome, {{.Name}}!</h2>
    <p>{{.InvitedBy}} has created an admin account for you on {{.FromName}}.</p>
    <p>You can sign in with:</p>
    <ul>
        <li><strong>Email:</strong> {{.Email}}</li>
        <li><strong>Temporary password:</strong> {{.Password}}</li>
    </ul>
    {{if .Categories}}
    <p>You have been assigned to the following categories:</p>
    <ul>
        {{range .Categories}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
    <p><a href="{{.LoginURL}}" style="display: inline-block; padding: 10px 20px; background-color: #2563eb; color: #ffffff; text-decoration: none; border-radius: 4px;">Sign in</a></p>
    <p>Please change your password after your first login.</p>
</body>
</html>
`

type welcomeEmailData struct {
	FromName   string
	Name       string
	Email      string
	Password   string
	InvitedBy  string
	Categories []models.CategoryName
	LoginURL   string
}

// SendWelcomeEmail emails the freshly created admin their temporary
// credentials. Returns a result instead of an error: delivery problems are
// reported back to the inviter, not treated as failures.
func (s *NotificationService) SendWelcomeEmail(account *models.AdminAccount, plainPassword, invitedBy string) EmailResult {
	if s.email.SMTPHost == "" {
		logrus.WithField("email", account.Email).Warn("SMTP not configured, skipping welcome email")
		return EmailResult{Sent: false, Error: "email delivery is not configured"}
	}

	tmpl, err := template.New("welcome").Parse(welcomeEmailTemplate)
	if err != nil {
		return EmailResult{Sent: false, Error: fmt.Sprintf("failed to build email: %v", err)}
	}

	var body bytes.Buffer
	data := welcomeEmailData{
		FromName:   s.email.FromName,
		Name:       account.Name,
		Email:      account.Email,
		Password:   plainPassword,
		InvitedBy:  invitedBy,
		Categories: account.AssignedCategories,
		LoginURL:   s.frontend.BaseURL + "/login",
	}
	if err := tmpl.Execute(&body, data); err != nil {
		return EmailResult{Sent: false, Error: fmt.Sprintf("failed to build email: %v", err)}
	}

	if err := s.send(account.Email, "Your admin account is ready", body.String()); err != nil {
		logrus.WithError(err).WithField("email", account.Email).Error("Failed to send welcome email")
		return EmailResult{Sent: false, Error: err.Error()}
	}

	return EmailResult{Sent: true}
}

func (s *NotificationService) send(to, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", s.email.FromName, s.email.FromEmail)

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%s", s.email.SMTPHost, s.email.SMTPPort)
	auth := smtp.PlainAuth("", s.email.SMTPUsername, s.email.SMTPPassword, s.email.SMTPHost)

	return smtp.SendMail(addr, auth, s.email.FromEmail, []string{to}, msg.Bytes())
}
