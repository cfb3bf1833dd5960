package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// BookingConfirmation holds the fields rendered into the confirmation email
type BookingConfirmation struct {
	RecipientName   string
	RecipientEmail  string
	ReferenceNumber string
	Amount          float64
	LocationLabel   string
	SentAt          time.Time
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendBookingConfirmation sends a booking confirmation email
func (s *EmailService) SendBookingConfirmation(data BookingConfirmation) error {
	htmlContent, err := s.renderBookingConfirmation(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Booking Confirmed - My Productive Space"
	message := s.buildHTMLEmail(data.RecipientEmail, subject, htmlContent)

	return s.sendEmail(data.RecipientEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// FormatAmount formats the payment amount with its currency label,
// trimming trailing zeros (40 renders as "SGD 40", 40.50 as "SGD 40.5").
func FormatAmount(amount float64) string {
	return "SGD " + strconv.FormatFloat(amount, 'f', -1, 64)
}

// renderBookingConfirmation renders the booking confirmation template
func (s *EmailService) renderBookingConfirmation(data BookingConfirmation) (string, error) {
	tmpl, err := template.New("booking_confirmation").Parse(bookingConfirmationTemplate)
	if err != nil {
		return "", err
	}

	name := data.RecipientName
	if name == "" {
		name = "Customer"
	}

	// Singapore locale for the confirmation timestamp
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		loc = time.UTC
	}
	sentAt := data.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	sentAt = sentAt.In(loc)

	tmplData := struct {
		Name            string
		ReferenceNumber string
		Amount          string
		LocationLabel   string
		Date            string
		Time            string
		AppName         string
	}{
		Name:            name,
		ReferenceNumber: data.ReferenceNumber,
		Amount:          FormatAmount(data.Amount),
		LocationLabel:   data.LocationLabel,
		Date:            sentAt.Format("02/01/2006"),
		Time:            sentAt.Format("3:04:05 PM"),
		AppName:         "My Productive Space",
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tmplData); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// bookingConfirmationTemplate is the HTML template for booking confirmation emails
const bookingConfirmationTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Booking Confirmation</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #f97316; padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Booking Confirmed</h2>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello {{.Name}},
                            </p>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Thank you for booking with us!
                            </p>

                            <h3 style="color: #1a1a2e; margin: 0 0 10px 0; font-size: 18px;">Payment Details</h3>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 6px 0;">
                                <strong>Reference Number:</strong> {{if .ReferenceNumber}}{{.ReferenceNumber}}{{else}}N/A{{end}}
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 6px 0;">
                                <strong>Amount Paid:</strong> {{.Amount}}
                            </p>
                            {{if .LocationLabel}}
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 6px 0;">
                                <strong>Location:</strong> {{.LocationLabel}}
                            </p>
                            {{end}}
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 6px 0;">
                                <strong>Date:</strong> {{.Date}}
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                <strong>Time:</strong> {{.Time}}
                            </p>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0;">
                                We look forward to seeing you!
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">
                                This email was sent by {{.AppName}}
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
