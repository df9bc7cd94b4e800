package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mohit9674/Smart-Home-Management/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gorm.io/datatypes"
)

const brandName = "Smart Home Management System"

// Mailer sends the booking notification emails through SendGrid. The admin
// alert is treated as a hard failure by callers; the requester confirmation
// is best-effort.
type Mailer struct {
	apiKey       string
	fromEmail    string
	fromName     string
	adminEmail   string
	dashboardURL string
}

func NewMailerFromEnv() *Mailer {
	return &Mailer{
		apiKey:       os.Getenv("SENDGRID_API_KEY"),
		fromEmail:    os.Getenv("DEFAULT_FROM_EMAIL"),
		fromName:     brandName,
		adminEmail:   os.Getenv("ADMIN_EMAIL"),
		dashboardURL: os.Getenv("DASHBOARD_URL"),
	}
}

// AdminRequestURL is the deep link back into the management dashboard for
// one booking request.
func (m *Mailer) AdminRequestURL(requestID uint) string {
	base := strings.TrimRight(m.dashboardURL, "/")
	if base == "" {
		return "(admin URL unavailable)"
	}
	return fmt.Sprintf("%s/admin/booking-requests/%d", base, requestID)
}

// SendBookingAlert notifies administrators of a new booking request.
func (m *Mailer) SendBookingAlert(request *models.BookingRequest, property *models.Property) error {
	subject, text, html := BuildBookingAlertEmail(request, property, m.AdminRequestURL(request.ID))
	return m.send(m.adminEmail, "Admin", subject, text, html)
}

// SendBookingConfirmation acknowledges the request to the submitter.
func (m *Mailer) SendBookingConfirmation(request *models.BookingRequest, property *models.Property) error {
	subject, text, html := BuildBookingConfirmationEmail(request, property)
	return m.send(request.Email, request.FullName, subject, text, html)
}

func (m *Mailer) send(toEmail, toName, subject, plainText, htmlContent string) error {
	if m.apiKey == "" || toEmail == "" {
		return fmt.Errorf("mailer not configured")
	}
	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// BuildBookingAlertEmail renders the administrator notification.
func BuildBookingAlertEmail(request *models.BookingRequest, property *models.Property, adminURL string) (subject, text, html string) {
	subject = fmt.Sprintf("New booking request — %s", property.DisplayName())
	text = fmt.Sprintf(
		"%s\n\n"+
			"Property: %s\n"+
			"Type: %s\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Check-in: %s\n"+
			"Notes:\n%s\n\n"+
			"Admin: %s",
		brandName,
		property.DisplayName(),
		property.UnitTypeLabel(),
		request.FullName,
		request.Email,
		orDash(request.Phone),
		formatDate(request.StartDate),
		request.Notes,
		adminURL,
	)
	html = fmt.Sprintf(`
	<div style="font-family:system-ui,sans-serif;max-width:640px">
	  <h2 style="margin:0 0 12px">%s</h2>
	  <p style="margin:0 0 16px;color:#555">You have a new booking request.</p>
	  %s
	  <p style="margin:0 0 8px">
	    <a href="%s" style="background:#0d6efd;color:#fff;padding:10px 14px;border-radius:6px;text-decoration:none">Open in Admin</a>
	  </p>
	</div>`, brandName, detailsTable(request, property), adminURL)
	return subject, text, html
}

// BuildBookingConfirmationEmail renders the requester acknowledgment.
func BuildBookingConfirmationEmail(request *models.BookingRequest, property *models.Property) (subject, text, html string) {
	subject = fmt.Sprintf("We received your booking request — %s", property.DisplayName())
	text = fmt.Sprintf(
		"%s\n\n"+
			"Thanks for your request. Here are the details we received:\n\n"+
			"Property: %s\n"+
			"Type: %s\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Check-in: %s\n"+
			"Notes:\n%s\n\n"+
			"Our team will review and get back to you shortly.\n"+
			"— Smart Home Management",
		brandName,
		property.DisplayName(),
		property.UnitTypeLabel(),
		request.FullName,
		request.Email,
		orDash(request.Phone),
		formatDate(request.StartDate),
		request.Notes,
	)
	html = fmt.Sprintf(`
	<div style="font-family:system-ui,sans-serif;max-width:640px">
	  <h2 style="margin:0 0 12px">%s</h2>
	  <p style="margin:0 0 16px;color:#555">Thanks for your request. Here are the details we received:</p>
	  %s
	  <p style="margin:0;color:#666">We'll email you when it's approved or if we need more info.</p>
	</div>`, brandName, detailsTable(request, property))
	return subject, text, html
}

func detailsTable(request *models.BookingRequest, property *models.Property) string {
	row := func(label, value string) string {
		return fmt.Sprintf(
			`<tr><td style="padding:8px;border:1px solid #eee"><strong>%s</strong></td><td style="padding:8px;border:1px solid #eee">%s</td></tr>`,
			label, value)
	}
	rows := strings.Join([]string{
		row("Property", property.DisplayName()),
		row("Type", property.UnitTypeLabel()),
		row("Name", request.FullName),
		row("Email", request.Email),
		row("Phone", orDash(request.Phone)),
		row("Check-in", formatDate(request.StartDate)),
		row("Notes", strings.ReplaceAll(request.Notes, "\n", "<br>")),
	}, "\n")
	return `<table style="border-collapse:collapse;width:100%;margin-bottom:16px">` + rows + `</table>`
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
