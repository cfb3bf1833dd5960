package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "SGD 40", FormatAmount(40))
	assert.Equal(t, "SGD 40.5", FormatAmount(40.5))
	assert.Equal(t, "SGD 174.4", FormatAmount(174.40))
	assert.Equal(t, "SGD 0", FormatAmount(0))
}

func TestRenderBookingConfirmation(t *testing.T) {
	svc := NewEmailService(EmailConfig{FromName: "My Productive Space", FromEmail: "noreply@example.com"})

	html, err := svc.renderBookingConfirmation(BookingConfirmation{
		RecipientName:   "Jane Tan",
		RecipientEmail:  "jane@example.com",
		ReferenceNumber: "BK-A1B2C3D4",
		Amount:          174.40,
		LocationLabel:   "Kovan - Full Day",
		SentAt:          time.Date(2025, 6, 2, 6, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Tan")
	assert.Contains(t, html, "BK-A1B2C3D4")
	assert.Contains(t, html, "SGD 174.4")
	assert.Contains(t, html, "Kovan - Full Day")
	// Timestamps render in Singapore time (UTC+8)
	assert.Contains(t, html, "02/06/2025")
	assert.Contains(t, html, "2:30:00 PM")
}

func TestRenderBookingConfirmation_DefaultsName(t *testing.T) {
	svc := NewEmailService(EmailConfig{})

	html, err := svc.renderBookingConfirmation(BookingConfirmation{
		ReferenceNumber: "BK-XYZ",
		Amount:          40,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Customer")
}
