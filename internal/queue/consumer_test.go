package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBookingConfirmed(t *testing.T) {
	line, err := renderNotification(Notification{
		Kind: KindBookingConfirmed,
		Booking: &BookingConfirmedEvent{
			BookingID:        42,
			UserID:           7,
			UserEmail:        "a@example.com",
			EventName:        "Winter Concert",
			ShowDate:         "2024-01-03 10:00:00",
			SeatLabels:       []string{"VIP-0-1", "VIP-0-2"},
			TotalAmountCents: 5000,
			ConfirmedAt:      "2024-01-02T09:00:00Z",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, line, "booking_id=42")
	assert.Contains(t, line, "seats=[VIP-0-1,VIP-0-2]")
	assert.Contains(t, line, "total=5000 cents")
}

func TestRenderOtpIssued(t *testing.T) {
	line, err := renderNotification(Notification{
		Kind: KindOtpIssued,
		Otp: &OtpIssuedEvent{
			UserID:    7,
			UserEmail: "a@example.com",
			Purpose:   "login",
			Code:      "004217",
			ExpiresAt: "2024-01-02T09:10:00Z",
			IssuedAt:  "2024-01-02T09:00:00Z",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, line, "code=004217")
	assert.Contains(t, line, "purpose=login")
}

func TestRenderRejectsBadEnvelopes(t *testing.T) {
	_, err := renderNotification(Notification{Kind: "something.else"})
	assert.Error(t, err)

	// Kind set but payload missing.
	_, err = renderNotification(Notification{Kind: KindBookingConfirmed})
	assert.Error(t, err)
	_, err = renderNotification(Notification{Kind: KindOtpIssued})
	assert.Error(t, err)
}
