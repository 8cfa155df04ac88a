// Package queue defines message payloads exchanged over the message broker.
package queue

// Notification kinds understood by the consumer.
const (
	KindBookingConfirmed = "booking.confirmed"
	KindOtpIssued        = "otp.issued"
)

// Notification is the envelope published to the notifications queue.
// Exactly one of the typed payloads is set, selected by Kind.
type Notification struct {
	Kind    string                 `json:"kind"`
	Booking *BookingConfirmedEvent `json:"booking,omitempty"`
	Otp     *OtpIssuedEvent        `json:"otp,omitempty"`
}

// BookingConfirmedEvent is published when a booking's payment is confirmed.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	UserID           uint64   `json:"user_id"`
	UserEmail        string   `json:"user_email"`
	EventID          uint64   `json:"event_id"`
	EventName        string   `json:"event_name"`
	ShowDate         string   `json:"show_date"`
	SeatLabels       []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}

// OtpIssuedEvent is published when a one-time code is generated for a
// user, either for OTP login or a password reset. In production a mail
// or SMS gateway would consume these; here the consumer renders them to
// a delivery log.
type OtpIssuedEvent struct {
	UserID    uint64 `json:"user_id"`
	UserEmail string `json:"user_email"`
	Purpose   string `json:"purpose"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
	IssuedAt  string `json:"issued_at"`
}
