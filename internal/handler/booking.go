package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventmate/ticketing/internal/middleware"
	"github.com/eventmate/ticketing/internal/model"
	"github.com/eventmate/ticketing/internal/pricing"
	"github.com/eventmate/ticketing/internal/queue"
	"github.com/eventmate/ticketing/internal/repository"
	queue_publisher "github.com/eventmate/ticketing/internal/service"
)

// BookingHandler serves booking creation, payment confirmation and the
// read-side projections (booked seats, booking lists).
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Tickets  *repository.TicketRepo
	Events   *repository.EventRepo
	Users    *repository.UserRepo
}

func NewBookingHandler(b *repository.BookingRepo, t *repository.TicketRepo, e *repository.EventRepo, u *repository.UserRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Tickets: t, Events: e, Users: u}
}

// ----- DTOs -----

type seatReq struct {
	SectionID uint64 `json:"section_id"`
	Row       uint32 `json:"row"`
	Col       uint32 `json:"col"`
}

type createBookingReq struct {
	EventID  uint64    `json:"event_id"`
	ShowDate string    `json:"show_date"` // "2006-01-02 15:04" or RFC3339
	Seats    []seatReq `json:"seats"`
}

type confirmReq struct {
	PaymentMethod string `json:"payment_method"`
}

// showDateLayouts are accepted on input; show dates are always treated
// as UTC wall-clock values matching the DB DATETIME column.
var showDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseShowDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range showDateLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// validShowDate reports whether ts falls on a calendar day within the
// event's inclusive date range and its clock exactly matches one of
// the event's configured show times.
func validShowDate(ev *model.Event, ts time.Time) bool {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	start := ev.StartDate
	end := ev.EndDate
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(startDay) || day.After(endDay) {
		return false
	}
	for _, st := range ev.ShowTimes {
		if st.Matches(ts) {
			return true
		}
	}
	return false
}

// Create books a batch of seats as one atomic unit: every validation
// runs in memory first, then a single transaction writes the PENDING
// booking and all its tickets. If any seat in the batch is already
// held, the unique key rejects the whole insert and the client gets a
// 409 naming the colliding seat.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id required"})
	}
	if len(req.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats must not be empty"})
	}
	showDate, ok := parseShowDate(req.ShowDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show_date"})
	}

	// A request that names the same seat twice can never succeed: the
	// batch insert would collide with itself. Reject it up front.
	seen := make(map[seatReq]struct{}, len(req.Seats))
	for _, s := range req.Seats {
		if _, dup := seen[s]; dup {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "duplicate seat in request",
				"seat":  echo.Map{"section_id": s.SectionID, "row": s.Row, "col": s.Col},
			})
		}
		seen[s] = struct{}{}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	if !validShowDate(ev, showDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show date or time does not match event schedule"})
	}

	sectionIDs := make([]uint64, 0, len(req.Seats))
	for _, s := range req.Seats {
		sectionIDs = append(sectionIDs, s.SectionID)
	}
	sections, err := h.Events.SectionsByIDs(ctx, ev.ID, sectionIDs)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sections failed"})
	}
	for _, s := range req.Seats {
		sec := sections[s.SectionID]
		if !sec.InBounds(s.Row, s.Col) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "seat out of bounds",
				"seat":  echo.Map{"section_id": s.SectionID, "row": s.Row, "col": s.Col},
			})
		}
	}

	prices, total, ok := pricing.ForBatch(sections, sectionIDs)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
	}

	recs := make([]repository.TicketRecord, 0, len(req.Seats))
	for i, s := range req.Seats {
		sec := sections[s.SectionID]
		recs = append(recs, repository.TicketRecord{
			SectionID:  s.SectionID,
			Row:        s.Row,
			Col:        s.Col,
			SeatNo:     model.SeatLabel(sec.Name, s.Row, s.Col),
			PriceCents: prices[i].PriceCents,
		})
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	booking := repository.BookingRecord{
		UserID:           uid,
		EventID:          ev.ID,
		ShowDate:         showDate,
		TotalAmountCents: total,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := h.Tickets.ReserveTx(ctx, tx, booking.ID, ev.ID, showDate, recs); err != nil {
		_ = tx.Rollback()
		cerr := h.Tickets.Conflict(ctx, err, ev.ID, showDate, recs)
		if conflict, isConflict := cerr.(*repository.SeatTakenError); isConflict {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "seat unavailable",
				"seat": echo.Map{
					"section_id": conflict.Seat.SectionID,
					"row":        conflict.Seat.Row,
					"col":        conflict.Seat.Col,
				},
			})
		}
		log.Printf("booking: reserve seats for user %d event %d failed: %v", uid, ev.ID, cerr)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve seats failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	seatLabels := make([]string, 0, len(recs))
	for _, rec := range recs {
		seatLabels = append(seatLabels, rec.SeatNo)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":                 booking.ID,
		"event_id":           ev.ID,
		"event_title":        ev.Title,
		"show_date":          showDate.Format("2006-01-02 15:04:05"),
		"booking_date":       booking.BookingDate,
		"payment_status":     string(model.PaymentPending),
		"total_amount_cents": total,
		"seats":              seatLabels,
	})
}

// Confirm flips a PENDING booking to COMPLETED and records its payment
// in the same transaction. Confirming an already COMPLETED booking is
// a no-op success; a FAILED booking is closed and cannot be confirmed.
func (h *BookingHandler) Confirm(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var req confirmReq
	_ = c.Bind(&req)
	method := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = "CARD"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ownerID, _, err := h.Bookings.OwnerAndEventTx(ctx, tx, bookingID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	// Absence and foreign ownership look the same to the caller.
	if ownerID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	already, err := h.Bookings.ConfirmCompletedTx(ctx, tx, bookingID)
	if err != nil {
		if err == repository.ErrBookingClosed {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is closed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}
	if already {
		return c.JSON(http.StatusOK, echo.Map{
			"id":                bookingID,
			"payment_status":    string(model.PaymentCompleted),
			"already_confirmed": true,
		})
	}

	total, err := h.Bookings.TotalTx(ctx, tx, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}
	if err := h.Bookings.CreatePaymentTx(ctx, tx, bookingID, total, method); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	confirmedAt := time.Now().UTC()

	// Notification is best effort and must never undo the confirmation.
	go h.publishConfirmed(bookingID, uid, confirmedAt)

	return c.JSON(http.StatusOK, echo.Map{
		"id":                 bookingID,
		"payment_status":     string(model.PaymentCompleted),
		"total_amount_cents": total,
		"confirmed_at":       confirmedAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) publishConfirmed(bookingID, userID uint64, confirmedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	detail, err := h.Bookings.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		log.Printf("notify: load booking %d failed: %v", bookingID, err)
		return
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("notify: load user %d failed: %v", userID, err)
		return
	}
	err = queue_publisher.PublishNotification(ctx, queue.Notification{
		Kind: queue.KindBookingConfirmed,
		Booking: &queue.BookingConfirmedEvent{
			BookingID:        detail.ID,
			UserID:           userID,
			UserEmail:        u.Email,
			EventID:          detail.EventID,
			EventName:        detail.EventTitle,
			ShowDate:         detail.ShowDate.Format("2006-01-02 15:04:05"),
			SeatLabels:       detail.Seats,
			TotalAmountCents: detail.TotalAmountCents,
			ConfirmedAt:      confirmedAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		log.Printf("notify: publish for booking %d failed: %v", bookingID, err)
	}
}

// BookedSeats returns the committed seat occupancy for one event and
// show date. This endpoint is never cached: clients use it to pick
// seats, and stale data only manufactures avoidable conflicts.
func (h *BookingHandler) BookedSeats(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	showDate, ok := parseShowDate(c.QueryParam("show_date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_date query parameter required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seats, err := h.Tickets.BookedSeats(ctx, eventID, showDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booked seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id":  eventID,
		"show_date": showDate.Format("2006-01-02 15:04:05"),
		"seats":     seats,
	})
}

// List returns the caller's bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Get returns one of the caller's bookings with its seat labels.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Bookings.GetByIDForUser(ctx, bookingID, uid)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, detail)
}
