package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventmate/ticketing/internal/model"
	"github.com/eventmate/ticketing/internal/repository"
)

// EventHandler serves the public event catalog.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: e}
}

type eventSummary struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	Venue     string   `json:"venue"`
	Category  string   `json:"category,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	ShowTimes []string `json:"show_times,omitempty"`
}

type sectionDetail struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	PriceCents uint32 `json:"price_cents"`
	RowCount   uint32 `json:"row_count"`
	ColCount   uint32 `json:"col_count"`
}

type eventDetail struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Venue       string          `json:"venue"`
	Category    string          `json:"category,omitempty"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	ShowTimes   []string        `json:"show_times"`
	Sections    []sectionDetail `json:"sections"`
}

const dateLayout = "2006-01-02"

// List returns the catalog of events with their show times.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}

	out := make([]eventSummary, 0, len(events))
	for _, ev := range events {
		out = append(out, eventSummary{
			ID:        ev.ID,
			Title:     ev.Title,
			Venue:     ev.Venue,
			Category:  ev.Category,
			StartDate: ev.StartDate.Format(dateLayout),
			EndDate:   ev.EndDate.Format(dateLayout),
			ShowTimes: showTimeStrings(ev.ShowTimes),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// Get returns one event with its sections and show times.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}

	sections := make([]sectionDetail, 0, len(ev.Sections))
	for _, s := range ev.Sections {
		sections = append(sections, sectionDetail{
			ID:         s.ID,
			Name:       s.Name,
			PriceCents: s.PriceCents,
			RowCount:   s.RowCount,
			ColCount:   s.ColCount,
		})
	}

	return c.JSON(http.StatusOK, eventDetail{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Venue:       ev.Venue,
		Category:    ev.Category,
		StartDate:   ev.StartDate.Format(dateLayout),
		EndDate:     ev.EndDate.Format(dateLayout),
		ShowTimes:   showTimeStrings(ev.ShowTimes),
		Sections:    sections,
	})
}

func showTimeStrings(times []model.ShowTime) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.String())
	}
	return out
}
