package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v5"

	"findyourseat/services"
)

// SelectionFactory builds a fresh selection for a movie.
type SelectionFactory func(movieID string) *services.SeatSelection

// SelectionHandler keeps one in-progress selection per movie for the local user.
type SelectionHandler struct {
	newSelection SelectionFactory
	layout       *services.SeatLayout
	logger       *slog.Logger

	mu         sync.Mutex
	selections map[string]*services.SeatSelection
}

func NewSelectionHandler(factory SelectionFactory, layout *services.SeatLayout, logger *slog.Logger) *SelectionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SelectionHandler{
		newSelection: factory,
		layout:       layout,
		logger:       logger,
		selections:   make(map[string]*services.SeatSelection),
	}
}

func (h *SelectionHandler) selection(movieID string) *services.SeatSelection {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.selections[movieID]
	if !ok {
		s = h.newSelection(movieID)
		h.selections[movieID] = s
	}
	return s
}

// discard drops a finished selection so the next visit starts empty.
func (h *SelectionHandler) discard(s *services.SeatSelection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.selections[s.MovieID()] == s {
		delete(h.selections, s.MovieID())
	}
}

// GetSelection - Current seats, venue, date, time and total
func (h *SelectionHandler) GetSelection(c echo.Context) error {
	return c.JSON(http.StatusOK, h.selection(c.PathParam("id")).Snapshot())
}

// ToggleSeat - Select or deselect one seat
func (h *SelectionHandler) ToggleSeat(c echo.Context) error {
	seat := c.PathParam("seat")
	if !h.layout.Has(seat) {
		return respondError(c, services.ErrUnknownSeat)
	}

	s := h.selection(c.PathParam("id"))
	selected := s.Toggle(seat)

	return c.JSON(http.StatusOK, map[string]any{
		"seat":      seat,
		"selected":  selected,
		"price":     h.layout.PriceOf(seat),
		"selection": s.Snapshot(),
	})
}

type updateSelectionRequest struct {
	Place      string `json:"place"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	MovieTitle string `json:"movieTitle"`
}

// UpdateSelection - Set venue, date, time or title; empty fields are left alone
func (h *SelectionHandler) UpdateSelection(c echo.Context) error {
	var req updateSelectionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}

	s := h.selection(c.PathParam("id"))
	if req.Place != "" {
		if err := s.SetPlace(req.Place); err != nil {
			return respondError(c, err)
		}
	}
	if req.Date != "" {
		if err := s.SetDate(req.Date); err != nil {
			return respondError(c, err)
		}
	}
	if req.Time != "" {
		if err := s.SetTime(req.Time); err != nil {
			return respondError(c, err)
		}
	}
	if req.MovieTitle != "" {
		s.SetMovieTitle(req.MovieTitle)
	}

	return c.JSON(http.StatusOK, s.Snapshot())
}

// ResetSelection - Clear seats, venue, date and time
func (h *SelectionHandler) ResetSelection(c echo.Context) error {
	s := h.selection(c.PathParam("id"))
	s.Reset()
	return c.JSON(http.StatusOK, s.Snapshot())
}

// SubmitBooking - Book the selection and hand off to confirmation
func (h *SelectionHandler) SubmitBooking(c echo.Context) error {
	sel := h.selection(c.PathParam("id"))

	rec, err := sel.SubmitBooking(c.Request().Context())
	if err != nil {
		h.logger.Debug("booking not submitted", "movieId", sel.MovieID(), "error", err)
		return respondError(c, err)
	}
	h.discard(sel)

	return c.JSON(http.StatusCreated, map[string]any{
		"booking":  rec,
		"redirect": "/booking-confirmation",
	})
}
