package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"

	"findyourseat/models"
	"findyourseat/services"
)

type BookingHandler struct {
	bookings *services.BookingStore
	payments *services.PaymentService
	tickets  *services.TicketService
	invoices *services.InvoiceService
}

func NewBookingHandler(bookings *services.BookingStore, payments *services.PaymentService, tickets *services.TicketService, invoices *services.InvoiceService) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		payments: payments,
		tickets:  tickets,
		invoices: invoices,
	}
}

// GetBooking - The confirmed booking for the confirmation view
func (h *BookingHandler) GetBooking(c echo.Context) error {
	rec, err := h.bookings.Load(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"booking":       rec,
		"formattedDate": services.FormatShortDate(rec.Date),
	})
}

// ClearBooking - Forget the stored booking and start over
func (h *BookingHandler) ClearBooking(c echo.Context) error {
	if err := h.bookings.Clear(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type payRequest struct {
	models.PaymentForm
	// Booking is set when the client hands the record over directly.
	Booking *models.BookingRecord `json:"booking,omitempty"`
}

// Pay - Validate the local payment form and move on to the ticket
func (h *BookingHandler) Pay(c echo.Context) error {
	var req payRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}

	receipt, err := h.payments.Pay(c.Request().Context(), req.PaymentForm, req.Booking)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"receipt":  receipt,
		"redirect": "/browser-sheet",
	})
}

// GetTicket - Ticket fields and QR payload
func (h *BookingHandler) GetTicket(c echo.Context) error {
	t, err := h.tickets.Ticket(c.Request().Context(), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// DownloadTicket - The ticket as a PDF attachment
func (h *BookingHandler) DownloadTicket(c echo.Context) error {
	var buf bytes.Buffer
	t, err := h.tickets.Export(c.Request().Context(), nil, &buf)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", t.Filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// GenerateInvoice - Ask the backend for an invoice of the stored booking
func (h *BookingHandler) GenerateInvoice(c echo.Context) error {
	resp, err := h.invoices.Generate(c.Request().Context(), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetInvoice - One invoice by id
func (h *BookingHandler) GetInvoice(c echo.Context) error {
	inv, err := h.invoices.Get(c.Request().Context(), c.PathParam("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"invoice": inv})
}
