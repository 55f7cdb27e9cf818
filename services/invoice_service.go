package services

import (
	"context"
	"fmt"
	"log/slog"

	"findyourseat/models"
)

// InvoiceGateway is the invoice half of the backend.
type InvoiceGateway interface {
	GenerateInvoice(ctx context.Context, req models.InvoiceRequest) *models.InvoiceResponse
	GetInvoiceByID(ctx context.Context, id string) *models.Invoice
}

type InvoiceService struct {
	gateway  InvoiceGateway
	session  SessionReader
	bookings *BookingStore
	logger   *slog.Logger
}

func NewInvoiceService(gateway InvoiceGateway, session SessionReader, bookings *BookingStore, logger *slog.Logger) *InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{gateway: gateway, session: session, bookings: bookings, logger: logger}
}

// Generate requests an invoice for the resolved booking. The ticket QR
// payload is sent as the invoice's QR code.
func (s *InvoiceService) Generate(ctx context.Context, explicit *models.BookingRecord) (*models.InvoiceResponse, error) {
	userID, err := s.session.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	if userID == "" {
		return nil, ErrNotLoggedIn
	}

	rec, err := s.bookings.Resolve(ctx, explicit)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}

	ticket := BuildTicket(*rec)
	resp := s.gateway.GenerateInvoice(ctx, models.InvoiceRequest{
		BookingID:   rec.BookingID,
		UserID:      userID,
		MovieName:   ticket.MovieTitle,
		Seats:       ticket.Seats,
		TotalAmount: rec.TotalAmount,
		QRCode:      ticket.QRData,
	})
	if resp == nil {
		return nil, ErrInvoiceUnavailable
	}

	s.logger.Info("invoice generated", "bookingId", rec.BookingID)
	return resp, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv := s.gateway.GetInvoiceByID(ctx, id)
	if inv == nil {
		return nil, ErrInvoiceUnavailable
	}
	return inv, nil
}
