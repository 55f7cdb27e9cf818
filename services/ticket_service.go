package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"findyourseat/models"
	"findyourseat/monitoring"
)

const (
	TicketSubject   = "Movie Ticket"
	InvalidDateText = "Invalid Date"

	notAvailable = "Not Available"
)

// TicketRenderer writes a printable ticket document.
type TicketRenderer interface {
	Render(w io.Writer, t models.Ticket) error
}

// TicketService turns a confirmed booking into a ticket with a QR payload and
// exports it locally. Nothing here calls the backend.
type TicketService struct {
	bookings *BookingStore
	renderer TicketRenderer
	monitor  *monitoring.Monitor
	logger   *slog.Logger
}

func NewTicketService(bookings *BookingStore, renderer TicketRenderer, monitor *monitoring.Monitor, logger *slog.Logger) *TicketService {
	if renderer == nil {
		renderer = NewPDFRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketService{bookings: bookings, renderer: renderer, monitor: monitor, logger: logger}
}

// TicketFilename is the deterministic export name for a booking.
func TicketFilename(bookingID string) string {
	return fmt.Sprintf("ticket-%s.pdf", bookingID)
}

// FormatTicketDate renders a booking date as "Monday, January 2, 2006".
func FormatTicketDate(date string) string {
	return formatDate(date, "Monday, January 2, 2006")
}

// FormatShortDate is the confirmation screen's "Mon, January 2, 2006".
func FormatShortDate(date string) string {
	return formatDate(date, "Mon, January 2, 2006")
}

func formatDate(date, layout string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return InvalidDateText
	}
	for _, in := range []string{DateLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(in, date); err == nil {
			return t.Format(layout)
		}
	}
	return InvalidDateText
}

// BuildTicket fills display defaults and computes the QR payload.
func BuildTicket(rec models.BookingRecord) models.Ticket {
	t := models.Ticket{
		BookingID:     orDefault(rec.BookingID, "N/A"),
		MovieTitle:    orDefault(rec.MovieTitle, UnknownMovieTitle),
		Seats:         rec.Seats,
		Timing:        orDefault(rec.Timing, notAvailable),
		FormattedDate: FormatTicketDate(rec.Date),
		Place:         orDefault(rec.Place, notAvailable),
		TotalAmount:   rec.TotalAmount,
		Subject:       TicketSubject,
	}
	if t.Seats == nil {
		t.Seats = []string{}
	}

	t.QRPayload = models.TicketQRPayload{
		MovieTitle: t.MovieTitle,
		Place:      t.Place,
		Seats:      t.Seats,
		Date:       t.FormattedDate,
		BookingID:  t.BookingID,
	}
	// marshalling strings and a string slice cannot fail
	data, _ := json.Marshal(t.QRPayload)
	t.QRData = string(data)

	t.Title = "Ticket-" + t.BookingID
	t.Filename = TicketFilename(t.BookingID)
	return t
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Ticket resolves the booking and builds its ticket without rendering.
func (s *TicketService) Ticket(ctx context.Context, explicit *models.BookingRecord) (*models.Ticket, error) {
	rec, err := s.bookings.Resolve(ctx, explicit)
	if err != nil {
		return nil, err
	}
	t := BuildTicket(*rec)
	return &t, nil
}

// Export renders the ticket for the resolved booking into w.
func (s *TicketService) Export(ctx context.Context, explicit *models.BookingRecord, w io.Writer) (*models.Ticket, error) {
	t, err := s.Ticket(ctx, explicit)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	if err := s.render(w, t); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	return t, nil
}

// ExportToDir writes ticket-<bookingId>.pdf into dir and returns its path.
func (s *TicketService) ExportToDir(ctx context.Context, explicit *models.BookingRecord, dir string) (string, *models.Ticket, error) {
	t, err := s.Ticket(ctx, explicit)
	if err != nil {
		return "", nil, fmt.Errorf("ExportToDir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("ExportToDir: mkdir: %w", err)
	}

	path := filepath.Join(dir, t.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("ExportToDir: create: %w", err)
	}

	if err := s.render(f, t); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("ExportToDir: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("ExportToDir: close: %w", err)
	}
	return path, t, nil
}

func (s *TicketService) render(w io.Writer, t *models.Ticket) error {
	if err := s.renderer.Render(w, *t); err != nil {
		return fmt.Errorf("render %s: %w", t.Filename, err)
	}

	s.monitor.TrackTicketExport()
	s.logger.Info("ticket exported", "bookingId", t.BookingID, "filename", t.Filename)
	return nil
}
