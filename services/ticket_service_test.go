package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findyourseat/models"
	"findyourseat/utils"
)

// recordingRenderer captures the ticket instead of drawing it.
type recordingRenderer struct {
	got models.Ticket
	err error
}

func (r *recordingRenderer) Render(w io.Writer, t models.Ticket) error {
	r.got = t
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "ticket:"+t.BookingID)
	return err
}

func TestFormatTicketDate(t *testing.T) {
	assert.Equal(t, "Tuesday, October 20, 2026", FormatTicketDate("2026-10-20"))
	assert.Equal(t, "Tuesday, October 20, 2026", FormatTicketDate("2026-10-20T18:30:00Z"))
	assert.Equal(t, InvalidDateText, FormatTicketDate(""))
	assert.Equal(t, InvalidDateText, FormatTicketDate("someday"))

	assert.Equal(t, "Tue, October 20, 2026", FormatShortDate("2026-10-20"))
	assert.Equal(t, InvalidDateText, FormatShortDate("2026-13-01"))
}

func TestBuildTicket(t *testing.T) {
	ticket := BuildTicket(sampleRecord())

	assert.Equal(t, "ticket-B1.pdf", ticket.Filename)
	assert.Equal(t, "Ticket-B1", ticket.Title)
	assert.Equal(t, TicketSubject, ticket.Subject)
	assert.Equal(t, "Tuesday, October 20, 2026", ticket.FormattedDate)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(ticket.QRData), &payload))
	assert.Equal(t, map[string]any{
		"movieTitle": "Dune",
		"place":      "PVR Bandra",
		"seats":      []any{"A1", "A2", "K1"},
		"date":       "Tuesday, October 20, 2026",
		"bookingId":  "B1",
	}, payload)
}

func TestBuildTicket_Defaults(t *testing.T) {
	ticket := BuildTicket(models.BookingRecord{})

	assert.Equal(t, "N/A", ticket.BookingID)
	assert.Equal(t, UnknownMovieTitle, ticket.MovieTitle)
	assert.Equal(t, "Not Available", ticket.Timing)
	assert.Equal(t, "Not Available", ticket.Place)
	assert.Equal(t, InvalidDateText, ticket.FormattedDate)
	assert.Equal(t, []string{}, ticket.Seats)
	assert.Equal(t, "ticket-N/A.pdf", ticket.Filename)
	assert.Contains(t, ticket.QRData, `"seats":[]`)
}

func TestTicketService_Export(t *testing.T) {
	ctx := context.Background()
	renderer := &recordingRenderer{}
	store := NewBookingStore(utils.NewMemoryStore())
	require.NoError(t, store.Save(ctx, sampleRecord()))
	svc := NewTicketService(store, renderer, nil, quietLogger())

	var buf bytes.Buffer
	ticket, err := svc.Export(ctx, nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, "ticket:B1", buf.String())
	assert.Equal(t, "B1", renderer.got.BookingID)
	assert.Equal(t, "ticket-B1.pdf", ticket.Filename)
}

func TestTicketService_ExportWithoutBooking(t *testing.T) {
	svc := NewTicketService(NewBookingStore(utils.NewMemoryStore()), &recordingRenderer{}, nil, quietLogger())

	_, err := svc.Export(context.Background(), nil, io.Discard)
	assert.ErrorIs(t, err, ErrNoBooking)
}

func TestTicketService_ExportToDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := NewTicketService(NewBookingStore(utils.NewMemoryStore()), NewPDFRenderer(), nil, quietLogger())

	rec := sampleRecord()
	path, ticket, err := svc.ExportToDir(ctx, &rec, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ticket-B1.pdf"), path)
	assert.Equal(t, "B1", ticket.BookingID)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestTicketService_ExportToDirRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	renderer := &recordingRenderer{err: errors.New("printer on fire")}
	svc := NewTicketService(NewBookingStore(utils.NewMemoryStore()), renderer, nil, quietLogger())

	rec := sampleRecord()
	_, _, err := svc.ExportToDir(context.Background(), &rec, dir)
	assert.ErrorContains(t, err, "printer on fire")

	_, statErr := os.Stat(filepath.Join(dir, "ticket-B1.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncodeTicketQR(t *testing.T) {
	png, err := EncodeTicketQR(BuildTicket(sampleRecord()).QRData)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "INR 1000.00", FormatAmount(1000))
	assert.Equal(t, "INR 0.00", FormatAmount(0))
}
