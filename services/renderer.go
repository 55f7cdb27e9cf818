package services

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"findyourseat/models"
)

const (
	qrSizePx = 140
	qrSizeMM = 45
)

var ticketRed = color.RGBA{R: 0xff, A: 0xff}

// PDFRenderer draws a one-page e-ticket with a scannable QR code.
type PDFRenderer struct {
	// Brand is printed at the top of the ticket.
	Brand string
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Brand: "FindYourSeat"}
}

// EncodeTicketQR renders the QR payload as a PNG at high error correction.
func EncodeTicketQR(data string) ([]byte, error) {
	q, err := qrcode.New(data, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("qrcode.New: %w", err)
	}
	q.ForegroundColor = ticketRed
	q.BackgroundColor = color.White

	png, err := q.PNG(qrSizePx)
	if err != nil {
		return nil, fmt.Errorf("qrcode.PNG: %w", err)
	}
	return png, nil
}

// FormatAmount renders rupees for display, e.g. "INR 1000.00".
func FormatAmount(amount int) string {
	return "INR " + decimal.NewFromInt(int64(amount)).StringFixed(2)
}

func (r *PDFRenderer) Render(w io.Writer, t models.Ticket) error {
	png, err := EncodeTicketQR(t.QRData)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(t.Title, true)
	pdf.SetSubject(t.Subject, true)
	pdf.SetCreator(r.Brand, true)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	// header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(255, 0, 0)
	pdf.CellFormat(contentW, 12, tr(r.Brand), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentW, 6, "E-Ticket", "", 1, "C", false, 0, "")

	pdf.SetDrawColor(255, 0, 0)
	y := pdf.GetY() + 3
	pdf.Line(left, y, pageW-right, y)
	pdf.SetY(y + 5)

	details := []struct{ label, value string }{
		{"Movie", t.MovieTitle},
		{"Date & Time", t.FormattedDate + " - " + t.Timing},
		{"Venue", t.Place},
		{"Seats", strings.Join(t.Seats, ", ")},
		{"Total Amount", FormatAmount(t.TotalAmount)},
		{"Booking ID", t.BookingID},
	}
	for _, d := range details {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(contentW, 5, tr(d.label), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(20, 20, 20)
		pdf.MultiCell(contentW, 6, tr(d.value), "", "L", false)
		pdf.Ln(2)
	}

	// QR section
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 0, 0)
	pdf.CellFormat(contentW, 6, "SCAN FOR ENTRY", "", 1, "C", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", (pageW-qrSizeMM)/2, pdf.GetY()+1, qrSizeMM, qrSizeMM, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("fpdf: %w", err)
	}
	return pdf.Output(w)
}
