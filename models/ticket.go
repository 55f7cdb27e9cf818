package models

// TicketQRPayload is the machine-readable summary encoded in the ticket QR.
// Field order is part of the payload format.
type TicketQRPayload struct {
	MovieTitle string   `json:"movieTitle"`
	Place      string   `json:"place"`
	Seats      []string `json:"seats"`
	Date       string   `json:"date"`
	BookingID  string   `json:"bookingId"`
}

// Ticket is the display form of a booking, with defaults filled in.
type Ticket struct {
	BookingID     string          `json:"bookingId"`
	MovieTitle    string          `json:"movieTitle"`
	Seats         []string        `json:"seats"`
	Timing        string          `json:"timing"`
	FormattedDate string          `json:"formattedDate"`
	Place         string          `json:"place"`
	TotalAmount   int             `json:"totalAmount"`
	QRPayload     TicketQRPayload `json:"qrPayload"`
	QRData        string          `json:"qrData"`
	Title         string          `json:"title"`
	Subject       string          `json:"subject"`
	Filename      string          `json:"filename"`
}
