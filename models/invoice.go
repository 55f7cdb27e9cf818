package models

type InvoiceRequest struct {
	BookingID   string   `json:"-"`
	UserID      string   `json:"userId"`
	MovieName   string   `json:"movieName"`
	Seats       []string `json:"seats"`
	TotalAmount int      `json:"totalAmount"`
	QRCode      string   `json:"qrCode"`
}

type Invoice struct {
	ID          string   `json:"_id"`
	BookingID   string   `json:"bookingId,omitempty"`
	UserID      string   `json:"userId,omitempty"`
	MovieName   string   `json:"movieName,omitempty"`
	Seats       []string `json:"seats,omitempty"`
	TotalAmount int      `json:"totalAmount"`
	QRCode      string   `json:"qrCode,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

type InvoiceResponse struct {
	Message string   `json:"message,omitempty"`
	Invoice *Invoice `json:"invoice"`
}
