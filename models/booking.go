package models

// BookingRequest is built right before submission and not touched afterwards.
// MovieID travels in the path, not the body.
type BookingRequest struct {
	MovieID    string   `json:"-"`
	Seats      []string `json:"seats"`
	UserID     string   `json:"userId"`
	MovieTime  string   `json:"movieTime"`
	Date       string   `json:"date"`
	MovieTitle string   `json:"movieTitle"`
	Place      string   `json:"place"`
}

type BookingResponse struct {
	BookingID string `json:"bookingId"`
	Message   string `json:"message,omitempty"`
}

// BookingRecord is the confirmed booking handed between the confirmation,
// payment and ticket views. It is persisted under a single slot.
type BookingRecord struct {
	BookingID   string   `json:"bookingId"`
	MovieTitle  string   `json:"movieTitle"`
	Seats       []string `json:"seats"`
	Timing      string   `json:"timing"`
	Date        string   `json:"date"`
	Place       string   `json:"place"`
	TotalAmount int      `json:"totalAmount"`
}
