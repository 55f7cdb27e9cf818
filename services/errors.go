package services

import (
	"errors"
)

var (
	ErrNotLoggedIn          = errors.New("booking: not logged in")
	ErrIncompleteSelection  = errors.New("booking: incomplete selection")
	ErrSubmissionInProgress = errors.New("booking: submission already in progress")
	ErrBookingFailed        = errors.New("booking: booking request failed")
	ErrBookingNotCreated    = errors.New("booking: backend created no booking")

	ErrUnknownSeat  = errors.New("seat: unknown seat")
	ErrUnknownPlace = errors.New("seat: unknown place")
	ErrUnknownTime  = errors.New("seat: unknown showtime")
	ErrInvalidDate  = errors.New("seat: invalid date")
	ErrPastDate     = errors.New("seat: date is in the past")

	ErrOverlappingRows = errors.New("layout: row label used by more than one category")
	ErrInvalidLayout   = errors.New("layout: invalid seat category")

	ErrNoBooking = errors.New("booking store: no booking found")

	ErrAuthFailed    = errors.New("session: authentication failed")
	ErrMovieNotFound = errors.New("session: movie not found")

	ErrInvalidCardNumber    = errors.New("payment: invalid card number")
	ErrInvalidUPIID         = errors.New("payment: invalid upi id")
	ErrInvalidPaymentMethod = errors.New("payment: unknown payment method")

	ErrInvoiceUnavailable = errors.New("invoice: invoice unavailable")

	ErrMalformedResponse = errors.New("gateway: malformed response")
)

// UserMessage turns an error into the alert text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotLoggedIn):
		return "You must be logged in to book seats."
	case errors.Is(err, ErrIncompleteSelection):
		return "Please select place, seats, date, and time."
	case errors.Is(err, ErrSubmissionInProgress):
		return "Your booking is being processed. Please wait."
	case errors.Is(err, ErrInvalidCardNumber):
		return "Please enter a valid 12-digit Card Number."
	case errors.Is(err, ErrInvalidUPIID):
		return "Please enter a valid UPI ID."
	case errors.Is(err, ErrInvalidPaymentMethod):
		return "Please choose a payment method."
	case errors.Is(err, ErrNoBooking):
		return "No Booking Found. Please start a new booking process."
	case errors.Is(err, ErrAuthFailed):
		return "Login failed. Please check your details."
	case errors.Is(err, ErrMovieNotFound):
		return "Movie not found."
	case errors.Is(err, ErrPastDate):
		return "Please choose a date from today onwards."
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrUnknownPlace),
		errors.Is(err, ErrUnknownTime), errors.Is(err, ErrUnknownSeat):
		return "Please select place, seats, date, and time."
	case errors.Is(err, ErrInvoiceUnavailable):
		return "Invoice is not available right now."
	default:
		return "Something went wrong!"
	}
}
