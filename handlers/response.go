package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"findyourseat/services"
)

type errorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn), errors.Is(err, services.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrIncompleteSelection),
		errors.Is(err, services.ErrUnknownSeat),
		errors.Is(err, services.ErrUnknownPlace),
		errors.Is(err, services.ErrUnknownTime),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrPastDate),
		errors.Is(err, services.ErrInvalidCardNumber),
		errors.Is(err, services.ErrInvalidUPIID),
		errors.Is(err, services.ErrInvalidPaymentMethod):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoBooking), errors.Is(err, services.ErrMovieNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrBookingFailed),
		errors.Is(err, services.ErrBookingNotCreated),
		errors.Is(err, services.ErrInvoiceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the user-facing message for err. A missing booking
// sends the client back to the movie list.
func respondError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrNoBooking) {
		return c.JSON(http.StatusNotFound, errorBody{
			Error:    "No Booking Found",
			Message:  "Please start a new booking process",
			Redirect: "/",
		})
	}
	return c.JSON(statusFor(err), errorBody{Error: services.UserMessage(err)})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Error: msg})
}
