package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"findyourseat/models"
	"findyourseat/monitoring"
	"findyourseat/utils"
)

// cardNumberLen is "1234 5678 9012": twelve digits grouped by four.
const cardNumberLen = 14

// PaymentService is the local payment form. It never talks to a payment
// processor; a valid form simply moves the booking on to the ticket.
type PaymentService struct {
	bookings *BookingStore
	session  SessionReader
	notifier Notifier
	monitor  *monitoring.Monitor
	logger   *slog.Logger
	now      func() time.Time
}

func NewPaymentService(bookings *BookingStore, session SessionReader, notifier Notifier, monitor *monitoring.Monitor, logger *slog.Logger) *PaymentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{
		bookings: bookings,
		session:  session,
		notifier: notifier,
		monitor:  monitor,
		logger:   logger,
		now:      time.Now,
	}
}

// NormalizeCardNumber keeps ASCII digits, groups them by four and truncates
// the result to the display length.
func NormalizeCardNumber(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if n > 0 && n%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		n++
	}

	out := b.String()
	if len(out) > cardNumberLen {
		out = out[:cardNumberLen]
	}
	return out
}

// ValidatePaymentForm normalizes the form and checks it the way the payment
// screen does. The returned form is what gets charged.
func ValidatePaymentForm(form models.PaymentForm) (models.PaymentForm, error) {
	switch form.Method {
	case models.PaymentMethodCard:
		form.CardNumber = NormalizeCardNumber(form.CardNumber)
		if len(form.CardNumber) < cardNumberLen {
			return form, ErrInvalidCardNumber
		}
		form.UPIApp, form.UPIID = "", ""

	case models.PaymentMethodUPI:
		if form.UPIApp == "" {
			form.UPIApp = models.UPIAppGPay
		}
		switch form.UPIApp {
		case models.UPIAppGPay, models.UPIAppPhonePe, models.UPIAppPaytm:
		default:
			return form, fmt.Errorf("upi app %q: %w", form.UPIApp, ErrInvalidPaymentMethod)
		}
		if !strings.Contains(form.UPIID, "@") {
			return form, ErrInvalidUPIID
		}
		form.CardNumber = ""

	default:
		return form, fmt.Errorf("method %q: %w", form.Method, ErrInvalidPaymentMethod)
	}
	return form, nil
}

// Pay validates the form, resolves the booking being paid for and returns a
// local receipt. The booking is re-persisted so the ticket view can find it.
func (s *PaymentService) Pay(ctx context.Context, form models.PaymentForm, explicit *models.BookingRecord) (*models.PaymentReceipt, error) {
	form, err := ValidatePaymentForm(form)
	if err != nil {
		s.monitor.TrackPayment(string(form.Method), "invalid")
		return nil, err
	}

	rec, err := s.bookings.Resolve(ctx, explicit)
	if err != nil {
		s.monitor.TrackPayment(string(form.Method), "no_booking")
		return nil, fmt.Errorf("Pay: %w", err)
	}

	ref, err := utils.GenerateCode(6)
	if err != nil {
		s.monitor.TrackPayment(string(form.Method), "error")
		return nil, fmt.Errorf("Pay: GenerateCode: %w", err)
	}

	receipt := &models.PaymentReceipt{
		Reference: ref,
		BookingID: rec.BookingID,
		Method:    form.Method,
		UPIApp:    form.UPIApp,
		Amount:    decimal.NewFromInt(int64(rec.TotalAmount)),
		PaidAt:    s.now(),
	}

	if userID, err := s.session.UserID(ctx); err == nil && userID != "" {
		if err := s.notifier.Notify(ctx, userID, Notification{
			Type:      EventPaymentCompleted,
			BookingID: rec.BookingID,
			Amount:    receipt.Amount.StringFixed(2),
			Reference: ref,
		}); err != nil {
			s.logger.Warn("payment notification not sent", "bookingId", rec.BookingID, "error", err)
		}
	}

	s.logger.Info("payment recorded", "bookingId", rec.BookingID, "method", form.Method, "reference", ref)
	s.monitor.TrackPayment(string(form.Method), "success")
	return receipt, nil
}
