package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"findyourseat/models"
	"findyourseat/monitoring"
)

const (
	DateLayout        = "2006-01-02"
	UnknownMovieTitle = "Unknown Movie"
)

// SeatBooker submits a booking to the backend.
type SeatBooker interface {
	BookSeats(ctx context.Context, movieID string, req models.BookingRequest) (*models.BookingResponse, error)
}

// SessionReader supplies the logged-in user and the last viewed movie.
type SessionReader interface {
	UserID(ctx context.Context) (string, error)
	MovieTitle(ctx context.Context) (string, error)
}

// SeatSelection is the in-progress selection for one movie: seats, venue,
// date and showtime. It is safe for concurrent use.
type SeatSelection struct {
	movieID string
	layout  *SeatLayout

	booker   SeatBooker
	session  SessionReader
	bookings *BookingStore
	notifier Notifier
	monitor  *monitoring.Monitor
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	seats      []string
	place      string
	date       string
	showtime   string
	movieTitle string

	// submitting guards against a second submission while one is in flight.
	submitting atomic.Bool
}

type SelectionOption func(*SeatSelection)

func WithNotifier(n Notifier) SelectionOption {
	return func(s *SeatSelection) { s.notifier = n }
}

func WithMonitor(m *monitoring.Monitor) SelectionOption {
	return func(s *SeatSelection) { s.monitor = m }
}

func WithLogger(l *slog.Logger) SelectionOption {
	return func(s *SeatSelection) { s.logger = l }
}

// WithClock sets the clock used to reject past dates.
func WithClock(now func() time.Time) SelectionOption {
	return func(s *SeatSelection) { s.now = now }
}

func NewSeatSelection(movieID string, layout *SeatLayout, booker SeatBooker, session SessionReader, bookings *BookingStore, opts ...SelectionOption) *SeatSelection {
	s := &SeatSelection{
		movieID:  movieID,
		layout:   layout,
		booker:   booker,
		session:  session,
		bookings: bookings,
		notifier: NopNotifier{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SeatSelection) MovieID() string {
	return s.movieID
}

func (s *SeatSelection) Layout() *SeatLayout {
	return s.layout
}

// Toggle adds the seat if absent and removes it otherwise. It reports whether
// the seat is selected afterwards.
func (s *SeatSelection) Toggle(seat string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.seats, seat); i >= 0 {
		s.seats = slices.Delete(s.seats, i, i+1)
		return false
	}
	s.seats = append(s.seats, seat)
	return true
}

func (s *SeatSelection) IsSelected(seat string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.seats, seat)
}

// Seats returns the selected seats in the order they were picked.
func (s *SeatSelection) Seats() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.seats)
}

func (s *SeatSelection) TotalAmount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *SeatSelection) totalLocked() int {
	total := 0
	for _, seat := range s.seats {
		total += s.layout.PriceOf(seat)
	}
	return total
}

func (s *SeatSelection) SetPlace(place string) error {
	if !IsPlace(place) {
		return fmt.Errorf("SetPlace: %q: %w", place, ErrUnknownPlace)
	}
	s.mu.Lock()
	s.place = place
	s.mu.Unlock()
	return nil
}

// SetDate accepts YYYY-MM-DD dates from today onwards.
func (s *SeatSelection) SetDate(date string) error {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return fmt.Errorf("SetDate: %q: %w", date, ErrInvalidDate)
	}
	today := s.now().Format(DateLayout)
	if d.Format(DateLayout) < today {
		return fmt.Errorf("SetDate: %s before %s: %w", date, today, ErrPastDate)
	}

	s.mu.Lock()
	s.date = date
	s.mu.Unlock()
	return nil
}

func (s *SeatSelection) SetTime(showtime string) error {
	if !IsShowtime(showtime) {
		return fmt.Errorf("SetTime: %q: %w", showtime, ErrUnknownTime)
	}
	s.mu.Lock()
	s.showtime = showtime
	s.mu.Unlock()
	return nil
}

// SetMovieTitle records the title shown on the selection screen.
func (s *SeatSelection) SetMovieTitle(title string) {
	s.mu.Lock()
	s.movieTitle = title
	s.mu.Unlock()
}

// SelectionView is a point-in-time copy of the selection.
type SelectionView struct {
	MovieID     string   `json:"movieId"`
	MovieTitle  string   `json:"movieTitle,omitempty"`
	Seats       []string `json:"seats"`
	Place       string   `json:"place"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	TotalAmount int      `json:"totalAmount"`
}

func (s *SeatSelection) Snapshot() SelectionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	seats := slices.Clone(s.seats)
	if seats == nil {
		seats = []string{}
	}
	return SelectionView{
		MovieID:     s.movieID,
		MovieTitle:  s.movieTitle,
		Seats:       seats,
		Place:       s.place,
		Date:        s.date,
		Time:        s.showtime,
		TotalAmount: s.totalLocked(),
	}
}

func (s *SeatSelection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seats = nil
	s.place = ""
	s.date = ""
	s.showtime = ""
}

// SubmitBooking validates the selection, books it and stores the resulting
// record. Validation failures never reach the network. On any failure the
// selection and the stored booking are left untouched.
func (s *SeatSelection) SubmitBooking(ctx context.Context) (*models.BookingRecord, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		s.monitor.TrackBookingSubmission("in_progress")
		return nil, ErrSubmissionInProgress
	}
	defer s.submitting.Store(false)

	userID, err := s.session.UserID(ctx)
	if err != nil {
		s.monitor.TrackBookingSubmission("error")
		return nil, fmt.Errorf("SubmitBooking: %w", err)
	}
	if userID == "" {
		s.monitor.TrackBookingSubmission("rejected")
		return nil, ErrNotLoggedIn
	}

	view := s.Snapshot()
	if len(view.Seats) == 0 || view.Place == "" || view.Date == "" || view.Time == "" {
		s.monitor.TrackBookingSubmission("rejected")
		return nil, ErrIncompleteSelection
	}

	title := s.resolveTitle(ctx, view.MovieTitle)

	req := models.BookingRequest{
		MovieID:    s.movieID,
		Seats:      view.Seats,
		UserID:     userID,
		MovieTime:  view.Time,
		Date:       view.Date,
		MovieTitle: title,
		Place:      view.Place,
	}

	resp, err := s.booker.BookSeats(ctx, s.movieID, req)
	if err != nil {
		s.logger.Error("booking failed", "movieId", s.movieID, "seats", req.Seats, "error", err)
		s.monitor.TrackBookingSubmission("failed")
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}
	if resp == nil {
		s.logger.Warn("booking response was empty or unsuccessful", "movieId", s.movieID)
		s.monitor.TrackBookingSubmission("not_created")
		return nil, ErrBookingNotCreated
	}

	rec := models.BookingRecord{
		BookingID:   resp.BookingID,
		MovieTitle:  title,
		Seats:       view.Seats,
		Timing:      view.Time,
		Date:        view.Date,
		Place:       view.Place,
		TotalAmount: view.TotalAmount,
	}
	if err := s.bookings.Save(ctx, rec); err != nil {
		s.logger.Error("booking created but not stored", "bookingId", rec.BookingID, "error", err)
		s.monitor.TrackBookingSubmission("error")
		return nil, fmt.Errorf("SubmitBooking: %w", err)
	}

	if err := s.notifier.Notify(ctx, userID, Notification{
		Type:      EventBookingConfirmed,
		BookingID: rec.BookingID,
		Seats:     rec.Seats,
		Amount:    strconv.Itoa(rec.TotalAmount),
	}); err != nil {
		s.logger.Warn("booking notification not sent", "bookingId", rec.BookingID, "error", err)
	}

	s.logger.Info("booking confirmed", "bookingId", rec.BookingID, "seats", rec.Seats, "totalAmount", rec.TotalAmount)
	s.monitor.TrackBookingSubmission("confirmed")
	return &rec, nil
}

// resolveTitle falls back from the selection's title to the stored one.
func (s *SeatSelection) resolveTitle(ctx context.Context, title string) string {
	if title != "" {
		return title
	}
	stored, err := s.session.MovieTitle(ctx)
	if err != nil {
		s.logger.Warn("stored movie title unreadable", "error", err)
	}
	if stored != "" {
		return stored
	}
	return UnknownMovieTitle
}
